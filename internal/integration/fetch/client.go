package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/office-mcp/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/office-mcp/internal/shared/validation"
)

var (
	// ErrNotImage is returned when the content is not a raster or vector image
	ErrNotImage = errors.New("content is not an image")
	// ErrTooLarge is returned when the content exceeds Config.MaxBytes
	ErrTooLarge = errors.New("image exceeds size limit")
	// ErrStatus is returned for non-2xx responses
	ErrStatus = errors.New("unexpected HTTP status")
	// ErrNotFound is returned for missing local image files
	ErrNotFound = errors.New("image file not found")
)

// Download outcome labels
const (
	statusSuccess = "success"
	statusFailure = "failure"
	statusError   = "error"
)

// Recorder receives one callback per remote download
type Recorder interface {
	RecordImageDownload(status string)
}

// Config controls download behavior
type Config struct {
	Timeout           time.Duration
	MaxRetries        int
	RetryWaitMin      time.Duration
	RetryWaitMax      time.Duration
	MaxBytes          int64
	RequestsPerSecond float64
	UserAgent         string
}

// DefaultConfig returns the download defaults
func DefaultConfig() Config {
	return Config{
		Timeout:           30 * time.Second,
		MaxRetries:        3,
		RetryWaitMin:      500 * time.Millisecond,
		RetryWaitMax:      5 * time.Second,
		MaxBytes:          20 << 20,
		RequestsPerSecond: 5,
		UserAgent:         "office365-mcp/1.0",
	}
}

// Image is a loaded picture ready to embed in a document
type Image struct {
	Data      []byte
	MIMEType  string
	Extension string
	Source    string
}

// Client loads images from URLs and local paths
type Client struct {
	resty    *resty.Client
	limiter  *rate.Limiter
	breaker  *resilience.Breaker
	maxBytes int64
	recorder Recorder
	logger   *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithRecorder reports download outcomes to r
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// WithLogger sets the client logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates an image loader. Retries happen in the retryablehttp
// transport; resty adds request building and the timeout.
func NewClient(cfg Config, opts ...Option) *Client {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = def.MaxBytes
	}
	if cfg.RetryWaitMin <= 0 {
		cfg.RetryWaitMin = def.RetryWaitMin
	}
	if cfg.RetryWaitMax <= 0 {
		cfg.RetryWaitMax = def.RetryWaitMax
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.Logger = nil // Disable logging

	restyClient := resty.NewWithClient(retryClient.StandardClient()).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "image/*")

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	c := &Client{
		resty:    restyClient,
		limiter:  limiter,
		maxBytes: cfg.MaxBytes,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = resilience.New("image-download", resilience.DownloadPolicy(
		func(name string, from, to resilience.State) {
			c.logger.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	))

	return c
}

// Load returns the image named by source, an http(s) URL or a local path
func (c *Client) Load(ctx context.Context, source string) (*Image, error) {
	if validation.IsURL(source) {
		return c.Download(ctx, source)
	}
	return c.ReadFile(source)
}

// Download fetches an image over HTTP
func (c *Client) Download(ctx context.Context, url string) (*Image, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		c.record(statusError)
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	data, err := resilience.Do(ctx, c.breaker, func(ctx context.Context) ([]byte, error) {
		return c.get(ctx, url)
	})
	if err != nil {
		c.record(statusError)
		if errors.Is(err, resilience.ErrCircuitOpen) {
			return nil, fmt.Errorf("image host unavailable: %w", err)
		}
		return nil, err
	}

	img, err := c.detect(data, url)
	if err != nil {
		c.record(statusFailure)
		return nil, err
	}

	c.record(statusSuccess)
	c.logger.Debug("image downloaded",
		zap.String("url", url),
		zap.String("mime_type", img.MIMEType),
		zap.Int("bytes", len(img.Data)))
	return img, nil
}

// ReadFile loads an image from disk
func (c *Client) ReadFile(path string) (*Image, error) {
	resolved, err := validation.ValidateFilePath(path, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if info.Size() > c.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, info.Size())
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", resolved, err)
	}
	return c.detect(data, resolved)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.resty.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", url, err)
	}

	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %s returned %d", ErrStatus, url, resp.StatusCode())
	}

	data, err := io.ReadAll(io.LimitReader(body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	if int64(len(data)) > c.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, c.maxBytes)
	}
	return data, nil
}

func (c *Client) detect(data []byte, source string) (*Image, error) {
	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotImage, source, mtype.String())
	}

	// Drop parameters such as "; charset=utf-8" that SVG detection adds
	mime, _, _ := strings.Cut(mtype.String(), ";")

	return &Image{
		Data:      data,
		MIMEType:  mime,
		Extension: mtype.Extension(),
		Source:    source,
	}, nil
}

func (c *Client) record(status string) {
	if c.recorder != nil {
		c.recorder.RecordImageDownload(status)
	}
}
