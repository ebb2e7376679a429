package fetch

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG
var pngPixel, _ = base64.StdEncoding.DecodeString(
	"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII=")

type countingRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func (r *countingRecorder) RecordImageDownload(status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counts == nil {
		r.counts = map[string]int{}
	}
	r.counts[status]++
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxRetries = 2
	cfg.RetryWaitMin = time.Millisecond
	cfg.RetryWaitMax = 5 * time.Millisecond
	cfg.RequestsPerSecond = 0
	return cfg
}

func TestDownloadImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(pngPixel)
	}))
	defer srv.Close()

	rec := &countingRecorder{}
	c := NewClient(testConfig(), WithRecorder(rec))

	img, err := c.Load(context.Background(), srv.URL+"/logo.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, ".png", img.Extension)
	assert.Equal(t, pngPixel, img.Data)
	assert.Equal(t, 1, rec.counts[statusSuccess])
}

func TestDownloadRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write(pngPixel)
	}))
	defer srv.Close()

	c := NewClient(testConfig())
	img, err := c.Download(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDownloadRejectsNonImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("<html><body>not an image</body></html>"))
	}))
	defer srv.Close()

	rec := &countingRecorder{}
	c := NewClient(testConfig(), WithRecorder(rec))
	_, err := c.Download(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrNotImage)
	assert.Equal(t, 1, rec.counts[statusFailure])
}

func TestDownloadStatusAndSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(pngPixel)
	}))
	defer srv.Close()

	c := NewClient(testConfig())
	_, err := c.Download(context.Background(), srv.URL+"/missing")
	assert.ErrorIs(t, err, ErrStatus)

	cfg := testConfig()
	cfg.MaxBytes = 10
	small := NewClient(cfg)
	_, err = small.Download(context.Background(), srv.URL+"/big")
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestDownloadCanceledContext(t *testing.T) {
	cfg := testConfig()
	cfg.RequestsPerSecond = 1
	c := NewClient(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Download(ctx, "http://127.0.0.1:1/never")
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	pic := filepath.Join(dir, "pixel.bin")
	require.NoError(t, os.WriteFile(pic, pngPixel, 0o644))
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("plain text"), 0o644))

	c := NewClient(testConfig())

	img, err := c.Load(context.Background(), pic)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, pic, img.Source)

	_, err = c.Load(context.Background(), txt)
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = c.Load(context.Background(), filepath.Join(dir, "absent.png"))
	assert.ErrorIs(t, err, ErrNotFound)

	cfg := testConfig()
	cfg.MaxBytes = 4
	_, err = NewClient(cfg).ReadFile(pic)
	assert.ErrorIs(t, err, ErrTooLarge)
}
