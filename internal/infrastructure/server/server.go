package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/office-mcp/internal/api/http"
	"github.com/GriffinCanCode/office-mcp/internal/api/middleware"
	"github.com/GriffinCanCode/office-mcp/internal/infrastructure/config"
	"github.com/GriffinCanCode/office-mcp/internal/infrastructure/logging"
	"github.com/GriffinCanCode/office-mcp/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/office-mcp/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/office-mcp/internal/integration/applescript"
	"github.com/GriffinCanCode/office-mcp/internal/integration/fetch"
	"github.com/GriffinCanCode/office-mcp/internal/mcp"
	"github.com/GriffinCanCode/office-mcp/internal/providers/common"
	"github.com/GriffinCanCode/office-mcp/internal/providers/excel"
	"github.com/GriffinCanCode/office-mcp/internal/providers/office"
	"github.com/GriffinCanCode/office-mcp/internal/providers/powerpoint"
	"github.com/GriffinCanCode/office-mcp/internal/providers/word"
	"github.com/GriffinCanCode/office-mcp/internal/service"
	"github.com/GriffinCanCode/office-mcp/internal/shared/paths"
	"github.com/GriffinCanCode/office-mcp/internal/workspace"
)

const shutdownTimeout = 10 * time.Second

// Server wraps both transports and their dependencies
type Server struct {
	router   *gin.Engine
	registry *service.Registry
	office   *office.Provider
	bridge   common.Bridge
	mcp      *mcp.Server
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
	tracer   *tracing.Tracer
}

// Option configures a Server
type Option func(*options)

type options struct {
	logger *logging.Logger
	bridge common.Bridge
}

// WithLogger replaces the logger built from config
func WithLogger(l *logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithBridge replaces the osascript bridge
func WithBridge(b common.Bridge) Option {
	return func(o *options) { o.bridge = b }
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, opts ...Option) (*Server, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		var err error
		if logger, err = newLogger(cfg.Logging); err != nil {
			return nil, err
		}
	}

	logger.Info("Initializing Office 365 MCP server",
		zap.String("transport", cfg.Server.Transport),
		zap.String("temp_dir", cfg.Office.TempDir),
		zap.Bool("applescript", cfg.Office.EnableAppleScript),
	)

	// Per-server registry so NewServer can run more than once per process
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetricsWith(promRegistry)
	tracer := tracing.New("office-mcp", logger.Named("trace").Logger,
		tracing.WithSlowThreshold(time.Duration(cfg.Office.AppleScriptTimeout)*time.Second/2),
	)

	ws, err := workspace.New(cfg.Office.TempDir)
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	templatesDir, err := paths.Expand(cfg.Office.TemplatesDir)
	if err != nil {
		return nil, fmt.Errorf("resolve templates dir: %w", err)
	}

	bridge := o.bridge
	if bridge == nil {
		bridge = applescript.NewDefault(cfg.Office.EnableAppleScript,
			applescript.OSARunner{Timeout: time.Duration(cfg.Office.AppleScriptTimeout) * time.Second},
			applescript.WithRecorder(metrics),
			applescript.WithLogger(logger.Named("applescript").Logger),
		)
	}
	if !bridge.Enabled() {
		logger.Info("AppleScript bridge disabled; documents are built on disk only")
	}

	images := fetch.NewClient(fetch.Config{
		Timeout:           time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second,
		MaxRetries:        cfg.Fetch.MaxRetries,
		MaxBytes:          cfg.Fetch.MaxBytes,
		RequestsPerSecond: float64(cfg.Fetch.RequestsPerSecond),
	}, fetch.WithRecorder(metrics), fetch.WithLogger(logger.Named("fetch").Logger))

	ops := func(name string) *common.OfficeOps {
		return &common.OfficeOps{
			Workspace: ws,
			Bridge:    bridge,
			Gauge:     metrics,
			Logger:    logger.Named(name).Logger,
		}
	}

	pptProvider := powerpoint.NewProvider(ops("powerpoint"), images, cfg.Office.MaxPresentations)
	wordProvider := word.NewProvider(ops("word"), cfg.Office.MaxDocuments)
	excelProvider := excel.NewProvider(ops("excel"), cfg.Office.MaxWorkbooks)
	officeProvider := office.NewProvider(office.Stores{
		Presentations: pptProvider,
		Documents:     wordProvider,
		Workbooks:     excelProvider,
	}, bridge, templatesDir, logger.Named("office").Logger)

	registry := service.NewRegistry(service.WithObserver(metrics))
	for _, p := range []service.Provider{pptProvider, wordProvider, excelProvider, officeProvider} {
		if err := registry.Register(p); err != nil {
			return nil, fmt.Errorf("register %s: %w", p.Definition().ID, err)
		}
		logger.Debug("Registered service", zap.String("service", p.Definition().ID))
	}

	mcpServer, err := mcp.New(registry, officeProvider,
		mcp.WithTracer(tracer),
		mcp.WithMetrics(metrics),
		mcp.WithLogger(logger.Named("mcp").Logger),
	)
	if err != nil {
		return nil, fmt.Errorf("create MCP server: %w", err)
	}

	s := &Server{
		registry: registry,
		office:   officeProvider,
		bridge:   bridge,
		mcp:      mcpServer,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
		tracer:   tracer,
	}
	s.router = s.buildRouter(promRegistry)

	logger.Info("Server initialized successfully", zap.Int("tools", len(registry.Tools())))
	return s, nil
}

func newLogger(cfg config.LogConfig) (*logging.Logger, error) {
	var file string
	if cfg.File != "" {
		var err error
		if file, err = paths.Expand(cfg.File); err != nil {
			return nil, fmt.Errorf("resolve log file: %w", err)
		}
	}
	logger, err := logging.New(logging.Config{Level: cfg.Level, Development: cfg.Development, File: file})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return logger, nil
}

func (s *Server) buildRouter(gatherer prometheus.Gatherer) *gin.Engine {
	if !s.config.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(s.tracer))
	router.Use(monitoring.Middleware(s.metrics, "/metrics"))
	router.Use(middleware.CORS(s.config.Server.CORSOrigins...))
	if s.config.RateLimit.Enabled {
		s.logger.Info("Rate limiting enabled",
			zap.Int("rps", s.config.RateLimit.RequestsPerSecond),
			zap.Int("burst", s.config.RateLimit.Burst),
			zap.Bool("global", s.config.RateLimit.Global),
		)
		limit := middleware.RateLimitConfig{
			RequestsPerSecond: s.config.RateLimit.RequestsPerSecond,
			Burst:             s.config.RateLimit.Burst,
		}
		if s.config.RateLimit.Global {
			router.Use(middleware.GlobalRateLimit(limit))
		} else {
			router.Use(middleware.RateLimit(limit))
		}
	}

	handlers := apihttp.NewHandlers(s.registry, s.office, s.metrics, s.tracer, s.logger.Named("http").Logger)
	if src, ok := s.bridge.(apihttp.BreakerSource); ok {
		handlers.SetBreakers(src)
	}

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	// Service management
	router.GET("/services", handlers.ListServices)
	router.POST("/services/discover", handlers.DiscoverServices)
	router.POST("/services/execute", handlers.ExecuteService)

	router.GET("/resources", handlers.Resources)
	router.GET("/metrics", monitoring.Handler(gatherer))

	return router
}

// Router returns the HTTP handler
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Registry returns the service registry
func (s *Server) Registry() *service.Registry {
	return s.registry
}

// Run serves the configured transports until ctx is cancelled or one fails.
// In "both" mode the HTTP API outlives a closed stdin.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	transport := s.config.Server.Transport
	errs := make(chan error, 2)
	running := 0

	if transport == config.TransportHTTP || transport == config.TransportBoth {
		running++
		go func() { errs <- s.serveHTTP(ctx) }()
	}
	if transport == config.TransportStdio || transport == config.TransportBoth {
		running++
		go func() {
			s.logger.Info("Serving MCP over stdio")
			errs <- s.mcp.ServeStdio(ctx, os.Stdin, os.Stdout)
		}()
	}

	var first error
	for ; running > 0; running-- {
		if err := <-errs; err != nil && first == nil {
			first = err
			cancel()
		}
	}
	return first
}

func (s *Server) serveHTTP(ctx context.Context) error {
	addr := net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", addr))
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close flushes buffered spans and logs
func (s *Server) Close() error {
	s.logger.Info("Shutting down server")
	s.tracer.Close()
	_ = s.logger.Sync()
	return nil
}
