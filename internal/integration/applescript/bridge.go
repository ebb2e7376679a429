package applescript

import (
	"context"
	"errors"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/office-mcp/internal/infrastructure/resilience"
)

var (
	// ErrUnavailable is returned by every call when the bridge is disabled
	// or the host is not macOS
	ErrUnavailable = errors.New("AppleScript bridge unavailable")
	// ErrUnsupportedFormat is returned for export formats the app cannot write
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// Recorder receives one callback per osascript invocation
type Recorder interface {
	RecordAppleScriptCall(operation, status string)
}

// Bridge drives Office apps through AppleScript
type Bridge struct {
	runner   Runner
	enabled  bool
	breakers *resilience.Set
	recorder Recorder
	logger   *zap.Logger
}

// Option configures a Bridge
type Option func(*Bridge)

// WithRecorder reports calls to r
func WithRecorder(r Recorder) Option {
	return func(b *Bridge) { b.recorder = r }
}

// WithLogger sets the bridge logger
func WithLogger(l *zap.Logger) Option {
	return func(b *Bridge) { b.logger = l }
}

// Supported reports whether this platform has osascript
func Supported() bool {
	return runtime.GOOS == "darwin"
}

// New creates a bridge around runner. A disabled bridge never runs scripts.
func New(runner Runner, enabled bool, opts ...Option) *Bridge {
	b := &Bridge{
		runner:  runner,
		enabled: enabled && runner != nil,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}

	b.breakers = resilience.NewSet("applescript", resilience.AppleScriptPolicy(
		func(name string, from, to resilience.State) {
			b.logger.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	))
	return b
}

// NewDefault creates an osascript-backed bridge, enabled only on macOS
func NewDefault(enabled bool, runner OSARunner, opts ...Option) *Bridge {
	return New(runner, enabled && Supported(), opts...)
}

// Enabled reports whether calls will reach osascript
func (b *Bridge) Enabled() bool {
	return b.enabled
}

// IsRunning reports whether app has a live process. Errors count as false.
func (b *Bridge) IsRunning(ctx context.Context, app string) bool {
	out, err := b.run(ctx, app, "is_running", isRunningScript(app))
	if err != nil {
		if !errors.Is(err, ErrUnavailable) {
			b.logger.Warn("Could not check application status", zap.String("app", app), zap.Error(err))
		}
		return false
	}
	return strings.EqualFold(out, "true")
}

// Launch activates app, starting it if needed
func (b *Bridge) Launch(ctx context.Context, app string) error {
	_, err := b.run(ctx, app, "launch", activateScript(app))
	return err
}

// OpenFile launches app and opens path in it
func (b *Bridge) OpenFile(ctx context.Context, app, path string) error {
	if err := b.Launch(ctx, app); err != nil {
		return err
	}
	if _, err := b.run(ctx, app, "open_file", openFileScript(app, path)); err != nil {
		return err
	}
	b.logger.Info("Opened file in Office", zap.String("app", app), zap.String("path", path))
	return nil
}

// Export opens source in app and saves it as dest in format
func (b *Bridge) Export(ctx context.Context, app, source, dest, format string) error {
	script, err := exportScript(app, source, dest, format)
	if err != nil {
		return err
	}
	if _, err := b.run(ctx, app, "export", script); err != nil {
		return err
	}
	b.logger.Info("Exported through Office",
		zap.String("app", app),
		zap.String("format", format),
		zap.String("path", dest))
	return nil
}

// Version returns the app's version string
func (b *Bridge) Version(ctx context.Context, app string) (string, error) {
	return b.run(ctx, app, "version", versionScript(app))
}

// Breakers reports the per-app circuit state
func (b *Bridge) Breakers() []resilience.Snapshot {
	return b.breakers.Snapshots()
}

func (b *Bridge) run(ctx context.Context, app, operation, script string) (string, error) {
	if !b.enabled {
		return "", ErrUnavailable
	}

	out, err := resilience.Do(ctx, b.breakers.Get(app), func(ctx context.Context) (string, error) {
		return b.runner.Run(ctx, script)
	})

	status := "success"
	if err != nil {
		status = "error"
		b.logger.Debug("AppleScript error", zap.String("app", app), zap.String("operation", operation), zap.Error(err))
	}
	if b.recorder != nil {
		b.recorder.RecordAppleScriptCall(operation, status)
	}
	return out, err
}
