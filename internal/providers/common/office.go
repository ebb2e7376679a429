package common

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/office-mcp/internal/integration/applescript"
	"github.com/GriffinCanCode/office-mcp/internal/shared/paths"
	"github.com/GriffinCanCode/office-mcp/internal/workspace"
)

// ErrUnsupportedFormat is returned for save formats no path can produce
var ErrUnsupportedFormat = errors.New("unsupported format")

// Bridge is the part of the AppleScript bridge the Office providers use
type Bridge interface {
	Enabled() bool
	IsRunning(ctx context.Context, app string) bool
	OpenFile(ctx context.Context, app, path string) error
	Export(ctx context.Context, app, source, dest, format string) error
	Version(ctx context.Context, app string) (string, error)
}

// OfficeOps carries what every document provider shares: the working
// directory, the scripting bridge and a logger.
type OfficeOps struct {
	Workspace *workspace.Workspace
	Bridge    Bridge
	Gauge     workspace.Gauge
	Logger    *zap.Logger
	Now       func() time.Time
}

// Timestamp returns the current time in UTC
func (o *OfficeOps) Timestamp() time.Time {
	if o.Now != nil {
		return o.Now().UTC()
	}
	return time.Now().UTC()
}

// Log returns the configured logger or a no-op one
func (o *OfficeOps) Log() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// OpenInApp opens path in app when the bridge allows it. Failures are
// logged and reported as false; they never fail the calling tool.
func (o *OfficeOps) OpenInApp(ctx context.Context, app, path string) bool {
	if o.Bridge == nil || !o.Bridge.Enabled() {
		return false
	}
	if err := o.Bridge.OpenFile(ctx, app, path); err != nil {
		o.Log().Warn("Could not open in Office app",
			zap.String("app", app),
			zap.String("path", path),
			zap.Error(err))
		return false
	}
	return true
}

// SaveRequest describes one save_* call
type SaveRequest struct {
	App    string
	Native string // library format, e.g. "pptx"
	Format string // requested format
	Target string // user supplied destination
	Source string // current working file, used as export input
	Write  func(path string) error
}

// SaveResult reports where the file ended up. Working is the native file the
// object keeps rendering into; an exported file is never written again.
type SaveResult struct {
	Path     string
	Working  string
	Format   string
	Exported bool
	Warning  string
}

// Save writes the object natively, or exports it through the Office app for
// formats the library cannot produce. When the export path is unavailable the
// native format is written next to the target instead.
func (o *OfficeOps) Save(ctx context.Context, req SaveRequest) (*SaveResult, error) {
	format := strings.ToLower(req.Format)
	if format == "" {
		format = req.Native
	}

	if format != req.Native && !applescript.SupportsFormat(req.App, format) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, req.Format)
	}

	target, err := paths.PrepareOutput(req.Target)
	if err != nil {
		return nil, err
	}

	if format == req.Native {
		if err := req.Write(target); err != nil {
			return nil, fmt.Errorf("write %s: %w", req.Native, err)
		}
		return &SaveResult{Path: target, Working: target, Format: format}, nil
	}

	if o.Bridge != nil && o.Bridge.Enabled() {
		err := o.Bridge.Export(ctx, req.App, req.Source, target, format)
		if err == nil {
			return &SaveResult{Path: target, Working: req.Source, Format: format, Exported: true}, nil
		}
		o.Log().Warn("Export through Office failed",
			zap.String("app", req.App),
			zap.String("format", format),
			zap.Error(err))
	}

	fallback := paths.WithExt(target, "."+req.Native)
	if err := req.Write(fallback); err != nil {
		return nil, fmt.Errorf("write %s: %w", req.Native, err)
	}
	warning := fmt.Sprintf("%s export not available, saved as %s: %s",
		strings.ToUpper(format), strings.ToUpper(req.Native), fallback)
	o.Log().Warn(warning)

	return &SaveResult{Path: fallback, Working: fallback, Format: req.Native, Warning: warning}, nil
}
