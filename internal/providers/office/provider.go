package office

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/office-mcp/internal/integration/applescript"
	"github.com/GriffinCanCode/office-mcp/internal/providers/common"
	param "github.com/GriffinCanCode/office-mcp/internal/shared/params"
	"github.com/GriffinCanCode/office-mcp/internal/shared/types"
)

// ServerVersion is reported by get_office_version and the status resource
const ServerVersion = "1.0.0"

const unknownVersion = "unknown"

// Lister is an object store of one of the document providers
type Lister interface {
	Active() []map[string]interface{}
	Count() int
}

// Stores groups the three document providers
type Stores struct {
	Presentations Lister
	Documents     Lister
	Workbooks     Lister
}

// Provider implements cross-application utilities: active object listings,
// Office availability and the read-only resources
type Provider struct {
	stores       Stores
	bridge       common.Bridge
	templatesDir string
	startTime    time.Time
	logger       *zap.Logger
}

// NewProvider creates the office utility provider. bridge may be nil.
func NewProvider(stores Stores, bridge common.Bridge, templatesDir string, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		stores:       stores,
		bridge:       bridge,
		templatesDir: templatesDir,
		startTime:    time.Now(),
		logger:       logger,
	}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "office",
		Name:        "Office Service",
		Description: "Active object listings and Office application status",
		Category:    types.CategorySystem,
		Capabilities: []string{
			"listing",
			"status",
			"version",
		},
		Tools: tools(),
	}
}

// Execute routes to the tool implementation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "office.list_active_presentations":
		return listing("presentations", p.stores.Presentations)
	case "office.list_active_documents":
		return listing("documents", p.stores.Documents)
	case "office.list_active_workbooks":
		return listing("workbooks", p.stores.Workbooks)
	case "office.check_office_status":
		return param.Success(p.Status(ctx))
	case "office.get_office_version":
		return param.Success(p.Versions(ctx))
	default:
		return param.Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func listing(key string, l Lister) (*types.Result, error) {
	var active []map[string]interface{}
	if l != nil {
		active = l.Active()
	}
	if active == nil {
		active = []map[string]interface{}{}
	}
	return param.Success(map[string]interface{}{
		key:     active,
		"count": len(active),
	})
}

// Status probes which Office applications are running. A probe cut short by
// the caller's context reports server_status "error".
func (p *Provider) Status(ctx context.Context) map[string]interface{} {
	status := map[string]interface{}{
		"powerpoint_available": p.running(ctx, applescript.AppPowerPoint),
		"word_available":       p.running(ctx, applescript.AppWord),
		"excel_available":      p.running(ctx, applescript.AppExcel),
		"server_status":        "running",
	}
	if err := ctx.Err(); err != nil {
		p.logger.Error("Failed to check Office status", zap.Error(err))
		return map[string]interface{}{
			"powerpoint_available": false,
			"word_available":       false,
			"excel_available":      false,
			"server_status":        "error",
			"error":                err.Error(),
		}
	}
	return status
}

func (p *Provider) running(ctx context.Context, app string) bool {
	if p.bridge == nil || !p.bridge.Enabled() {
		return false
	}
	return p.bridge.IsRunning(ctx, app)
}

// Versions reports the installed Office versions, "unknown" when a lookup
// fails or scripting is off
func (p *Provider) Versions(ctx context.Context) map[string]interface{} {
	enabled := p.bridge != nil && p.bridge.Enabled()
	return map[string]interface{}{
		"powerpoint_version":    p.version(ctx, enabled, applescript.AppPowerPoint),
		"word_version":          p.version(ctx, enabled, applescript.AppWord),
		"excel_version":         p.version(ctx, enabled, applescript.AppExcel),
		"applescript_available": enabled,
		"server_version":        ServerVersion,
	}
}

func (p *Provider) version(ctx context.Context, enabled bool, app string) string {
	if !enabled {
		return unknownVersion
	}
	v, err := p.bridge.Version(ctx, app)
	if err != nil || v == "" {
		p.logger.Debug("Version lookup failed", zap.String("app", app), zap.Error(err))
		return unknownVersion
	}
	return v
}
