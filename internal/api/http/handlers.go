// Package http exposes the tool registry and office resources over REST.
package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/office-mcp/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/office-mcp/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/office-mcp/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/office-mcp/internal/providers/office"
	"github.com/GriffinCanCode/office-mcp/internal/service"
	"github.com/GriffinCanCode/office-mcp/internal/shared/id"
	"github.com/GriffinCanCode/office-mcp/internal/shared/types"
	"github.com/GriffinCanCode/office-mcp/internal/shared/validation"
)

const defaultDiscoverLimit = 5

// ResourceSource serves the read-only office resources
type ResourceSource interface {
	Resources() []office.Resource
	ReadResource(ctx context.Context, uri string) (string, error)
	ServerStatus() map[string]interface{}
}

// BreakerSource reports circuit breaker state for /health
type BreakerSource interface {
	Breakers() []resilience.Snapshot
}

// Handlers contains all HTTP handlers
type Handlers struct {
	registry  *service.Registry
	resources ResourceSource
	metrics   *monitoring.Metrics
	tracer    *tracing.Tracer
	breakers  BreakerSource
	logger    *zap.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(registry *service.Registry, resources ResourceSource, metrics *monitoring.Metrics, tracer *tracing.Tracer, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		registry:  registry,
		resources: resources,
		metrics:   metrics,
		tracer:    tracer,
		logger:    logger,
	}
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Office 365 MCP Server",
		"version": office.ServerVersion,
	})
}

// SetBreakers adds circuit state to /health
func (h *Handlers) SetBreakers(src BreakerSource) {
	h.breakers = src
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status":           "healthy",
		"service_registry": h.registry.Stats(),
		"office":           h.resources.ServerStatus(),
	}
	if h.metrics != nil {
		body["metrics"] = h.metrics.Snapshot()
	}
	if h.tracer != nil {
		body["tracing"] = h.tracer.Stats()
	}
	if h.breakers != nil {
		body["breakers"] = h.breakers.Breakers()
	}
	c.JSON(http.StatusOK, body)
}

// ListServices lists all available services
func (h *Handlers) ListServices(c *gin.Context) {
	var category *types.Category
	if raw := c.Query("category"); raw != "" {
		cat := types.Category(strings.ToLower(raw))
		if !validCategory(cat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category: " + raw})
			return
		}
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(category),
		"stats":    h.registry.Stats(),
	})
}

func validCategory(cat types.Category) bool {
	switch cat {
	case types.CategoryPresentation, types.CategoryDocument, types.CategorySpreadsheet, types.CategorySystem:
		return true
	}
	return false
}

// DiscoverServices ranks services against a free-text intent
func (h *Handlers) DiscoverServices(c *gin.Context) {
	var req types.DiscoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultDiscoverLimit
	}

	c.JSON(http.StatusOK, gin.H{
		"query":    req.Intent,
		"services": h.registry.Discover(req.Intent, limit),
	})
}

// ExecuteService executes a service tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, validation.MaxPayloadSize)

	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Params == nil {
		req.Params = map[string]interface{}{}
	}
	if err := validation.ValidateParamsDepth(req.Params, validation.MaxParamsDepth); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requestID := id.NewRequestID().String()
	appCtx := &types.Context{
		ClientID:  req.ClientID,
		RequestID: &requestID,
		Transport: "http",
	}

	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, appCtx)
	switch {
	case errors.Is(err, service.ErrServiceNotFound), errors.Is(err, service.ErrToolNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, service.ErrInvalidToolID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.logger.Error("tool execution failed", zap.String("tool_id", req.ToolID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("X-Request-ID", requestID)
	c.JSON(http.StatusOK, result)
}

// Resources lists resources, or reads one when ?uri= is set
func (h *Handlers) Resources(c *gin.Context) {
	uri := c.Query("uri")
	if uri == "" {
		c.JSON(http.StatusOK, gin.H{"resources": h.resources.Resources()})
		return
	}

	var meta *office.Resource
	for _, r := range h.resources.Resources() {
		if r.URI == uri {
			meta = &r
			break
		}
	}
	if meta == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": office.ErrUnknownResource.Error() + ": " + uri})
		return
	}

	content, err := h.read(c.Request.Context(), *meta)
	monitoring.ObserveResourceRead(h.metrics, uri, err)
	switch {
	case errors.Is(err, office.ErrUnknownResource):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, content)
	}
}

func (h *Handlers) read(ctx context.Context, meta office.Resource) (*types.ResourceContent, error) {
	body, err := h.resources.ReadResource(ctx, meta.URI)
	if err != nil {
		return nil, err
	}
	var data interface{}
	if err := sonic.UnmarshalString(body, &data); err != nil {
		return nil, err
	}
	return &types.ResourceContent{URI: meta.URI, Name: meta.Name, MIMEType: meta.MIMEType, Data: data}, nil
}
