// Package mcp exposes the service registry and office resources as a
// Model Context Protocol server.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/office-mcp/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/office-mcp/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/office-mcp/internal/providers/office"
	"github.com/GriffinCanCode/office-mcp/internal/service"
	"github.com/GriffinCanCode/office-mcp/internal/shared/id"
	"github.com/GriffinCanCode/office-mcp/internal/shared/types"
	"github.com/GriffinCanCode/office-mcp/internal/shared/validation"
)

// ServerName is announced to clients during initialization
const ServerName = "office365-mcp"

const transport = "mcp"

// ErrDuplicateTool is returned when two services expose the same bare tool name
var ErrDuplicateTool = errors.New("duplicate tool name")

// ResourceSource serves the read-only office resources
type ResourceSource interface {
	Resources() []office.Resource
	ReadResource(ctx context.Context, uri string) (string, error)
}

// Server adapts the registry to MCP tool calls
type Server struct {
	mcp       *server.MCPServer
	registry  *service.Registry
	resources ResourceSource
	tracer    *tracing.Tracer
	metrics   *monitoring.Metrics
	logger    *zap.Logger
	routes    map[string]string // bare name -> registry tool ID
}

// Option configures a Server
type Option func(*Server)

// WithTracer wraps every tool call in a span
func WithTracer(t *tracing.Tracer) Option {
	return func(s *Server) { s.tracer = t }
}

// WithMetrics records resource reads
func WithMetrics(m *monitoring.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithLogger sets the adapter logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New registers every tool of every service in registry, plus the
// resources of src, on a fresh MCP server.
func New(registry *service.Registry, src ResourceSource, opts ...Option) (*Server, error) {
	s := &Server{
		registry:  registry,
		resources: src,
		logger:    zap.NewNop(),
		routes:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcp = server.NewMCPServer(ServerName, office.ServerVersion,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
		server.WithInstructions("Create and edit PowerPoint presentations, Word documents and Excel workbooks."),
	)

	for _, tool := range registry.Tools() {
		if err := s.addTool(tool); err != nil {
			return nil, err
		}
	}
	if src != nil {
		for _, r := range src.Resources() {
			s.addResource(r)
		}
	}

	s.logger.Info("MCP server ready", zap.Int("tools", len(s.routes)))
	return s, nil
}

// MCPServer returns the underlying protocol server
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ServeStdio speaks JSON-RPC over in/out until ctx is cancelled or in closes
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(zap.NewStdLog(s.logger.Named("stdio")))

	err := stdio.Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// BareName strips the service prefix from a registry tool ID
func BareName(toolID string) string {
	if i := strings.IndexByte(toolID, '.'); i >= 0 {
		return toolID[i+1:]
	}
	return toolID
}

func (s *Server) addTool(tool types.Tool) error {
	name := BareName(tool.ID)
	if prev, ok := s.routes[name]; ok {
		return fmt.Errorf("%w: %s (%s and %s)", ErrDuplicateTool, name, prev, tool.ID)
	}
	schema, err := InputSchema(tool.Parameters)
	if err != nil {
		return fmt.Errorf("schema for %s: %w", tool.ID, err)
	}

	s.routes[name] = tool.ID
	s.mcp.AddTool(mcpgo.NewToolWithRawSchema(name, tool.Description, schema), s.handler(tool.ID))
	return nil
}

func (s *Server) handler(toolID string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		args := req.GetArguments()
		if err := validation.ValidateParamsDepth(args, validation.MaxParamsDepth); err != nil {
			return mcpgo.NewToolResultError(err.Error()), nil
		}

		requestID := id.NewRequestID().String()
		appCtx := &types.Context{RequestID: &requestID, Transport: transport}

		call := func(ctx context.Context) (*types.Result, error) {
			return s.registry.Execute(ctx, toolID, args, appCtx)
		}

		var (
			result *types.Result
			err    error
		)
		if s.tracer != nil {
			result, err = tracing.TraceTool(ctx, s.tracer, toolID, transport, call)
		} else {
			result, err = call(ctx)
		}
		if err != nil {
			s.logger.Error("tool call failed", zap.String("tool_id", toolID), zap.Error(err))
			return mcpgo.NewToolResultErrorFromErr("tool call failed", err), nil
		}
		return toolResult(result)
	}
}

func toolResult(result *types.Result) (*mcpgo.CallToolResult, error) {
	if result == nil {
		return mcpgo.NewToolResultError("tool returned no result"), nil
	}
	if !result.Success {
		return mcpgo.NewToolResultError(result.ErrorMessage()), nil
	}

	data := result.Data
	if data == nil {
		data = map[string]interface{}{}
	}
	text, err := encodeText(data)
	if err != nil {
		return nil, err
	}
	return mcpgo.NewToolResultStructured(data, text), nil
}

func (s *Server) addResource(r office.Resource) {
	resource := mcpgo.NewResource(r.URI, r.Name,
		mcpgo.WithResourceDescription(r.Description),
		mcpgo.WithMIMEType(r.MIMEType),
	)
	s.mcp.AddResource(resource, func(ctx context.Context, req mcpgo.ReadResourceRequest) ([]mcpgo.ResourceContents, error) {
		text, err := s.resources.ReadResource(ctx, req.Params.URI)
		monitoring.ObserveResourceRead(s.metrics, r.URI, err)
		if err != nil {
			return nil, err
		}
		return []mcpgo.ResourceContents{
			mcpgo.TextResourceContents{URI: req.Params.URI, MIMEType: r.MIMEType, Text: text},
		}, nil
	})
}
