package mcp

import (
	"context"
	"fmt"
	"testing"

	"github.com/bytedance/sonic"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/office-mcp/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/office-mcp/internal/providers/office"
	"github.com/GriffinCanCode/office-mcp/internal/service"
	"github.com/GriffinCanCode/office-mcp/internal/shared/types"
	"github.com/GriffinCanCode/office-mcp/tests/helpers/testutil"
)

type fakeResources struct{}

func (fakeResources) Resources() []office.Resource {
	return []office.Resource{{URI: office.StatusURI, Name: "Server status", MIMEType: "application/json"}}
}

func (fakeResources) ReadResource(ctx context.Context, uri string) (string, error) {
	if uri != office.StatusURI {
		return "", fmt.Errorf("%w: %s", office.ErrUnknownResource, uri)
	}
	return `{"server_version": "1.0.0"}`, nil
}

func newServer(t *testing.T) (*Server, *testutil.MockServiceProvider) {
	t.Helper()
	registry := service.NewRegistry()
	provider := testutil.NewMockServiceProvider(t, testutil.CreateTestService(t, "word", types.CategoryDocument))
	require.NoError(t, registry.Register(provider))

	tracer := tracing.New("test", zap.NewNop())
	t.Cleanup(tracer.Close)

	s, err := New(registry, fakeResources{}, WithTracer(tracer))
	require.NoError(t, err)
	return s, provider
}

func call(t *testing.T, s *Server, name string, args map[string]interface{}) *mcpgo.CallToolResult {
	t.Helper()
	tool := s.MCPServer().GetTool(name)
	require.NotNil(t, tool, "tool %s not registered", name)

	var req mcpgo.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	result, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	return result
}

func TestToolsUseBareNames(t *testing.T) {
	s, _ := newServer(t)

	tools := s.MCPServer().ListTools()
	require.Len(t, tools, 1)
	require.Contains(t, tools, "ping")

	var schema map[string]interface{}
	require.NoError(t, sonic.Unmarshal(tools["ping"].Tool.RawInputSchema, &schema))
	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []interface{}{"message"}, schema["required"])

	props := schema["properties"].(map[string]interface{})
	count := props["count"].(map[string]interface{})
	assert.Equal(t, "number", count["type"])
	assert.Equal(t, float64(1), count["default"])
}

func TestCallToolSuccess(t *testing.T) {
	s, provider := newServer(t)
	provider.On("Execute", mock.Anything, "word.ping", map[string]interface{}{"message": "hi"}, mock.MatchedBy(func(c *types.Context) bool {
		return c.Transport == "mcp" && c.RequestID != nil
	})).Return(&types.Result{Success: true, Data: map[string]interface{}{"echo": "hi"}}, nil).Once()

	result := call(t, s, "ping", map[string]interface{}{"message": "hi"})
	assert.False(t, result.IsError)
	assert.Equal(t, map[string]interface{}{"echo": "hi"}, result.StructuredContent)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcpgo.TextContent)
	require.True(t, ok)
	assert.JSONEq(t, `{"echo":"hi"}`, text.Text)
	provider.AssertExpectations(t)
}

func TestCallToolFailure(t *testing.T) {
	s, provider := newServer(t)
	msg := "Document abc not found"
	provider.On("Execute", mock.Anything, "word.ping", mock.Anything, mock.Anything).
		Return(&types.Result{Success: false, Error: &msg}, nil).Once()

	result := call(t, s, "ping", nil)
	assert.True(t, result.IsError)
	require.Len(t, result.Content, 1)
	assert.Equal(t, msg, result.Content[0].(mcpgo.TextContent).Text)
}

func TestCallToolProviderError(t *testing.T) {
	s, provider := newServer(t)
	provider.On("Execute", mock.Anything, "word.ping", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("boom")).Once()

	result := call(t, s, "ping", nil)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].(mcpgo.TextContent).Text, "boom")
}

func TestCallToolRejectsDeepParams(t *testing.T) {
	s, provider := newServer(t)

	args := map[string]interface{}{"leaf": true}
	for i := 0; i < 12; i++ {
		args = map[string]interface{}{"child": args}
	}
	result := call(t, s, "ping", args)
	assert.True(t, result.IsError)
	provider.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDuplicateToolNames(t *testing.T) {
	registry := service.NewRegistry()
	require.NoError(t, registry.Register(testutil.NewMockServiceProvider(t, testutil.CreateTestService(t, "word", types.CategoryDocument))))
	require.NoError(t, registry.Register(testutil.NewMockServiceProvider(t, testutil.CreateTestService(t, "excel", types.CategorySpreadsheet))))

	_, err := New(registry, nil)
	assert.ErrorIs(t, err, ErrDuplicateTool)
}

func TestReadResource(t *testing.T) {
	s, _ := newServer(t)

	msg := s.MCPServer().HandleMessage(context.Background(),
		[]byte(`{"jsonrpc":"2.0","id":1,"method":"resources/read","params":{"uri":"office365://status"}}`))
	resp, ok := msg.(mcpgo.JSONRPCResponse)
	require.True(t, ok, "unexpected response %T", msg)

	result, ok := resp.Result.(mcpgo.ReadResourceResult)
	require.True(t, ok)
	require.Len(t, result.Contents, 1)
	text := result.Contents[0].(mcpgo.TextResourceContents)
	assert.Equal(t, office.StatusURI, text.URI)
	assert.Equal(t, "application/json", text.MIMEType)
	assert.JSONEq(t, `{"server_version":"1.0.0"}`, text.Text)
}

func TestInputSchemaAnyType(t *testing.T) {
	raw, err := InputSchema([]types.Parameter{
		{Name: "value", Type: "any", Required: true},
		{Name: "format", Type: "string", Enum: []string{"xlsx", "pdf"}},
		{Name: "data", Type: "array"},
	})
	require.NoError(t, err)

	var schema map[string]interface{}
	require.NoError(t, sonic.Unmarshal(raw, &schema))
	props := schema["properties"].(map[string]interface{})
	assert.NotContains(t, props["value"], "type")
	assert.Equal(t, []interface{}{"xlsx", "pdf"}, props["format"].(map[string]interface{})["enum"])
	assert.Equal(t, map[string]interface{}{}, props["data"].(map[string]interface{})["items"])
}

func TestBareName(t *testing.T) {
	assert.Equal(t, "create_workbook", BareName("excel.create_workbook"))
	assert.Equal(t, "ping", BareName("ping"))
}
