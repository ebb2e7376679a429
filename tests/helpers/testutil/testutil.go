// Package testutil holds fakes and assertions shared by provider and
// transport tests.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/office-mcp/internal/shared/types"
)

// Executor runs tools. Providers and the registry both satisfy it.
type Executor interface {
	Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error)
}

// Execute runs toolID with an empty context and requires a non-nil result
func Execute(t *testing.T, e Executor, toolID string, params map[string]interface{}) *types.Result {
	t.Helper()
	res, err := e.Execute(context.Background(), toolID, params, &types.Context{})
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

// RequireSuccess fails the test unless res succeeded and returns its data
func RequireSuccess(t *testing.T, res *types.Result) map[string]interface{} {
	t.Helper()
	require.NotNil(t, res)
	require.True(t, res.Success, "unexpected failure: %s", res.ErrorMessage())
	return res.Data
}

// RequireFailure fails the test unless res failed with a message and returns it
func RequireFailure(t *testing.T, res *types.Result) string {
	t.Helper()
	require.NotNil(t, res)
	require.False(t, res.Success, "expected failure, got %v", res.Data)
	require.NotEmpty(t, res.ErrorMessage())
	return res.ErrorMessage()
}

// MockServiceProvider is a testify mock of service.Provider
type MockServiceProvider struct {
	mock.Mock
}

func (m *MockServiceProvider) Definition() types.Service {
	return m.Called().Get(0).(types.Service)
}

func (m *MockServiceProvider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	args := m.Called(ctx, toolID, params, appCtx)
	res, _ := args.Get(0).(*types.Result)
	return res, args.Error(1)
}

// NewMockServiceProvider returns a provider mock that describes itself as svc
func NewMockServiceProvider(t *testing.T, svc types.Service) *MockServiceProvider {
	t.Helper()
	m := new(MockServiceProvider)
	m.On("Definition").Return(svc).Maybe()
	return m
}

// CreateTestService describes a service with one "<id>.ping" tool taking a
// required message and an optional count
func CreateTestService(t *testing.T, id string, category types.Category) types.Service {
	t.Helper()
	return types.Service{
		ID:           id,
		Name:         "Test Service",
		Description:  "A test service for unit testing",
		Category:     category,
		Capabilities: []string{"test"},
		Tools: []types.Tool{{
			ID:          id + ".ping",
			Name:        "ping",
			Description: "Test tool",
			Parameters: []types.Parameter{
				{Name: "message", Type: "string", Description: "Echoed back", Required: true},
				{Name: "count", Type: "number", Description: "Repeat count", Default: 1},
			},
			Returns: "object",
		}},
	}
}

// MockBridge is a testify mock of the AppleScript bridge used by providers
type MockBridge struct {
	mock.Mock
}

// NewMockBridge returns a bridge mock whose Enabled reports enabled
func NewMockBridge(enabled bool) *MockBridge {
	m := new(MockBridge)
	m.On("Enabled").Return(enabled).Maybe()
	return m
}

func (m *MockBridge) Enabled() bool {
	return m.Called().Bool(0)
}

func (m *MockBridge) IsRunning(ctx context.Context, app string) bool {
	return m.Called(app).Bool(0)
}

func (m *MockBridge) OpenFile(ctx context.Context, app, path string) error {
	return m.Called(app, path).Error(0)
}

func (m *MockBridge) Export(ctx context.Context, app, source, dest, format string) error {
	return m.Called(app, source, dest, format).Error(0)
}

func (m *MockBridge) Version(ctx context.Context, app string) (string, error) {
	args := m.Called(app)
	return args.String(0), args.Error(1)
}
