package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/office-mcp/internal/shared/types"
)

type stubProvider struct {
	def  types.Service
	fail bool
}

func (s *stubProvider) Definition() types.Service { return s.def }

func (s *stubProvider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	if s.fail {
		msg := "Workbook not found"
		return &types.Result{Success: false, Error: &msg}, nil
	}
	return &types.Result{
		Success: true,
		Data:    map[string]interface{}{"tool": toolID, "params": len(params)},
	}, nil
}

func officeService(id, name string, category types.Category, tools ...string) *stubProvider {
	def := types.Service{
		ID:           id,
		Name:         name,
		Description:  name + " automation",
		Category:     category,
		Capabilities: []string{"create", "save"},
	}
	for _, tool := range tools {
		def.Tools = append(def.Tools, types.Tool{ID: id + "." + tool, Name: tool})
	}
	return &stubProvider{def: def}
}

type recordingObserver struct {
	calls []string
}

func (o *recordingObserver) RecordToolExecution(service, tool, status string, _ time.Duration) {
	o.calls = append(o.calls, service+"."+tool+":"+status)
}

func newOfficeRegistry(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	r := NewRegistry(opts...)
	require.NoError(t, r.Register(officeService("powerpoint", "PowerPoint", types.CategoryPresentation,
		"create_presentation", "add_slide", "add_image")))
	require.NoError(t, r.Register(officeService("word", "Word", types.CategoryDocument,
		"create_document", "add_heading", "add_table")))
	require.NoError(t, r.Register(officeService("excel", "Excel", types.CategorySpreadsheet,
		"create_workbook", "write_range", "create_chart")))
	return r
}

func TestRegister(t *testing.T) {
	r := newOfficeRegistry(t)

	_, ok := r.Get("word")
	assert.True(t, ok)
	_, ok = r.Get("visio")
	assert.False(t, ok)

	tool, ok := r.Tool("excel.create_chart")
	require.True(t, ok)
	assert.Equal(t, "create_chart", tool.Name)

	err := r.Register(officeService("word", "Word again", types.CategoryDocument))
	assert.ErrorIs(t, err, ErrDuplicateService)

	assert.Error(t, r.Register(officeService("", "Nameless", types.CategorySystem)))

	stray := officeService("office", "Office", types.CategorySystem)
	stray.def.Tools = []types.Tool{{ID: "word.sneaky"}}
	assert.ErrorContains(t, r.Register(stray), `does not belong to service "office"`)
	_, ok = r.Get("office")
	assert.False(t, ok)
}

func TestListAndTools(t *testing.T) {
	r := newOfficeRegistry(t)

	services := r.List(nil)
	require.Len(t, services, 3)
	assert.Equal(t, []string{"excel", "powerpoint", "word"},
		[]string{services[0].ID, services[1].ID, services[2].ID})

	cat := types.CategoryDocument
	filtered := r.List(&cat)
	require.Len(t, filtered, 1)
	assert.Equal(t, "word", filtered[0].ID)

	tools := r.Tools()
	require.Len(t, tools, 9)
	assert.Equal(t, "excel.create_chart", tools[0].ID)
	assert.Equal(t, "word.create_document", tools[8].ID)
}

func TestDiscover(t *testing.T) {
	r := newOfficeRegistry(t)

	tests := []struct {
		intent string
		first  string
	}{
		{"add a slide with an image", "powerpoint"},
		{"create a chart in my spreadsheet", "excel"},
		{"Add headings and tables to a Word document", "word"},
	}
	for _, tt := range tests {
		t.Run(tt.intent, func(t *testing.T) {
			results := r.Discover(tt.intent, 5)
			require.NotEmpty(t, results)
			assert.Equal(t, tt.first, results[0].ID)
		})
	}

	assert.Len(t, r.Discover("create save", 1), 1)
	assert.Empty(t, r.Discover("zzz", 5))
	assert.Empty(t, r.Discover("the a of", 5))
}

func TestExecute(t *testing.T) {
	obs := &recordingObserver{}
	r := newOfficeRegistry(t, WithObserver(obs))
	failing := officeService("broken", "Broken", types.CategorySystem, "run")
	failing.fail = true
	require.NoError(t, r.Register(failing))

	ctx := context.Background()
	result, err := r.Execute(ctx, "word.add_heading", nil, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "word.add_heading", result.Data["tool"])
	assert.Equal(t, 0, result.Data["params"])

	result, err = r.Execute(ctx, "broken.run", map[string]interface{}{}, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Workbook not found", result.ErrorMessage())

	assert.Equal(t, []string{"word.add_heading:success", "broken.run:failure"}, obs.calls)
}

func TestExecuteErrors(t *testing.T) {
	obs := &recordingObserver{}
	r := newOfficeRegistry(t, WithObserver(obs))
	ctx := context.Background()

	tests := []struct {
		toolID string
		want   error
	}{
		{"add_slide", ErrInvalidToolID},
		{"powerpoint.", ErrInvalidToolID},
		{"bad id.x", ErrInvalidToolID},
		{"visio.draw", ErrServiceNotFound},
		{"excel.pivot", ErrToolNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.toolID, func(t *testing.T) {
			_, err := r.Execute(ctx, tt.toolID, nil, nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, obs.calls)
}

func TestStats(t *testing.T) {
	r := newOfficeRegistry(t)

	stats := r.Stats()
	assert.Equal(t, 3, stats["total_services"])
	assert.Equal(t, 9, stats["total_tools"])
	assert.Equal(t, map[string]int{"presentation": 1, "document": 1, "spreadsheet": 1}, stats["categories"])
}
