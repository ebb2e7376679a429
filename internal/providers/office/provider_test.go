package office

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/office-mcp/internal/integration/applescript"
	"github.com/GriffinCanCode/office-mcp/internal/shared/types"
	"github.com/GriffinCanCode/office-mcp/tests/helpers/testutil"
)

type fakeLister struct {
	items []map[string]interface{}
}

func (f *fakeLister) Active() []map[string]interface{} { return f.items }
func (f *fakeLister) Count() int                       { return len(f.items) }

func testStores() Stores {
	return Stores{
		Presentations: &fakeLister{items: []map[string]interface{}{{"title": "Deck"}}},
		Documents:     &fakeLister{},
		Workbooks:     &fakeLister{items: []map[string]interface{}{{"title": "A"}, {"title": "B"}}},
	}
}

func execute(t *testing.T, p *Provider, ctx context.Context, tool string) *types.Result {
	t.Helper()
	res, err := p.Execute(ctx, "office."+tool, nil, &types.Context{})
	require.NoError(t, err)
	require.NotNil(t, res)
	require.True(t, res.Success, "unexpected failure: %s", res.ErrorMessage())
	return res
}

func TestDefinition(t *testing.T) {
	p := NewProvider(testStores(), nil, "", nil)
	def := p.Definition()
	assert.Equal(t, "office", def.ID)
	assert.Len(t, def.Tools, 5)
}

func TestListings(t *testing.T) {
	p := NewProvider(testStores(), nil, "", nil)
	ctx := context.Background()

	pres := execute(t, p, ctx, "list_active_presentations").Data
	assert.Equal(t, 1, pres["count"])

	docs := execute(t, p, ctx, "list_active_documents").Data
	assert.Equal(t, 0, docs["count"])
	assert.NotNil(t, docs["documents"])

	books := execute(t, p, ctx, "list_active_workbooks").Data
	assert.Equal(t, 2, books["count"])

	empty := NewProvider(Stores{}, nil, "", nil)
	assert.Equal(t, 0, execute(t, empty, ctx, "list_active_workbooks").Data["count"])
}

func TestCheckOfficeStatus(t *testing.T) {
	bridge := testutil.NewMockBridge(true)
	bridge.On("IsRunning", applescript.AppPowerPoint).Return(true)
	bridge.On("IsRunning", applescript.AppWord).Return(false)
	bridge.On("IsRunning", applescript.AppExcel).Return(true)

	p := NewProvider(testStores(), bridge, "", nil)
	data := execute(t, p, context.Background(), "check_office_status").Data

	assert.Equal(t, true, data["powerpoint_available"])
	assert.Equal(t, false, data["word_available"])
	assert.Equal(t, true, data["excel_available"])
	assert.Equal(t, "running", data["server_status"])
	bridge.AssertExpectations(t)
}

func TestCheckOfficeStatusWithoutBridge(t *testing.T) {
	p := NewProvider(testStores(), nil, "", nil)
	data := execute(t, p, context.Background(), "check_office_status").Data
	assert.Equal(t, false, data["powerpoint_available"])
	assert.Equal(t, "running", data["server_status"])
}

func TestCheckOfficeStatusCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewProvider(testStores(), nil, "", nil)
	data := execute(t, p, ctx, "check_office_status").Data
	assert.Equal(t, "error", data["server_status"])
	assert.Equal(t, context.Canceled.Error(), data["error"])
}

func TestGetOfficeVersion(t *testing.T) {
	bridge := testutil.NewMockBridge(true)
	bridge.On("Version", applescript.AppPowerPoint).Return("16.89", nil)
	bridge.On("Version", applescript.AppWord).Return("", errors.New("not installed"))
	bridge.On("Version", applescript.AppExcel).Return("16.89", nil)

	p := NewProvider(testStores(), bridge, "", nil)
	data := execute(t, p, context.Background(), "get_office_version").Data

	assert.Equal(t, "16.89", data["powerpoint_version"])
	assert.Equal(t, "unknown", data["word_version"])
	assert.Equal(t, true, data["applescript_available"])

	disabled := testutil.NewMockBridge(false)
	data = execute(t, NewProvider(testStores(), disabled, "", nil), context.Background(), "get_office_version").Data
	assert.Equal(t, "unknown", data["powerpoint_version"])
	assert.Equal(t, false, data["applescript_available"])
	disabled.AssertNotCalled(t, "Version", mock.Anything)
}

func TestTemplatesResource(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"pitch.potx", "letters/memo.dotx", "budget.xlsx", "notes.txt"} {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}

	p := NewProvider(testStores(), nil, dir, nil)
	templates, err := p.Templates()
	require.NoError(t, err)
	require.Len(t, templates, 3)

	byName := map[string]Template{}
	for _, tpl := range templates {
		byName[tpl.Name] = tpl
	}
	assert.Equal(t, "powerpoint", byName["pitch"].Type)
	assert.Equal(t, "word", byName["memo"].Type)
	assert.Equal(t, filepath.Join(dir, "letters", "memo.dotx"), byName["memo"].Path)
	assert.Equal(t, "excel", byName["budget"].Type)

	body, err := p.ReadResource(context.Background(), TemplatesURI)
	require.NoError(t, err)
	var decoded []Template
	require.NoError(t, sonic.UnmarshalString(body, &decoded))
	assert.Equal(t, templates, decoded)
}

func TestTemplatesMissingDir(t *testing.T) {
	p := NewProvider(testStores(), nil, filepath.Join(t.TempDir(), "absent"), nil)
	templates, err := p.Templates()
	require.NoError(t, err)
	assert.Empty(t, templates)

	body, err := p.ReadResource(context.Background(), TemplatesURI)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, body)
}

func TestStatusResource(t *testing.T) {
	p := NewProvider(testStores(), nil, "", nil)

	body, err := p.ReadResource(context.Background(), StatusURI)
	require.NoError(t, err)

	var status map[string]interface{}
	require.NoError(t, sonic.UnmarshalString(body, &status))
	assert.EqualValues(t, 1, status["active_presentations"])
	assert.EqualValues(t, 0, status["active_documents"])
	assert.EqualValues(t, 2, status["active_workbooks"])
	assert.Equal(t, ServerVersion, status["server_version"])
	assert.Equal(t, runtime.GOOS, status["platform"])

	_, err = p.ReadResource(context.Background(), "office365://nope")
	assert.ErrorIs(t, err, ErrUnknownResource)
	assert.Len(t, p.Resources(), 2)
}
