package applescript

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/office-mcp/internal/infrastructure/resilience"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context, script string) (string, error) {
	args := m.Called(script)
	return args.String(0), args.Error(1)
}

type callRecorder struct {
	calls []string
}

func (r *callRecorder) RecordAppleScriptCall(operation, status string) {
	r.calls = append(r.calls, operation+":"+status)
}

func TestDisabledBridge(t *testing.T) {
	runner := &mockRunner{}
	b := New(runner, false)

	assert.False(t, b.Enabled())
	assert.False(t, b.IsRunning(context.Background(), AppPowerPoint))
	assert.ErrorIs(t, b.Launch(context.Background(), AppWord), ErrUnavailable)
	_, err := b.Version(context.Background(), AppWord)
	assert.ErrorIs(t, err, ErrUnavailable)
	runner.AssertNotCalled(t, "Run", mock.Anything)

	assert.False(t, New(nil, true).Enabled())
}

func TestNewDefaultFollowsPlatform(t *testing.T) {
	b := NewDefault(true, OSARunner{})
	assert.Equal(t, runtime.GOOS == "darwin", b.Enabled())
	assert.False(t, NewDefault(false, OSARunner{}).Enabled())
}

func TestIsRunning(t *testing.T) {
	runner := &mockRunner{}
	runner.On("Run", isRunningScript(AppPowerPoint)).Return("true", nil).Once()
	runner.On("Run", isRunningScript(AppWord)).Return("false", nil).Once()
	runner.On("Run", isRunningScript(AppExcel)).Return("", errors.New("System Events got an error")).Once()

	rec := &callRecorder{}
	b := New(runner, true, WithRecorder(rec))

	assert.True(t, b.IsRunning(context.Background(), AppPowerPoint))
	assert.False(t, b.IsRunning(context.Background(), AppWord))
	assert.False(t, b.IsRunning(context.Background(), AppExcel))
	assert.Equal(t, []string{"is_running:success", "is_running:success", "is_running:error"}, rec.calls)
	runner.AssertExpectations(t)
}

func TestOpenFileLaunchesFirst(t *testing.T) {
	runner := &mockRunner{}
	runner.On("Run", activateScript(AppWord)).Return("", nil).Once()
	runner.On("Run", openFileScript(AppWord, "/tmp/doc.docx")).Return("", nil).Once()

	b := New(runner, true)
	require.NoError(t, b.OpenFile(context.Background(), AppWord, "/tmp/doc.docx"))
	runner.AssertExpectations(t)
}

func TestOpenFileStopsOnLaunchFailure(t *testing.T) {
	runner := &mockRunner{}
	runner.On("Run", activateScript(AppPowerPoint)).Return("", errors.New("AppleScript execution failed: not installed")).Once()

	b := New(runner, true)
	err := b.OpenFile(context.Background(), AppPowerPoint, "/tmp/deck.pptx")
	assert.EqualError(t, err, "AppleScript execution failed: not installed")
	runner.AssertNumberOfCalls(t, "Run", 1)
}

func TestExport(t *testing.T) {
	runner := &mockRunner{}
	runner.On("Run", `tell application "Microsoft PowerPoint"
	open POSIX file "/tmp/work.pptx"
	tell active presentation
		save as PDF in POSIX file "/tmp/out.pdf"
	end tell
end tell`).Return("", nil).Once()

	b := New(runner, true)
	require.NoError(t, b.Export(context.Background(), AppPowerPoint, "/tmp/work.pptx", "/tmp/out.pdf", "PDF"))
	runner.AssertExpectations(t)

	err := b.Export(context.Background(), AppPowerPoint, "/tmp/work.pptx", "/tmp/out.key", "key")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestVersion(t *testing.T) {
	runner := &mockRunner{}
	runner.On("Run", versionScript(AppWord)).Return("16.89", nil)

	b := New(runner, true)
	v, err := b.Version(context.Background(), AppWord)
	require.NoError(t, err)
	assert.Equal(t, "16.89", v)
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	runner := &mockRunner{}
	runner.On("Run", mock.Anything).Return("", errors.New("AppleScript execution failed: timeout"))

	b := New(runner, true)
	for i := 0; i < 3; i++ {
		assert.Error(t, b.Launch(context.Background(), AppPowerPoint))
	}

	err := b.Launch(context.Background(), AppPowerPoint)
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Contains(t, err.Error(), "applescript/Microsoft PowerPoint: circuit open")
	runner.AssertNumberOfCalls(t, "Run", 3)

	// Word has its own breaker
	assert.Error(t, b.Launch(context.Background(), AppWord))
	runner.AssertNumberOfCalls(t, "Run", 4)

	snaps := b.Breakers()
	require.Len(t, snaps, 2)
	assert.Equal(t, "open", snaps[0].State)
	assert.Equal(t, "closed", snaps[1].State)
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"plain"`, quote("plain"))
	assert.Equal(t, `"say \"hi\""`, quote(`say "hi"`))
	assert.Equal(t, `"C:\\path"`, quote(`C:\path`))
}

func TestSupportsFormat(t *testing.T) {
	assert.True(t, SupportsFormat(AppPowerPoint, "ppt"))
	assert.True(t, SupportsFormat(AppWord, "RTF"))
	assert.False(t, SupportsFormat(AppWord, "ppt"))
	assert.False(t, SupportsFormat("Keynote", "pdf"))
}
