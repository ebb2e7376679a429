package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GriffinCanCode/office-mcp/internal/shared/types"
)

func newObserved(opts ...Option) (*Tracer, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return New("office-mcp", zap.New(core), opts...), logs
}

func TestStartSpanPropagatesTrace(t *testing.T) {
	tracer, _ := newObserved()
	defer tracer.Close()

	parent, ctx := tracer.StartSpan(context.Background(), "parent")
	child, childCtx := tracer.StartSpan(ctx, "child")

	assert.Equal(t, parent.TraceID, child.TraceID)
	assert.Equal(t, parent.SpanID, child.ParentID)
	assert.Equal(t, child.SpanID, GetSpanID(childCtx))
	assert.Equal(t, parent.TraceID, GetTraceID(childCtx))
	assert.Equal(t, StatusOK, child.Status)
}

func TestWithTrace(t *testing.T) {
	ctx := WithTrace(context.Background(), "trace-1", "span-1")
	assert.Equal(t, TraceID("trace-1"), GetTraceID(ctx))
	assert.Equal(t, SpanID("span-1"), GetSpanID(ctx))

	empty := WithTrace(context.Background(), "", "")
	assert.Empty(t, GetTraceID(empty))
	assert.Empty(t, GetSpanID(empty))
}

func TestNilLogger(t *testing.T) {
	tracer := New("office-mcp", nil)
	span, _ := tracer.StartSpan(context.Background(), "op")
	span.Finish()
	tracer.Submit(span)
	tracer.Close()
	assert.Equal(t, uint64(1), tracer.Stats().Submitted)
}

func TestTraceToolStatuses(t *testing.T) {
	tracer, logs := newObserved()

	out, err := TraceTool(context.Background(), tracer, "word.add_heading", "mcp",
		func(ctx context.Context) (string, error) {
			assert.NotEmpty(t, GetTraceID(ctx))
			return "ok", nil
		})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)

	_, err = TraceTool(context.Background(), tracer, "excel.create_chart", "http",
		func(ctx context.Context) (int, error) { return 0, errors.New("bad range") })
	assert.EqualError(t, err, "bad range")

	msg := "Workbook abc not found"
	_, err = TraceTool(context.Background(), tracer, "excel.write_cell", "mcp",
		func(ctx context.Context) (*types.Result, error) {
			return &types.Result{Success: false, Error: &msg}, nil
		})
	require.NoError(t, err)

	tracer.Close()

	require.Equal(t, 3, logs.Len())
	entries := logs.All()

	assert.Equal(t, "span completed", entries[0].Message)
	assert.Equal(t, "tool.word.add_heading", entries[0].ContextMap()["operation"])
	assert.Equal(t, "mcp", entries[0].ContextMap()["transport"])

	assert.Equal(t, "span completed with error", entries[1].Message)
	assert.Equal(t, StatusError, entries[1].ContextMap()["status"])

	assert.Equal(t, StatusFailure, entries[2].ContextMap()["status"])
	assert.Equal(t, msg, entries[2].ContextMap()["tool.failure"])

	assert.Equal(t, uint64(3), tracer.Stats().Submitted)
}

func TestSubmitAfterClose(t *testing.T) {
	tracer, _ := newObserved()
	tracer.Close()

	span, _ := tracer.StartSpan(context.Background(), "late")
	tracer.Submit(span)
	assert.Equal(t, uint64(1), tracer.Stats().Dropped)
}

func TestSlowSpans(t *testing.T) {
	tracer, logs := newObserved(WithSlowThreshold(time.Nanosecond))

	span, _ := tracer.StartSpan(context.Background(), "applescript.export")
	time.Sleep(time.Millisecond)
	span.Finish()
	tracer.Submit(span)
	tracer.Close()

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "slow span", logs.All()[0].Message)
	assert.Equal(t, uint64(1), tracer.Stats().Slow)
}

func TestHTTPMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tracer, logs := newObserved()

	router := gin.New()
	router.Use(HTTPMiddleware(tracer))
	router.GET("/health", func(c *gin.Context) {
		assert.Equal(t, TraceID("incoming"), GetTraceID(c.Request.Context()))
		c.Status(http.StatusOK)
	})
	router.POST("/services/execute", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(HeaderTraceID, "incoming")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "incoming", w.Header().Get(HeaderTraceID))
	assert.NotEmpty(t, w.Header().Get(HeaderSpanID))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/services/execute", nil))

	tracer.Close()
	require.Equal(t, 2, logs.Len())
	first := logs.All()[0].ContextMap()
	assert.Equal(t, "200", first["http.status"])
	assert.Equal(t, "GET /health", first["operation"])
	assert.Equal(t, StatusFailure, logs.All()[1].ContextMap()["status"])
}
