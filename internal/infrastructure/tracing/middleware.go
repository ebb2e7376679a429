package tracing

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// HTTPMiddleware opens one span per request, continuing X-Trace-ID when the
// caller sends one
func HTTPMiddleware(tracer *Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := WithTrace(c.Request.Context(),
			TraceID(c.GetHeader(HeaderTraceID)),
			SpanID(c.GetHeader(HeaderSpanID)),
		)

		name := c.FullPath()
		if name == "" {
			name = "unmatched"
		}

		span, ctx := tracer.StartSpan(ctx, c.Request.Method+" "+name)
		span.Transport = "http"
		c.Request = c.Request.WithContext(ctx)

		c.Header(HeaderTraceID, string(span.TraceID))
		c.Header(HeaderSpanID, string(span.SpanID))

		c.Next()

		status := c.Writer.Status()
		span.SetTag("http.status", strconv.Itoa(status))
		switch {
		case len(c.Errors) > 0:
			span.SetError(c.Errors.Last())
		case status >= 500:
			span.SetError(fmt.Errorf("status %d", status))
		case status >= 400:
			span.Status = StatusFailure
		}

		span.Finish()
		tracer.Submit(span)
	}
}

// failureReporter is implemented by tool results that can fail without a Go error
type failureReporter interface {
	ErrorMessage() string
}

// TraceTool wraps a single tool execution in a span. A result whose
// ErrorMessage is non-empty marks the span as a failure.
func TraceTool[T any](ctx context.Context, tracer *Tracer, toolID, transport string, fn func(ctx context.Context) (T, error)) (T, error) {
	span, ctx := tracer.StartSpan(ctx, "tool."+toolID)
	span.Transport = transport
	span.SetTag("tool.id", toolID)

	result, err := fn(ctx)
	if err != nil {
		span.SetError(err)
	} else if r, ok := any(result).(failureReporter); ok {
		if msg := r.ErrorMessage(); msg != "" {
			span.Status = StatusFailure
			span.SetTag("tool.failure", msg)
		}
	}

	span.Finish()
	tracer.Submit(span)
	return result, err
}
