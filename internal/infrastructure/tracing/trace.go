package tracing

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/office-mcp/internal/shared/id"
)

// Header names used for propagation
const (
	HeaderTraceID = "X-Trace-ID"
	HeaderSpanID  = "X-Span-ID"
)

// Span outcomes
const (
	StatusOK      = "ok"
	StatusFailure = "failure" // tool ran and reported Success=false
	StatusError   = "error"
)

const (
	defaultBuffer        = 1000
	defaultSlowThreshold = 5 * time.Second
)

// TraceID represents a unique trace identifier
type TraceID string

// SpanID represents a unique span identifier
type SpanID string

// Span is one tool call or HTTP request
type Span struct {
	TraceID   TraceID
	SpanID    SpanID
	ParentID  SpanID
	Name      string
	Service   string
	Transport string
	StartTime time.Time
	Duration  time.Duration
	Tags      map[string]string
	Status    string
	Error     error
}

// Stats counts spans seen by a tracer
type Stats struct {
	Submitted uint64 `json:"submitted"`
	Dropped   uint64 `json:"dropped"`
	Slow      uint64 `json:"slow"`
}

// Tracer records spans and logs them off the request path
type Tracer struct {
	service string
	logger  *zap.Logger
	slow    time.Duration
	spans   chan *Span
	done    chan struct{}
	once    sync.Once
	closed  atomic.Bool

	submitted atomic.Uint64
	dropped   atomic.Uint64
	slowCount atomic.Uint64
}

// Option configures a Tracer
type Option func(*Tracer)

// WithSlowThreshold logs spans at or above d at info level. AppleScript
// round trips are the usual offenders.
func WithSlowThreshold(d time.Duration) Option {
	return func(t *Tracer) { t.slow = d }
}

// WithBuffer sets how many finished spans may wait for the collector
func WithBuffer(n int) Option {
	return func(t *Tracer) {
		if n > 0 {
			t.spans = make(chan *Span, n)
		}
	}
}

// New creates a tracer whose collector runs until Close
func New(service string, logger *zap.Logger, opts ...Option) *Tracer {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tracer{
		service: service,
		logger:  logger,
		slow:    defaultSlowThreshold,
		spans:   make(chan *Span, defaultBuffer),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}

	go t.collect()
	return t
}

// Close drains buffered spans and stops the collector
func (t *Tracer) Close() {
	t.once.Do(func() {
		t.closed.Store(true)
		close(t.spans)
		<-t.done
	})
}

// Stats returns span counters
func (t *Tracer) Stats() Stats {
	return Stats{
		Submitted: t.submitted.Load(),
		Dropped:   t.dropped.Load(),
		Slow:      t.slowCount.Load(),
	}
}

// StartSpan opens a span under the trace carried by ctx, or a new trace
func (t *Tracer) StartSpan(ctx context.Context, name string) (*Span, context.Context) {
	traceID := GetTraceID(ctx)
	if traceID == "" {
		traceID = TraceID(id.NewRequestID())
	}

	span := &Span{
		TraceID:   traceID,
		SpanID:    SpanID(id.NewRequestID()),
		ParentID:  GetSpanID(ctx),
		Name:      name,
		Service:   t.service,
		StartTime: time.Now(),
		Tags:      make(map[string]string),
		Status:    StatusOK,
	}

	return span, WithTrace(ctx, traceID, span.SpanID)
}

// Finish fixes the span duration
func (s *Span) Finish() {
	s.Duration = time.Since(s.StartTime)
}

// SetTag adds a tag to the span
func (s *Span) SetTag(key, value string) {
	s.Tags[key] = value
}

// SetError marks the span failed with err
func (s *Span) SetError(err error) {
	s.Error = err
	s.Status = StatusError
}

// Submit hands a finished span to the collector. Spans submitted after
// Close or while the buffer is full are counted and dropped.
func (t *Tracer) Submit(span *Span) {
	if t.closed.Load() {
		t.dropped.Add(1)
		return
	}
	defer func() {
		// Close raced with the check above
		if recover() != nil {
			t.dropped.Add(1)
		}
	}()

	select {
	case t.spans <- span:
		t.submitted.Add(1)
	default:
		t.dropped.Add(1)
		t.logger.Warn("span buffer full, dropping span",
			zap.String("trace_id", string(span.TraceID)),
			zap.String("operation", span.Name),
		)
	}
}

func (t *Tracer) collect() {
	defer close(t.done)
	for span := range t.spans {
		t.log(span)
	}
}

func (t *Tracer) log(span *Span) {
	fields := []zap.Field{
		zap.String("trace_id", string(span.TraceID)),
		zap.String("span_id", string(span.SpanID)),
		zap.String("operation", span.Name),
		zap.Duration("duration", span.Duration),
		zap.String("status", span.Status),
	}
	if span.ParentID != "" {
		fields = append(fields, zap.String("parent_id", string(span.ParentID)))
	}
	if span.Transport != "" {
		fields = append(fields, zap.String("transport", span.Transport))
	}
	for k, v := range span.Tags {
		fields = append(fields, zap.String(k, v))
	}

	switch {
	case span.Error != nil:
		t.logger.Warn("span completed with error", append(fields, zap.Error(span.Error))...)
	case t.slow > 0 && span.Duration >= t.slow:
		t.slowCount.Add(1)
		t.logger.Info("slow span", fields...)
	default:
		t.logger.Debug("span completed", fields...)
	}
}

type contextKey string

const (
	traceIDKey contextKey = "trace_id"
	spanIDKey  contextKey = "span_id"
)

// WithTrace seeds ctx with a trace and parent span. Empty values are skipped.
func WithTrace(ctx context.Context, traceID TraceID, parentID SpanID) context.Context {
	if traceID != "" {
		ctx = context.WithValue(ctx, traceIDKey, traceID)
	}
	if parentID != "" {
		ctx = context.WithValue(ctx, spanIDKey, parentID)
	}
	return ctx
}

// GetTraceID retrieves the trace ID from context
func GetTraceID(ctx context.Context) TraceID {
	traceID, _ := ctx.Value(traceIDKey).(TraceID)
	return traceID
}

// GetSpanID retrieves the span ID from context
func GetSpanID(ctx context.Context) SpanID {
	spanID, _ := ctx.Value(spanIDKey).(SpanID)
	return spanID
}
