package observability

import (
	"context"
	"sync"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/catalogq/logger"
)

// LogSpanExporter writes finished spans to a logger at debug level.
type LogSpanExporter struct {
	log      *logger.Logger
	mu       sync.Mutex
	exported int
	stopped  bool
}

var _ sdktrace.SpanExporter = (*LogSpanExporter)(nil)

// NewLogSpanExporter creates an exporter writing to log.
func NewLogSpanExporter(log *logger.Logger) *LogSpanExporter {
	return &LogSpanExporter{log: log}
}

// ExportSpans implements sdktrace.SpanExporter.
func (e *LogSpanExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return nil
	}
	for _, s := range spans {
		fields := logger.Fields(
			logger.FieldTraceID, s.SpanContext().TraceID().String(),
			logger.FieldSpanID, s.SpanContext().SpanID().String(),
			logger.FieldDuration, s.EndTime().Sub(s.StartTime()).Milliseconds(),
			logger.FieldStatus, s.Status().Code.String(),
		)
		if s.Parent().IsValid() {
			fields["parent_span_id"] = s.Parent().SpanID().String()
		}
		for _, kv := range s.Attributes() {
			fields[string(kv.Key)] = kv.Value.Emit()
		}
		e.log.Debug("span "+s.Name(), fields)
		e.exported++
	}
	return nil
}

// Shutdown implements sdktrace.SpanExporter.
func (e *LogSpanExporter) Shutdown(_ context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopped = true
	return nil
}

// Exported returns the number of spans written so far.
func (e *LogSpanExporter) Exported() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.exported
}
