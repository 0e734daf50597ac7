package progress

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// StartSpan opens a span named after task as a child of ctx, when tracer
// is non-nil, per §4.10's task tracing. The returned finish function
// closes the span, stamping the task's final status and recording its
// error if it failed. tracer == nil degrades to a no-op, so task tracing
// can be wired in only where a tracer is configured.
func StartSpan(ctx context.Context, tracer trace.Tracer, task *Task) (context.Context, func()) {
	if tracer == nil {
		return ctx, func() {}
	}
	spanCtx, span := tracer.Start(ctx, task.Description())
	return spanCtx, func() {
		span.SetAttributes(attribute.String("task.status", task.Status().String()))
		if err := task.Err(); err != nil {
			span.RecordError(err)
		}
		span.End()
	}
}
