package wrapper

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rise-and-shine/agenda/cqrs/query"
)

// TracingQueryWrapper runs each execution inside a span named after the query.
type TracingQueryWrapper[I query.Input, R query.Result] struct {
	tracer   trace.Tracer
	spanName string
	next     query.Query[I, R]
}

func NewTracingQueryWrapper[I query.Input, R query.Result](queryName string) query.WrapFunc[I, R] {
	return func(next query.Query[I, R]) query.Query[I, R] {
		return &TracingQueryWrapper[I, R]{
			tracer:   otel.Tracer("cqrs/query"),
			spanName: "query " + queryName,
			next:     next,
		}
	}
}

func (t *TracingQueryWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	ctx, span := t.tracer.Start(ctx, t.spanName)
	defer span.End()

	result, err := t.next.Execute(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return result, err
}
