package wrapper

import (
	"context"

	"github.com/rise-and-shine/agenda/cqrs/command"
	"github.com/rise-and-shine/agenda/meta"
	"github.com/rise-and-shine/agenda/observability/tracing"
)

// MetaInjectCommandWrapper stamps the context with the command name, the
// service identity and a trace id when the caller did not provide one.
type MetaInjectCommandWrapper[I command.Input, R command.Result] struct {
	cmdName string
	next    command.Command[I, R]
}

func NewMetaInjectCommandWrapper[I command.Input, R command.Result](cmdName string) command.WrapFunc[I, R] {
	return func(next command.Command[I, R]) command.Command[I, R] {
		return &MetaInjectCommandWrapper[I, R]{cmdName: cmdName, next: next}
	}
}

func (cmd *MetaInjectCommandWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	metadata := map[meta.ContextKey]string{
		meta.Operation:      cmd.cmdName,
		meta.ServiceName:    meta.GetServiceName(),
		meta.ServiceVersion: meta.GetServiceVersion(),
	}
	if meta.Find(ctx, meta.TraceID) == "" {
		metadata[meta.TraceID] = tracing.GetStartingTraceID(ctx)
	}

	return cmd.next.Execute(meta.InjectMetaToContext(ctx, metadata), input)
}
