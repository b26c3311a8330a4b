// Package queries answers reads from the query store only.
package queries

import (
	"context"

	"github.com/code19m/errx"
	"github.com/google/uuid"

	"github.com/rise-and-shine/agenda/calendar"
	"github.com/rise-and-shine/agenda/cqrs/query"
	"github.com/rise-and-shine/agenda/cqrs/query/wrapper"
	"github.com/rise-and-shine/agenda/observability/logger"
)

// ListEvents returns the current projection snapshot. Order is unspecified.
type ListEvents struct {
	store calendar.QueryStore
}

func NewListEvents(store calendar.QueryStore) *ListEvents {
	return &ListEvents{store: store}
}

func (q *ListEvents) Execute(ctx context.Context, _ query.NoInput) ([]calendar.Event, error) {
	events, err := q.store.FindAll(ctx)
	return events, errx.Wrap(err)
}

// GetEvent returns one projected event or a not found error.
type GetEvent struct {
	store calendar.QueryStore
}

func NewGetEvent(store calendar.QueryStore) *GetEvent {
	return &GetEvent{store: store}
}

func (q *GetEvent) Execute(ctx context.Context, id uuid.UUID) (calendar.Event, error) {
	ev, ok, err := q.store.FindByID(ctx, id)
	if err != nil {
		return calendar.Event{}, errx.Wrap(err)
	}
	if !ok {
		return calendar.Event{}, calendar.NotFoundError(id)
	}
	return ev, nil
}

// CountEvents returns the number of projected events.
type CountEvents struct {
	store calendar.QueryStore
}

func NewCountEvents(store calendar.QueryStore) *CountEvents {
	return &CountEvents{store: store}
}

func (q *CountEvents) Execute(ctx context.Context, _ query.NoInput) (int, error) {
	n, err := q.store.Count(ctx)
	return n, errx.Wrap(err)
}

// Set holds the query handlers decorated with logging and tracing.
type Set struct {
	List  query.Query[query.NoInput, []calendar.Event]
	Get   query.Query[uuid.UUID, calendar.Event]
	Count query.Query[query.NoInput, int]
}

func NewSet(store calendar.QueryStore, log logger.Logger) Set {
	return Set{
		List:  decorate(NewListEvents(store), log, "ListEvents"),
		Get:   decorate(NewGetEvent(store), log, "GetEvent"),
		Count: decorate(NewCountEvents(store), log, "CountEvents"),
	}
}

func decorate[I query.Input, R query.Result](q query.Query[I, R], log logger.Logger, name string) query.Query[I, R] {
	return query.Wrap(q,
		wrapper.NewLoggerQueryWrapper[I, R](log, name),
		wrapper.NewTracingQueryWrapper[I, R](name),
	)
}
