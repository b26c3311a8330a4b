// Package commands implements the state-changing operations on events. Each
// handler writes the command store first and then publishes a notification
// that brings the query store up to date before Execute returns.
package commands

import (
	"context"
	"time"

	"github.com/code19m/errx"
	"github.com/google/uuid"

	"github.com/rise-and-shine/agenda/calendar"
	"github.com/rise-and-shine/agenda/cqrs/command"
)

type CreateEventInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

var _ command.Command[CreateEventInput, uuid.UUID] = (*CreateEvent)(nil)

// CreateEvent assigns a fresh id, saves the event and publishes Created.
// Any title, description and date are accepted; only the stores can fail it.
type CreateEvent struct {
	store     calendar.CommandStore
	publisher calendar.Publisher
}

func NewCreateEvent(store calendar.CommandStore, publisher calendar.Publisher) *CreateEvent {
	return &CreateEvent{store: store, publisher: publisher}
}

func (c *CreateEvent) Execute(ctx context.Context, in CreateEventInput) (uuid.UUID, error) {
	ev := calendar.NewEvent(uuid.New(), in.Title, in.Description, in.Date)

	if err := c.store.Save(ctx, ev); err != nil {
		return uuid.Nil, errx.Wrap(err)
	}

	if err := c.publisher.Publish(ctx, calendar.Created{Event: ev}); err != nil {
		return uuid.Nil, errx.Wrap(err)
	}

	return ev.ID, nil
}
