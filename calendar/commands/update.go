package commands

import (
	"context"
	"time"

	"github.com/code19m/errx"
	"github.com/google/uuid"

	"github.com/rise-and-shine/agenda/calendar"
	"github.com/rise-and-shine/agenda/cqrs/command"
	"github.com/rise-and-shine/agenda/val"
)

type UpdateEventInput struct {
	ID          uuid.UUID `json:"id"          validate:"required"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

var _ command.Command[UpdateEventInput, command.EmptyResult] = (*UpdateEvent)(nil)

// UpdateEvent replaces title, description and date of an existing event and
// publishes Updated with the full new record.
type UpdateEvent struct {
	store     calendar.CommandStore
	publisher calendar.Publisher
}

func NewUpdateEvent(store calendar.CommandStore, publisher calendar.Publisher) *UpdateEvent {
	return &UpdateEvent{store: store, publisher: publisher}
}

func (c *UpdateEvent) Execute(ctx context.Context, in UpdateEventInput) (command.EmptyResult, error) {
	if err := val.ValidateSchema(in); err != nil {
		return command.EmptyResult{}, errx.Wrap(err)
	}

	ev := calendar.NewEvent(in.ID, in.Title, in.Description, in.Date)

	if err := c.store.Update(ctx, ev); err != nil {
		return command.EmptyResult{}, errx.Wrap(err)
	}

	if err := c.publisher.Publish(ctx, calendar.Updated{Event: ev}); err != nil {
		return command.EmptyResult{}, errx.Wrap(err)
	}

	return command.EmptyResult{}, nil
}
