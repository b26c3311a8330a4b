package commands

import (
	"context"

	"github.com/code19m/errx"
	"github.com/google/uuid"

	"github.com/rise-and-shine/agenda/calendar"
	"github.com/rise-and-shine/agenda/cqrs/command"
	"github.com/rise-and-shine/agenda/val"
)

type DeleteEventInput struct {
	ID uuid.UUID `json:"id" validate:"required"`
}

var _ command.Command[DeleteEventInput, command.EmptyResult] = (*DeleteEvent)(nil)

// DeleteEvent removes an existing event and publishes Deleted.
type DeleteEvent struct {
	store     calendar.CommandStore
	publisher calendar.Publisher
}

func NewDeleteEvent(store calendar.CommandStore, publisher calendar.Publisher) *DeleteEvent {
	return &DeleteEvent{store: store, publisher: publisher}
}

func (c *DeleteEvent) Execute(ctx context.Context, in DeleteEventInput) (command.EmptyResult, error) {
	if err := val.ValidateSchema(in); err != nil {
		return command.EmptyResult{}, errx.Wrap(err)
	}

	if err := c.store.Delete(ctx, in.ID); err != nil {
		return command.EmptyResult{}, errx.Wrap(err)
	}

	if err := c.publisher.Publish(ctx, calendar.Deleted{ID: in.ID}); err != nil {
		return command.EmptyResult{}, errx.Wrap(err)
	}

	return command.EmptyResult{}, nil
}
