package commands

import (
	"time"

	"github.com/google/uuid"

	"github.com/rise-and-shine/agenda/calendar"
	"github.com/rise-and-shine/agenda/cqrs/command"
	"github.com/rise-and-shine/agenda/cqrs/command/wrapper"
	"github.com/rise-and-shine/agenda/observability/logger"
)

// Set holds the command handlers decorated with metadata, logging, tracing,
// timeout and panic recovery.
type Set struct {
	Create command.Command[CreateEventInput, uuid.UUID]
	Update command.Command[UpdateEventInput, command.EmptyResult]
	Delete command.Command[DeleteEventInput, command.EmptyResult]
}

func NewSet(
	store calendar.CommandStore,
	publisher calendar.Publisher,
	log logger.Logger,
	timeout time.Duration,
) Set {
	return Set{
		Create: decorate(NewCreateEvent(store, publisher), log, "CreateEvent", timeout),
		Update: decorate(NewUpdateEvent(store, publisher), log, "UpdateEvent", timeout),
		Delete: decorate(NewDeleteEvent(store, publisher), log, "DeleteEvent", timeout),
	}
}

func decorate[I command.Input, R command.Result](
	cmd command.Command[I, R],
	log logger.Logger,
	name string,
	timeout time.Duration,
) command.Command[I, R] {
	return command.Wrap(cmd,
		wrapper.NewMetaInjectCommandWrapper[I, R](name),
		wrapper.NewLoggerCommandWrapper[I, R](log, name),
		wrapper.NewTracingCommandWrapper[I, R](name),
		wrapper.NewTimeoutCommandWrapper[I, R](timeout),
		wrapper.NewRecoveryCommandWrapper[I, R](log, name),
	)
}
