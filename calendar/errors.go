package calendar

import (
	"fmt"

	"github.com/code19m/errx"
	"github.com/google/uuid"
)

const (
	CodeEventNotFound = "EVENT_NOT_FOUND"
	CodeInvalidEvent  = "INVALID_EVENT"
)

// NotFoundError reports that no event with id exists.
func NotFoundError(id uuid.UUID) error {
	return errx.New(
		fmt.Sprintf("event not found with id: %s", id),
		errx.WithType(errx.T_NotFound),
		errx.WithCode(CodeEventNotFound),
		errx.WithDetails(errx.D{"event_id": id.String()}),
	)
}

// IsNotFound reports whether err means the event does not exist.
func IsNotFound(err error) bool {
	return errx.IsCodeIn(err, CodeEventNotFound)
}

// ZeroIDError is returned when an event without an id reaches a store.
func ZeroIDError() error {
	return errx.New(
		"event id must be set",
		errx.WithType(errx.T_Validation),
		errx.WithCode(CodeInvalidEvent),
	)
}
