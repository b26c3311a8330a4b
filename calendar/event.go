// Package calendar holds the calendar event record, the notifications that
// describe its changes and the ports connecting the command side to the
// query side.
package calendar

import (
	"time"

	"github.com/google/uuid"
)

// Event is the projected calendar event. Values are immutable once built:
// updates replace the whole record.
type Event struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// NewEvent builds an event with a normalized date.
func NewEvent(id uuid.UUID, title, description string, date time.Time) Event {
	return Event{
		ID:          id,
		Title:       title,
		Description: description,
		Date:        NormalizeDate(date),
	}
}

// NormalizeDate converts t to UTC with microsecond precision, the finest
// resolution every command store backend keeps.
func NormalizeDate(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
