package calendar

import (
	"context"

	"github.com/google/uuid"
)

// CommandStore is the durable source of truth for events.
type CommandStore interface {
	// Save stores a new event.
	Save(ctx context.Context, ev Event) error
	// Update overwrites title, description and date. Fails with a not found
	// error when the id does not exist.
	Update(ctx context.Context, ev Event) error
	// Delete removes the event. Fails with a not found error when the id does
	// not exist.
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (Event, error)
	FindAll(ctx context.Context) ([]Event, error)
}

// QueryStore is the read model kept in sync with the command store.
// Implementations must be safe for concurrent use.
type QueryStore interface {
	// Add inserts or replaces ev. An event with a zero id is rejected.
	Add(ctx context.Context, ev Event) error
	// Update inserts or replaces ev.
	Update(ctx context.Context, ev Event) error
	// Remove deletes the event with id. Absent ids are ignored.
	Remove(ctx context.Context, id uuid.UUID) error
	// FindAll returns a point-in-time copy of every event, in no particular order.
	FindAll(ctx context.Context) ([]Event, error)
	FindByID(ctx context.Context, id uuid.UUID) (Event, bool, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}

// Publisher delivers notifications to the query side.
type Publisher interface {
	Publish(ctx context.Context, n Notification) error
}
