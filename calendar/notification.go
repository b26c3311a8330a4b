package calendar

import "github.com/google/uuid"

// Kind names a notification type.
type Kind string

const (
	KindCreated Kind = "event.created"
	KindUpdated Kind = "event.updated"
	KindDeleted Kind = "event.deleted"
)

// Notification announces a committed change on the command side.
type Notification interface {
	Kind() Kind
	EventID() uuid.UUID
}

// Created is published after an event has been saved.
type Created struct {
	Event Event
}

func (n Created) Kind() Kind         { return KindCreated }
func (n Created) EventID() uuid.UUID { return n.Event.ID }

// Updated is published after an event has been overwritten. It carries the
// full new record.
type Updated struct {
	Event Event
}

func (n Updated) Kind() Kind         { return KindUpdated }
func (n Updated) EventID() uuid.UUID { return n.Event.ID }

// Deleted is published after an event has been removed.
type Deleted struct {
	ID uuid.UUID
}

func (n Deleted) Kind() Kind         { return KindDeleted }
func (n Deleted) EventID() uuid.UUID { return n.ID }
