// Package querystore implements calendar.QueryStore in process memory and on redis.
package querystore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/rise-and-shine/agenda/calendar"
)

var _ calendar.QueryStore = (*Memory)(nil)

// Memory keeps the projection in a map guarded by a read-write lock.
// Readers never observe a partially applied write.
type Memory struct {
	mu     sync.RWMutex
	events map[uuid.UUID]calendar.Event
}

// NewMemory returns an empty projection.
func NewMemory() *Memory {
	return &Memory{events: make(map[uuid.UUID]calendar.Event)}
}

// Add stores ev, replacing any event with the same id. A zero id is
// rejected with a validation error.
func (m *Memory) Add(_ context.Context, ev calendar.Event) error {
	if ev.ID == uuid.Nil {
		return calendar.ZeroIDError()
	}

	m.mu.Lock()
	m.events[ev.ID] = ev
	m.mu.Unlock()
	return nil
}

// Update is Add: the projection always holds the latest full record.
func (m *Memory) Update(ctx context.Context, ev calendar.Event) error {
	return m.Add(ctx, ev)
}

// Remove deletes the event. Unknown ids are a no-op.
func (m *Memory) Remove(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	delete(m.events, id)
	m.mu.Unlock()
	return nil
}

// FindAll returns a copy of every event in no particular order. Later
// writes do not affect the returned slice.
func (m *Memory) FindAll(_ context.Context) ([]calendar.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]calendar.Event, 0, len(m.events))
	for _, ev := range m.events {
		out = append(out, ev)
	}
	return out, nil
}

func (m *Memory) FindByID(_ context.Context, id uuid.UUID) (calendar.Event, bool, error) {
	m.mu.RLock()
	ev, ok := m.events[id]
	m.mu.RUnlock()
	return ev, ok, nil
}

// Count returns the number of projected events.
func (m *Memory) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.events), nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	clear(m.events)
	m.mu.Unlock()
	return nil
}
