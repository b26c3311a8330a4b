package relay_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/code19m/errx"
	"github.com/google/uuid"
	"github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/agenda/calendar"
	"github.com/rise-and-shine/agenda/calendar/querystore"
	"github.com/rise-and-shine/agenda/calendar/relay"
)

type unknownNotification struct{}

func (unknownNotification) Kind() calendar.Kind   { return "event.archived" }
func (unknownNotification) EventID() uuid.UUID { return uuid.Nil }

func standup() calendar.Event {
	return calendar.NewEvent(uuid.New(), "Standup", "daily", time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))
}

func TestBusDeliversInOrder(t *testing.T) {
	bus := relay.NewBus(nil)

	var calls []string
	bus.Subscribe("first", relay.SubscriberFunc(func(context.Context, calendar.Notification) error {
		calls = append(calls, "first")
		return nil
	}))
	bus.Subscribe("second", relay.SubscriberFunc(func(context.Context, calendar.Notification) error {
		calls = append(calls, "second")
		return nil
	}))

	require.NoError(t, bus.Publish(t.Context(), calendar.Created{Event: standup()}))
	assert.Equal(t, []string{"first", "second"}, calls)
	assert.Equal(t, map[string]int64{"relay.event.created.published": 1}, relay.Snapshot(bus.Registry()))
}

func TestBusStopsAtFirstError(t *testing.T) {
	registry := metrics.NewRegistry()
	bus := relay.NewBus(registry)

	boom := errors.New("boom")
	secondCalled := false
	bus.Subscribe("failing", relay.SubscriberFunc(func(context.Context, calendar.Notification) error {
		return boom
	}))
	bus.Subscribe("second", relay.SubscriberFunc(func(context.Context, calendar.Notification) error {
		secondCalled = true
		return nil
	}))

	id := uuid.New()
	err := bus.Publish(t.Context(), calendar.Deleted{ID: id})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.False(t, secondCalled)

	e := errx.AsErrorX(err)
	assert.Equal(t, string(calendar.KindDeleted), e.Details()["notification_kind"])
	assert.Equal(t, id.String(), e.Details()["event_id"])
	assert.Equal(t, "failing", e.Details()["subscriber"])

	assert.Equal(t, map[string]int64{"relay.event.deleted.failed": 1}, relay.Snapshot(registry))
}

func TestProjectorAppliesNotifications(t *testing.T) {
	ctx := t.Context()
	store := querystore.NewMemory()
	projector := relay.NewProjector(store)

	ev := standup()
	require.NoError(t, projector.Handle(ctx, calendar.Created{Event: ev}))

	got, ok, err := store.FindByID(ctx, ev.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ev, got)

	ev.Title = "Standup (moved)"
	ev.Date = ev.Date.Add(time.Hour)
	require.NoError(t, projector.Handle(ctx, calendar.Updated{Event: ev}))

	got, _, err = store.FindByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, ev, got)

	require.NoError(t, projector.Handle(ctx, calendar.Deleted{ID: ev.ID}))
	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestProjectorRejectsUnknownKind(t *testing.T) {
	err := relay.NewProjector(querystore.NewMemory()).Handle(t.Context(), unknownNotification{})
	require.Error(t, err)
	assert.True(t, errx.IsCodeIn(err, relay.CodeUnknownNotification))
}

type fixedCommandStore struct {
	calendar.CommandStore
	events []calendar.Event
	err    error
}

func (s fixedCommandStore) FindAll(context.Context) ([]calendar.Event, error) {
	return s.events, s.err
}

func TestRebuild(t *testing.T) {
	ctx := t.Context()
	store := querystore.NewMemory()

	stale := standup()
	require.NoError(t, store.Add(ctx, stale))

	fresh := []calendar.Event{standup(), standup()}
	n, err := relay.Rebuild(ctx, fixedCommandStore{events: fresh}, store)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, fresh, all)

	_, err = relay.Rebuild(ctx, fixedCommandStore{err: errors.New("db down")}, store)
	require.Error(t, err)
}
