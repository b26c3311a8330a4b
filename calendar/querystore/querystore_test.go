package querystore_test

import (
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/code19m/errx"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/agenda/calendar"
	"github.com/rise-and-shine/agenda/calendar/querystore"
)

func stores(t *testing.T) map[string]calendar.QueryStore {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return map[string]calendar.QueryStore{
		"memory": querystore.NewMemory(),
		"redis":  querystore.NewRedis(client, "agenda:test:events"),
	}
}

func event(title string) calendar.Event {
	return calendar.NewEvent(uuid.New(), title, title+" notes", time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))
}

func TestAddIsIdempotent(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			ev := event("Standup")

			require.NoError(t, store.Add(ctx, ev))
			require.NoError(t, store.Add(ctx, ev))

			count, err := store.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 1, count)

			got, ok, err := store.FindByID(ctx, ev.ID)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, ev, got)
		})
	}
}

func TestAddRejectsZeroID(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			err := store.Add(t.Context(), calendar.Event{Title: "no id"})
			require.Error(t, err)
			assert.Equal(t, errx.T_Validation, errx.GetType(err))

			count, err := store.Count(t.Context())
			require.NoError(t, err)
			assert.Zero(t, count)
		})
	}
}

func TestUpdateUpserts(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			ev := event("Standup")

			require.NoError(t, store.Update(ctx, ev))

			ev.Title = "Retro"
			require.NoError(t, store.Update(ctx, ev))

			all, err := store.FindAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, []calendar.Event{ev}, all)
		})
	}
}

func TestRemove(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			keep, drop := event("Keep"), event("Drop")
			require.NoError(t, store.Add(ctx, keep))
			require.NoError(t, store.Add(ctx, drop))

			require.NoError(t, store.Remove(ctx, drop.ID))
			require.NoError(t, store.Remove(ctx, drop.ID), "removing an absent id is a no-op")
			require.NoError(t, store.Remove(ctx, uuid.New()))

			all, err := store.FindAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, []calendar.Event{keep}, all)

			_, ok, err := store.FindByID(ctx, drop.ID)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestFindAllReturnsSnapshot(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			ev := event("Standup")
			require.NoError(t, store.Add(ctx, ev))

			snapshot, err := store.FindAll(ctx)
			require.NoError(t, err)
			require.Len(t, snapshot, 1)

			snapshot[0].Title = "mutated"
			require.NoError(t, store.Add(ctx, event("Later")))

			assert.Len(t, snapshot, 1)
			got, _, err := store.FindByID(ctx, ev.ID)
			require.NoError(t, err)
			assert.Equal(t, "Standup", got.Title)
		})
	}
}

func TestClear(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			require.NoError(t, store.Add(ctx, event("a")))
			require.NoError(t, store.Add(ctx, event("b")))

			require.NoError(t, store.Clear(ctx))

			all, err := store.FindAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	store := querystore.NewMemory()
	ctx := t.Context()

	const writers = 16
	const perWriter = 50

	var wg sync.WaitGroup
	for range writers {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range perWriter {
				assert.NoError(t, store.Add(ctx, event("concurrent")))
			}
		}()
		go func() {
			defer wg.Done()
			for range perWriter {
				all, err := store.FindAll(ctx)
				assert.NoError(t, err)
				for _, ev := range all {
					assert.NotEqual(t, uuid.Nil, ev.ID)
				}
			}
		}()
	}
	wg.Wait()

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, writers*perWriter, count)
}
