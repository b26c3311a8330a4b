package commandstore_test

import (
	"testing"
	"time"

	"github.com/code19m/errx"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/agenda/calendar"
	"github.com/rise-and-shine/agenda/calendar/commandstore"
	"github.com/rise-and-shine/agenda/sqldb"
)

func newStore(t *testing.T) *commandstore.Store {
	t.Helper()

	cfg := sqldb.Config{
		Driver:       sqldb.DriverSQLite,
		DSN:          "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		PingAttempts: 1,
	}
	db, err := sqldb.NewBunDB(t.Context(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, commandstore.Migrate(t.Context(), db))
	require.NoError(t, commandstore.Migrate(t.Context(), db), "migrate is repeatable")

	return commandstore.New(db, cfg.Schema())
}

func TestSaveAndFind(t *testing.T) {
	store := newStore(t)
	ctx := t.Context()

	ev := calendar.NewEvent(uuid.New(), "Standup", "daily sync", time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))
	require.NoError(t, store.Save(ctx, ev))

	got, err := store.FindByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, ev, got)

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []calendar.Event{ev}, all)
}

func TestSaveNormalizesDate(t *testing.T) {
	store := newStore(t)
	ctx := t.Context()

	local := time.Date(2024, 1, 2, 14, 0, 0, 987654321, time.FixedZone("UZT", 5*60*60))
	ev := calendar.Event{ID: uuid.New(), Title: "Standup", Date: local}
	require.NoError(t, store.Save(ctx, ev))

	got, err := store.FindByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 9, 0, 0, 987654000, time.UTC), got.Date)
}

func TestSaveDuplicateID(t *testing.T) {
	store := newStore(t)
	ctx := t.Context()

	ev := calendar.NewEvent(uuid.New(), "Standup", "", time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))
	require.NoError(t, store.Save(ctx, ev))

	err := store.Save(ctx, ev)
	require.Error(t, err)
	assert.Equal(t, errx.T_Conflict, errx.GetType(err))
}

func TestUpdate(t *testing.T) {
	store := newStore(t)
	ctx := t.Context()

	ev := calendar.NewEvent(uuid.New(), "Standup", "daily", time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))
	require.NoError(t, store.Save(ctx, ev))

	changed := calendar.NewEvent(ev.ID, "Standup", "moved", time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC))
	require.NoError(t, store.Update(ctx, changed))

	got, err := store.FindByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, changed, got)
}

func TestMissingEvent(t *testing.T) {
	store := newStore(t)
	ctx := t.Context()
	id := uuid.New()

	tests := []struct {
		name string
		run  func() error
	}{
		{
			name: "update",
			run: func() error {
				return store.Update(ctx, calendar.NewEvent(id, "x", "", time.Now()))
			},
		},
		{
			name: "delete",
			run:  func() error { return store.Delete(ctx, id) },
		},
		{
			name: "find",
			run: func() error {
				_, err := store.FindByID(ctx, id)
				return err
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			require.Error(t, err)
			assert.True(t, calendar.IsNotFound(err))
			assert.Equal(t, errx.T_NotFound, errx.GetType(err))
		})
	}
}

func TestDelete(t *testing.T) {
	store := newStore(t)
	ctx := t.Context()

	ev := calendar.NewEvent(uuid.New(), "Standup", "", time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))
	require.NoError(t, store.Save(ctx, ev))
	require.NoError(t, store.Delete(ctx, ev.ID))

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	assert.True(t, calendar.IsNotFound(store.Delete(ctx, ev.ID)))
}
