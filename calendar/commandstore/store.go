// Package commandstore persists events in the relational command store.
package commandstore

import (
	"context"
	"time"

	"github.com/code19m/errx"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/uptrace/bun"

	"github.com/rise-and-shine/agenda/calendar"
	"github.com/rise-and-shine/agenda/repogen"
	"github.com/rise-and-shine/agenda/sqldb"
)

const CodeEventExists = "EVENT_ALREADY_EXISTS"

type record struct {
	bun.BaseModel `bun:"table:command_events,alias:ce"`

	ID          uuid.UUID `bun:"id,pk,type:uuid"`
	Title       string    `bun:"title,notnull"`
	Description string    `bun:"description,notnull"`
	Date        time.Time `bun:"date,notnull"`

	sqldb.Timestamps
}

type filter struct {
	ID *uuid.UUID
}

var _ calendar.CommandStore = (*Store)(nil)

// Store implements calendar.CommandStore on top of a generic bun repository.
type Store struct {
	repo *repogen.BunRepo[record, filter]
}

// New returns a Store writing to table command_events in schema.
func New(idb bun.IDB, schema string) *Store {
	repo := repogen.NewBunRepoBuilder[record, filter](idb).
		WithEntityName("event").
		WithSchemaName(schema).
		WithNotFoundCode(calendar.CodeEventNotFound).
		WithConflictCode("command_events_pkey", CodeEventExists).
		WithFilterFunc(applyFilter).
		Build()

	return &Store{repo: repo}
}

// Migrate creates the command_events table when missing.
func Migrate(ctx context.Context, idb bun.IDB) error {
	return errx.Wrap(sqldb.CreateTables(ctx, idb, (*record)(nil)))
}

func (s *Store) Save(ctx context.Context, ev calendar.Event) error {
	_, err := s.repo.Create(ctx, toRecord(ev))
	return errx.Wrap(err, errx.WithDetails(errx.D{"event_id": ev.ID.String()}))
}

func (s *Store) Update(ctx context.Context, ev calendar.Event) error {
	_, err := s.repo.Update(ctx, toRecord(ev), "title", "description", "date", "updated_at")
	return errx.Wrap(err, errx.WithDetails(errx.D{"event_id": ev.ID.String()}))
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, &record{ID: id})
	return errx.Wrap(err, errx.WithDetails(errx.D{"event_id": id.String()}))
}

func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (calendar.Event, error) {
	rec, err := s.repo.Get(ctx, filter{ID: &id})
	if err != nil {
		return calendar.Event{}, errx.Wrap(err, errx.WithDetails(errx.D{"event_id": id.String()}))
	}
	return rec.toEvent(), nil
}

func (s *Store) FindAll(ctx context.Context) ([]calendar.Event, error) {
	records, err := s.repo.List(ctx, filter{})
	if err != nil {
		return nil, errx.Wrap(err)
	}
	return lo.Map(records, func(r record, _ int) calendar.Event { return r.toEvent() }), nil
}

func applyFilter(q *bun.SelectQuery, f filter) *bun.SelectQuery {
	if f.ID != nil {
		q = q.Where("?TableAlias.id = ?", *f.ID)
	}
	return q.OrderExpr("?TableAlias.date ASC")
}

func toRecord(ev calendar.Event) *record {
	return &record{
		ID:          ev.ID,
		Title:       ev.Title,
		Description: ev.Description,
		Date:        calendar.NormalizeDate(ev.Date),
	}
}

func (r record) toEvent() calendar.Event {
	return calendar.NewEvent(r.ID, r.Title, r.Description, r.Date)
}
