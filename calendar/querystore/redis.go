package querystore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/code19m/errx"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rise-and-shine/agenda/calendar"
)

var _ calendar.QueryStore = (*Redis)(nil)

// Redis keeps the projection in one redis hash: field is the event id,
// value is the JSON encoded event. HGETALL returns an atomic snapshot.
type Redis struct {
	client redis.Cmdable
	key    string
}

// NewRedis stores the projection under key.
func NewRedis(client redis.Cmdable, key string) *Redis {
	return &Redis{client: client, key: key}
}

// Add writes ev into the hash, replacing any previous value. A zero id is
// rejected with a validation error.
func (r *Redis) Add(ctx context.Context, ev calendar.Event) error {
	if ev.ID == uuid.Nil {
		return calendar.ZeroIDError()
	}

	raw, err := json.Marshal(ev)
	if err != nil {
		return errx.Wrap(err)
	}

	err = r.client.HSet(ctx, r.key, ev.ID.String(), raw).Err()
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(errx.D{"key": r.key, "event_id": ev.ID.String()}))
	}
	return nil
}

// Update is Add.
func (r *Redis) Update(ctx context.Context, ev calendar.Event) error {
	return r.Add(ctx, ev)
}

// Remove deletes the hash field. Unknown ids are a no-op.
func (r *Redis) Remove(ctx context.Context, id uuid.UUID) error {
	err := r.client.HDel(ctx, r.key, id.String()).Err()
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(errx.D{"key": r.key, "event_id": id.String()}))
	}
	return nil
}

// FindAll decodes the whole hash in one HGETALL.
func (r *Redis) FindAll(ctx context.Context) ([]calendar.Event, error) {
	values, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"key": r.key}))
	}

	events := make([]calendar.Event, 0, len(values))
	for field, raw := range values {
		ev, err := decodeEvent(raw)
		if err != nil {
			return nil, errx.Wrap(err, errx.WithDetails(errx.D{"key": r.key, "field": field}))
		}
		events = append(events, ev)
	}
	return events, nil
}

// FindByID reports false, without error, when the id is not projected.
func (r *Redis) FindByID(ctx context.Context, id uuid.UUID) (calendar.Event, bool, error) {
	raw, err := r.client.HGet(ctx, r.key, id.String()).Result()
	if errors.Is(err, redis.Nil) {
		return calendar.Event{}, false, nil
	}
	if err != nil {
		return calendar.Event{}, false, errx.Wrap(err, errx.WithDetails(errx.D{"key": r.key, "event_id": id.String()}))
	}

	ev, err := decodeEvent(raw)
	if err != nil {
		return calendar.Event{}, false, errx.Wrap(err, errx.WithDetails(errx.D{"key": r.key, "event_id": id.String()}))
	}
	return ev, true, nil
}

func (r *Redis) Count(ctx context.Context) (int, error) {
	n, err := r.client.HLen(ctx, r.key).Result()
	if err != nil {
		return 0, errx.Wrap(err, errx.WithDetails(errx.D{"key": r.key}))
	}
	return int(n), nil
}

// Clear drops the hash.
func (r *Redis) Clear(ctx context.Context) error {
	err := r.client.Del(ctx, r.key).Err()
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(errx.D{"key": r.key}))
	}
	return nil
}

func decodeEvent(raw string) (calendar.Event, error) {
	var ev calendar.Event
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		return calendar.Event{}, errx.Wrap(err)
	}
	ev.Date = calendar.NormalizeDate(ev.Date)
	return ev, nil
}
