package relay

import (
	"context"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/agenda/calendar"
)

const CodeUnknownNotification = "UNKNOWN_NOTIFICATION"

// Projector applies each notification to the query store with exactly one
// store operation.
type Projector struct {
	store calendar.QueryStore
}

func NewProjector(store calendar.QueryStore) *Projector {
	return &Projector{store: store}
}

func (p *Projector) Handle(ctx context.Context, n calendar.Notification) error {
	var err error

	switch n := n.(type) {
	case calendar.Created:
		err = p.store.Add(ctx, n.Event)
	case calendar.Updated:
		err = p.store.Update(ctx, n.Event)
	case calendar.Deleted:
		err = p.store.Remove(ctx, n.ID)
	default:
		return errx.New(
			"unknown notification",
			errx.WithType(errx.T_Internal),
			errx.WithCode(CodeUnknownNotification),
			errx.WithDetails(errx.D{"notification_kind": string(n.Kind())}),
		)
	}

	return errx.Wrap(err)
}

// Rebuild replaces the query store content with every event of the command store.
func Rebuild(ctx context.Context, commands calendar.CommandStore, queries calendar.QueryStore) (int, error) {
	events, err := commands.FindAll(ctx)
	if err != nil {
		return 0, errx.Wrap(err)
	}

	if err = queries.Clear(ctx); err != nil {
		return 0, errx.Wrap(err)
	}

	for _, ev := range events {
		if err = queries.Add(ctx, ev); err != nil {
			return 0, errx.Wrap(err, errx.WithDetails(errx.D{"event_id": ev.ID.String()}))
		}
	}

	return len(events), nil
}
