// Package relay delivers command-side notifications to the query side
// synchronously, in the caller's goroutine.
package relay

import (
	"context"
	"fmt"
	"sync"

	"github.com/code19m/errx"
	"github.com/rcrowley/go-metrics"

	"github.com/rise-and-shine/agenda/calendar"
	"github.com/rise-and-shine/agenda/meta"
)

// Subscriber handles one notification. A returned error aborts delivery.
type Subscriber interface {
	Handle(ctx context.Context, n calendar.Notification) error
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc func(ctx context.Context, n calendar.Notification) error

func (f SubscriberFunc) Handle(ctx context.Context, n calendar.Notification) error {
	return f(ctx, n)
}

type namedSubscriber struct {
	name string
	sub  Subscriber
}

var _ calendar.Publisher = (*Bus)(nil)

// Bus fans a notification out to its subscribers in registration order.
// Publish returns after every subscriber ran, or at the first failure.
type Bus struct {
	mu          sync.RWMutex
	subscribers []namedSubscriber
	registry    metrics.Registry
}

func NewBus(registry metrics.Registry) *Bus {
	if registry == nil {
		registry = metrics.NewRegistry()
	}
	return &Bus{registry: registry}
}

// Subscribe appends sub to the delivery chain.
func (b *Bus) Subscribe(name string, sub Subscriber) {
	b.mu.Lock()
	b.subscribers = append(b.subscribers, namedSubscriber{name: name, sub: sub})
	b.mu.Unlock()
}

func (b *Bus) Publish(ctx context.Context, n calendar.Notification) error {
	b.mu.RLock()
	subscribers := b.subscribers
	b.mu.RUnlock()

	ctx = meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{meta.EventID: n.EventID().String()})
	for _, s := range subscribers {
		if err := s.sub.Handle(ctx, n); err != nil {
			b.counter(n.Kind(), "failed").Inc(1)
			return errx.Wrap(err, errx.WithDetails(errx.D{
				"notification_kind": string(n.Kind()),
				"event_id":          n.EventID().String(),
				"subscriber":        s.name,
			}))
		}
	}

	b.counter(n.Kind(), "published").Inc(1)
	return nil
}

// Registry exposes the delivery counters.
func (b *Bus) Registry() metrics.Registry {
	return b.registry
}

func (b *Bus) counter(kind calendar.Kind, outcome string) metrics.Counter {
	return metrics.GetOrRegisterCounter(fmt.Sprintf("relay.%s.%s", kind, outcome), b.registry)
}

// Snapshot returns the current value of every relay counter.
func Snapshot(registry metrics.Registry) map[string]int64 {
	out := make(map[string]int64)
	registry.Each(func(name string, m any) {
		if c, ok := m.(metrics.Counter); ok {
			out[name] = c.Count()
		}
	})
	return out
}
