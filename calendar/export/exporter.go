// Package export forwards calendar notifications to a kafka topic. The
// exporter is a relay subscriber, so a failed send fails the command that
// triggered it.
package export

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/code19m/errx"
	"go.opentelemetry.io/otel"

	"github.com/rise-and-shine/agenda/calendar"
)

const HeaderKind = "kind"

// Message is the JSON value written for each notification. Event is absent
// for deletions.
type Message struct {
	Kind       calendar.Kind   `json:"kind"`
	EventID    string          `json:"event_id"`
	Event      *calendar.Event `json:"event,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Exporter publishes notifications with a sarama sync producer, keyed by
// event id so all changes of one event land on one partition.
type Exporter struct {
	producer sarama.SyncProducer
	topic    string
}

// New connects a sync producer to the configured brokers.
func New(cfg Config, clientID string) (*Exporter, error) {
	saramaCfg, err := cfg.saramaConfig(clientID)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	producer, err := sarama.NewSyncProducer(strings.Split(cfg.Brokers, ","), saramaCfg)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"brokers": cfg.Brokers}))
	}

	return NewWithProducer(producer, cfg.Topic), nil
}

// NewWithProducer builds an exporter on an existing producer.
func NewWithProducer(producer sarama.SyncProducer, topic string) *Exporter {
	return &Exporter{producer: producer, topic: topic}
}

func (e *Exporter) Handle(ctx context.Context, n calendar.Notification) error {
	msg := Message{
		Kind:       n.Kind(),
		EventID:    n.EventID().String(),
		OccurredAt: time.Now().UTC(),
	}
	switch n := n.(type) {
	case calendar.Created:
		msg.Event = &n.Event
	case calendar.Updated:
		msg.Event = &n.Event
	}

	value, err := json.Marshal(msg)
	if err != nil {
		return errx.Wrap(err)
	}

	pm := &sarama.ProducerMessage{
		Topic:   e.topic,
		Key:     sarama.StringEncoder(msg.EventID),
		Value:   sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{{Key: []byte(HeaderKind), Value: []byte(msg.Kind)}},
	}
	otel.GetTextMapPropagator().Inject(ctx, headerCarrier{msg: pm})

	partition, offset, err := e.producer.SendMessage(pm)
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(errx.D{
			"topic":     e.topic,
			"partition": partition,
			"offset":    offset,
			"event_id":  msg.EventID,
		}))
	}

	return nil
}

func (e *Exporter) Close() error {
	return errx.Wrap(e.producer.Close())
}
