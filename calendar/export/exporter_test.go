package export_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/agenda/calendar"
	"github.com/rise-and-shine/agenda/calendar/export"
)

const topic = "agenda.events"

func TestExporterHandle(t *testing.T) {
	ev := calendar.NewEvent(uuid.New(), "Standup", "Daily sync", time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))

	tests := []struct {
		name      string
		n         calendar.Notification
		wantEvent bool
	}{
		{name: "created", n: calendar.Created{Event: ev}, wantEvent: true},
		{name: "updated", n: calendar.Updated{Event: ev}, wantEvent: true},
		{name: "deleted", n: calendar.Deleted{ID: ev.ID}, wantEvent: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
			producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(pm *sarama.ProducerMessage) error {
				assert.Equal(t, topic, pm.Topic)

				key, err := pm.Key.Encode()
				require.NoError(t, err)
				assert.Equal(t, ev.ID.String(), string(key))

				raw, err := pm.Value.Encode()
				require.NoError(t, err)

				var msg export.Message
				require.NoError(t, json.Unmarshal(raw, &msg))
				assert.Equal(t, tc.n.Kind(), msg.Kind)
				assert.Equal(t, ev.ID.String(), msg.EventID)
				assert.False(t, msg.OccurredAt.IsZero())
				if tc.wantEvent {
					require.NotNil(t, msg.Event)
					assert.Equal(t, ev, *msg.Event)
				} else {
					assert.Nil(t, msg.Event)
				}

				require.NotEmpty(t, pm.Headers)
				assert.Equal(t, export.HeaderKind, string(pm.Headers[0].Key))
				assert.Equal(t, string(tc.n.Kind()), string(pm.Headers[0].Value))
				return nil
			})

			exporter := export.NewWithProducer(producer, topic)
			require.NoError(t, exporter.Handle(t.Context(), tc.n))
			require.NoError(t, exporter.Close())
		})
	}
}

func TestExporterSendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	producer.ExpectSendMessageAndFail(errors.New("broker unavailable"))

	exporter := export.NewWithProducer(producer, topic)
	err := exporter.Handle(t.Context(), calendar.Deleted{ID: uuid.New()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker unavailable")

	require.NoError(t, exporter.Close())
}
