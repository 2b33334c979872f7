package pubsub

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityComputedEventJSON(t *testing.T) {
	event := AvailabilityComputedEvent{
		UserID:      "018f0000-0000-7000-8000-000000000000",
		WindowStart: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		WindowEnd:   time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Timezone:    "UTC",
		SlotMinutes: 30,
		SlotCount:   1,
		Days: []EventDay{{
			Date: "2024-03-04",
			Slots: []EventSlot{{
				ID:    "slot",
				Start: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
				End:   time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC),
			}},
		}},
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))

	assert.Equal(t, "2024-03-04T00:00:00Z", fields["window_start"])
	assert.Equal(t, float64(1), fields["slot_count"])
	assert.Len(t, fields["days"], 1)
	assert.Equal(t, false, fields["degraded"])
	assert.NotContains(t, fields, "busy")
}

func TestNewNATSPublisherWithStreamUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := NewNATSPublisherWithStream(ctx, NATSPublisherConfig{URL: "nats://127.0.0.1:1"})

	assert.ErrorContains(t, err, "failed to connect to NATS")
}
