package pubsub

import (
	"context"
	"io"
	"time"
)

//go:generate mockgen -source=publisher.go -destination=publisher_mock.go -package=pubsub

const (
	TopicAvailabilityComputed = "availability.computed"

	StreamName = "AVAILABILITY_EVENTS"
)

type EventSlot struct {
	ID    string    `json:"id"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// EventDay holds the slots of one local date, formatted YYYY-MM-DD.
type EventDay struct {
	Date  string      `json:"date"`
	Slots []EventSlot `json:"slots"`
}

// AvailabilityComputedEvent hands a finished availability query to the
// summarizer. Busy details are never included.
type AvailabilityComputedEvent struct {
	UserID      string     `json:"user_id"`
	WindowStart time.Time  `json:"window_start"`
	WindowEnd   time.Time  `json:"window_end"`
	Timezone    string     `json:"timezone"`
	SlotMinutes int        `json:"slot_minutes"`
	SlotCount   int        `json:"slot_count"`
	Degraded    bool       `json:"degraded"`
	Days        []EventDay `json:"days"`
	ComputedAt  time.Time  `json:"computed_at"`
}

type Publisher interface {
	PublishAvailabilityComputed(ctx context.Context, event AvailabilityComputedEvent) error
	io.Closer
}
