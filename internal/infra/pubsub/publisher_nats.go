package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/KasumiMercury/primind-availability/internal/observability/tracing"
)

type NATSPublisher struct {
	conn *nc.Conn
	js   jetstream.JetStream
}

type NATSPublisherConfig struct {
	URL string
}

// NewNATSPublisherWithStream connects and provisions the event stream
// before returning.
func NewNATSPublisherWithStream(ctx context.Context, cfg NATSPublisherConfig) (*NATSPublisher, error) {
	conn, err := nc.Connect(cfg.URL, nc.Timeout(10*time.Second), nc.Name("primind-availability"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Description: "Stream for availability events",
		Subjects:    []string{TopicAvailabilityComputed},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      24 * time.Hour,
		MaxBytes:    100 * 1024 * 1024, // 100MB
		Storage:     jetstream.FileStorage,
		Replicas:    1,
	})
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("failed to create stream: %w", err)
	}

	slog.Info("NATS JetStream stream configured",
		slog.String("stream", StreamName),
		slog.String("subject", TopicAvailabilityComputed),
	)

	return &NATSPublisher{
		conn: conn,
		js:   js,
	}, nil
}

func (p *NATSPublisher) PublishAvailabilityComputed(ctx context.Context, event AvailabilityComputedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msgID := uuid.NewString()

	msg := nc.NewMsg(TopicAvailabilityComputed)
	msg.Data = payload
	msg.Header.Set("event_type", TopicAvailabilityComputed)
	msg.Header.Set("user_id", event.UserID)
	tracing.InjectToHeader(ctx, msg.Header)

	ack, err := p.js.PublishMsg(ctx, msg, jetstream.WithMsgID(msgID))
	if err != nil {
		slog.ErrorContext(ctx, "failed to publish availability computed event",
			slog.String("user_id", event.UserID),
			slog.String("error", err.Error()),
		)

		return fmt.Errorf("failed to publish event: %w", err)
	}

	slog.DebugContext(ctx, "published availability computed event",
		slog.String("user_id", event.UserID),
		slog.String("message_id", msgID),
		slog.Uint64("sequence", ack.Sequence),
	)

	return nil
}

func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}
