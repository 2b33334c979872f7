package main

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/primind-availability/internal/config"
	"github.com/KasumiMercury/primind-availability/internal/domain"
	"github.com/KasumiMercury/primind-availability/internal/infra/cache"
	"github.com/KasumiMercury/primind-availability/internal/infra/pubsub"
)

func initPublisher(ctx context.Context, cfg *config.Config) (pubsub.Publisher, error) {
	if cfg.PubSub.NatsURL == "" {
		slog.Warn("NATS_URL not set, event publishing disabled")
		return nil, nil
	}

	publisher, err := pubsub.NewNATSPublisherWithStream(ctx, pubsub.NATSPublisherConfig{
		URL: cfg.PubSub.NatsURL,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("NATS publisher initialized", "url", cfg.PubSub.NatsURL)
	return publisher, nil
}

// initPreferenceRepository puts the Redis cache in front of next. Without
// REDIS_ADDR the returned repository passes every call through.
func initPreferenceRepository(ctx context.Context, cfg *config.Config, next domain.PreferenceRepository) *cache.PreferenceRepository {
	if !cfg.Cache.Enabled() {
		slog.Warn("REDIS_ADDR not set, preference caching disabled")
	}

	client := cache.NewClient(ctx, cache.Config{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})

	return cache.NewPreferenceRepository(next, client, cfg.Cache.TTL)
}
