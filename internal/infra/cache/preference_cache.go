// Package cache keeps working-hours preferences in Redis in front of the
// database repository.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-availability/internal/domain"
)

const (
	DefaultTTL = 10 * time.Minute

	KeyPreferences = "primind:availability:prefs:" // + user_id
	// Bumped on every Save. A read-through write is dropped when the
	// generation moved while the database was being read.
	KeyPreferenceGeneration = "primind:availability:prefs-gen:" // + user_id

	generationTTL = 24 * time.Hour
)

var errGenerationChanged = errors.New("preference generation changed")

type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewClient connects to Redis. It returns nil when the address is empty or
// the server does not answer.
func NewClient(ctx context.Context, cfg Config) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		slog.Warn("redis cache unavailable, running without caching",
			"addr", cfg.Addr,
			"error", err,
		)

		_ = client.Close()

		return nil
	}

	slog.Info("redis cache initialized", "addr", cfg.Addr)

	return client
}

type entryDTO struct {
	Weekday int `json:"weekday"`
	Hour    int `json:"hour"`
	Minute  int `json:"minute"`
}

type preferencesDTO struct {
	Starts []entryDTO `json:"starts"`
	Ends   []entryDTO `json:"ends"`
}

// PreferenceRepository reads through Redis and invalidates on Save. Any
// Redis error switches the cache off for the rest of the process.
//
// Save bumps a per-user generation before deleting the cached value, so a
// FindByUserID that read the database before the Save committed does not
// put the old preferences back.
type PreferenceRepository struct {
	next   domain.PreferenceRepository
	client *redis.Client
	ttl    time.Duration

	mu       sync.RWMutex
	disabled bool
}

var _ domain.PreferenceRepository = (*PreferenceRepository)(nil)

func NewPreferenceRepository(next domain.PreferenceRepository, client *redis.Client, ttl time.Duration) *PreferenceRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &PreferenceRepository{
		next:     next,
		client:   client,
		ttl:      ttl,
		disabled: client == nil,
	}
}

func (r *PreferenceRepository) IsAvailable() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return !r.disabled
}

func (r *PreferenceRepository) FindByUserID(ctx context.Context, userID domain.UserID) (domain.WorkPreferences, error) {
	key := KeyPreferences + userID.String()
	genKey := KeyPreferenceGeneration + userID.String()

	var generation string

	if r.IsAvailable() {
		data, err := r.client.Get(ctx, key).Bytes()
		if err == nil {
			prefs, decodeErr := decodePreferences(data)
			if decodeErr == nil {
				slog.DebugContext(ctx, "work preferences cache hit",
					"user_id", userID.String(),
				)

				return prefs, nil
			}

			slog.WarnContext(ctx, "discarding undecodable cached preferences",
				"user_id", userID.String(),
				"error", decodeErr,
			)
		} else {
			r.handleError(ctx, err, "get")
		}
	}

	if r.IsAvailable() {
		gen, err := r.client.Get(ctx, genKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			r.handleError(ctx, err, "get generation")
		}

		generation = gen
	}

	prefs, err := r.next.FindByUserID(ctx, userID)
	if err != nil {
		return domain.WorkPreferences{}, err
	}

	if r.IsAvailable() {
		r.store(ctx, userID, generation, prefs)
	}

	return prefs, nil
}

// store caches prefs unless a Save bumped the generation after it was read.
func (r *PreferenceRepository) store(ctx context.Context, userID domain.UserID, generation string, prefs domain.WorkPreferences) {
	data, err := encodePreferences(prefs)
	if err != nil {
		return
	}

	key := KeyPreferences + userID.String()
	genKey := KeyPreferenceGeneration + userID.String()

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}

		if current != generation {
			return errGenerationChanged
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)

			return nil
		})

		return err
	}, genKey)

	if errors.Is(err, errGenerationChanged) || errors.Is(err, redis.TxFailedErr) {
		slog.DebugContext(ctx, "skipping cache write for preferences saved concurrently",
			"user_id", userID.String(),
		)

		return
	}

	r.handleError(ctx, err, "set")
}

func (r *PreferenceRepository) Save(ctx context.Context, userID domain.UserID, prefs domain.WorkPreferences) error {
	if err := r.next.Save(ctx, userID, prefs); err != nil {
		return err
	}

	if r.IsAvailable() {
		genKey := KeyPreferenceGeneration + userID.String()

		_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Incr(ctx, genKey)
			pipe.Expire(ctx, genKey, generationTTL)
			pipe.Del(ctx, KeyPreferences+userID.String())

			return nil
		})
		r.handleError(ctx, err, "invalidate")
	}

	return nil
}

func (r *PreferenceRepository) Close() error {
	if r.client != nil {
		return r.client.Close()
	}

	return nil
}

func (r *PreferenceRepository) handleError(ctx context.Context, err error, operation string) {
	if err == nil || errors.Is(err, redis.Nil) {
		return
	}

	slog.WarnContext(ctx, "disabling preference cache due to redis error",
		"operation", operation,
		"error", err,
	)

	r.mu.Lock()
	r.disabled = true
	r.mu.Unlock()
}

func encodePreferences(prefs domain.WorkPreferences) ([]byte, error) {
	return json.Marshal(preferencesDTO{
		Starts: toDTO(prefs.StartEntries()),
		Ends:   toDTO(prefs.EndEntries()),
	})
}

func decodePreferences(data []byte) (domain.WorkPreferences, error) {
	var dto preferencesDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return domain.WorkPreferences{}, err
	}

	starts, err := fromDTO(dto.Starts)
	if err != nil {
		return domain.WorkPreferences{}, err
	}

	ends, err := fromDTO(dto.Ends)
	if err != nil {
		return domain.WorkPreferences{}, err
	}

	return domain.NewWorkPreferences(starts, ends)
}

func toDTO(entries []domain.WorkingHoursEntry) []entryDTO {
	out := make([]entryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryDTO{
			Weekday: int(e.Weekday()),
			Hour:    e.Time().Hour(),
			Minute:  e.Time().Minute(),
		})
	}

	return out
}

func fromDTO(dtos []entryDTO) ([]domain.WorkingHoursEntry, error) {
	out := make([]domain.WorkingHoursEntry, 0, len(dtos))
	for _, d := range dtos {
		e, err := domain.NewWorkingHoursEntry(d.Weekday, d.Hour, d.Minute)
		if err != nil {
			return nil, err
		}

		out = append(out, e)
	}

	return out, nil
}
