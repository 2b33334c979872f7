package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-availability/internal/domain"
	"github.com/KasumiMercury/primind-availability/internal/testutil"
)

type stubPreferenceRepository struct {
	prefs    domain.WorkPreferences
	findErr  error
	saveErr  error
	findHits int
	saved    int

	// onFind runs once, after the stored value has been read.
	onFind func()
}

func (s *stubPreferenceRepository) FindByUserID(_ context.Context, _ domain.UserID) (domain.WorkPreferences, error) {
	s.findHits++
	prefs, err := s.prefs, s.findErr

	if hook := s.onFind; hook != nil {
		s.onFind = nil
		hook()
	}

	return prefs, err
}

func (s *stubPreferenceRepository) Save(_ context.Context, _ domain.UserID, prefs domain.WorkPreferences) error {
	if s.saveErr != nil {
		return s.saveErr
	}

	s.saved++
	s.prefs = prefs

	return nil
}

func newUserID(t *testing.T) domain.UserID {
	t.Helper()

	id, err := domain.UserIDFromUUID(uuid.Must(uuid.NewV7()))
	require.NoError(t, err)

	return id
}

func mondayPrefs(t *testing.T) domain.WorkPreferences {
	t.Helper()

	start, err := domain.NewWorkingHoursEntry(1, 9, 15)
	require.NoError(t, err)
	end, err := domain.NewWorkingHoursEntry(1, 17, 45)
	require.NoError(t, err)

	prefs, err := domain.NewWorkPreferences([]domain.WorkingHoursEntry{start}, []domain.WorkingHoursEntry{end})
	require.NoError(t, err)

	return prefs
}

func fridayPrefs(t *testing.T) domain.WorkPreferences {
	t.Helper()

	start, err := domain.NewWorkingHoursEntry(5, 10, 0)
	require.NoError(t, err)

	prefs, err := domain.NewWorkPreferences([]domain.WorkingHoursEntry{start}, nil)
	require.NoError(t, err)

	return prefs
}

func liveClient(t *testing.T) *redis.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}

	addr := testutil.SetupTestRedis(t)

	client := NewClient(context.Background(), Config{Addr: addr})
	require.NotNil(t, client)

	return client
}

func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestEncodeDecodePreferences(t *testing.T) {
	prefs := mondayPrefs(t)

	data, err := encodePreferences(prefs)
	require.NoError(t, err)

	decoded, err := decodePreferences(data)
	require.NoError(t, err)

	assert.Equal(t, "09:15", decoded.StartFor(domain.Monday).String())
	assert.Equal(t, "17:45", decoded.EndFor(domain.Monday).String())
	assert.Equal(t, "08:00", decoded.StartFor(domain.Friday).String())
}

func TestDecodePreferencesRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: "{"},
		{name: "bad weekday", data: `{"starts":[{"weekday":9,"hour":8,"minute":0}],"ends":[]}`},
		{name: "inverse hours", data: `{"starts":[{"weekday":1,"hour":21,"minute":0}],"ends":[{"weekday":1,"hour":9,"minute":0}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodePreferences([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestPreferenceRepositoryWithoutClient(t *testing.T) {
	next := &stubPreferenceRepository{prefs: mondayPrefs(t)}
	repo := NewPreferenceRepository(next, nil, 0)
	ctx := context.Background()
	userID := newUserID(t)

	assert.False(t, repo.IsAvailable())

	prefs, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "09:15", prefs.StartFor(domain.Monday).String())

	_, err = repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, next.findHits)

	require.NoError(t, repo.Save(ctx, userID, domain.DefaultWorkPreferences()))
	assert.Equal(t, 1, next.saved)
	assert.NoError(t, repo.Close())
}

func TestPreferenceRepositoryPropagatesErrors(t *testing.T) {
	ctx := context.Background()
	userID := newUserID(t)

	t.Run("find", func(t *testing.T) {
		next := &stubPreferenceRepository{findErr: domain.ErrPreferencesNotFound}
		repo := NewPreferenceRepository(next, nil, time.Minute)

		_, err := repo.FindByUserID(ctx, userID)
		assert.ErrorIs(t, err, domain.ErrPreferencesNotFound)
	})

	t.Run("save", func(t *testing.T) {
		saveErr := errors.New("db down")
		next := &stubPreferenceRepository{saveErr: saveErr}
		repo := NewPreferenceRepository(next, nil, time.Minute)

		err := repo.Save(ctx, userID, domain.DefaultWorkPreferences())
		assert.ErrorIs(t, err, saveErr)
	})
}

func TestPreferenceRepositoryDisablesOnRedisError(t *testing.T) {
	next := &stubPreferenceRepository{prefs: mondayPrefs(t)}
	repo := NewPreferenceRepository(next, unreachableClient(t), time.Minute)
	ctx := context.Background()

	require.True(t, repo.IsAvailable())

	prefs, err := repo.FindByUserID(ctx, newUserID(t))
	require.NoError(t, err)

	assert.Equal(t, "17:45", prefs.EndFor(domain.Monday).String())
	assert.Equal(t, 1, next.findHits)
	assert.False(t, repo.IsAvailable())
}

func TestNewClientWithoutAddress(t *testing.T) {
	assert.Nil(t, NewClient(context.Background(), Config{}))
}

func TestLocationCache(t *testing.T) {
	c := NewLocationCache(2)

	tokyo, err := c.Load("Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", tokyo.String())

	again, err := c.Load("Asia/Tokyo")
	require.NoError(t, err)
	assert.Same(t, tokyo, again)

	_, err = c.Load("Not/AZone")
	assert.ErrorIs(t, err, domain.ErrInvalidTimezone)
	assert.Equal(t, 1, c.Len())

	_, err = c.Load("UTC")
	require.NoError(t, err)
	_, err = c.Load("Europe/Berlin")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestPreferenceRepositoryRedis(t *testing.T) {
	client := liveClient(t)
	ctx := context.Background()

	t.Run("second read is served from redis", func(t *testing.T) {
		next := &stubPreferenceRepository{prefs: mondayPrefs(t)}
		repo := NewPreferenceRepository(next, client, time.Minute)
		userID := newUserID(t)

		_, err := repo.FindByUserID(ctx, userID)
		require.NoError(t, err)

		cached, err := repo.FindByUserID(ctx, userID)
		require.NoError(t, err)

		assert.Equal(t, 1, next.findHits)
		assert.Equal(t, "09:15", cached.StartFor(domain.Monday).String())
		assert.Equal(t, "17:45", cached.EndFor(domain.Monday).String())

		ttl, err := client.TTL(ctx, KeyPreferences+userID.String()).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.True(t, repo.IsAvailable())
	})

	t.Run("save forces a re-read", func(t *testing.T) {
		next := &stubPreferenceRepository{prefs: mondayPrefs(t)}
		repo := NewPreferenceRepository(next, client, time.Minute)
		userID := newUserID(t)

		_, err := repo.FindByUserID(ctx, userID)
		require.NoError(t, err)

		require.NoError(t, repo.Save(ctx, userID, fridayPrefs(t)))

		exists, err := client.Exists(ctx, KeyPreferences+userID.String()).Result()
		require.NoError(t, err)
		assert.Zero(t, exists)

		prefs, err := repo.FindByUserID(ctx, userID)
		require.NoError(t, err)

		assert.Equal(t, 2, next.findHits)
		assert.Equal(t, "10:00", prefs.StartFor(domain.Friday).String())
		assert.Equal(t, "08:00", prefs.StartFor(domain.Monday).String())
	})

	t.Run("save during a read does not leave stale preferences", func(t *testing.T) {
		next := &stubPreferenceRepository{prefs: mondayPrefs(t)}
		repo := NewPreferenceRepository(next, client, time.Minute)
		userID := newUserID(t)

		next.onFind = func() {
			require.NoError(t, repo.Save(ctx, userID, fridayPrefs(t)))
		}

		stale, err := repo.FindByUserID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "09:15", stale.StartFor(domain.Monday).String())

		exists, err := client.Exists(ctx, KeyPreferences+userID.String()).Result()
		require.NoError(t, err)
		assert.Zero(t, exists)

		fresh, err := repo.FindByUserID(ctx, userID)
		require.NoError(t, err)

		assert.Equal(t, 2, next.findHits)
		assert.Equal(t, "10:00", fresh.StartFor(domain.Friday).String())
		assert.True(t, repo.IsAvailable())
	})
}
