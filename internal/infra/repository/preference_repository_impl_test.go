package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-availability/internal/domain"
	"github.com/KasumiMercury/primind-availability/internal/infra/repository"
	"github.com/KasumiMercury/primind-availability/internal/testutil"
)

func createValidUserID(t *testing.T) domain.UserID {
	t.Helper()

	id, err := domain.UserIDFromUUID(uuid.Must(uuid.NewV7()))
	require.NoError(t, err)

	return id
}

func entry(t *testing.T, weekday, hour, minute int) domain.WorkingHoursEntry {
	t.Helper()

	e, err := domain.NewWorkingHoursEntry(weekday, hour, minute)
	require.NoError(t, err)

	return e
}

func TestPreferenceFindByUserIDNotFound(t *testing.T) {
	testDB := testutil.SetupMemoryDB(t)
	repo := repository.NewPreferenceRepository(testDB.DB)

	_, err := repo.FindByUserID(context.Background(), createValidUserID(t))

	assert.ErrorIs(t, err, domain.ErrPreferencesNotFound)
}

func TestPreferenceSaveAndFind(t *testing.T) {
	tests := []struct {
		name      string
		starts    func(t *testing.T) []domain.WorkingHoursEntry
		ends      func(t *testing.T) []domain.WorkingHoursEntry
		wantStart map[domain.Weekday]string
		wantEnd   map[domain.Weekday]string
	}{
		{
			name: "monday override only",
			starts: func(t *testing.T) []domain.WorkingHoursEntry {
				return []domain.WorkingHoursEntry{entry(t, 1, 9, 30)}
			},
			ends: func(t *testing.T) []domain.WorkingHoursEntry {
				return []domain.WorkingHoursEntry{entry(t, 1, 17, 0)}
			},
			wantStart: map[domain.Weekday]string{domain.Monday: "09:30", domain.Tuesday: "08:00"},
			wantEnd:   map[domain.Weekday]string{domain.Monday: "17:00", domain.Tuesday: "20:00"},
		},
		{
			name: "start only for weekend",
			starts: func(t *testing.T) []domain.WorkingHoursEntry {
				return []domain.WorkingHoursEntry{entry(t, 6, 10, 0), entry(t, 7, 11, 0)}
			},
			ends: func(t *testing.T) []domain.WorkingHoursEntry {
				return nil
			},
			wantStart: map[domain.Weekday]string{domain.Saturday: "10:00", domain.Sunday: "11:00"},
			wantEnd:   map[domain.Weekday]string{domain.Saturday: "20:00", domain.Sunday: "20:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDB := testutil.SetupMemoryDB(t)
			repo := repository.NewPreferenceRepository(testDB.DB)
			ctx := context.Background()
			userID := createValidUserID(t)

			prefs, err := domain.NewWorkPreferences(tt.starts(t), tt.ends(t))
			require.NoError(t, err)

			require.NoError(t, repo.Save(ctx, userID, prefs))

			found, err := repo.FindByUserID(ctx, userID)
			require.NoError(t, err)

			for w, want := range tt.wantStart {
				assert.Equal(t, want, found.StartFor(w).String(), "start %s", w)
			}

			for w, want := range tt.wantEnd {
				assert.Equal(t, want, found.EndFor(w).String(), "end %s", w)
			}
		})
	}
}

func TestPreferenceSaveReplacesEntries(t *testing.T) {
	testDB := testutil.SetupMemoryDB(t)
	repo := repository.NewPreferenceRepository(testDB.DB)
	ctx := context.Background()
	userID := createValidUserID(t)

	first, err := domain.NewWorkPreferences(
		[]domain.WorkingHoursEntry{entry(t, 1, 9, 0), entry(t, 2, 9, 0)},
		nil,
	)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, userID, first))

	second, err := domain.NewWorkPreferences(
		[]domain.WorkingHoursEntry{entry(t, 3, 7, 0)},
		nil,
	)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, userID, second))

	found, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, "08:00", found.StartFor(domain.Monday).String())
	assert.Equal(t, "08:00", found.StartFor(domain.Tuesday).String())
	assert.Equal(t, "07:00", found.StartFor(domain.Wednesday).String())
	assert.Len(t, found.StartEntries(), 1)
}

func TestPreferenceSaveIsolatesUsers(t *testing.T) {
	testDB := testutil.SetupMemoryDB(t)
	repo := repository.NewPreferenceRepository(testDB.DB)
	ctx := context.Background()

	alice := createValidUserID(t)
	bob := createValidUserID(t)

	prefs, err := domain.NewWorkPreferences([]domain.WorkingHoursEntry{entry(t, 5, 6, 0)}, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, alice, prefs))

	_, err = repo.FindByUserID(ctx, bob)
	assert.ErrorIs(t, err, domain.ErrPreferencesNotFound)
}

func TestPreferenceRepositoryPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDB(t)
	defer testDB.TeardownTestDB(t)

	testDB.CleanTables(t)

	repo := repository.NewPreferenceRepository(testDB.DB)
	ctx := context.Background()
	userID := createValidUserID(t)

	prefs, err := domain.NewWorkPreferences(
		[]domain.WorkingHoursEntry{entry(t, 1, 9, 0)},
		[]domain.WorkingHoursEntry{entry(t, 1, 18, 0)},
	)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, userID, prefs))

	found, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "09:00", found.StartFor(domain.Monday).String())
	assert.Equal(t, "18:00", found.EndFor(domain.Monday).String())
}
