package domain

import (
	"context"
	"time"
)

type TimeRange struct {
	Start time.Time
	End   time.Time
}

// PreferenceRepository returns ErrPreferencesNotFound when a user has never
// stored working hours.
type PreferenceRepository interface {
	FindByUserID(ctx context.Context, userID UserID) (WorkPreferences, error)
	Save(ctx context.Context, userID UserID, prefs WorkPreferences) error
}

type BusyEventRepository interface {
	Save(ctx context.Context, event *BusyEvent) error
	FindByUserIDAndTimeRange(ctx context.Context, userID UserID, timeRange TimeRange) ([]*BusyEvent, error)
	Delete(ctx context.Context, userID UserID, id BusyEventID) error
}
