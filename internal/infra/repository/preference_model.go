package repository

import (
	"time"

	"github.com/KasumiMercury/primind-availability/internal/domain"
)

const (
	boundaryStart = "start"
	boundaryEnd   = "end"
)

// WorkingHoursModel stores one boundary (start or end) of one weekday.
type WorkingHoursModel struct {
	UserID    string    `gorm:"column:user_id;type:uuid;primaryKey"`
	Boundary  string    `gorm:"column:boundary;type:varchar(8);primaryKey"`
	Weekday   int       `gorm:"column:weekday;type:smallint;primaryKey"`
	Hour      int       `gorm:"column:hour;type:smallint;not null"`
	Minute    int       `gorm:"column:minute;type:smallint;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (WorkingHoursModel) TableName() string {
	return "working_hours"
}

func workingHoursFromEntity(userID domain.UserID, prefs domain.WorkPreferences, now time.Time) []WorkingHoursModel {
	starts := prefs.StartEntries()
	ends := prefs.EndEntries()

	models := make([]WorkingHoursModel, 0, len(starts)+len(ends))

	appendEntries := func(boundary string, entries []domain.WorkingHoursEntry) {
		for _, e := range entries {
			models = append(models, WorkingHoursModel{
				UserID:    userID.String(),
				Boundary:  boundary,
				Weekday:   int(e.Weekday()),
				Hour:      e.Time().Hour(),
				Minute:    e.Time().Minute(),
				UpdatedAt: now,
			})
		}
	}

	appendEntries(boundaryStart, starts)
	appendEntries(boundaryEnd, ends)

	return models
}

func workingHoursToEntity(models []WorkingHoursModel) (domain.WorkPreferences, error) {
	var starts, ends []domain.WorkingHoursEntry

	for _, m := range models {
		entry, err := domain.NewWorkingHoursEntry(m.Weekday, m.Hour, m.Minute)
		if err != nil {
			return domain.WorkPreferences{}, err
		}

		if m.Boundary == boundaryStart {
			starts = append(starts, entry)
		} else {
			ends = append(ends, entry)
		}
	}

	return domain.NewWorkPreferences(starts, ends)
}
