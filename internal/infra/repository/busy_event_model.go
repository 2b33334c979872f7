package repository

import (
	"time"

	"github.com/KasumiMercury/primind-availability/internal/domain"
)

type BusyEventModel struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey"`
	UserID    string    `gorm:"column:user_id;type:uuid;not null;index:idx_busy_events_user_start"`
	StartAt   time.Time `gorm:"column:start_at;not null;index:idx_busy_events_user_start"`
	EndAt     time.Time `gorm:"column:end_at;not null"`
	Timezone  string    `gorm:"column:timezone;type:varchar(64);not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (BusyEventModel) TableName() string {
	return "busy_events"
}

func (m *BusyEventModel) ToEntity() (*domain.BusyEvent, error) {
	id, err := domain.BusyEventIDFromString(m.ID)
	if err != nil {
		return nil, err
	}

	userID, err := domain.UserIDFromString(m.UserID)
	if err != nil {
		return nil, err
	}

	return domain.ReconstituteBusyEvent(
		id,
		userID,
		m.StartAt,
		m.EndAt,
		m.Timezone,
		m.CreatedAt,
	), nil
}

func BusyEventFromEntity(e *domain.BusyEvent) *BusyEventModel {
	return &BusyEventModel{
		ID:        e.ID().String(),
		UserID:    e.UserID().String(),
		StartAt:   e.Start().UTC(),
		EndAt:     e.End().UTC(),
		Timezone:  e.Timezone(),
		CreatedAt: e.CreatedAt().UTC(),
	}
}
