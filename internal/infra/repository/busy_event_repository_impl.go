package repository

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-availability/internal/domain"
)

type busyEventRepositoryImpl struct {
	db *gorm.DB
}

func NewBusyEventRepository(db *gorm.DB) domain.BusyEventRepository {
	return &busyEventRepositoryImpl{
		db: db,
	}
}

func (r *busyEventRepositoryImpl) Save(ctx context.Context, event *domain.BusyEvent) error {
	slog.DebugContext(ctx, "saving busy event",
		"busy_event_id", event.ID().String(),
	)

	if err := r.db.WithContext(ctx).Create(BusyEventFromEntity(event)).Error; err != nil {
		slog.ErrorContext(ctx, "failed to save busy event",
			"busy_event_id", event.ID().String(),
			"error", err,
		)

		return err
	}

	return nil
}

// FindByUserIDAndTimeRange returns events overlapping the range, ordered by start.
func (r *busyEventRepositoryImpl) FindByUserIDAndTimeRange(
	ctx context.Context,
	userID domain.UserID,
	timeRange domain.TimeRange,
) ([]*domain.BusyEvent, error) {
	slog.DebugContext(ctx, "finding busy events by time range",
		"user_id", userID.String(),
		"start", timeRange.Start,
		"end", timeRange.End,
	)

	var models []BusyEventModel

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND start_at < ? AND end_at > ?", userID.String(), timeRange.End.UTC(), timeRange.Start.UTC()).
		Order("start_at ASC").
		Find(&models)
	if result.Error != nil {
		slog.ErrorContext(ctx, "failed to find busy events by time range",
			"user_id", userID.String(),
			"error", result.Error,
		)

		return nil, result.Error
	}

	events := make([]*domain.BusyEvent, 0, len(models))
	for _, m := range models {
		event, err := m.ToEntity()
		if err != nil {
			slog.ErrorContext(ctx, "failed to convert model to entity",
				"busy_event_id", m.ID,
				"error", err,
			)

			return nil, err
		}

		events = append(events, event)
	}

	slog.DebugContext(ctx, "busy events found",
		"user_id", userID.String(),
		"count", len(events),
	)

	return events, nil
}

func (r *busyEventRepositoryImpl) Delete(ctx context.Context, userID domain.UserID, id domain.BusyEventID) error {
	slog.DebugContext(ctx, "deleting busy event",
		"busy_event_id", id.String(),
	)

	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id.String(), userID.String()).
		Delete(&BusyEventModel{})
	if result.Error != nil {
		slog.ErrorContext(ctx, "failed to delete busy event",
			"busy_event_id", id.String(),
			"error", result.Error,
		)

		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.ErrBusyEventNotFound
	}

	return nil
}
