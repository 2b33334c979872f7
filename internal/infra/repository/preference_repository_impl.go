package repository

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-availability/internal/domain"
)

type preferenceRepositoryImpl struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) domain.PreferenceRepository {
	return &preferenceRepositoryImpl{
		db: db,
	}
}

func (r *preferenceRepositoryImpl) FindByUserID(ctx context.Context, userID domain.UserID) (domain.WorkPreferences, error) {
	slog.DebugContext(ctx, "finding work preferences",
		"user_id", userID.String(),
	)

	var models []WorkingHoursModel

	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID.String()).
		Order("boundary ASC, weekday ASC").
		Find(&models)
	if result.Error != nil {
		slog.ErrorContext(ctx, "failed to find work preferences",
			"user_id", userID.String(),
			"error", result.Error,
		)

		return domain.WorkPreferences{}, result.Error
	}

	if len(models) == 0 {
		return domain.WorkPreferences{}, domain.ErrPreferencesNotFound
	}

	prefs, err := workingHoursToEntity(models)
	if err != nil {
		slog.ErrorContext(ctx, "failed to convert working hours to entity",
			"user_id", userID.String(),
			"error", err,
		)

		return domain.WorkPreferences{}, err
	}

	return prefs, nil
}

// Save replaces every stored entry of the user.
func (r *preferenceRepositoryImpl) Save(ctx context.Context, userID domain.UserID, prefs domain.WorkPreferences) error {
	slog.DebugContext(ctx, "saving work preferences",
		"user_id", userID.String(),
	)

	models := workingHoursFromEntity(userID, prefs, time.Now().UTC())

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID.String()).Delete(&WorkingHoursModel{}).Error; err != nil {
			return err
		}

		if len(models) == 0 {
			return nil
		}

		return tx.Create(&models).Error
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to save work preferences",
			"user_id", userID.String(),
			"error", err,
		)

		return err
	}

	slog.DebugContext(ctx, "work preferences saved",
		"user_id", userID.String(),
		"entries", len(models),
	)

	return nil
}
