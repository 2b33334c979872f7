package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KasumiMercury/primind-availability/internal/domain"
)

func (uc *availabilityUseCaseImpl) PutWorkPreferences(ctx context.Context, input PutWorkPreferencesInput) (WorkPreferencesOutput, error) {
	slog.DebugContext(ctx, "replacing work preferences",
		"user_id", input.UserID,
		"starts_count", len(input.Starts),
		"ends_count", len(input.Ends),
	)

	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return WorkPreferencesOutput{}, NewValidationError("user_id", err.Error())
	}

	starts, err := toEntries("starts", input.Starts)
	if err != nil {
		return WorkPreferencesOutput{}, err
	}

	ends, err := toEntries("ends", input.Ends)
	if err != nil {
		return WorkPreferencesOutput{}, err
	}

	prefs, err := domain.NewWorkPreferences(starts, ends)
	if err != nil {
		return WorkPreferencesOutput{}, NewValidationError("preferences", err.Error())
	}

	if err := uc.prefRepo.Save(ctx, userID, prefs); err != nil {
		slog.ErrorContext(ctx, "failed to save work preferences",
			"error", err,
			"user_id", input.UserID,
		)

		return WorkPreferencesOutput{}, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	slog.DebugContext(ctx, "work preferences replaced",
		"user_id", input.UserID,
	)

	return FromPreferences(userID, prefs), nil
}

func toEntries(field string, inputs []WorkingHoursInput) ([]domain.WorkingHoursEntry, error) {
	entries := make([]domain.WorkingHoursEntry, 0, len(inputs))
	for i, in := range inputs {
		e, err := domain.NewWorkingHoursEntry(in.Weekday, in.Hour, in.Minute)
		if err != nil {
			return nil, NewValidationError(fmt.Sprintf("%s[%d]", field, i), err.Error())
		}

		entries = append(entries, e)
	}

	return entries, nil
}

func (uc *availabilityUseCaseImpl) GetWorkPreferences(ctx context.Context, input GetWorkPreferencesInput) (WorkPreferencesOutput, error) {
	slog.DebugContext(ctx, "getting work preferences",
		"user_id", input.UserID,
	)

	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return WorkPreferencesOutput{}, NewValidationError("user_id", err.Error())
	}

	prefs, err := uc.prefRepo.FindByUserID(ctx, userID)
	if errors.Is(err, domain.ErrPreferencesNotFound) {
		return FromPreferences(userID, domain.DefaultWorkPreferences()), nil
	}

	if err != nil {
		slog.ErrorContext(ctx, "failed to get work preferences",
			"error", err,
			"user_id", input.UserID,
		)

		return WorkPreferencesOutput{}, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return FromPreferences(userID, prefs), nil
}

func (uc *availabilityUseCaseImpl) CreateBusyEvent(ctx context.Context, input CreateBusyEventInput) (BusyEventOutput, error) {
	slog.DebugContext(ctx, "creating busy event",
		"user_id", input.UserID,
		"start", input.Start,
		"end", input.End,
	)

	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return BusyEventOutput{}, NewValidationError("user_id", err.Error())
	}

	tzName := input.Timezone
	if tzName == "" {
		tzName = uc.opts.DefaultTimezone
	}

	event, err := domain.NewBusyEvent(userID, input.Start, input.End, tzName)
	if err != nil {
		return BusyEventOutput{}, validationFromDomain("busy_event", err)
	}

	if err := uc.eventRepo.Save(ctx, event); err != nil {
		slog.ErrorContext(ctx, "failed to save busy event",
			"error", err,
			"user_id", input.UserID,
			"busy_event_id", event.ID().String(),
		)

		return BusyEventOutput{}, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	slog.DebugContext(ctx, "busy event created",
		"busy_event_id", event.ID().String(),
	)

	return FromBusyEvent(event), nil
}

func (uc *availabilityUseCaseImpl) ListBusyEvents(ctx context.Context, input ListBusyEventsInput) (BusyEventsOutput, error) {
	slog.DebugContext(ctx, "listing busy events",
		"user_id", input.UserID,
		"start", input.Start,
		"end", input.End,
	)

	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return BusyEventsOutput{}, NewValidationError("user_id", err.Error())
	}

	if input.Start.After(input.End) {
		return BusyEventsOutput{}, NewValidationError("time_range", domain.ErrInvalidTimeRange.Error())
	}

	events, err := uc.eventRepo.FindByUserIDAndTimeRange(ctx, userID, domain.TimeRange{
		Start: input.Start,
		End:   input.End,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to list busy events",
			"error", err,
			"user_id", input.UserID,
		)

		return BusyEventsOutput{}, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	slog.DebugContext(ctx, "busy events listed",
		"user_id", input.UserID,
		"count", len(events),
	)

	return FromBusyEvents(events), nil
}

func (uc *availabilityUseCaseImpl) DeleteBusyEvent(ctx context.Context, input DeleteBusyEventInput) error {
	slog.DebugContext(ctx, "deleting busy event",
		"busy_event_id", input.ID,
	)

	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return NewValidationError("user_id", err.Error())
	}

	eventID, err := domain.BusyEventIDFromString(input.ID)
	if err != nil {
		return validationFromDomain("id", err)
	}

	if err := uc.eventRepo.Delete(ctx, userID, eventID); err != nil {
		if !errors.Is(err, domain.ErrBusyEventNotFound) {
			slog.ErrorContext(ctx, "failed to delete busy event",
				"error", err,
				"busy_event_id", input.ID,
			)

			return fmt.Errorf("%w: %v", ErrInternalError, err)
		}

		slog.InfoContext(ctx, "busy event not found for deletion (idempotency)",
			"busy_event_id", input.ID,
		)
	}

	slog.DebugContext(ctx, "busy event deleted",
		"busy_event_id", input.ID,
	)

	return nil
}
