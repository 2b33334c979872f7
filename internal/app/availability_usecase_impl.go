package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/KasumiMercury/primind-availability/internal/domain"
	"github.com/KasumiMercury/primind-availability/internal/infra/cache"
	"github.com/KasumiMercury/primind-availability/internal/infra/pubsub"
	"github.com/KasumiMercury/primind-availability/internal/observability/metrics"
)

const tracerName = "github.com/KasumiMercury/primind-availability/internal/app"

const (
	DefaultTimezone    = "UTC"
	DefaultSlotMinutes = 30
)

// Options configures the availability pipeline. Zero values fall back to
// UTC, 30-minute slots, no window limit and no fetch timeout. Publisher and
// Metrics are optional.
type Options struct {
	DefaultTimezone    string
	DefaultSlotMinutes int
	MaxWindowDays      int
	FetchTimeout       time.Duration

	Publisher pubsub.Publisher
	Metrics   *metrics.AvailabilityMetrics
	Locations *cache.LocationCache
}

type availabilityUseCaseImpl struct {
	prefRepo   domain.PreferenceRepository
	eventRepo  domain.BusyEventRepository
	calculator *domain.AvailabilityCalculator
	opts       Options
	tracer     trace.Tracer
}

func NewAvailabilityUseCase(
	prefRepo domain.PreferenceRepository,
	eventRepo domain.BusyEventRepository,
	opts Options,
) AvailabilityUseCase {
	if opts.DefaultTimezone == "" {
		opts.DefaultTimezone = DefaultTimezone
	}

	if opts.DefaultSlotMinutes == 0 {
		opts.DefaultSlotMinutes = DefaultSlotMinutes
	}

	if opts.Locations == nil {
		opts.Locations = cache.NewLocationCache(cache.DefaultLocationCacheSize)
	}

	return &availabilityUseCaseImpl{
		prefRepo:   prefRepo,
		eventRepo:  eventRepo,
		calculator: domain.NewAvailabilityCalculator(),
		opts:       opts,
		tracer:     otel.Tracer(tracerName),
	}
}

func (uc *availabilityUseCaseImpl) GetAvailability(ctx context.Context, input GetAvailabilityInput) (AvailabilityOutput, error) {
	slog.DebugContext(ctx, "computing availability",
		"user_id", input.UserID,
		"start", input.Start,
		"end", input.End,
		"timezone", input.Timezone,
		"slot_minutes", input.SlotMinutes,
	)

	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return AvailabilityOutput{}, NewValidationError("user_id", err.Error())
	}

	tzName := input.Timezone
	if tzName == "" {
		tzName = uc.opts.DefaultTimezone
	}

	loc, err := uc.opts.Locations.Load(tzName)
	if err != nil {
		return AvailabilityOutput{}, validationFromDomain("timezone", err)
	}

	minutes := input.SlotMinutes
	if minutes == 0 {
		minutes = uc.opts.DefaultSlotMinutes
	}

	duration, err := domain.NewSlotDuration(minutes)
	if err != nil {
		return AvailabilityOutput{}, validationFromDomain("slot_minutes", err)
	}

	if input.End.Before(input.Start) {
		return AvailabilityOutput{}, NewValidationError("time_range", domain.ErrInvalidTimeRange.Error())
	}

	if limit := uc.opts.MaxWindowDays; limit > 0 && input.End.Sub(input.Start) > time.Duration(limit)*24*time.Hour {
		return AvailabilityOutput{}, NewValidationError("time_range",
			fmt.Sprintf("window must not exceed %d days", limit))
	}

	ctx, span := uc.tracer.Start(ctx, "GetAvailability", trace.WithAttributes(
		attribute.String("user_id", userID.String()),
		attribute.String("timezone", tzName),
		attribute.Int("slot_minutes", duration.Minutes()),
	))
	defer span.End()

	began := time.Now()

	output := AvailabilityOutput{
		Slots:       []SlotOutput{},
		Timezone:    tzName,
		SlotMinutes: duration.Minutes(),
	}

	window := domain.NewTimeWindow(input.Start, input.End, loc)

	var slots []domain.CandidateSlot

	prefs, busy, err := uc.fetchInputs(ctx, userID, input.Start, input.End)
	if err != nil {
		slog.WarnContext(ctx, "availability inputs unavailable, returning no slots",
			"user_id", userID.String(),
			"error", err,
		)

		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")

		output.Degraded = true
	} else {
		slots = uc.calculator.CalculateWindowSlots(window, duration, prefs, busy).Slots
		output.Slots = FromSlots(slots, loc)
	}

	output.Count = int32(len(output.Slots)) //nolint:gosec

	uc.opts.Metrics.ObserveComputation(time.Since(began), len(output.Slots), output.Degraded)
	span.SetAttributes(
		attribute.Int("slot_count", len(output.Slots)),
		attribute.Bool("degraded", output.Degraded),
	)

	uc.publishComputed(ctx, userID, window, duration, tzName, slots, output.Degraded)

	slog.DebugContext(ctx, "availability computed",
		"user_id", userID.String(),
		"count", output.Count,
		"degraded", output.Degraded,
	)

	return output, nil
}

// fetchInputs loads preferences and busy events concurrently. Missing
// preferences resolve to the defaults; events with end <= start are dropped.
func (uc *availabilityUseCaseImpl) fetchInputs(
	ctx context.Context,
	userID domain.UserID,
	start, end time.Time,
) (domain.WorkPreferences, []domain.BusyInterval, error) {
	if uc.opts.FetchTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, uc.opts.FetchTimeout)
		defer cancel()
	}

	var (
		prefs  domain.WorkPreferences
		events []*domain.BusyEvent
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := uc.prefRepo.FindByUserID(gctx, userID)
		if errors.Is(err, domain.ErrPreferencesNotFound) {
			slog.DebugContext(gctx, "no stored work preferences, using defaults",
				"user_id", userID.String(),
			)

			prefs = domain.DefaultWorkPreferences()

			return nil
		}

		if err != nil {
			return fmt.Errorf("fetch work preferences: %w", err)
		}

		prefs = p

		return nil
	})

	g.Go(func() error {
		e, err := uc.eventRepo.FindByUserIDAndTimeRange(gctx, userID, domain.TimeRange{Start: start, End: end})
		if err != nil {
			return fmt.Errorf("fetch busy events: %w", err)
		}

		events = e

		return nil
	})

	if err := g.Wait(); err != nil {
		return domain.WorkPreferences{}, nil, err
	}

	busy := make([]domain.BusyInterval, 0, len(events))
	for _, e := range events {
		if !e.End().After(e.Start()) {
			continue
		}

		busy = append(busy, e.Interval())
	}

	return prefs, busy, nil
}

func (uc *availabilityUseCaseImpl) publishComputed(
	ctx context.Context,
	userID domain.UserID,
	window domain.TimeWindow,
	duration domain.SlotDuration,
	tzName string,
	slots []domain.CandidateSlot,
	degraded bool,
) {
	if uc.opts.Publisher == nil {
		return
	}

	loc := window.Location()

	days := make([]pubsub.EventDay, 0)
	for _, d := range domain.GroupSlotsByDay(slots, loc) {
		day := pubsub.EventDay{
			Date:  d.Date.Format(time.DateOnly),
			Slots: make([]pubsub.EventSlot, 0, len(d.Slots)),
		}

		for _, s := range d.Slots {
			day.Slots = append(day.Slots, pubsub.EventSlot{
				ID:    s.ID().String(),
				Start: s.Start().In(loc),
				End:   s.End().In(loc),
			})
		}

		days = append(days, day)
	}

	event := pubsub.AvailabilityComputedEvent{
		UserID:      userID.String(),
		WindowStart: window.Start(),
		WindowEnd:   window.End(),
		Timezone:    tzName,
		SlotMinutes: duration.Minutes(),
		SlotCount:   len(slots),
		Degraded:    degraded,
		Days:        days,
		ComputedAt:  time.Now().UTC(),
	}

	if err := uc.opts.Publisher.PublishAvailabilityComputed(ctx, event); err != nil {
		slog.ErrorContext(ctx, "failed to publish availability computed event",
			"user_id", userID.String(),
			"error", err.Error(),
		)
	}
}
