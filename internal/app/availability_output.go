package app

import (
	"time"

	"github.com/KasumiMercury/primind-availability/internal/domain"
)

type SlotOutput struct {
	ID    string
	Start time.Time
	End   time.Time
}

type AvailabilityOutput struct {
	Slots       []SlotOutput
	Count       int32
	Timezone    string
	SlotMinutes int
	Degraded    bool
}

// WorkingDayOutput is the resolved working hours of one weekday, HH:MM.
type WorkingDayOutput struct {
	Weekday int
	Name    string
	Start   string
	End     string
}

type WorkPreferencesOutput struct {
	UserID    string
	Days      []WorkingDayOutput
	IsDefault bool
}

type BusyEventOutput struct {
	ID        string
	UserID    string
	Start     time.Time
	End       time.Time
	Timezone  string
	CreatedAt time.Time
}

type BusyEventsOutput struct {
	BusyEvents []BusyEventOutput
	Count      int32
}

// FromSlots renders slot instants in loc.
func FromSlots(slots []domain.CandidateSlot, loc *time.Location) []SlotOutput {
	outputs := make([]SlotOutput, 0, len(slots))
	for _, s := range slots {
		outputs = append(outputs, SlotOutput{
			ID:    s.ID().String(),
			Start: s.Start().In(loc),
			End:   s.End().In(loc),
		})
	}

	return outputs
}

func FromPreferences(userID domain.UserID, prefs domain.WorkPreferences) WorkPreferencesOutput {
	days := make([]WorkingDayOutput, 0, 7)
	for w := domain.Monday; w <= domain.Sunday; w++ {
		days = append(days, WorkingDayOutput{
			Weekday: int(w),
			Name:    w.String(),
			Start:   prefs.StartFor(w).String(),
			End:     prefs.EndFor(w).String(),
		})
	}

	return WorkPreferencesOutput{
		UserID:    userID.String(),
		Days:      days,
		IsDefault: prefs.IsDefault(),
	}
}

func FromBusyEvent(event *domain.BusyEvent) BusyEventOutput {
	return BusyEventOutput{
		ID:        event.ID().String(),
		UserID:    event.UserID().String(),
		Start:     event.Start(),
		End:       event.End(),
		Timezone:  event.Timezone(),
		CreatedAt: event.CreatedAt(),
	}
}

func FromBusyEvents(events []*domain.BusyEvent) BusyEventsOutput {
	outputs := make([]BusyEventOutput, 0, len(events))
	for _, e := range events {
		outputs = append(outputs, FromBusyEvent(e))
	}

	return BusyEventsOutput{
		BusyEvents: outputs,
		Count:      int32(len(outputs)), //nolint:gosec
	}
}
