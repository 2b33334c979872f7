package handler

import (
	"time"

	"github.com/KasumiMercury/primind-availability/internal/app"
)

type SlotResponse struct {
	ID    string    `json:"id"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type AvailabilityResponse struct {
	Slots       []SlotResponse `json:"slots"`
	Count       int32          `json:"count"`
	Timezone    string         `json:"timezone"`
	SlotMinutes int            `json:"slot_minutes"`
	Degraded    bool           `json:"degraded"`
}

type WorkingDayResponse struct {
	Weekday int    `json:"weekday"`
	Name    string `json:"name"`
	Start   string `json:"start"` // HH:MM
	End     string `json:"end"`   // HH:MM
}

type WorkPreferencesResponse struct {
	UserID    string               `json:"user_id"`
	Days      []WorkingDayResponse `json:"days"`
	IsDefault bool                 `json:"is_default"`
}

type BusyEventResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
}

type BusyEventsResponse struct {
	BusyEvents []BusyEventResponse `json:"busy_events"`
	Count      int32               `json:"count"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func FromAvailabilityDTO(output app.AvailabilityOutput) AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(output.Slots))
	for _, s := range output.Slots {
		slots = append(slots, SlotResponse{
			ID:    s.ID,
			Start: s.Start,
			End:   s.End,
		})
	}

	return AvailabilityResponse{
		Slots:       slots,
		Count:       output.Count,
		Timezone:    output.Timezone,
		SlotMinutes: output.SlotMinutes,
		Degraded:    output.Degraded,
	}
}

func FromPreferencesDTO(output app.WorkPreferencesOutput) WorkPreferencesResponse {
	days := make([]WorkingDayResponse, 0, len(output.Days))
	for _, d := range output.Days {
		days = append(days, WorkingDayResponse{
			Weekday: d.Weekday,
			Name:    d.Name,
			Start:   d.Start,
			End:     d.End,
		})
	}

	return WorkPreferencesResponse{
		UserID:    output.UserID,
		Days:      days,
		IsDefault: output.IsDefault,
	}
}

func FromBusyEventDTO(output app.BusyEventOutput) BusyEventResponse {
	return BusyEventResponse{
		ID:        output.ID,
		UserID:    output.UserID,
		Start:     output.Start,
		End:       output.End,
		Timezone:  output.Timezone,
		CreatedAt: output.CreatedAt,
	}
}

func FromBusyEventDTOs(output app.BusyEventsOutput) BusyEventsResponse {
	events := make([]BusyEventResponse, 0, len(output.BusyEvents))
	for _, e := range output.BusyEvents {
		events = append(events, FromBusyEventDTO(e))
	}

	return BusyEventsResponse{
		BusyEvents: events,
		Count:      output.Count,
	}
}
