package app

import "time"

// GetAvailabilityInput leaves Timezone and SlotMinutes zero to use the
// configured defaults.
type GetAvailabilityInput struct {
	UserID      string
	Start       time.Time
	End         time.Time
	Timezone    string
	SlotMinutes int
}

type WorkingHoursInput struct {
	Weekday int
	Hour    int
	Minute  int
}

type PutWorkPreferencesInput struct {
	UserID string
	Starts []WorkingHoursInput
	Ends   []WorkingHoursInput
}

type GetWorkPreferencesInput struct {
	UserID string
}

type CreateBusyEventInput struct {
	UserID   string
	Start    time.Time
	End      time.Time
	Timezone string
}

type ListBusyEventsInput struct {
	UserID string
	Start  time.Time
	End    time.Time
}

type DeleteBusyEventInput struct {
	UserID string
	ID     string
}
