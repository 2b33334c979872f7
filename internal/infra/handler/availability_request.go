package handler

import "time"

type GetAvailabilityRequest struct {
	Start       time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	End         time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	Timezone    string    `form:"timezone"`
	SlotMinutes int       `form:"slot_minutes" binding:"omitempty,min=1,max=1440"`
}

type WorkingHoursRequest struct {
	Weekday int `json:"weekday"`
	Hour    int `json:"hour"`
	Minute  int `json:"minute"`
}

type PutWorkPreferencesRequest struct {
	Starts []WorkingHoursRequest `json:"starts"`
	Ends   []WorkingHoursRequest `json:"ends"`
}

type CreateBusyEventRequest struct {
	Start    time.Time `json:"start" binding:"required"`
	End      time.Time `json:"end" binding:"required"`
	Timezone string    `json:"timezone"`
}

type ListBusyEventsRequest struct {
	Start time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	End   time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}
