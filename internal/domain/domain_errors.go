package domain

import "errors"

var (
	ErrBusyEventNotFound   = errors.New("busy event not found")
	ErrPreferencesNotFound = errors.New("work preferences not found")

	ErrInvalidTimeRange = errors.New("invalid time range: start must be before end")
	ErrInvalidTimezone  = errors.New("invalid timezone")

	ErrInvalidWeekday      = errors.New("invalid weekday: must be between 1 (Monday) and 7 (Sunday)")
	ErrInvalidTimeOfDay    = errors.New("invalid time of day: hour must be 0-23 and minute 0-59")
	ErrDuplicateWeekday    = errors.New("duplicate weekday entry")
	ErrWorkingHoursInverse = errors.New("working hours start must be before end")

	ErrInvalidBusyEventID = errors.New("invalid busy event ID")
)
