package domain

import (
	"fmt"
	"time"
)

// TimeWindow is an absolute range plus the location in which day boundaries
// and working hours are interpreted.
type TimeWindow struct {
	start    time.Time
	end      time.Time
	location *time.Location
}

// NewTimeWindow does not reject end < start; such a window simply has no days.
func NewTimeWindow(start, end time.Time, location *time.Location) TimeWindow {
	if location == nil {
		location = time.UTC
	}

	return TimeWindow{
		start:    start.In(location),
		end:      end.In(location),
		location: location,
	}
}

func LoadTimezone(name string) (*time.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidTimezone)
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, name)
	}

	return loc, nil
}

func (w TimeWindow) Start() time.Time {
	return w.start
}

func (w TimeWindow) End() time.Time {
	return w.end
}

func (w TimeWindow) Location() *time.Location {
	return w.location
}

func (w TimeWindow) IsMalformed() bool {
	return w.end.Before(w.start)
}

// DiffDays is the number of calendar days between the local start date and
// the local end date.
func (w TimeWindow) DiffDays() int {
	return civilDays(w.start, w.end)
}

func civilDays(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()

	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)

	return int(b.Sub(a).Hours() / 24)
}

func sameLocalDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}
