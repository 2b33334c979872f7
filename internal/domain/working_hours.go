package domain

import (
	"fmt"
	"time"
)

// Weekday is an ISO-8601 weekday: 1 is Monday, 7 is Sunday.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = map[Weekday]string{
	Monday:    "monday",
	Tuesday:   "tuesday",
	Wednesday: "wednesday",
	Thursday:  "thursday",
	Friday:    "friday",
	Saturday:  "saturday",
	Sunday:    "sunday",
}

func NewWeekday(v int) (Weekday, error) {
	w := Weekday(v)
	if _, ok := weekdayNames[w]; !ok {
		return 0, fmt.Errorf("%w: %d", ErrInvalidWeekday, v)
	}

	return w, nil
}

// WeekdayOf returns the ISO weekday of t in its own location.
func WeekdayOf(t time.Time) Weekday {
	if t.Weekday() == time.Sunday {
		return Sunday
	}

	return Weekday(t.Weekday())
}

func (w Weekday) String() string {
	if name, ok := weekdayNames[w]; ok {
		return name
	}

	return fmt.Sprintf("weekday(%d)", int(w))
}

type TimeOfDay struct {
	hour   int
	minute int
}

var (
	DefaultWorkStart = TimeOfDay{hour: 8}
	DefaultWorkEnd   = TimeOfDay{hour: 20}
)

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %02d:%02d", ErrInvalidTimeOfDay, hour, minute)
	}

	return TimeOfDay{hour: hour, minute: minute}, nil
}

func (t TimeOfDay) Hour() int {
	return t.hour
}

func (t TimeOfDay) Minute() int {
	return t.minute
}

func (t TimeOfDay) Minutes() int {
	return t.hour*60 + t.minute
}

// On returns the instant at this time of day on the local date of day.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()

	return time.Date(y, m, d, t.hour, t.minute, 0, 0, day.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

type WorkingHoursEntry struct {
	weekday Weekday
	time    TimeOfDay
}

func NewWorkingHoursEntry(weekday, hour, minute int) (WorkingHoursEntry, error) {
	w, err := NewWeekday(weekday)
	if err != nil {
		return WorkingHoursEntry{}, err
	}

	tod, err := NewTimeOfDay(hour, minute)
	if err != nil {
		return WorkingHoursEntry{}, err
	}

	return WorkingHoursEntry{weekday: w, time: tod}, nil
}

func (e WorkingHoursEntry) Weekday() Weekday {
	return e.weekday
}

func (e WorkingHoursEntry) Time() TimeOfDay {
	return e.time
}

// WorkPreferences holds per-weekday working hours. The zero value is valid
// and resolves every weekday to DefaultWorkStart-DefaultWorkEnd.
type WorkPreferences struct {
	starts map[Weekday]TimeOfDay
	ends   map[Weekday]TimeOfDay
}

func NewWorkPreferences(starts, ends []WorkingHoursEntry) (WorkPreferences, error) {
	startMap, err := indexEntries(starts)
	if err != nil {
		return WorkPreferences{}, fmt.Errorf("start times: %w", err)
	}

	endMap, err := indexEntries(ends)
	if err != nil {
		return WorkPreferences{}, fmt.Errorf("end times: %w", err)
	}

	// Only weekdays with both bounds set are compared. A lone start past the
	// default end leaves that day without slots.
	for w, start := range startMap {
		end, ok := endMap[w]
		if ok && start.Minutes() >= end.Minutes() {
			return WorkPreferences{}, fmt.Errorf("%w: %s", ErrWorkingHoursInverse, w)
		}
	}

	return WorkPreferences{starts: startMap, ends: endMap}, nil
}

func indexEntries(entries []WorkingHoursEntry) (map[Weekday]TimeOfDay, error) {
	m := make(map[Weekday]TimeOfDay, len(entries))
	for _, e := range entries {
		if _, exists := m[e.weekday]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateWeekday, e.weekday)
		}

		m[e.weekday] = e.time
	}

	return m, nil
}

// DefaultWorkPreferences has no explicit entries.
func DefaultWorkPreferences() WorkPreferences {
	return WorkPreferences{}
}

// StartFor resolves the working-hours start for w, falling back to 08:00.
func (p WorkPreferences) StartFor(w Weekday) TimeOfDay {
	if t, ok := p.starts[w]; ok {
		return t
	}

	return DefaultWorkStart
}

// EndFor resolves the working-hours end for w, falling back to 20:00.
func (p WorkPreferences) EndFor(w Weekday) TimeOfDay {
	if t, ok := p.ends[w]; ok {
		return t
	}

	return DefaultWorkEnd
}

// Bounds returns the nominal working-hours start and end on the local date of day.
func (p WorkPreferences) Bounds(day time.Time) (time.Time, time.Time) {
	w := WeekdayOf(day)

	return p.StartFor(w).On(day), p.EndFor(w).On(day)
}

func (p WorkPreferences) IsDefault() bool {
	return len(p.starts) == 0 && len(p.ends) == 0
}

func (p WorkPreferences) StartEntries() []WorkingHoursEntry {
	return sortedEntries(p.starts)
}

func (p WorkPreferences) EndEntries() []WorkingHoursEntry {
	return sortedEntries(p.ends)
}

func sortedEntries(m map[Weekday]TimeOfDay) []WorkingHoursEntry {
	entries := make([]WorkingHoursEntry, 0, len(m))
	for w := Monday; w <= Sunday; w++ {
		if t, ok := m[w]; ok {
			entries = append(entries, WorkingHoursEntry{weekday: w, time: t})
		}
	}

	return entries
}
