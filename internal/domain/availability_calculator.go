package domain

import "time"

type AvailabilityCalculator struct{}

func NewAvailabilityCalculator() *AvailabilityCalculator {
	return &AvailabilityCalculator{}
}

type WindowSlots struct {
	Slots []CandidateSlot
}

// CalculateDaySlots produces the open slots of a single day.
//
// The caller is expected to pass only the busy intervals of that day.
// A nil location is treated as UTC.
func (c *AvailabilityCalculator) CalculateDaySlots(
	duration SlotDuration,
	prefs WorkPreferences,
	location *time.Location,
	req DayRequest,
) []CandidateSlot {
	if location == nil {
		location = time.UTC
	}

	g := daySlotGenerator{
		duration: duration,
		prefs:    prefs,
		location: location,
	}

	return g.generate(req)
}

// CalculateWindowSlots splits window into local calendar days and
// concatenates the slots of each day in order.
//
// 1. Same local date: one call as both first and last day with every busy interval.
//
// 2. Otherwise one call per date, each receiving only the busy intervals that
// start on it:
//   - day 0 keeps the window start as anchor and is the first day
//   - the final date is the last day, clipped to the window end
//   - days in between use the full working hours
func (c *AvailabilityCalculator) CalculateWindowSlots(
	window TimeWindow,
	duration SlotDuration,
	prefs WorkPreferences,
	busy []BusyInterval,
) WindowSlots {
	if window.IsMalformed() {
		return WindowSlots{}
	}

	loc := window.Location()
	diffDays := window.DiffDays()

	if diffDays < 1 {
		return WindowSlots{Slots: c.CalculateDaySlots(duration, prefs, loc, DayRequest{
			Anchor:     window.Start(),
			IsFirstDay: true,
			IsLastDay:  true,
			WindowEnd:  window.End(),
			Busy:       busy,
		})}
	}

	start := window.Start()
	y, m, d := start.Date()

	var slots []CandidateSlot

	for i := 0; i <= diffDays; i++ {
		anchor := start
		if i > 0 {
			anchor = time.Date(y, m, d+i, 0, 0, 0, 0, loc)
		}

		daySlots := c.CalculateDaySlots(duration, prefs, loc, DayRequest{
			Anchor:     anchor,
			IsFirstDay: i == 0,
			IsLastDay:  i == diffDays,
			WindowEnd:  window.End(),
			Busy:       busyOnDate(busy, anchor),
		})

		slots = append(slots, daySlots...)
	}

	return WindowSlots{Slots: slots}
}
