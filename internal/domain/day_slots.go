package domain

import "time"

// DayRequest identifies one local calendar day of a window.
//
// Anchor's local date selects the day. Its time of day only matters when
// IsFirstDay is set, in which case Anchor is the window start. WindowEnd is
// read only when IsLastDay is set.
type DayRequest struct {
	Anchor     time.Time
	IsFirstDay bool
	IsLastDay  bool
	WindowEnd  time.Time
	Busy       []BusyInterval
}

type daySlotGenerator struct {
	duration SlotDuration
	prefs    WorkPreferences
	location *time.Location
}

func (g daySlotGenerator) generate(req DayRequest) []CandidateSlot {
	anchor := req.Anchor.In(g.location)
	nominalStart, nominalEnd := g.prefs.Bounds(anchor)

	start, end := g.effectiveBounds(anchor, nominalStart, nominalEnd, req)
	if !end.After(start) {
		return nil
	}

	return g.tile(start, end, req.Busy)
}

func (g daySlotGenerator) effectiveBounds(anchor, nominalStart, nominalEnd time.Time, req DayRequest) (time.Time, time.Time) {
	switch {
	case req.IsFirstDay && req.IsLastDay:
		if anchor.After(nominalEnd) {
			return nominalEnd, nominalEnd
		}

		start := latest(g.duration.CeilToGrid(anchor), nominalStart)
		end := earliest(req.WindowEnd.In(g.location), nominalEnd)

		return start, end
	case req.IsFirstDay:
		if anchor.After(nominalEnd) {
			return nominalEnd, nominalEnd
		}

		return latest(g.duration.CeilToGrid(anchor), nominalStart), nominalEnd
	case req.IsLastDay:
		end := earliest(g.duration.FloorToGrid(req.WindowEnd.In(g.location)), nominalEnd)

		return nominalStart, end
	default:
		return nominalStart, nominalEnd
	}
}

// tile cuts [start, end) into consecutive slots, dropping a trailing partial
// slot, and keeps the ones that survive the busy filter.
func (g daySlotGenerator) tile(start, end time.Time, busy []BusyInterval) []CandidateSlot {
	step := g.duration.Minutes()
	totalMinutes := int(end.Sub(start) / time.Minute)

	slots := make([]CandidateSlot, 0, totalMinutes/step)

	for i := 0; i+step <= totalMinutes; i += step {
		slot := NewCandidateSlot(start.Add(time.Duration(i)*time.Minute), g.duration)
		if !IsFree(slot, busy) {
			continue
		}

		slots = append(slots, slot)
	}

	return slots
}

func latest(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}

	return b
}

func earliest(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}

	return b
}
