package domain

import "time"

type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// blocks reports whether the slot [start, end) must be rejected because of b.
//
// Boundaries are compared per minute with seconds dropped. The busy interval
// is shrunk by one minute on each side, and the slot is rejected when either
// of its endpoints lands inside the shrunk interval (inclusive), or when it
// duplicates b exactly. Slots that only touch b at a boundary pass.
func (b BusyInterval) blocks(start, end time.Time) bool {
	busyStart := b.Start.Truncate(time.Minute)
	busyEnd := b.End.Truncate(time.Minute)
	start = start.Truncate(time.Minute)
	end = end.Truncate(time.Minute)

	innerStart := busyStart.Add(time.Minute)
	innerEnd := busyEnd.Add(-time.Minute)

	if between(end, innerStart, innerEnd) {
		return true
	}

	if between(start, innerStart, innerEnd) {
		return true
	}

	return start.Equal(busyStart) && end.Equal(busyEnd)
}

func between(t, lo, hi time.Time) bool {
	return !t.Before(lo) && !t.After(hi)
}

// IsFree reports whether slot survives every interval in busy.
func IsFree(slot CandidateSlot, busy []BusyInterval) bool {
	for _, b := range busy {
		if b.blocks(slot.Start(), slot.End()) {
			return false
		}
	}

	return true
}

func busyOnDate(busy []BusyInterval, day time.Time) []BusyInterval {
	var out []BusyInterval

	for _, b := range busy {
		if sameLocalDate(b.Start.In(day.Location()), day) {
			out = append(out, b)
		}
	}

	return out
}
