package domain

import "time"

type CandidateSlot struct {
	id    SlotID
	start time.Time
	end   time.Time
}

func NewCandidateSlot(start time.Time, duration SlotDuration) CandidateSlot {
	return CandidateSlot{
		id:    NewSlotID(),
		start: start,
		end:   start.Add(duration.Duration()),
	}
}

func (s CandidateSlot) ID() SlotID {
	return s.id
}

func (s CandidateSlot) Start() time.Time {
	return s.start
}

func (s CandidateSlot) End() time.Time {
	return s.end
}

// DaySlots is the slots of one local calendar date.
type DaySlots struct {
	Date  time.Time
	Slots []CandidateSlot
}

// GroupSlotsByDay buckets slots by their local start date in loc. Input
// order is preserved within a bucket and buckets come out in first-seen order.
func GroupSlotsByDay(slots []CandidateSlot, loc *time.Location) []DaySlots {
	if loc == nil {
		loc = time.UTC
	}

	var groups []DaySlots

	for _, s := range slots {
		local := s.start.In(loc)

		if n := len(groups); n > 0 && sameLocalDate(groups[n-1].Date, local) {
			groups[n-1].Slots = append(groups[n-1].Slots, s)

			continue
		}

		y, m, d := local.Date()
		groups = append(groups, DaySlots{
			Date:  time.Date(y, m, d, 0, 0, 0, 0, loc),
			Slots: []CandidateSlot{s},
		})
	}

	return groups
}
