package domain

import (
	"errors"
	"time"
)

type SlotDuration struct {
	minutes int
}

const (
	MinSlotMinutes = 1
	MaxSlotMinutes = 24 * 60
)

var ErrInvalidSlotDuration = errors.New("slot duration must be between 1 and 1440 minutes")

func NewSlotDuration(minutes int) (SlotDuration, error) {
	if minutes < MinSlotMinutes || minutes > MaxSlotMinutes {
		return SlotDuration{}, ErrInvalidSlotDuration
	}

	return SlotDuration{minutes: minutes}, nil
}

func MustSlotDuration(minutes int) SlotDuration {
	d, err := NewSlotDuration(minutes)
	if err != nil {
		panic(err)
	}

	return d
}

func (d SlotDuration) Minutes() int {
	return d.minutes
}

func (d SlotDuration) Duration() time.Duration {
	return time.Duration(d.minutes) * time.Minute
}

func (d SlotDuration) IsZero() bool {
	return d.minutes == 0
}

// blocksPerHour is the number of whole slot blocks that fit into one hour.
// Durations longer than an hour still get a single block anchored at :00.
func (d SlotDuration) blocksPerHour() int {
	n := 60 / d.minutes
	if n < 1 {
		return 1
	}

	return n
}

// CeilToGrid advances t to the next boundary of the per-hour slot grid
// unless it already sits on one. Seconds count as being off the grid.
func (d SlotDuration) CeilToGrid(t time.Time) time.Time {
	hourStart := startOfHour(t)

	offset := t.Sub(hourStart)
	block := int(offset / d.Duration())

	if block < d.blocksPerHour() && offset == time.Duration(block)*d.Duration() {
		return t
	}

	next := block + 1
	if next >= d.blocksPerHour() {
		return hourStart.Add(time.Hour)
	}

	return hourStart.Add(time.Duration(next) * d.Duration())
}

// FloorToGrid moves t back to the start of the slot block containing it.
func (d SlotDuration) FloorToGrid(t time.Time) time.Time {
	hourStart := startOfHour(t)

	offset := t.Sub(hourStart)
	block := int(offset / d.Duration())
	if block >= d.blocksPerHour() {
		block = d.blocksPerHour() - 1
	}

	return hourStart.Add(time.Duration(block) * d.Duration())
}

// startOfHour steps back from the instant itself so a wall-clock hour that
// repeats at a fall-back transition resolves to the occurrence t is in.
func startOfHour(t time.Time) time.Time {
	return t.Add(-(time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())))
}
