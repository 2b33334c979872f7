package domain

import (
	"time"
)

// BusyEvent is a stored calendar commitment. The engine only ever sees its
// interval.
type BusyEvent struct {
	id        BusyEventID
	userID    UserID
	start     time.Time
	end       time.Time
	timezone  string
	createdAt time.Time
}

func NewBusyEvent(userID UserID, start, end time.Time, timezone string) (*BusyEvent, error) {
	if !end.After(start) {
		return nil, ErrInvalidTimeRange
	}

	if _, err := LoadTimezone(timezone); err != nil {
		return nil, err
	}

	return &BusyEvent{
		id:        NewBusyEventID(),
		userID:    userID,
		start:     start,
		end:       end,
		timezone:  timezone,
		createdAt: time.Now(),
	}, nil
}

func ReconstituteBusyEvent(
	id BusyEventID,
	userID UserID,
	start time.Time,
	end time.Time,
	timezone string,
	createdAt time.Time,
) *BusyEvent {
	return &BusyEvent{
		id:        id,
		userID:    userID,
		start:     start,
		end:       end,
		timezone:  timezone,
		createdAt: createdAt,
	}
}

func (e *BusyEvent) Interval() BusyInterval {
	return BusyInterval{Start: e.start, End: e.end}
}

func (e *BusyEvent) ID() BusyEventID {
	return e.id
}

func (e *BusyEvent) UserID() UserID {
	return e.userID
}

func (e *BusyEvent) Start() time.Time {
	return e.start
}

func (e *BusyEvent) End() time.Time {
	return e.end
}

func (e *BusyEvent) Timezone() string {
	return e.timezone
}

func (e *BusyEvent) CreatedAt() time.Time {
	return e.createdAt
}
