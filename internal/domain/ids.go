package domain

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidUserID = errors.New("invalid user ID: must be valid UUIDv7")

// parseV7 accepts only time-ordered UUIDs, which is what every upstream
// service in the platform issues.
func parseV7(s string) (uuid.UUID, bool) {
	id, err := uuid.Parse(s)
	if err != nil || id.Version() != 7 {
		return uuid.Nil, false
	}

	return id, true
}

type UserID struct {
	value uuid.UUID
}

func UserIDFromString(s string) (UserID, error) {
	id, ok := parseV7(s)
	if !ok {
		return UserID{}, ErrInvalidUserID
	}

	return UserID{value: id}, nil
}

func UserIDFromUUID(id uuid.UUID) (UserID, error) {
	if id.Version() != 7 {
		return UserID{}, ErrInvalidUserID
	}

	return UserID{value: id}, nil
}

func (u UserID) String() string {
	return u.value.String()
}

func (u UserID) IsZero() bool {
	return u.value == uuid.Nil
}

type BusyEventID struct {
	value uuid.UUID
}

func NewBusyEventID() BusyEventID {
	return BusyEventID{value: uuid.Must(uuid.NewV7())}
}

func BusyEventIDFromString(s string) (BusyEventID, error) {
	id, ok := parseV7(s)
	if !ok {
		return BusyEventID{}, ErrInvalidBusyEventID
	}

	return BusyEventID{value: id}, nil
}

func (b BusyEventID) String() string {
	return b.value.String()
}

func (b BusyEventID) IsZero() bool {
	return b.value == uuid.Nil
}

// SlotID is an opaque token that only disambiguates slots within one
// computation. It is never persisted or used for lookup.
type SlotID struct {
	value uuid.UUID
}

func NewSlotID() SlotID {
	return SlotID{value: uuid.New()}
}

func (s SlotID) String() string {
	return s.value.String()
}

func (s SlotID) IsZero() bool {
	return s.value == uuid.Nil
}
