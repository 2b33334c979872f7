package app

import (
	"context"
)

type AvailabilityUseCase interface {
	GetAvailability(ctx context.Context, input GetAvailabilityInput) (AvailabilityOutput, error)

	PutWorkPreferences(ctx context.Context, input PutWorkPreferencesInput) (WorkPreferencesOutput, error)
	GetWorkPreferences(ctx context.Context, input GetWorkPreferencesInput) (WorkPreferencesOutput, error)

	CreateBusyEvent(ctx context.Context, input CreateBusyEventInput) (BusyEventOutput, error)
	ListBusyEvents(ctx context.Context, input ListBusyEventsInput) (BusyEventsOutput, error)
	DeleteBusyEvent(ctx context.Context, input DeleteBusyEventInput) error
}
