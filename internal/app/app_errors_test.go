package app_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KasumiMercury/primind-availability/internal/app"
)

func TestNewValidationErrorSuccess(t *testing.T) {
	tests := []struct {
		name          string
		field         string
		message       string
		expectedError string
	}{
		{
			name:          "user_id validation error",
			field:         "user_id",
			message:       "must be valid UUIDv7",
			expectedError: "validation error: user_id - must be valid UUIDv7",
		},
		{
			name:          "indexed working hours entry",
			field:         "starts[2]",
			message:       "invalid weekday",
			expectedError: "validation error: starts[2] - invalid weekday",
		},
		{
			name:          "slot_minutes validation error",
			field:         "slot_minutes",
			message:       "slot duration must be between 1 and 1440 minutes",
			expectedError: "validation error: slot_minutes - slot duration must be between 1 and 1440 minutes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := app.NewValidationError(tt.field, tt.message)

			assert.Equal(t, tt.field, err.Field)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.expectedError, err.Error())
		})
	}
}

func TestIsValidationErrorSuccess(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "is ValidationError",
			err:      app.NewValidationError("field", "message"),
			expected: true,
		},
		{
			name:     "wrapped ValidationError",
			err:      fmt.Errorf("wrapped: %w", app.NewValidationError("field", "message")),
			expected: true,
		},
		{
			name:     "generic error",
			err:      errors.New("generic error"),
			expected: false,
		},
		{
			name:     "nil",
			err:      nil,
			expected: false,
		},
		{
			name:     "internal error",
			err:      fmt.Errorf("%w: %v", app.ErrInternalError, errors.New("db down")),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, app.IsValidationError(tt.err))
		})
	}
}

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("outer: %w", app.NewValidationError("timezone", "invalid timezone"))

	assert.ErrorIs(t, err, app.ErrValidation)
	assert.NotErrorIs(t, err, app.ErrNotFound)
}
