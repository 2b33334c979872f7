package app

import (
	"errors"
	"fmt"

	"github.com/KasumiMercury/primind-availability/internal/domain"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("resource not found")
	ErrInternalError = errors.New("internal error")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

func IsValidationError(err error) bool {
	var validationErr *ValidationError

	return errors.As(err, &validationErr)
}

// domainFields names the request field a domain error points at.
var domainFields = []struct {
	err   error
	field string
}{
	{domain.ErrInvalidUserID, "user_id"},
	{domain.ErrInvalidBusyEventID, "id"},
	{domain.ErrInvalidTimezone, "timezone"},
	{domain.ErrInvalidSlotDuration, "slot_minutes"},
	{domain.ErrInvalidTimeRange, "time_range"},
}

// validationFromDomain wraps a domain error as a ValidationError on the
// field it refers to, or on fallback when none matches.
func validationFromDomain(fallback string, err error) *ValidationError {
	for _, f := range domainFields {
		if errors.Is(err, f.err) {
			return NewValidationError(f.field, err.Error())
		}
	}

	return NewValidationError(fallback, err.Error())
}
