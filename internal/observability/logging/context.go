package logging

import (
	"context"

	"github.com/google/uuid"
)

type Module string

const (
	ModuleAvailability Module = "availability"
	ModulePreferences  Module = "preferences"
	ModuleBusyEvents   Module = "busy_events"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	moduleKey
)

const maxRequestIDLength = 128

// ValidateAndExtractRequestID returns the incoming id when it looks sane and
// a fresh UUIDv7 otherwise.
func ValidateAndExtractRequestID(raw string) string {
	if raw == "" || len(raw) > maxRequestIDLength {
		return newRequestID()
	}

	for _, r := range raw {
		if r < 0x21 || r > 0x7e {
			return newRequestID()
		}
	}

	return raw
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}

	return ""
}

func WithModule(ctx context.Context, module Module) context.Context {
	return context.WithValue(ctx, moduleKey, module)
}

func ModuleFromContext(ctx context.Context) Module {
	if v, ok := ctx.Value(moduleKey).(Module); ok {
		return v
	}

	return ""
}
