package middleware

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/KasumiMercury/primind-availability/internal/observability/logging"
	"github.com/KasumiMercury/primind-availability/internal/observability/metrics"
	"github.com/KasumiMercury/primind-availability/internal/observability/tracing"
)

const requestIDHeader = "x-request-id"

type GinConfig struct {
	// SkipPaths bypass logging, tracing and metrics entirely.
	SkipPaths      []string
	ModuleResolver func(*gin.Context) logging.Module
	TracerName     string
	HTTPMetrics    *metrics.HTTPMetrics
}

func Gin(cfg GinConfig) gin.HandlerFunc {
	skipSet := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skipSet[p] = struct{}{}
	}

	tracer := otel.Tracer(cfg.TracerName)

	return func(c *gin.Context) {
		if _, skip := skipSet[c.Request.URL.Path]; skip {
			c.Next()

			return
		}

		start := time.Now()

		requestID := logging.ValidateAndExtractRequestID(c.GetHeader(requestIDHeader))
		ctx := logging.WithRequestID(c.Request.Context(), requestID)

		if cfg.ModuleResolver != nil {
			if module := cfg.ModuleResolver(c); module != "" {
				ctx = logging.WithModule(ctx, module)
			}
		}

		ctx = tracing.ExtractFromHTTPRequest(ctx, c.Request)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		ctx, span := tracer.Start(ctx, fmt.Sprintf("%s %s", c.Request.Method, route))
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Header(requestIDHeader, requestID)

		c.Next()

		elapsed := time.Since(start)
		status := c.Writer.Status()

		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)
		if status >= 500 {
			span.SetStatus(codes.Error, fmt.Sprintf("status %d", status))
		}

		cfg.HTTPMetrics.Record(ctx, c.Request.Method, route, status, elapsed)

		slog.LogAttrs(ctx, levelFor(status), "request completed",
			slog.String("event", "http.request.finish"),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("remote_addr", c.ClientIP()),
			slog.Int("status", status),
			slog.Duration("duration", elapsed),
		)
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// ModuleByRoute picks the logging module from the matched route.
func ModuleByRoute(c *gin.Context) logging.Module {
	route := c.FullPath()

	switch {
	case strings.Contains(route, "/availability"):
		return logging.ModuleAvailability
	case strings.Contains(route, "/preferences"):
		return logging.ModulePreferences
	case strings.Contains(route, "/busy-events"):
		return logging.ModuleBusyEvents
	default:
		return ""
	}
}
