package metrics

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "primind_availability"

type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewHTTPMetrics(reg prometheus.Registerer) (*HTTPMetrics, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	var err error
	if requests, err = register(reg, requests); err != nil {
		return nil, err
	}

	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}

	return &HTTPMetrics{requests: requests, duration: duration}, nil
}

func (m *HTTPMetrics) Record(_ context.Context, method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

type AvailabilityMetrics struct {
	computations *prometheus.CounterVec
	duration     prometheus.Histogram
	slots        prometheus.Histogram
}

func NewAvailabilityMetrics(reg prometheus.Registerer) (*AvailabilityMetrics, error) {
	computations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "computations_total",
		Help:      "Availability computations by outcome.",
	}, []string{"outcome"})

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "computation_duration_seconds",
		Help:      "Time spent producing candidate slots, including fetches.",
		Buckets:   prometheus.DefBuckets,
	})

	slots := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "slots_per_computation",
		Help:      "Number of candidate slots returned per computation.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})

	var err error
	if computations, err = register(reg, computations); err != nil {
		return nil, err
	}

	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}

	if slots, err = register(reg, slots); err != nil {
		return nil, err
	}

	return &AvailabilityMetrics{
		computations: computations,
		duration:     duration,
		slots:        slots,
	}, nil
}

func (m *AvailabilityMetrics) ObserveComputation(elapsed time.Duration, slotCount int, degraded bool) {
	if m == nil {
		return
	}

	outcome := "ok"
	if degraded {
		outcome = "degraded"
	}

	m.computations.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
	m.slots.Observe(float64(slotCount))
}

// register reuses an existing collector when one with the same description
// is already registered, so tests and restarts can share a registry.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}

		return c, fmt.Errorf("register collector: %w", err)
	}

	return c, nil
}
