package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all application metrics.
type Metrics struct {
	turnsTotal          metric.Int64Counter
	turnDuration        metric.Float64Histogram
	resolveDuration     metric.Float64Histogram
	weatherFetchesTotal metric.Int64Counter
	weatherFetchLatency metric.Float64Histogram
}

// New creates and initializes all metrics.
func New(meter metric.Meter) (*Metrics, error) {
	turnsTotal, err := meter.Int64Counter(
		"turns_total",
		metric.WithDescription("Total number of processed conversation turns"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	turnDuration, err := meter.Float64Histogram(
		"turn_duration_ms",
		metric.WithDescription("End-to-end turn processing latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	resolveDuration, err := meter.Float64Histogram(
		"resolve_duration_ms",
		metric.WithDescription("Action resolution latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	weatherFetchesTotal, err := meter.Int64Counter(
		"weather_fetches_total",
		metric.WithDescription("Total weather provider fetches"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	weatherFetchLatency, err := meter.Float64Histogram(
		"weather_fetch_duration_ms",
		metric.WithDescription("Weather provider fetch latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		turnsTotal:          turnsTotal,
		turnDuration:        turnDuration,
		resolveDuration:     resolveDuration,
		weatherFetchesTotal: weatherFetchesTotal,
		weatherFetchLatency: weatherFetchLatency,
	}, nil
}

// RecordTurn records one completed turn with its terminal outcome
// (done, clarification, failed).
func (m *Metrics) RecordTurn(ctx context.Context, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.turnsTotal.Add(ctx, 1, attrs)
	m.turnDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
}

// RecordResolve records the resolver backend decision and its latency.
func (m *Metrics) RecordResolve(ctx context.Context, action string, duration time.Duration) {
	if m == nil {
		return
	}
	m.resolveDuration.Record(ctx, float64(duration.Milliseconds()),
		metric.WithAttributes(attribute.String("action", action)))
}

// RecordWeatherFetch records one provider fetch attempt outcome.
func (m *Metrics) RecordWeatherFetch(ctx context.Context, operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("status", status),
	)
	m.weatherFetchesTotal.Add(ctx, 1, attrs)
	m.weatherFetchLatency.Record(ctx, float64(duration.Milliseconds()), attrs)
}
