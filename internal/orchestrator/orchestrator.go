// Package orchestrator composes resolver, weather data source and
// formatter into one request/response cycle per inbound message batch.
// It owns retry policy and the final fallback reply: no typed error
// ever crosses this boundary, failures leave as text.
package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/XxAngels218/weatherbot-backend/internal/chat"
	"github.com/XxAngels218/weatherbot-backend/internal/format"
	"github.com/XxAngels218/weatherbot-backend/internal/metrics"
	"github.com/XxAngels218/weatherbot-backend/internal/resolver"
	"github.com/XxAngels218/weatherbot-backend/internal/retry"
	"github.com/XxAngels218/weatherbot-backend/internal/weather"
)

// Terminal turn outcomes, recorded in metrics.
const (
	outcomeDone          = "done"
	outcomeClarification = "clarification"
	outcomeFailed        = "failed"
)

// Orchestrator runs the per-turn state machine: resolve, fetch (with
// retry), format. It holds no per-request state; one instance is built
// at process start and shared across concurrent requests.
type Orchestrator struct {
	resolver resolver.Resolver
	source   weather.DataSource
	locale   *format.Locale
	retryCfg retry.Config
	metrics  *metrics.Metrics
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRetryConfig overrides the fetch retry policy.
func WithRetryConfig(cfg retry.Config) Option {
	return func(o *Orchestrator) { o.retryCfg = cfg }
}

// WithMetrics wires turn/fetch instrumentation. Nil metrics are a no-op.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// New creates an orchestrator. The resolver backend is injected and
// interchangeable; the orchestrator never knows which one it got.
func New(res resolver.Resolver, source weather.DataSource, locale *format.Locale, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		resolver: res,
		source:   source,
		locale:   locale,
		retryCfg: retry.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(o)
	}
	// An injected retry config without a classifier still retries by the
	// weather error taxonomy, not the generic text heuristic.
	if o.retryCfg.Retryable == nil {
		o.retryCfg.Retryable = weather.Retryable
	}
	return o
}

// Process handles one turn and always returns reply text: weather data
// on success, the clarification string when no action resolves, a
// locale error message when the fetch fails. Callers cannot distinguish
// success from failure by type, only by content.
func (o *Orchestrator) Process(ctx context.Context, conv chat.Conversation) (reply string) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "Panic while processing turn", "panic", r)
			o.metrics.RecordTurn(ctx, outcomeFailed, time.Since(start))
			reply = o.locale.Apology()
		}
	}()

	resolveStart := time.Now()
	action := o.resolver.Resolve(ctx, conv)
	o.metrics.RecordResolve(ctx, string(action.Kind), time.Since(resolveStart))

	slog.InfoContext(ctx, "Resolved turn action",
		"action", string(action.Kind),
		"city", action.City,
		"reason", action.Reason,
		"history_len", len(conv.History()),
	)

	switch action.Kind {
	case resolver.KindCurrentWeather:
		reply = o.fetchCurrent(ctx, action.City)
	case resolver.KindForecast:
		reply = o.fetchForecast(ctx, action.City)
	case resolver.KindNone:
		o.metrics.RecordTurn(ctx, outcomeClarification, time.Since(start))
		return o.locale.Clarification()
	default:
		slog.ErrorContext(ctx, "Unknown action kind", "kind", string(action.Kind))
		o.metrics.RecordTurn(ctx, outcomeFailed, time.Since(start))
		return o.locale.Apology()
	}

	outcome := outcomeDone
	if reply == "" {
		// Should not happen: fetch helpers always produce text.
		reply = o.locale.Apology()
		outcome = outcomeFailed
	}
	o.metrics.RecordTurn(ctx, outcome, time.Since(start))
	return reply
}

// fetchCurrent retrieves and renders current conditions. Provider and
// transport failures are retried with backoff; credential and
// unknown-city failures are terminal on the first attempt.
func (o *Orchestrator) fetchCurrent(ctx context.Context, city string) string {
	fetchStart := time.Now()
	current, err := retry.WithResult(ctx, o.retryCfg, func() (*weather.Current, error) {
		return o.source.FetchCurrent(ctx, city)
	})
	if err != nil {
		o.metrics.RecordWeatherFetch(ctx, "current", "error", time.Since(fetchStart))
		slog.WarnContext(ctx, "Current weather fetch failed", "city", city, "error", err)
		return o.locale.CurrentError(causeText(err))
	}

	o.metrics.RecordWeatherFetch(ctx, "current", "ok", time.Since(fetchStart))
	return o.locale.RenderCurrent(current)
}

// fetchForecast retrieves and renders the nearest forecast slot.
func (o *Orchestrator) fetchForecast(ctx context.Context, city string) string {
	fetchStart := time.Now()
	entry, err := retry.WithResult(ctx, o.retryCfg, func() (*weather.ForecastEntry, error) {
		return o.source.FetchForecast(ctx, city)
	})
	if err != nil {
		o.metrics.RecordWeatherFetch(ctx, "forecast", "error", time.Since(fetchStart))
		slog.WarnContext(ctx, "Forecast fetch failed", "city", city, "error", err)
		return o.locale.ForecastError(causeText(err))
	}

	o.metrics.RecordWeatherFetch(ctx, "forecast", "ok", time.Since(fetchStart))
	return o.locale.RenderForecast(entry)
}

// causeText extracts the human-readable cause for in-band error text,
// stripping any retry wrapping around the typed failure.
func causeText(err error) string {
	var nf *weather.NotFoundError
	if errors.As(err, &nf) {
		return nf.Error()
	}
	if errors.Is(err, weather.ErrUnauthorized) {
		return weather.ErrUnauthorized.Error()
	}
	var pe *weather.ProviderError
	if errors.As(err, &pe) {
		return pe.Error()
	}
	var te *weather.TransportError
	if errors.As(err, &te) {
		return te.Error()
	}
	return err.Error()
}
