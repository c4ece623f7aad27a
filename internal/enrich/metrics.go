package enrich

import (
	"context"
	"errors"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/metinatakli/movie-match-api/internal/enrich"

const (
	outcomeOK       = "ok"
	outcomeError    = "error"
	outcomeRejected = "rejected"
)

type metrics struct {
	cacheLookups metric.Int64Counter
	completions  metric.Int64Counter
}

func newMetrics(provider metric.MeterProvider) metrics {
	meter := provider.Meter(instrumentationName)

	// Instrument creation only fails on invalid names; the returned no-op
	// instrument is still safe to use.
	cacheLookups, _ := meter.Int64Counter("movie_match_enrich_cache_lookups_total",
		metric.WithDescription("Enrichment cache lookups by result"))
	completions, _ := meter.Int64Counter("movie_match_enrich_completions_total",
		metric.WithDescription("Upstream completion attempts by outcome"))

	return metrics{
		cacheLookups: cacheLookups,
		completions:  completions,
	}
}

func (m metrics) recordLookups(ctx context.Context, hits, misses int) {
	m.cacheLookups.Add(ctx, int64(hits), metric.WithAttributes(attribute.String("result", "hit")))
	m.cacheLookups.Add(ctx, int64(misses), metric.WithAttributes(attribute.String("result", "miss")))
}

func (m metrics) recordCompletion(ctx context.Context, err error) {
	outcome := outcomeOK

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		outcome = outcomeRejected
	case err != nil:
		outcome = outcomeError
	}

	m.completions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
