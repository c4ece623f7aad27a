package enrich

import (
	"context"
	"net/http"
	"testing"

	"github.com/metinatakli/movie-match-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// collectCounters returns the counter totals keyed by metric name and the
// value of attr on each data point.
func collectCounters(t *testing.T, reader *sdkmetric.ManualReader, attr attribute.Key) map[string]map[string]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	got := make(map[string]map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}

			points := make(map[string]int64)
			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value(attr)
				points[v.AsString()] = dp.Value
			}
			got[m.Name] = points
		}
	}

	return got
}

func TestEnrichRecordsMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { provider.Shutdown(context.Background()) })

	_, cache := setupMiniRedis(t)
	u := newUpstream(t, http.StatusOK, inceptionReply)
	client := newTestClient(u.server.URL, cache)
	client.metrics = newMetrics(provider)

	client.Enrich(context.Background(), []*domain.Movie{inception, matrix})
	client.Enrich(context.Background(), []*domain.Movie{inception})

	lookups := collectCounters(t, reader, "result")["movie_match_enrich_cache_lookups_total"]
	assert.Equal(t, map[string]int64{"hit": 1, "miss": 2}, lookups)

	completions := collectCounters(t, reader, "outcome")["movie_match_enrich_completions_total"]
	assert.Equal(t, map[string]int64{outcomeOK: 1}, completions)
}

func TestEnrichRecordsRejectedCompletions(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { provider.Shutdown(context.Background()) })

	u := newUpstream(t, http.StatusBadGateway, "")
	client := newTestClient(u.server.URL, nil)
	client.metrics = newMetrics(provider)

	for range breakerMaxFailures + 1 {
		client.Enrich(context.Background(), []*domain.Movie{inception})
	}

	completions := collectCounters(t, reader, "outcome")["movie_match_enrich_completions_total"]
	assert.Equal(t, map[string]int64{
		outcomeError:    breakerMaxFailures,
		outcomeRejected: 1,
	}, completions)
}
