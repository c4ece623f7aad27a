package mocks

import (
	"context"

	"github.com/metinatakli/movie-match-api/internal/domain"
)

type MockEnricher struct {
	EnrichFunc func(ctx context.Context, movies []*domain.Movie) []domain.EnrichedMovie
}

func (m *MockEnricher) Enrich(ctx context.Context, movies []*domain.Movie) []domain.EnrichedMovie {
	return m.EnrichFunc(ctx, movies)
}
