package domain

import "context"

type Enrichment struct {
	Anecdote string
	FunFact  string
	Pitch    string
}

// EnrichedMovie pairs a movie with its AI generated trivia. Enrichment is nil
// when the upstream service could not provide it.
type EnrichedMovie struct {
	Movie      *Movie
	Enrichment *Enrichment
}

// MovieEnricher never fails: movies it cannot enrich come back with a nil
// Enrichment.
type MovieEnricher interface {
	Enrich(ctx context.Context, movies []*Movie) []EnrichedMovie
}
