package query

import (
	"math/rand/v2"
	"slices"

	"github.com/metinatakli/movie-match-api/internal/domain"
)

// PickRandom returns a uniformly chosen movie, or false for an empty collection.
func PickRandom(movies []*domain.Movie) (*domain.Movie, bool) {
	if len(movies) == 0 {
		return nil, false
	}

	return movies[rand.IntN(len(movies))], true
}

// PickRandomN returns min(n, len(movies)) distinct movies in random order. It
// shuffles a copy, so the input keeps its order.
func PickRandomN(movies []*domain.Movie, n int) []*domain.Movie {
	n = max(0, min(n, len(movies)))

	shuffled := slices.Clone(movies)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled[:n:n]
}
