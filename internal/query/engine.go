// Package query implements the in-memory movie query pipeline: filtering,
// sorting, pagination, random selection and genre statistics. Every function
// is pure with respect to its input collection, which is never modified.
package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/metinatakli/movie-match-api/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// List filters, sorts and paginates movies, in that order. The returned total
// is the number of movies that passed the filters, before pagination.
func List(movies []*domain.Movie, q domain.MovieQuery) ([]*domain.Movie, int) {
	result := Filter(movies, q.Filters)
	Sort(result, q.Sort)

	return Paginate(result, q.Pagination), len(result)
}

// Filter returns a new slice holding the movies that satisfy every present
// predicate in f.
func Filter(movies []*domain.Movie, f domain.MovieFilters) []*domain.Movie {
	result := make([]*domain.Movie, 0, len(movies))

	for _, m := range movies {
		if Matches(m, f) {
			result = append(result, m)
		}
	}

	return result
}

func Matches(m *domain.Movie, f domain.MovieFilters) bool {
	if f.Genre != nil && !hasGenre(m, *f.Genre) {
		return false
	}
	if f.MinRating != nil && m.Rating < *f.MinRating {
		return false
	}
	if f.Year != nil && m.Year != *f.Year {
		return false
	}
	if f.Director != nil && !strings.Contains(strings.ToLower(m.Director), strings.ToLower(*f.Director)) {
		return false
	}

	return true
}

func hasGenre(m *domain.Movie, genre string) bool {
	return slices.ContainsFunc(m.Genre, func(g string) bool {
		return strings.EqualFold(g, genre)
	})
}

// Sort orders movies in place. It is stable, and it leaves the slice untouched
// when s names a field outside the sortable set.
func Sort(movies []*domain.Movie, s domain.Sort) {
	if !s.Requested() {
		return
	}

	compare := comparator(s.Field)
	if s.Direction == domain.SortDesc {
		asc := compare
		compare = func(a, b *domain.Movie) int {
			return asc(b, a)
		}
	}

	slices.SortStableFunc(movies, compare)
}

func comparator(field domain.SortField) func(a, b *domain.Movie) int {
	switch field {
	case domain.SortByTitle:
		// a Collator keeps scratch buffers, so each sort gets its own
		c := collate.New(language.English)
		return func(a, b *domain.Movie) int {
			return c.CompareString(a.Title, b.Title)
		}
	case domain.SortByRating:
		return func(a, b *domain.Movie) int {
			return cmp.Compare(a.Rating, b.Rating)
		}
	default:
		return func(a, b *domain.Movie) int {
			return cmp.Compare(a.Year, b.Year)
		}
	}
}

// Paginate returns the window [(page-1)*size, (page-1)*size+size) of movies.
// A disabled pagination returns movies as is; a window past the end is empty.
func Paginate(movies []*domain.Movie, p domain.Pagination) []*domain.Movie {
	if !p.Enabled() {
		return movies
	}

	start, ok := p.Offset()
	if !ok || start >= len(movies) {
		return []*domain.Movie{}
	}

	end := start + p.Limit()
	if end > len(movies) || end < start {
		end = len(movies)
	}

	return movies[start:end]
}

// FindByID returns the first movie with the given id. The boolean is false
// when no such movie exists.
func FindByID(movies []*domain.Movie, id int) (*domain.Movie, bool) {
	i := slices.IndexFunc(movies, func(m *domain.Movie) bool {
		return m.ID == id
	})
	if i < 0 {
		return nil, false
	}

	return movies[i], true
}

// ComputeStats counts movies and genre occurrences. A movie listing k genres
// adds one to each of k counters.
func ComputeStats(movies []*domain.Movie) *domain.Stats {
	stats := &domain.Stats{
		TotalMovies: len(movies),
		ByGenre:     make(map[string]int),
	}

	for _, m := range movies {
		for _, g := range m.Genre {
			stats.ByGenre[g]++
		}
	}

	return stats
}
