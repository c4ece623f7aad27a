package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/metinatakli/movie-match-api/internal/domain"
)

// ParseParams turns listing query parameters into a MovieQuery. Parsing never
// fails: a value that cannot be read leaves its field unset, an unknown sortBy
// disables sorting and any order other than "desc" sorts ascending.
func ParseParams(values url.Values) domain.MovieQuery {
	var q domain.MovieQuery

	if genre := values.Get("genre"); genre != "" {
		q.Filters.Genre = &genre
	}
	if minRating, ok := parseFloat(values.Get("minRating")); ok {
		q.Filters.MinRating = &minRating
	}
	if year, ok := parseInt(values.Get("year")); ok {
		q.Filters.Year = &year
	}
	if director := values.Get("director"); director != "" {
		q.Filters.Director = &director
	}

	q.Sort.Field = domain.SortField(values.Get("sortBy"))
	q.Sort.Direction = domain.SortAsc
	if values.Get("order") == string(domain.SortDesc) {
		q.Sort.Direction = domain.SortDesc
	}

	page, pageOK := parseInt(values.Get("page"))
	limit, limitOK := parseInt(values.Get("limit"))
	if pageOK && limitOK {
		q.Pagination = domain.Pagination{Page: page, PageSize: limit}
	}

	return q
}

func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}

	return n, true
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}
