package domain

import "math"

// MovieFilters holds the optional listing predicates. A nil field places no
// constraint on the corresponding movie attribute.
type MovieFilters struct {
	Genre     *string
	MinRating *float64
	Year      *int
	Director  *string
}

type SortField string

const (
	SortByTitle  SortField = "title"
	SortByRating SortField = "rating"
	SortByYear   SortField = "year"
)

// Valid reports whether the field is one of the sortable movie attributes.
func (f SortField) Valid() bool {
	switch f {
	case SortByTitle, SortByRating, SortByYear:
		return true
	}

	return false
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

type Sort struct {
	Field     SortField
	Direction SortDirection
}

func (s Sort) Requested() bool {
	return s.Field.Valid()
}

func (s Sort) SortColumn() string {
	return string(s.Field)
}

func (s Sort) SortDirection() string {
	if s.Direction == SortDesc {
		return "DESC"
	}

	return "ASC"
}

type Pagination struct {
	Page     int
	PageSize int
}

// Enabled reports whether the pagination window applies. Anything below one on
// either side means the full result is returned.
func (p Pagination) Enabled() bool {
	return p.Page >= 1 && p.PageSize >= 1
}

func (p Pagination) Limit() int {
	return p.PageSize
}

// Offset returns the number of rows skipped before the window. The boolean is
// false when the offset does not fit in an int, which places the window past
// the end of any collection.
func (p Pagination) Offset() (int, bool) {
	if p.PageSize > 0 && p.Page-1 > math.MaxInt/p.PageSize {
		return 0, false
	}

	return (p.Page - 1) * p.PageSize, true
}

type MovieQuery struct {
	Filters    MovieFilters
	Sort       Sort
	Pagination Pagination
}
