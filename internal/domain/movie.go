package domain

import (
	"context"
	"time"
)

type Movie struct {
	ID          int
	Title       string
	Year        int
	Genre       []string
	Rating      float64
	Director    string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MovieRepository is the storage contract for movies. Lookups that find nothing
// return ErrRecordNotFound; stores that cannot be written return ErrReadOnly.
type MovieRepository interface {
	GetAll(ctx context.Context, q MovieQuery) ([]*Movie, int, error)
	GetById(ctx context.Context, id int) (*Movie, error)
	GetRandom(ctx context.Context) (*Movie, error)
	GetRandomN(ctx context.Context, n int) ([]*Movie, error)
	GetStats(ctx context.Context) (*Stats, error)
	Create(ctx context.Context, movie *Movie) error
	Update(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id int) error
}

type Stats struct {
	TotalMovies int
	ByGenre     map[string]int
}
