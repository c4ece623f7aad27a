package repository

import (
	"context"

	"github.com/metinatakli/movie-match-api/internal/domain"
	"github.com/metinatakli/movie-match-api/internal/query"
)

// MemoryMovieRepository serves a fixed, read-only movie collection. All reads
// go through the query package; writes fail with domain.ErrReadOnly.
type MemoryMovieRepository struct {
	movies []*domain.Movie
}

func NewMemoryMovieRepository(movies []*domain.Movie) *MemoryMovieRepository {
	return &MemoryMovieRepository{
		movies: movies,
	}
}

func (m *MemoryMovieRepository) GetAll(_ context.Context, q domain.MovieQuery) ([]*domain.Movie, int, error) {
	movies, total := query.List(m.movies, q)
	return movies, total, nil
}

func (m *MemoryMovieRepository) GetById(_ context.Context, id int) (*domain.Movie, error) {
	movie, ok := query.FindByID(m.movies, id)
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	return movie, nil
}

func (m *MemoryMovieRepository) GetRandom(_ context.Context) (*domain.Movie, error) {
	movie, ok := query.PickRandom(m.movies)
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	return movie, nil
}

func (m *MemoryMovieRepository) GetRandomN(_ context.Context, n int) ([]*domain.Movie, error) {
	return query.PickRandomN(m.movies, n), nil
}

func (m *MemoryMovieRepository) GetStats(_ context.Context) (*domain.Stats, error) {
	return query.ComputeStats(m.movies), nil
}

func (m *MemoryMovieRepository) Create(_ context.Context, _ *domain.Movie) error {
	return domain.ErrReadOnly
}

func (m *MemoryMovieRepository) Update(_ context.Context, movie *domain.Movie) error {
	return m.writeError(movie.ID)
}

func (m *MemoryMovieRepository) Delete(_ context.Context, id int) error {
	return m.writeError(id)
}

// writeError reports a missing movie before refusing the write, so callers see
// the same not-found behavior as with a writable store.
func (m *MemoryMovieRepository) writeError(id int) error {
	if _, ok := query.FindByID(m.movies, id); !ok {
		return domain.ErrRecordNotFound
	}

	return domain.ErrReadOnly
}

// MemoryReviewRepository is the review store paired with the in-memory
// catalog. The catalog carries no reviews and accepts none.
type MemoryReviewRepository struct {
	movies []*domain.Movie
}

func NewMemoryReviewRepository(movies []*domain.Movie) *MemoryReviewRepository {
	return &MemoryReviewRepository{
		movies: movies,
	}
}

func (m *MemoryReviewRepository) GetByMovieId(_ context.Context, movieId int) ([]*domain.Review, error) {
	if _, ok := query.FindByID(m.movies, movieId); !ok {
		return nil, domain.ErrRecordNotFound
	}

	return []*domain.Review{}, nil
}

func (m *MemoryReviewRepository) GetById(_ context.Context, _, _ int) (*domain.Review, error) {
	return nil, domain.ErrRecordNotFound
}

func (m *MemoryReviewRepository) Create(_ context.Context, review *domain.Review) error {
	if _, ok := query.FindByID(m.movies, review.MovieID); !ok {
		return domain.ErrRecordNotFound
	}

	return domain.ErrReadOnly
}

func (m *MemoryReviewRepository) Update(_ context.Context, _ *domain.Review) error {
	return domain.ErrRecordNotFound
}

func (m *MemoryReviewRepository) Delete(_ context.Context, _, _ int) error {
	return domain.ErrRecordNotFound
}
