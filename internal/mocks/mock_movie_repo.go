package mocks

import (
	"context"

	"github.com/metinatakli/movie-match-api/internal/domain"
)

type MockMovieRepo struct {
	domain.MovieRepository
	GetAllFunc     func(ctx context.Context, q domain.MovieQuery) ([]*domain.Movie, int, error)
	GetByIdFunc    func(ctx context.Context, id int) (*domain.Movie, error)
	GetRandomFunc  func(ctx context.Context) (*domain.Movie, error)
	GetRandomNFunc func(ctx context.Context, n int) ([]*domain.Movie, error)
	GetStatsFunc   func(ctx context.Context) (*domain.Stats, error)
	CreateFunc     func(ctx context.Context, movie *domain.Movie) error
	UpdateFunc     func(ctx context.Context, movie *domain.Movie) error
	DeleteFunc     func(ctx context.Context, id int) error
}

func (m *MockMovieRepo) GetAll(ctx context.Context, q domain.MovieQuery) ([]*domain.Movie, int, error) {
	return m.GetAllFunc(ctx, q)
}

func (m *MockMovieRepo) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockMovieRepo) GetRandom(ctx context.Context) (*domain.Movie, error) {
	return m.GetRandomFunc(ctx)
}

func (m *MockMovieRepo) GetRandomN(ctx context.Context, n int) ([]*domain.Movie, error) {
	return m.GetRandomNFunc(ctx, n)
}

func (m *MockMovieRepo) GetStats(ctx context.Context) (*domain.Stats, error) {
	return m.GetStatsFunc(ctx)
}

func (m *MockMovieRepo) Create(ctx context.Context, movie *domain.Movie) error {
	return m.CreateFunc(ctx, movie)
}

func (m *MockMovieRepo) Update(ctx context.Context, movie *domain.Movie) error {
	return m.UpdateFunc(ctx, movie)
}

func (m *MockMovieRepo) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}
