package mocks

import (
	"context"

	"github.com/metinatakli/movie-match-api/internal/domain"
)

type MockReviewRepo struct {
	domain.ReviewRepository
	GetByMovieIdFunc func(ctx context.Context, movieId int) ([]*domain.Review, error)
	GetByIdFunc      func(ctx context.Context, movieId, id int) (*domain.Review, error)
	CreateFunc       func(ctx context.Context, review *domain.Review) error
	UpdateFunc       func(ctx context.Context, review *domain.Review) error
	DeleteFunc       func(ctx context.Context, movieId, id int) error
}

func (m *MockReviewRepo) GetByMovieId(ctx context.Context, movieId int) ([]*domain.Review, error) {
	return m.GetByMovieIdFunc(ctx, movieId)
}

func (m *MockReviewRepo) GetById(ctx context.Context, movieId, id int) (*domain.Review, error) {
	return m.GetByIdFunc(ctx, movieId, id)
}

func (m *MockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	return m.CreateFunc(ctx, review)
}

func (m *MockReviewRepo) Update(ctx context.Context, review *domain.Review) error {
	return m.UpdateFunc(ctx, review)
}

func (m *MockReviewRepo) Delete(ctx context.Context, movieId, id int) error {
	return m.DeleteFunc(ctx, movieId, id)
}
