package domain

import (
	"context"
	"time"
)

type Review struct {
	ID        int
	MovieID   int
	Author    string
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ReviewRepository interface {
	// GetByMovieId returns the reviews of a movie, newest first, or
	// ErrRecordNotFound when the movie does not exist.
	GetByMovieId(ctx context.Context, movieId int) ([]*Review, error)
	GetById(ctx context.Context, movieId, id int) (*Review, error)
	Create(ctx context.Context, review *Review) error
	Update(ctx context.Context, review *Review) error
	Delete(ctx context.Context, movieId, id int) error
}
