package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-match-api/internal/domain"
)

type PostgresReviewRepository struct {
	db *pgxpool.Pool
}

func NewPostgresReviewRepository(db *pgxpool.Pool) *PostgresReviewRepository {
	return &PostgresReviewRepository{
		db: db,
	}
}

func (p *PostgresReviewRepository) GetByMovieId(ctx context.Context, movieId int) ([]*domain.Review, error) {
	var exists bool

	err := p.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)`, movieId).Scan(&exists)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, domain.ErrRecordNotFound
	}

	query := `SELECT id, movie_id, author, rating, comment, created_at, updated_at
		FROM reviews
		WHERE movie_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := p.db.Query(ctx, query, movieId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []*domain.Review{}

	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}

		reviews = append(reviews, review)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return reviews, nil
}

func (p *PostgresReviewRepository) GetById(ctx context.Context, movieId, id int) (*domain.Review, error) {
	query := `SELECT id, movie_id, author, rating, comment, created_at, updated_at
		FROM reviews
		WHERE id = $1 AND movie_id = $2`

	review, err := scanReview(p.db.QueryRow(ctx, query, id, movieId))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return review, nil
}

func (p *PostgresReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `INSERT INTO reviews (movie_id, author, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := p.db.QueryRow(ctx,
		query,
		review.MovieID,
		review.Author,
		review.Rating,
		review.Comment).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}

func (p *PostgresReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	query := `UPDATE reviews
		SET author = $1, rating = $2, comment = $3, updated_at = NOW()
		WHERE id = $4 AND movie_id = $5
		RETURNING created_at, updated_at`

	err := p.db.QueryRow(ctx,
		query,
		review.Author,
		review.Rating,
		review.Comment,
		review.ID,
		review.MovieID).Scan(&review.CreatedAt, &review.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}

func (p *PostgresReviewRepository) Delete(ctx context.Context, movieId, id int) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1 AND movie_id = $2`, id, movieId)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func scanReview(row pgx.Row) (*domain.Review, error) {
	var review domain.Review

	err := row.Scan(
		&review.ID,
		&review.MovieID,
		&review.Author,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &review, nil
}
