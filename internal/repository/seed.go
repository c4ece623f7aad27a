package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-match-api/internal/domain"
)

// SeedMovies replaces every movie (and, through the foreign key, every review)
// with the given movies. Ids restart at one and follow slice order.
func SeedMovies(ctx context.Context, db *pgxpool.Pool, movies []*domain.Movie) (int64, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `TRUNCATE movies RESTART IDENTITY CASCADE`)
	if err != nil {
		return 0, err
	}

	rows := make([][]any, len(movies))
	for i, m := range movies {
		rows[i] = []any{m.Title, m.Year, m.Genre, m.Rating, m.Director, m.Description}
	}

	count, err := tx.CopyFrom(ctx,
		pgx.Identifier{"movies"},
		[]string{"title", "year", "genre", "rating", "director", "description"},
		pgx.CopyFromRows(rows))
	if err != nil {
		return 0, err
	}

	return count, tx.Commit(ctx)
}
