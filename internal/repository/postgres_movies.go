package repository

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-match-api/internal/domain"
	"github.com/metinatakli/movie-match-api/internal/query"
	"golang.org/x/sync/errgroup"
)

const movieColumns = `id, title, year, genre, rating, director, description, created_at, updated_at`

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) GetAll(ctx context.Context, q domain.MovieQuery) ([]*domain.Movie, int, error) {
	where, args := movieWhereClause(q.Filters)

	// id breaks ties so equal sort keys keep insertion order
	orderBy := "id ASC"
	if q.Sort.Requested() {
		orderBy = fmt.Sprintf("%s %s, id ASC", q.Sort.SortColumn(), q.Sort.SortDirection())
	}

	pageQuery := fmt.Sprintf(`SELECT %s FROM movies %s ORDER BY %s`, movieColumns, where, orderBy)
	pageArgs := args
	pastEnd := false
	if q.Pagination.Enabled() {
		offset, ok := q.Pagination.Offset()
		if !ok {
			pastEnd = true
		}
		pageQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		pageArgs = append(args[:len(args):len(args)], q.Pagination.Limit(), offset)
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM movies %s`, where)

	var (
		movies = []*domain.Movie{}
		total  int
	)

	g, gctx := errgroup.WithContext(ctx)

	// an offset outside the int range can only select nothing
	if !pastEnd {
		g.Go(func() error {
			rows, err := p.db.Query(gctx, pageQuery, pageArgs...)
			if err != nil {
				return err
			}
			defer rows.Close()

			movies, err = collectMovies(rows)
			return err
		})
	}

	g.Go(func() error {
		return p.db.QueryRow(gctx, countQuery, args...).Scan(&total)
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return movies, total, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id = $1`, movieColumns)

	movie, err := scanMovie(p.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return movie, nil
}

func (p *PostgresMovieRepository) GetRandom(ctx context.Context) (*domain.Movie, error) {
	var count int

	err := p.db.QueryRow(ctx, `SELECT count(*) FROM movies`).Scan(&count)
	if err != nil {
		return nil, err
	}

	if count == 0 {
		return nil, domain.ErrRecordNotFound
	}

	query := fmt.Sprintf(`SELECT %s FROM movies ORDER BY id OFFSET $1 LIMIT 1`, movieColumns)

	movie, err := scanMovie(p.db.QueryRow(ctx, query, rand.IntN(count)))
	if err != nil {
		// rows deleted between the two queries
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return movie, nil
}

func (p *PostgresMovieRepository) GetRandomN(ctx context.Context, n int) ([]*domain.Movie, error) {
	rows, err := p.db.Query(ctx, fmt.Sprintf(`SELECT %s FROM movies ORDER BY id`, movieColumns))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies, err := collectMovies(rows)
	if err != nil {
		return nil, err
	}

	return query.PickRandomN(movies, n), nil
}

func (p *PostgresMovieRepository) GetStats(ctx context.Context) (*domain.Stats, error) {
	stats := &domain.Stats{
		ByGenre: make(map[string]int),
	}

	err := p.db.QueryRow(ctx, `SELECT count(*) FROM movies`).Scan(&stats.TotalMovies)
	if err != nil {
		return nil, err
	}

	rows, err := p.db.Query(ctx, `SELECT g, count(*) FROM movies, unnest(genre) AS g GROUP BY g`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			genre string
			count int
		)

		if err := rows.Scan(&genre, &count); err != nil {
			return nil, err
		}

		stats.ByGenre[genre] = count
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `INSERT INTO movies (title, year, genre, rating, director, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	return p.db.QueryRow(ctx,
		query,
		movie.Title,
		movie.Year,
		movie.Genre,
		movie.Rating,
		movie.Director,
		movie.Description).Scan(&movie.ID, &movie.CreatedAt, &movie.UpdatedAt)
}

func (p *PostgresMovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	query := `UPDATE movies
		SET title = $1, year = $2, genre = $3, rating = $4, director = $5, description = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING created_at, updated_at`

	err := p.db.QueryRow(ctx,
		query,
		movie.Title,
		movie.Year,
		movie.Genre,
		movie.Rating,
		movie.Director,
		movie.Description,
		movie.ID).Scan(&movie.CreatedAt, &movie.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}

func (p *PostgresMovieRepository) Delete(ctx context.Context, id int) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

// movieWhereClause compiles the listing filters to SQL with the same
// semantics as query.Matches.
func movieWhereClause(f domain.MovieFilters) (string, []any) {
	var (
		conds []string
		args  []any
	)

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Genre != nil {
		add("EXISTS (SELECT 1 FROM unnest(genre) AS g WHERE lower(g) = lower($%d::text))", *f.Genre)
	}
	if f.MinRating != nil {
		add("rating >= $%d", *f.MinRating)
	}
	if f.Year != nil {
		add("year = $%d", *f.Year)
	}
	if f.Director != nil {
		add("director ILIKE '%%' || $%d::text || '%%'", escapeLike(*f.Director))
	}

	if len(conds) == 0 {
		return "", nil
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func scanMovie(row pgx.Row) (*domain.Movie, error) {
	var movie domain.Movie

	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Year,
		&movie.Genre,
		&movie.Rating,
		&movie.Director,
		&movie.Description,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

func collectMovies(rows pgx.Rows) ([]*domain.Movie, error) {
	movies := []*domain.Movie{}

	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}

		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}
