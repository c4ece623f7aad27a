// Command seed migrates a PostgreSQL database and loads the bundled movie
// catalog into it, replacing any existing movies and reviews.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/metinatakli/movie-match-api/internal/app"
	"github.com/metinatakli/movie-match-api/internal/catalog"
	"github.com/metinatakli/movie-match-api/internal/repository"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	err := run(logger)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	var cfg app.Config

	flag.StringVar(&cfg.DB.DSN, "db-dsn", os.Getenv("MOVIES_DB_DSN"), "PostgreSQL DSN")
	flag.Parse()

	if cfg.DB.DSN == "" {
		return errors.New("no database DSN given, set -db-dsn or MOVIES_DB_DSN")
	}

	cfg.DB.MaxOpenConns = 5
	cfg.DB.MaxIdleTime = time.Minute

	err := repository.Migrate(cfg.DB.DSN)
	if err != nil {
		return err
	}

	logger.Info("migrations applied")

	movies, err := catalog.Load()
	if err != nil {
		return err
	}

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := repository.SeedMovies(ctx, db, movies)
	if err != nil {
		return err
	}

	logger.Info("catalog seeded", "movies", count)

	return nil
}
