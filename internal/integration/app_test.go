package integration_test

import (
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-match-api/internal/app"
	"github.com/metinatakli/movie-match-api/internal/enrich"
	"github.com/metinatakli/movie-match-api/internal/repository"
	appvalidator "github.com/metinatakli/movie-match-api/internal/validator"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App   *app.Application
	DB    *pgxpool.Pool
	Redis *redis.Client
	AI    *fakeCompletionServer
}

func newTestApp(cfg app.Config, ai *fakeCompletionServer) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	movieRepo := repository.NewPostgresMovieRepository(db)
	reviewRepo := repository.NewPostgresReviewRepository(db)

	enricher := enrich.NewClient(enrich.Config{
		APIKey:   cfg.AI.APIKey,
		URL:      cfg.AI.URL,
		Model:    cfg.AI.Model,
		Timeout:  cfg.AI.Timeout,
		CacheTTL: cfg.AI.CacheTTL,
	}, enrich.NewRedisCache(redisClient, logger), logger)

	application := app.NewApp(
		cfg,
		logger,
		validator,
		movieRepo,
		reviewRepo,
		enricher,
	)

	return &TestApp{
		App:   application,
		DB:    db,
		Redis: redisClient,
		AI:    ai,
	}, nil
}
