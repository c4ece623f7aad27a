package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-match-api/internal/catalog"
	"github.com/metinatakli/movie-match-api/internal/domain"
	"github.com/metinatakli/movie-match-api/internal/enrich"
	"github.com/metinatakli/movie-match-api/internal/repository"
	"github.com/metinatakli/movie-match-api/internal/telemetry"
	appvalidator "github.com/metinatakli/movie-match-api/internal/validator"
	"github.com/metinatakli/movie-match-api/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const serviceName = "movie-match-api"

var (
	version = vcs.Version()
)

type Application struct {
	config    Config
	logger    *slog.Logger
	validator *validator.Validate

	movieRepo  domain.MovieRepository
	reviewRepo domain.ReviewRepository
	enricher   domain.MovieEnricher
}

type Config struct {
	Port             int
	Env              string
	DB               DBConfig
	Redis            RedisConfig
	AI               AIConfig
	CORS             CORSConfig
	RateLimit        RateLimitConfig
	OtelCollectorUrl string
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type AIConfig struct {
	APIKey   string
	URL      string
	Model    string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type CORSConfig struct {
	Origins []string
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// Storage names the backing store: the bundled read-only catalog, or
// PostgreSQL when a DSN is configured.
func (c Config) Storage() string {
	if c.DB.DSN == "" {
		return "catalog"
	}

	return "postgres"
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	validator *validator.Validate,
	movieRepo domain.MovieRepository,
	reviewRepo domain.ReviewRepository,
	enricher domain.MovieEnricher,
) *Application {
	return &Application{
		config:     cfg,
		logger:     logger,
		validator:  validator,
		movieRepo:  movieRepo,
		reviewRepo: reviewRepo,
		enricher:   enricher,
	}
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", os.Getenv("MOVIES_DB_DSN"), "PostgreSQL DSN, empty serves the bundled catalog read-only")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", os.Getenv("MOVIES_REDIS_URL"), "Redis address for the enrichment cache")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.AI.APIKey, "ai-api-key", os.Getenv("OPENROUTER_API_KEY"), "OpenRouter API key, empty disables enrichment")
	flag.StringVar(&cfg.AI.URL, "ai-url", enrich.DefaultURL, "OpenRouter chat completions URL")
	flag.StringVar(&cfg.AI.Model, "ai-model", enrich.DefaultModel, "OpenRouter model")
	flag.DurationVar(&cfg.AI.Timeout, "ai-timeout", 20*time.Second, "Enrichment request timeout")
	flag.DurationVar(&cfg.AI.CacheTTL, "ai-cache-ttl", 24*time.Hour, "Enrichment cache TTL")

	corsOrigins := flag.String("cors-origins", envOr("CORS_ORIGIN", "*"), "Comma separated list of allowed CORS origins")

	flag.IntVar(&cfg.RateLimit.Requests, "rate-limit", 100, "Requests allowed per client IP per window, 0 disables")
	flag.DurationVar(&cfg.RateLimit.Window, "rate-limit-window", time.Minute, "Rate limit window")

	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", os.Getenv("OTEL_COLLECTOR_URL"), "OpenTelemetry collector gRPC endpoint")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	cfg.CORS.Origins = splitList(*corsOrigins)

	stdoutHandler := slog.NewTextHandler(os.Stdout, nil)
	logger := slog.New(stdoutHandler)

	app := &Application{
		config:    cfg,
		logger:    logger,
		validator: appvalidator.NewValidator(),
	}

	telemetryCfg := telemetry.Config{
		CollectorURL: cfg.OtelCollectorUrl,
		ServiceName:  serviceName,
		Version:      version,
		Environment:  cfg.Env,
	}

	shutdownTelemetry, err := telemetry.Setup(context.Background(), telemetryCfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			app.logger.Error("failed to shutdown telemetry providers", "error", err)
		}
	}()

	if telemetryCfg.Enabled() {
		app.logger = slog.New(telemetry.NewFanoutHandler(stdoutHandler, otelslog.NewHandler(serviceName)))
	} else {
		app.logger.Info("OpenTelemetry collector URL not set, skipping initialization")
	}

	if cfg.DB.DSN != "" {
		db, err := NewDatabasePool(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		app.movieRepo = repository.NewPostgresMovieRepository(db)
		app.reviewRepo = repository.NewPostgresReviewRepository(db)
	} else {
		movies, err := catalog.Load()
		if err != nil {
			return err
		}

		app.logger.Info("no database configured, serving bundled catalog read-only", "movies", len(movies))

		app.movieRepo = repository.NewMemoryMovieRepository(movies)
		app.reviewRepo = repository.NewMemoryReviewRepository(movies)
	}

	var cache enrich.Cache = enrich.NopCache{}
	if cfg.Redis.URL != "" {
		redisClient, err := NewRedisClient(cfg)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		cache = enrich.NewRedisCache(redisClient, app.logger)
	}

	app.enricher = enrich.NewClient(enrich.Config{
		APIKey:   cfg.AI.APIKey,
		URL:      cfg.AI.URL,
		Model:    cfg.AI.Model,
		Timeout:  cfg.AI.Timeout,
		CacheTTL: cfg.AI.CacheTTL,
	}, cache, app.logger)

	return app.run()
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		rdb.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: app.config.AI.Timeout + 10*time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "storage", app.config.Storage())

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}
