package integration_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/metinatakli/movie-match-api/internal/repository"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/sync/errgroup"
)

// containers holds the PostgreSQL and Redis instances shared by a suite.
type containers struct {
	postgres  *postgres.PostgresContainer
	redis     *tcredis.RedisContainer
	dsn       string
	redisAddr string
}

// startContainers boots PostgreSQL and Redis in parallel and migrates the
// database. Anything already started is terminated when a step fails.
func startContainers(ctx context.Context) (*containers, error) {
	c := &containers{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		pg, dsn, err := startPostgres(gctx)
		c.postgres, c.dsn = pg, dsn
		return err
	})

	g.Go(func() error {
		rc, addr, err := startRedis(gctx)
		c.redis, c.redisAddr = rc, addr
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, errors.Join(err, c.terminate())
	}

	if err := repository.Migrate(c.dsn); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to run migrations: %w", err), c.terminate())
	}

	return c, nil
}

func (c *containers) terminate() error {
	var err error

	if c.postgres != nil {
		err = errors.Join(err, testcontainers.TerminateContainer(c.postgres))
	}
	if c.redis != nil {
		err = errors.Join(err, testcontainers.TerminateContainer(c.redis))
	}

	return err
}

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	container, err := postgres.Run(ctx, dbImageName,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
					return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
						dbUser, dbPassword, host, port.Port(), dbName)
				}),
			).WithDeadline(60*time.Second),
		),
	)
	if err != nil {
		return container, "", fmt.Errorf("failed to start DB container: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, "", fmt.Errorf("failed to get DB connection string: %w", err)
	}

	return container, dsn, nil
}

func startRedis(ctx context.Context) (*tcredis.RedisContainer, string, error) {
	container, err := tcredis.Run(ctx, cacheImageName)
	if err != nil {
		return container, "", fmt.Errorf("failed to start cache container: %w", err)
	}

	// go-redis wants host:port rather than a redis:// URL
	addr, err := container.Endpoint(ctx, "")
	if err != nil {
		return container, "", fmt.Errorf("failed to get cache endpoint: %w", err)
	}

	return container, addr, nil
}
