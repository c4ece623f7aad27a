package enrich

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/metinatakli/movie-match-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "enrichment:"

// Cache stores enrichments keyed by lower-cased movie title.
type Cache interface {
	GetMany(ctx context.Context, keys []string) (map[string]domain.Enrichment, error)
	SetMany(ctx context.Context, entries map[string]domain.Enrichment, ttl time.Duration) error
}

type RedisCache struct {
	client redis.UniversalClient
	logger *slog.Logger
}

func NewRedisCache(client redis.UniversalClient, logger *slog.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		logger: logger,
	}
}

type cachedEnrichment struct {
	Anecdote string `json:"anecdote"`
	FunFact  string `json:"funFact"`
	Pitch    string `json:"pitch"`
}

func (c *RedisCache) GetMany(ctx context.Context, keys []string) (map[string]domain.Enrichment, error) {
	found := make(map[string]domain.Enrichment, len(keys))
	if len(keys) == 0 {
		return found, nil
	}

	redisKeys := make([]string, len(keys))
	for i, k := range keys {
		redisKeys[i] = cacheKeyPrefix + k
	}

	values, err := c.client.MGet(ctx, redisKeys...).Result()
	if err != nil {
		return nil, err
	}

	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}

		var entry cachedEnrichment
		if err := json.Unmarshal([]byte(s), &entry); err != nil {
			c.logger.Warn("dropping corrupt enrichment cache entry", "key", redisKeys[i], "error", err)
			continue
		}

		found[keys[i]] = domain.Enrichment(entry)
	}

	return found, nil
}

func (c *RedisCache) SetMany(ctx context.Context, entries map[string]domain.Enrichment, ttl time.Duration) error {
	if len(entries) == 0 {
		return nil
	}

	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, e := range entries {
			data, err := json.Marshal(cachedEnrichment(e))
			if err != nil {
				return err
			}

			pipe.Set(ctx, cacheKeyPrefix+k, data, ttl)
		}
		return nil
	})

	return err
}

// NopCache never holds anything.
type NopCache struct{}

func (NopCache) GetMany(context.Context, []string) (map[string]domain.Enrichment, error) {
	return map[string]domain.Enrichment{}, nil
}

func (NopCache) SetMany(context.Context, map[string]domain.Enrichment, time.Duration) error {
	return nil
}
