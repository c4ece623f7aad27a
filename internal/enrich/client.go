package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/metinatakli/movie-match-api/internal/domain"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultURL   = "https://openrouter.ai/api/v1/chat/completions"
	DefaultModel = "meta-llama/llama-3.2-3b-instruct:free"

	breakerName         = "openrouter"
	breakerMaxFailures  = 3
	breakerOpenDuration = time.Minute
)

var (
	errNoJSON    = errors.New("reply contains no JSON object")
	errNoMovies  = errors.New("reply JSON has no movies array")
	errNoContent = errors.New("completion has no message content")
)

type Config struct {
	APIKey   string
	URL      string
	Model    string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Client enriches movies through an OpenRouter chat completion. Failures are
// never surfaced: the affected movies come back without enrichment.
type Client struct {
	cfg     Config
	http    *http.Client
	cache   Cache
	breaker *gobreaker.CircuitBreaker[map[string]domain.Enrichment]
	logger  *slog.Logger
	metrics metrics
	tracer  trace.Tracer
}

func NewClient(cfg Config, cache Cache, logger *slog.Logger) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cache == nil {
		cache = NopCache{}
	}

	breaker := gobreaker.NewCircuitBreaker[map[string]domain.Enrichment](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     breakerOpenDuration,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerMaxFailures
		},
		// a caller hanging up says nothing about the upstream
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		cache:   cache,
		breaker: breaker,
		logger:  logger,
		metrics: newMetrics(otel.GetMeterProvider()),
		tracer:  otel.Tracer(instrumentationName),
	}
}

func (c *Client) Enrich(ctx context.Context, movies []*domain.Movie) []domain.EnrichedMovie {
	if c.cfg.APIKey == "" || len(movies) == 0 {
		return withEnrichments(movies, nil)
	}

	keys := make([]string, 0, len(movies))
	for _, m := range movies {
		keys = append(keys, titleKey(m.Title))
	}

	enrichments, err := c.cache.GetMany(ctx, keys)
	if err != nil {
		c.logger.Warn("enrichment cache lookup failed", "error", err)
		enrichments = map[string]domain.Enrichment{}
	}

	var misses []*domain.Movie
	for _, m := range movies {
		if _, ok := enrichments[titleKey(m.Title)]; !ok {
			misses = append(misses, m)
		}
	}

	c.metrics.recordLookups(ctx, len(movies)-len(misses), len(misses))

	if len(misses) == 0 {
		return withEnrichments(movies, enrichments)
	}

	fetched, err := c.breaker.Execute(func() (map[string]domain.Enrichment, error) {
		return c.complete(ctx, misses)
	})
	c.metrics.recordCompletion(ctx, err)
	if err != nil {
		c.logger.Warn("movie enrichment unavailable", "error", err, "movies", len(misses))
		return withEnrichments(movies, enrichments)
	}

	err = c.cache.SetMany(ctx, fetched, c.cfg.CacheTTL)
	if err != nil {
		c.logger.Warn("enrichment cache store failed", "error", err)
	}

	for k, e := range fetched {
		enrichments[k] = e
	}

	return withEnrichments(movies, enrichments)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) complete(ctx context.Context, movies []*domain.Movie) (result map[string]domain.Enrichment, err error) {
	ctx, span := c.tracer.Start(ctx, "enrich.complete", trace.WithAttributes(
		attribute.String("enrich.model", c.cfg.Model),
		attribute.Int("enrich.movies", len(movies)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	body, err := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: buildPrompt(movies)}},
		Temperature: 0.7,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("X-Title", "Movie Match API")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("completion request failed with status %d", resp.StatusCode)
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("decode completion: %w", err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return nil, errNoContent
	}

	return parseReply(completion.Choices[0].Message.Content)
}

func withEnrichments(movies []*domain.Movie, enrichments map[string]domain.Enrichment) []domain.EnrichedMovie {
	result := make([]domain.EnrichedMovie, len(movies))

	for i, m := range movies {
		result[i] = domain.EnrichedMovie{Movie: m}

		if e, ok := enrichments[titleKey(m.Title)]; ok {
			result[i].Enrichment = &e
		}
	}

	return result
}
