package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-match-api/internal/domain"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"createdAt": {},
	"updatedAt": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanValue(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// timestamps differ on every run
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanValue(v any) {
	switch v := v.(type) {
	case map[string]any:
		for k := range v {
			if _, ok := keysToIgnore[k]; ok {
				delete(v, k)
				continue
			}
			cleanValue(v[k])
		}
	case []any:
		for _, item := range v {
			cleanValue(item)
		}
	}
}

func decodeBody[T any](t testing.TB, body io.Reader) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(body).Decode(&v))

	return v
}

func defaultTestMovie() *domain.Movie {
	return &domain.Movie{
		Title:       TestMovieTitle,
		Year:        TestMovieYear,
		Genre:       TestMovieGenres,
		Rating:      TestMovieRating,
		Director:    TestMovieDirector,
		Description: TestMovieDescription,
	}
}

func truncateMovies(t testing.TB, db *pgxpool.Pool) {
	t.Helper()

	_, err := db.Exec(context.Background(), `TRUNCATE movies RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

func insertTestMovie(t testing.TB, db *pgxpool.Pool, m *domain.Movie) int {
	t.Helper()

	var id int
	err := db.QueryRow(context.Background(), `
		INSERT INTO movies (title, year, genre, rating, director, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		m.Title, m.Year, m.Genre, m.Rating, m.Director, m.Description,
	).Scan(&id)
	require.NoError(t, err)

	return id
}

func insertTestReview(t testing.TB, db *pgxpool.Pool, movieId int, author string, rating int, comment string) int {
	t.Helper()

	var id int
	err := db.QueryRow(context.Background(), `
		INSERT INTO reviews (movie_id, author, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		movieId, author, rating, comment,
	).Scan(&id)
	require.NoError(t, err)

	return id
}

func countRows(t testing.TB, db *pgxpool.Pool, table string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&n)
	require.NoError(t, err)

	return n
}

var promptTitle = regexp.MustCompile(`(?m)^- "(.+)" \(\d+\)$`)

// fakeCompletionServer answers chat completions with an enrichment for every
// movie listed in the prompt.
type fakeCompletionServer struct {
	*httptest.Server
	calls atomic.Int32
}

func newFakeCompletionServer() *fakeCompletionServer {
	f := &fakeCompletionServer{}

	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)

		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) == 0 {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		type item struct {
			Title    string `json:"title"`
			Anecdote string `json:"anecdote"`
			FunFact  string `json:"funFact"`
			Pitch    string `json:"pitch"`
		}

		var reply struct {
			Movies []item `json:"movies"`
		}
		for _, m := range promptTitle.FindAllStringSubmatch(req.Messages[0].Content, -1) {
			reply.Movies = append(reply.Movies, item{
				Title:    m[1],
				Anecdote: "anecdote about " + m[1],
				FunFact:  "fun fact about " + m[1],
				Pitch:    "watch " + m[1],
			})
		}

		content, _ := json.Marshal(reply)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "Here you go:\n" + string(content)}},
			},
		})
	}))

	return f
}

func (f *fakeCompletionServer) Calls() int {
	return int(f.calls.Load())
}
