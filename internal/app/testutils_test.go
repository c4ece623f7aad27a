package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/metinatakli/movie-match-api/api"
	"github.com/metinatakli/movie-match-api/internal/mocks"
	"github.com/metinatakli/movie-match-api/internal/validator"
)

type envelope[T any] struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Total   *int `json:"total"`
	Data    T    `json:"data"`
}

func newTestApplication(opts ...func(*Application)) *Application {
	app := &Application{
		config:     Config{Env: "test"},
		validator:  validator.NewValidator(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		movieRepo:  &mocks.MockMovieRepo{},
		reviewRepo: &mocks.MockReviewRepo{},
		enricher:   &mocks.MockEnricher{},
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	var reader io.Reader

	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

// serve runs the request through the full router so that URL parameters and
// middleware apply.
func serve(app *Application, w *httptest.ResponseRecorder, r *http.Request) {
	app.Routes().ServeHTTP(w, r)
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantErrMessage string) {
	t.Helper()

	if w.Code != wantStatus {
		t.Fatalf("Status = %d, want %d, body: %s", w.Code, wantStatus, w.Body.String())
	}

	if wantStatus >= 200 && wantStatus < 300 {
		return
	}

	var errorResp api.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}

	if errorResp.Success {
		t.Errorf("Error response has success = true")
	}

	if wantErrMessage != "" && errorResp.Error != wantErrMessage {
		t.Errorf("Error message = %v, want %v", errorResp.Error, wantErrMessage)
	}
}

func decodeEnvelope[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var resp envelope[T]
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	return resp
}

func ptr[T any](v T) *T {
	return &v
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()

	if err := json.NewDecoder(w.Body).Decode(dst); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}
