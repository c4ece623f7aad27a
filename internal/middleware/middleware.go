package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/metinatakli/movie-match-api/api"
	"github.com/metinatakli/movie-match-api/internal/jsonutil"
)

const ErrInternalServer = "The server encountered a problem and could not process your request"

// RecoverPanic turns a panic in a downstream handler into a 500 error
// envelope. The goroutine stack is included in the envelope when exposeStack
// is set.
func RecoverPanic(logger *slog.Logger, exposeStack bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					stack := debug.Stack()

					logger.Error(fmt.Sprintf("%v", err),
						"method", r.Method,
						"uri", r.URL.RequestURI(),
						"stack", string(stack),
					)

					resp := api.ErrorResponse{
						Success: false,
						Error:   ErrInternalServer,
					}

					if exposeStack {
						resp.Stack = strings.Split(strings.TrimSpace(string(stack)), "\n")
					}

					jsonutil.WriteJSON(w, http.StatusInternalServerError, resp, http.Header{
						"Connection": []string{"close"},
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	resp := api.ErrorResponse{
		Success: false,
		Error:   fmt.Sprintf("Route %s %s not found", r.Method, r.URL.RequestURI()),
	}

	jsonutil.WriteJSON(w, http.StatusNotFound, resp, nil)
}

func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	resp := api.ErrorResponse{
		Success: false,
		Error:   fmt.Sprintf("Method %s is not allowed for %s", r.Method, r.URL.Path),
	}

	jsonutil.WriteJSON(w, http.StatusMethodNotAllowed, resp, nil)
}

func CORS(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id", "Retry-After"},
		MaxAge:         300,
	})
}

// RateLimit limits every client IP to requests per window. A non-positive
// limit or window disables limiting.
func RateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	if requests <= 0 || window <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			resp := api.ErrorResponse{
				Success: false,
				Error:   "Too many requests, please try again later",
			}

			jsonutil.WriteJSON(w, http.StatusTooManyRequests, resp, http.Header{
				"Retry-After": []string{strconv.Itoa(int(window.Seconds()))},
			})
		}),
	)
}
