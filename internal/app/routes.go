package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/movie-match-api/internal/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(middleware.NotFoundHandler)
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler)

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(middleware.RecoverPanic(app.logger, app.config.Env != "prod"))
	r.Use(middleware.CORS(app.config.CORS.Origins))
	r.Use(middleware.RateLimit(app.config.RateLimit.Requests, app.config.RateLimit.Window))
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))

	r.Get("/", app.GetHome)
	r.Get("/healthcheck", app.GetHealth)
	r.Get("/openapi.json", app.GetOpenAPISpec)

	r.Route("/movies", func(r chi.Router) {
		r.Get("/", app.GetMovies)
		r.Post("/", app.CreateMovie)

		// static segments take precedence over {movieId}
		r.Get("/stats", app.GetMovieStats)
		r.Get("/random", app.GetRandomMovie)
		r.Get("/discover", app.DiscoverMovies)

		r.Route("/{movieId}", func(r chi.Router) {
			r.Get("/", app.GetMovie)
			r.Put("/", app.UpdateMovie)
			r.Delete("/", app.DeleteMovie)

			r.Route("/reviews", func(r chi.Router) {
				r.Get("/", app.GetReviews)
				r.Post("/", app.CreateReview)
				r.Put("/{reviewId}", app.UpdateReview)
				r.Delete("/{reviewId}", app.DeleteReview)
			})
		})
	})

	return r
}
