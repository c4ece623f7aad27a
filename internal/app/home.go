package app

import (
	"context"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/metinatakli/movie-match-api/api"
)

var loadSpec = sync.OnceValues(func() (*openapi3.T, error) {
	return api.LoadSpec(context.Background())
})

func (app *Application) GetHome(w http.ResponseWriter, r *http.Request) {
	resp := api.WelcomeResponse{
		Message: "Welcome to Movie Match API 🎬",
		Endpoints: map[string]string{
			"allMovies":   "GET /movies",
			"movieById":   "GET /movies/:id",
			"randomMovie": "GET /movies/random",
			"stats":       "GET /movies/stats",
			"discover":    "GET /movies/discover?count=3",
			"reviews":     "GET /movies/:id/reviews",
			"openapi":     "GET /openapi.json",
			"healthcheck": "GET /healthcheck",
		},
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	doc, err := loadSpec()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, doc, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
