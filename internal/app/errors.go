package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/movie-match-api/api"
	"github.com/metinatakli/movie-match-api/internal/domain"
	"github.com/metinatakli/movie-match-api/internal/middleware"
	appvalidator "github.com/metinatakli/movie-match-api/internal/validator"
)

const (
	ErrInvalidMovieID  = "Invalid movie ID"
	ErrInvalidReviewID = "Invalid review ID"
	ErrMovieNotFound   = "Movie not found"
	ErrReviewNotFound  = "Review not found"
	ErrNoMovies        = "No movies available"
	ErrReadOnly        = "The movie catalog is read-only"
	ErrEmptyUpdate     = "At least one field is required: author, rating, comment"
)

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := api.ErrorResponse{
		Success: false,
		Error:   message,
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, middleware.ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.errorResponse(w, r, http.StatusNotFound, message)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, appvalidator.Message(err))
}

func (app *Application) readOnlyResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, ErrReadOnly)
}

// repositoryErrorResponse maps storage errors to responses; notFound is the
// message sent for domain.ErrRecordNotFound.
func (app *Application) repositoryErrorResponse(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		app.notFoundResponse(w, r, notFound)
	case errors.Is(err, domain.ErrReadOnly):
		app.readOnlyResponse(w, r)
	default:
		app.serverErrorResponse(w, r, err)
	}
}
