package app

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/metinatakli/movie-match-api/api"
	"github.com/metinatakli/movie-match-api/internal/domain"
	"github.com/metinatakli/movie-match-api/internal/query"
)

const DefaultDiscoverCount = 3

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request) {
	q := query.ParseParams(r.URL.Query())

	movies, total, err := app.movieRepo.GetAll(r.Context(), q)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	data := toApiMovies(movies)

	app.writeEnvelope(w, r, http.StatusOK, api.SuccessResponse{
		Success: true,
		Count:   len(data),
		Total:   &total,
		Data:    data,
	})
}

func (app *Application) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, errors.New(ErrInvalidMovieID))
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), id)
	if err != nil {
		app.repositoryErrorResponse(w, r, err, ErrMovieNotFound)
		return
	}

	app.writeSuccess(w, r, http.StatusOK, toApiMovie(movie))
}

func (app *Application) GetMovieStats(w http.ResponseWriter, r *http.Request) {
	stats, err := app.movieRepo.GetStats(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeSuccess(w, r, http.StatusOK, api.Stats{
		TotalMovies: stats.TotalMovies,
		ByGenre:     stats.ByGenre,
	})
}

func (app *Application) GetRandomMovie(w http.ResponseWriter, r *http.Request) {
	movie, err := app.movieRepo.GetRandom(r.Context())
	if err != nil {
		app.repositoryErrorResponse(w, r, err, ErrNoMovies)
		return
	}

	app.writeSuccess(w, r, http.StatusOK, toApiMovie(movie))
}

func (app *Application) DiscoverMovies(w http.ResponseWriter, r *http.Request) {
	count, err := strconv.Atoi(r.URL.Query().Get("count"))
	if err != nil || count < 1 {
		count = DefaultDiscoverCount
	}

	movies, err := app.movieRepo.GetRandomN(r.Context(), count)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	enriched := app.enricher.Enrich(r.Context(), movies)

	app.writeSuccess(w, r, http.StatusOK, toApiEnrichedMovies(enriched))
}

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var input api.CreateMovieRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movie := &domain.Movie{
		Title:       input.Title,
		Year:        input.Year,
		Genre:       input.Genre,
		Rating:      input.Rating,
		Director:    input.Director,
		Description: input.Description,
	}

	err = app.movieRepo.Create(r.Context(), movie)
	if err != nil {
		app.repositoryErrorResponse(w, r, err, ErrMovieNotFound)
		return
	}

	app.writeSuccess(w, r, http.StatusCreated, toApiMovie(movie))
}

func (app *Application) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, errors.New(ErrInvalidMovieID))
		return
	}

	var input api.UpdateMovieRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), id)
	if err != nil {
		app.repositoryErrorResponse(w, r, err, ErrMovieNotFound)
		return
	}

	// the stored record is left untouched until the write succeeds
	updated := *movie
	applyMovieUpdate(&updated, input)

	err = app.movieRepo.Update(r.Context(), &updated)
	if err != nil {
		app.repositoryErrorResponse(w, r, err, ErrMovieNotFound)
		return
	}

	app.writeSuccess(w, r, http.StatusOK, toApiMovie(&updated))
}

func (app *Application) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, errors.New(ErrInvalidMovieID))
		return
	}

	err = app.movieRepo.Delete(r.Context(), id)
	if err != nil {
		app.repositoryErrorResponse(w, r, err, ErrMovieNotFound)
		return
	}

	app.writeSuccess(w, r, http.StatusOK, api.MessageResponse{Message: "Movie deleted successfully"})
}

func applyMovieUpdate(movie *domain.Movie, input api.UpdateMovieRequest) {
	if input.Title != nil {
		movie.Title = *input.Title
	}
	if input.Year != nil {
		movie.Year = *input.Year
	}
	if input.Genre != nil {
		movie.Genre = input.Genre
	}
	if input.Rating != nil {
		movie.Rating = *input.Rating
	}
	if input.Director != nil {
		movie.Director = *input.Director
	}
	if input.Description != nil {
		movie.Description = *input.Description
	}
}

func toApiMovies(movies []*domain.Movie) []api.Movie {
	result := make([]api.Movie, len(movies))
	for i, m := range movies {
		result[i] = toApiMovie(m)
	}

	return result
}

func toApiMovie(movie *domain.Movie) api.Movie {
	if movie == nil {
		return api.Movie{}
	}

	genre := movie.Genre
	if genre == nil {
		genre = []string{}
	}

	resp := api.Movie{
		Id:          movie.ID,
		Title:       movie.Title,
		Year:        movie.Year,
		Genre:       genre,
		Rating:      movie.Rating,
		Director:    movie.Director,
		Description: movie.Description,
	}

	if !movie.CreatedAt.IsZero() {
		resp.CreatedAt = &movie.CreatedAt
	}
	if !movie.UpdatedAt.IsZero() {
		resp.UpdatedAt = &movie.UpdatedAt
	}

	return resp
}

func toApiEnrichedMovies(enriched []domain.EnrichedMovie) []api.EnrichedMovie {
	result := make([]api.EnrichedMovie, len(enriched))

	for i, e := range enriched {
		result[i] = api.EnrichedMovie{Movie: toApiMovie(e.Movie)}

		if e.Enrichment != nil {
			result[i].AIEnriched = &api.Enrichment{
				Anecdote: e.Enrichment.Anecdote,
				FunFact:  e.Enrichment.FunFact,
				Pitch:    e.Enrichment.Pitch,
			}
		}
	}

	return result
}
