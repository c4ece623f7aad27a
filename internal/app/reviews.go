package app

import (
	"errors"
	"net/http"
	"strings"

	"github.com/metinatakli/movie-match-api/api"
	"github.com/metinatakli/movie-match-api/internal/domain"
)

func (app *Application) GetReviews(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, errors.New(ErrInvalidMovieID))
		return
	}

	reviews, err := app.reviewRepo.GetByMovieId(r.Context(), movieId)
	if err != nil {
		app.repositoryErrorResponse(w, r, err, ErrMovieNotFound)
		return
	}

	app.writeSuccess(w, r, http.StatusOK, toApiReviews(reviews))
}

func (app *Application) CreateReview(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, errors.New(ErrInvalidMovieID))
		return
	}

	var input api.CreateReviewRequest

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

	review := &domain.Review{
		MovieID: movieId,
		Author:  strings.TrimSpace(input.Author),
		Rating:  *input.Rating,
		Comment: strings.TrimSpace(input.Comment),
	}

	err = app.reviewRepo.Create(r.Context(), review)
	if err != nil {
		app.repositoryErrorResponse(w, r, err, ErrMovieNotFound)
		return
	}

	app.writeSuccess(w, r, http.StatusCreated, toApiReview(review))
}

func (app *Application) UpdateReview(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, errors.New(ErrInvalidMovieID))
		return
	}

	reviewId, err := app.readIDParam(r, "reviewId")
	if err != nil {
		app.badRequestResponse(w, r, errors.New(ErrInvalidReviewID))
		return
	}

	var input api.UpdateReviewRequest

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

	if input.Empty() {
		app.badRequestResponse(w, r, errors.New(ErrEmptyUpdate))
		return
	}

	review, err := app.reviewRepo.GetById(r.Context(), movieId, reviewId)
	if err != nil {
		app.repositoryErrorResponse(w, r, err, ErrReviewNotFound)
		return
	}

	if input.Author != nil {
		review.Author = strings.TrimSpace(*input.Author)
	}
	if input.Rating != nil {
		review.Rating = *input.Rating
	}
	if input.Comment != nil {
		review.Comment = strings.TrimSpace(*input.Comment)
	}

	err = app.reviewRepo.Update(r.Context(), review)
	if err != nil {
		app.repositoryErrorResponse(w, r, err, ErrReviewNotFound)
		return
	}

	app.writeSuccess(w, r, http.StatusOK, toApiReview(review))
}

func (app *Application) DeleteReview(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, errors.New(ErrInvalidMovieID))
		return
	}

	reviewId, err := app.readIDParam(r, "reviewId")
	if err != nil {
		app.badRequestResponse(w, r, errors.New(ErrInvalidReviewID))
		return
	}

	err = app.reviewRepo.Delete(r.Context(), movieId, reviewId)
	if err != nil {
		app.repositoryErrorResponse(w, r, err, ErrReviewNotFound)
		return
	}

	app.writeSuccess(w, r, http.StatusOK, api.MessageResponse{Message: "Review deleted successfully"})
}

func toApiReviews(reviews []*domain.Review) []api.Review {
	result := make([]api.Review, len(reviews))
	for i, rv := range reviews {
		result[i] = toApiReview(rv)
	}

	return result
}

func toApiReview(review *domain.Review) api.Review {
	return api.Review{
		Id:        review.ID,
		MovieId:   review.MovieID,
		Author:    review.Author,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}
