package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

type Movie struct {
	Id          int        `json:"id"`
	Title       string     `json:"title"`
	Year        int        `json:"year"`
	Genre       []string   `json:"genre"`
	Rating      float64    `json:"rating"`
	Director    string     `json:"director"`
	Description string     `json:"description"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// EnrichedMovie is a movie as returned by the discover endpoint. AIEnriched is
// serialized as null when no enrichment is available.
type EnrichedMovie struct {
	Movie
	AIEnriched *Enrichment `json:"ai_enriched"`
}

type Enrichment struct {
	Anecdote string `json:"anecdote"`
	FunFact  string `json:"funFact"`
	Pitch    string `json:"pitch"`
}

type Review struct {
	Id        int       `json:"id"`
	MovieId   int       `json:"movieId"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Stats struct {
	TotalMovies int            `json:"totalMovies"`
	ByGenre     map[string]int `json:"byGenre"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Total   *int `json:"total,omitempty"`
	Data    any  `json:"data"`
}

type ErrorResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Stack   []string `json:"stack,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type WelcomeResponse struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Storage     string `json:"storage"`
}

type CreateMovieRequest struct {
	Title       string    `json:"title" validate:"required,notblank"`
	Year        int       `json:"year" validate:"required"`
	Genre       GenreList `json:"genre" validate:"required,min=1,dive,notblank"`
	Rating      float64   `json:"rating" validate:"required,gt=0,lte=10"`
	Director    string    `json:"director" validate:"required,notblank"`
	Description string    `json:"description" validate:"required,notblank"`
}

// UpdateMovieRequest carries only the fields the client sent; nil means
// unchanged.
type UpdateMovieRequest struct {
	Title       *string   `json:"title" validate:"omitnil,notblank"`
	Year        *int      `json:"year" validate:"omitnil,ne=0"`
	Genre       GenreList `json:"genre" validate:"omitnil,min=1,dive,notblank"`
	Rating      *float64  `json:"rating" validate:"omitnil,gt=0,lte=10"`
	Director    *string   `json:"director" validate:"omitnil,notblank"`
	Description *string   `json:"description" validate:"omitnil,notblank"`
}

type CreateReviewRequest struct {
	Author  string `json:"author" validate:"required,notblank"`
	Rating  *int   `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,notblank"`
}

type UpdateReviewRequest struct {
	Author  *string `json:"author" validate:"omitnil,notblank"`
	Rating  *int    `json:"rating" validate:"omitnil,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitnil,notblank"`
}

func (r UpdateReviewRequest) Empty() bool {
	return r.Author == nil && r.Rating == nil && r.Comment == nil
}

// GenreList accepts either a single genre string or an array of genres.
type GenreList []string

func (g *GenreList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*g = nil
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}

		*g = GenreList{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.New("genre must be a string or an array of strings")
	}

	*g = list
	return nil
}
