// Package catalog holds the bundled movie dataset served in catalog mode and
// used to seed the database.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/metinatakli/movie-match-api/internal/domain"
)

//go:embed movies.json
var moviesJSON []byte

type record struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Year        int      `json:"year"`
	Genre       []string `json:"genre"`
	Rating      float64  `json:"rating"`
	Director    string   `json:"director"`
	Description string   `json:"description"`
}

// Load decodes the bundled dataset. Each call returns fresh values.
func Load() ([]*domain.Movie, error) {
	var records []record

	err := json.Unmarshal(moviesJSON, &records)
	if err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	movies := make([]*domain.Movie, len(records))
	seen := make(map[int]bool, len(records))

	for i, r := range records {
		if seen[r.ID] {
			return nil, fmt.Errorf("duplicate movie id %d in catalog", r.ID)
		}
		seen[r.ID] = true

		movies[i] = &domain.Movie{
			ID:          r.ID,
			Title:       r.Title,
			Year:        r.Year,
			Genre:       r.Genre,
			Rating:      r.Rating,
			Director:    r.Director,
			Description: r.Description,
		}
	}

	return movies, nil
}
