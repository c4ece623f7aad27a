package enrich

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/metinatakli/movie-match-api/internal/domain"
)

var jsonObject = regexp.MustCompile(`(?s)\{.*\}`)

func buildPrompt(movies []*domain.Movie) string {
	var list strings.Builder
	for _, m := range movies {
		fmt.Fprintf(&list, "- %q (%d)\n", m.Title, m.Year)
	}

	return fmt.Sprintf(`You are a film expert. For each movie in the following list, provide:
1. A short anecdote about its production
2. A fun fact
3. A convincing sales pitch

Movies:
%s
IMPORTANT: Reply ONLY with valid JSON and no additional text.
The format must be exactly:
{
  "movies": [
    {
      "title": "Exact movie title",
      "anecdote": "anecdote here",
      "funFact": "fun fact here",
      "pitch": "sales pitch here"
    }
  ]
}`, list.String())
}

type enrichmentReply struct {
	Movies []struct {
		Title    string `json:"title"`
		Anecdote string `json:"anecdote"`
		FunFact  string `json:"funFact"`
		Pitch    string `json:"pitch"`
	} `json:"movies"`
}

// parseReply extracts the first JSON object from a model reply and indexes
// the enrichments it contains by lower-cased title.
func parseReply(content string) (map[string]domain.Enrichment, error) {
	raw := jsonObject.FindString(content)
	if raw == "" {
		return nil, errNoJSON
	}

	var reply enrichmentReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		return nil, fmt.Errorf("decode enrichment reply: %w", err)
	}

	if reply.Movies == nil {
		return nil, errNoMovies
	}

	enrichments := make(map[string]domain.Enrichment, len(reply.Movies))
	for _, item := range reply.Movies {
		enrichments[titleKey(item.Title)] = domain.Enrichment{
			Anecdote: item.Anecdote,
			FunFact:  item.FunFact,
			Pitch:    item.Pitch,
		}
	}

	return enrichments, nil
}

func titleKey(title string) string {
	return strings.ToLower(title)
}
