package retrieval

import (
	"sort"

	"github.com/Maazpendari01/InterviewQi/internal/models"
)

// Rank orders docs by keyword overlap with query and returns at most k of them.
// Docs outside category are dropped unless category is empty. Ties keep the
// input order, and zero-overlap docs are still returned to fill k.
func Rank(query string, docs []models.Exemplar, category string, k int) []models.Exemplar {
	if k <= 0 {
		return nil
	}

	queryTokens := tokenize(query)

	type scored struct {
		doc   models.Exemplar
		score int
	}
	candidates := make([]scored, 0, len(docs))
	for _, doc := range docs {
		if category != "" && doc.Metadata.Category != category {
			continue
		}
		candidates = append(candidates, scored{
			doc:   doc,
			score: sharedKeywords(queryTokens, tokenize(doc.Content)),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	out := make([]models.Exemplar, len(candidates))
	for i, c := range candidates {
		out[i] = c.doc
	}
	return out
}
