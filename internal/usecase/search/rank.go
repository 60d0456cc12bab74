package search

import (
	"sort"

	"github.com/hollowbrook/sitesearch/internal/domain/search/result"
)

// hit is one scored document before ranking, tagged with its corpus position.
type hit struct {
	pos    int
	id     string
	score  float64
	fields []string
}

// rank deduplicates hits by document identity, optionally orders them best
// first, and applies the result limit. Sorting is stable so equal scores
// keep corpus order, and the limit truncates without reordering.
func rank(hits []hit, sortResults bool, limit int) []result.Match {
	if len(hits) == 0 {
		return nil
	}

	// Dedup by ID: keep the better score, ties to the earlier document.
	seen := make(map[string]int, len(hits))
	deduped := hits[:0]
	for _, h := range hits {
		if i, ok := seen[h.id]; ok {
			if h.score < deduped[i].score {
				deduped[i].score = h.score
				deduped[i].fields = h.fields
			}
			continue
		}
		seen[h.id] = len(deduped)
		deduped = append(deduped, h)
	}

	if sortResults {
		sort.SliceStable(deduped, func(i, j int) bool {
			return deduped[i].score < deduped[j].score
		})
	}

	if limit > 0 && len(deduped) > limit {
		deduped = deduped[:limit]
	}

	matches := make([]result.Match, len(deduped))
	for i, h := range deduped {
		matches[i] = result.New(h.id, h.score, h.fields)
	}
	return matches
}
