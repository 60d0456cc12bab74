// Package search implements the fuzzy query engine: a bounded bitap matcher
// evaluated per configured field, per document, with scores aggregated into
// a ranked result list.
package search

import (
	"context"

	"github.com/hollowbrook/sitesearch/internal/domain/index"
	"github.com/hollowbrook/sitesearch/internal/domain/search/result"
)

// cancelCheckInterval is how many documents are scored between cooperative
// context checks.
const cancelCheckInterval = 256

// Service runs queries against one immutable index. It holds no mutable
// state; Search is pure and safe to invoke concurrently.
type Service struct {
	idx *index.Index
}

// New creates a query service over a built index. The index and its options
// are assumed pre-validated; no re-validation happens per call.
func New(idx *index.Index) *Service {
	return &Service{idx: idx}
}

// Index returns the underlying index.
func (s *Service) Index() *index.Index { return s.idx }

// Search returns the ranked matches for the query. An empty or blank query
// yields no results by policy, not an error. The per-document score is the
// best (lowest) accepted score across the configured fields.
func (s *Service) Search(ctx context.Context, query string) ([]result.Match, error) {
	if isBlank(query) {
		return nil, nil
	}

	opts := s.idx.Options()
	matcher := NewMatcher(query, opts)

	var hits []hit
	for i := 0; i < s.idx.Len(); i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		doc := s.idx.At(i)
		best := 1.0
		var fields []string
		for _, key := range opts.Keys() {
			text, ok := doc.Folded(key)
			if !ok {
				continue
			}
			fm := matcher.Match(text)
			if !fm.OK {
				continue
			}
			fields = append(fields, key)
			if fm.Score < best {
				best = fm.Score
			}
		}
		if len(fields) == 0 {
			continue
		}
		hits = append(hits, hit{pos: i, id: doc.ID(), score: best, fields: fields})
	}

	return rank(hits, opts.SortResults(), opts.Limit()), nil
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
