// Package sitesearch provides fuzzy full-text search over a small document
// corpus. An Engine is built once from the corpus and answers queries with
// approximate matching: typos and partial words still find their page.
package sitesearch

import (
	"context"
	"fmt"

	"github.com/hollowbrook/sitesearch/internal/domain"
	"github.com/hollowbrook/sitesearch/internal/domain/document"
	"github.com/hollowbrook/sitesearch/internal/domain/index"
	searchuc "github.com/hollowbrook/sitesearch/internal/usecase/search"
)

// Sentinel errors returned by the public API. Use errors.Is to test.
var (
	ErrInvalidOptions  = domain.ErrInvalidOptions
	ErrInvalidDocument = domain.ErrInvalidDocument
)

// Document is one searchable page: a stable ID plus named text fields.
type Document struct {
	ID     string
	Fields map[string]string
}

// Match is one search hit. Score is 0 for a perfect match at the expected
// location and grows toward 1 as matches get fuzzier or farther away.
type Match struct {
	ID            string
	Score         float64
	MatchedFields []string
}

// Engine answers fuzzy search queries over a fixed corpus.
type Engine struct {
	svc *searchuc.Service
}

// New builds an Engine over docs. Option validation happens here; a nil
// error means every later Search will run without configuration errors.
func New(docs []Document, opts Options) (*Engine, error) {
	resolved, err := opts.resolve()
	if err != nil {
		return nil, err
	}

	internal := make([]document.Document, 0, len(docs))
	for _, d := range docs {
		doc, err := document.New(d.ID, d.Fields)
		if err != nil {
			return nil, fmt.Errorf("document %q: %w", d.ID, err)
		}
		internal = append(internal, doc)
	}

	idx, err := index.Build(internal, resolved)
	if err != nil {
		return nil, err
	}

	return &Engine{svc: searchuc.New(idx)}, nil
}

// Search returns matching documents ordered per the engine options. An
// empty or whitespace-only query matches nothing.
func (e *Engine) Search(ctx context.Context, query string) ([]Match, error) {
	matches, err := e.svc.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	out := make([]Match, len(matches))
	for i := range matches {
		out[i] = Match{
			ID:            matches[i].ID(),
			Score:         matches[i].Score(),
			MatchedFields: matches[i].MatchedFields(),
		}
	}
	return out, nil
}

// Len reports the number of indexed documents.
func (e *Engine) Len() int {
	return e.svc.Index().Len()
}
