package search

import (
	"context"
	"testing"

	"github.com/hollowbrook/sitesearch/internal/domain/document"
	"github.com/hollowbrook/sitesearch/internal/domain/index"
	"github.com/hollowbrook/sitesearch/internal/domain/search/options"
)

func buildService(t *testing.T, opts options.Options, docs ...map[string]string) *Service {
	t.Helper()
	corpus := make([]document.Document, len(docs))
	for i, fields := range docs {
		id := fields["id"]
		if id == "" {
			id = fields["title"]
		}
		delete(fields, "id")
		doc, err := document.New(id, fields)
		if err != nil {
			t.Fatalf("document.New: %v", err)
		}
		corpus[i] = doc
	}
	ix, err := index.Build(corpus, opts)
	if err != nil {
		t.Fatalf("index.Build: %v", err)
	}
	return New(ix)
}

func TestSearch_ExactSubstringScoresZero(t *testing.T) {
	svc := buildService(t, options.Default(),
		map[string]string{"id": "a", "title": "Creating a REST API"},
	)

	// Case-folded query matching the field from position 0.
	matches, err := svc.Search(context.Background(), "creating")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].ID() != "a" {
		t.Errorf("ID = %q", matches[0].ID())
	}
	if matches[0].Score() != 0 {
		t.Errorf("Score = %v, want 0", matches[0].Score())
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	svc := buildService(t, options.Default(),
		map[string]string{"id": "a", "title": "something"},
	)

	for _, q := range []string{"", "   ", "\t\n"} {
		matches, err := svc.Search(context.Background(), q)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(matches) != 0 {
			t.Errorf("query %q: got %d matches, want 0", q, len(matches))
		}
	}
}

func TestSearch_EmptyCorpus(t *testing.T) {
	svc := buildService(t, options.Default())

	matches, err := svc.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("got %d matches, want 0", len(matches))
	}
}

func TestSearch_MissingFieldStillMatches(t *testing.T) {
	p := options.DefaultParams()
	p.Keys = []string{"title", "summary"}
	opts, err := options.New(p)
	if err != nil {
		t.Fatalf("options.New: %v", err)
	}
	svc := buildService(t, opts,
		map[string]string{"id": "a", "title": "weekly roundup"}, // no summary field
	)

	matches, err := svc.Search(context.Background(), "weekly")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	fields := matches[0].MatchedFields()
	if len(fields) != 1 || fields[0] != "title" {
		t.Errorf("MatchedFields = %v, want [title]", fields)
	}
}

func TestSearch_GolangLambdaRanking(t *testing.T) {
	svc := buildService(t, options.Default(),
		map[string]string{"id": "lambda", "title": "Creating a REST API with Golang and AWS Lambda"},
		map[string]string{"id": "packages", "title": "Organizing Go Projects with Package Oriented Design"},
	)

	matches, err := svc.Search(context.Background(), "golang lambda")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("expected at least one match")
	}
	if matches[0].ID() != "lambda" {
		t.Errorf("top match = %q, want lambda post first", matches[0].ID())
	}
	for _, m := range matches[1:] {
		if m.ID() == "packages" && m.Score() <= matches[0].Score() {
			t.Errorf("packages post must rank strictly below: %v vs %v",
				m.Score(), matches[0].Score())
		}
	}
}

func TestSearch_BestFieldWins(t *testing.T) {
	svc := buildService(t, options.Default(),
		map[string]string{
			"id":      "a",
			"title":   "gopher tips",
			"content": "assorted gopher tips and tricks for beginners",
		},
	)

	matches, err := svc.Search(context.Background(), "gopher tips")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	// Title matches from position 0, so the document score is perfect even
	// though the content match carries a proximity penalty.
	if matches[0].Score() != 0 {
		t.Errorf("Score = %v, want best field score 0", matches[0].Score())
	}
	if len(matches[0].MatchedFields()) != 2 {
		t.Errorf("MatchedFields = %v, want both fields", matches[0].MatchedFields())
	}
}

func TestSearch_ThresholdOneAdmitsAll(t *testing.T) {
	p := options.DefaultParams()
	p.Threshold = 1
	opts, err := options.New(p)
	if err != nil {
		t.Fatalf("options.New: %v", err)
	}
	svc := buildService(t, opts,
		map[string]string{"id": "a", "title": "qqqq zzzz"},
		map[string]string{"id": "b", "title": "unrelated entirely"},
	)

	matches, err := svc.Search(context.Background(), "xylophone")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("got %d matches, want every document", len(matches))
	}
}

func TestSearch_LimitAppliesAfterSort(t *testing.T) {
	p := options.DefaultParams()
	p.Limit = 2
	limited, err := options.New(p)
	if err != nil {
		t.Fatalf("options.New: %v", err)
	}

	docs := []map[string]string{
		{"id": "far", "title": "say hello everyone"},
		{"id": "exact", "title": "hello world"},
		{"id": "fuzzy", "title": "hxllo world"},
	}
	docsCopy := func() []map[string]string {
		c := make([]map[string]string, len(docs))
		for i, d := range docs {
			m := make(map[string]string, len(d))
			for k, v := range d {
				m[k] = v
			}
			c[i] = m
		}
		return c
	}

	all, err := buildService(t, options.Default(), docsCopy()...).Search(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("unlimited search: got %d matches, want 3", len(all))
	}

	top, err := buildService(t, limited, docsCopy()...).Search(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("limited search: got %d matches, want 2", len(top))
	}
	for i := range top {
		if top[i].ID() != all[i].ID() {
			t.Errorf("top[%d] = %q, want %q (relative order preserved)", i, top[i].ID(), all[i].ID())
		}
	}
}

func TestSearch_Idempotent(t *testing.T) {
	svc := buildService(t, options.Default(),
		map[string]string{"id": "a", "title": "hello world"},
		map[string]string{"id": "b", "title": "hello there"},
		map[string]string{"id": "c", "title": "goodbye"},
	)

	first, err := svc.Search(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Search(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("result counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID() != second[i].ID() || first[i].Score() != second[i].Score() {
			t.Errorf("result %d differs between runs", i)
		}
	}
}

func TestSearch_TieBreaksByCorpusOrder(t *testing.T) {
	svc := buildService(t, options.Default(),
		map[string]string{"id": "first", "title": "hello world"},
		map[string]string{"id": "second", "title": "hello world"},
	)

	matches, err := svc.Search(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches", len(matches))
	}
	if matches[0].ID() != "first" || matches[1].ID() != "second" {
		t.Errorf("tie order = %q, %q, want corpus order", matches[0].ID(), matches[1].ID())
	}
}

func TestSearch_CanceledContext(t *testing.T) {
	svc := buildService(t, options.Default(),
		map[string]string{"id": "a", "title": "hello"},
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Search(ctx, "hello"); err == nil {
		t.Fatal("expected context error")
	}
}
