package sitesearch

import (
	"context"
	"errors"
	"testing"
)

func corpus() []Document {
	return []Document{
		{ID: "serverless.en", Fields: map[string]string{
			"title":     "Going Serverless",
			"permalink": "https://blog.example.com/serverless/",
			"summary":   "creating a rest api with golang and aws lambda",
			"content":   "We move a side project onto managed infrastructure.",
		}},
		{ID: "packages.en", Fields: map[string]string{
			"title":     "Organizing Go Projects",
			"permalink": "https://blog.example.com/packages/",
			"summary":   "package oriented design for golang services",
			"content":   "How to lay out a repository that grows well.",
		}},
		{ID: "editors.en", Fields: map[string]string{
			"title":     "Terminal Text Editors",
			"permalink": "https://blog.example.com/editors/",
			"summary":   "a tour of vim and friends",
			"content":   "Modal editing, registers, macros.",
		}},
	}
}

func newEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	e, err := New(corpus(), opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestNew_RejectsBadOptions(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Options)
	}{
		{"no keys", func(o *Options) { o.Keys = nil }},
		{"empty key", func(o *Options) { o.Keys = []string{""} }},
		{"negative distance", func(o *Options) { o.Distance = -1 }},
		{"negative location", func(o *Options) { o.Location = -5 }},
		{"threshold above one", func(o *Options) { o.Threshold = 1.5 }},
		{"negative limit", func(o *Options) { o.Limit = -2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mod(&opts)
			if _, err := New(corpus(), opts); !errors.Is(err, ErrInvalidOptions) {
				t.Fatalf("expected ErrInvalidOptions, got %v", err)
			}
		})
	}
}

func TestNew_RejectsBadDocument(t *testing.T) {
	docs := []Document{{ID: "", Fields: map[string]string{"title": "untitled"}}}
	if _, err := New(docs, DefaultOptions()); !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestSearch_ExactMatchScoresZero(t *testing.T) {
	e := newEngine(t, DefaultOptions())

	matches, err := e.Search(context.Background(), "Going Serverless")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("expected a match")
	}
	if matches[0].ID != "serverless.en" || matches[0].Score != 0 {
		t.Errorf("top match = %+v", matches[0])
	}
}

func TestSearch_ToleratesTypos(t *testing.T) {
	e := newEngine(t, DefaultOptions())

	matches, err := e.Search(context.Background(), "servreless")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) == 0 || matches[0].ID != "serverless.en" {
		t.Fatalf("expected serverless page despite the typo, got %+v", matches)
	}
	if matches[0].Score <= 0 {
		t.Errorf("typo should cost score, got %v", matches[0].Score)
	}
}

func TestSearch_MultiWordRanking(t *testing.T) {
	e := newEngine(t, DefaultOptions())

	matches, err := e.Search(context.Background(), "golang lambda")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("expected matches")
	}
	if matches[0].ID != "serverless.en" {
		t.Errorf("top match = %q, want the page containing both words", matches[0].ID)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	e := newEngine(t, DefaultOptions())

	for _, q := range []string{"", "   ", "\t\n"} {
		matches, err := e.Search(context.Background(), q)
		if err != nil {
			t.Fatalf("Search(%q): %v", q, err)
		}
		if len(matches) != 0 {
			t.Errorf("Search(%q) returned %d matches", q, len(matches))
		}
	}
}

func TestSearch_ThresholdOneAdmitsEverything(t *testing.T) {
	opts := DefaultOptions()
	opts.Threshold = 1

	e := newEngine(t, opts)
	matches, err := e.Search(context.Background(), "xylophone")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) != len(corpus()) {
		t.Errorf("got %d matches, want %d", len(matches), len(corpus()))
	}
}

func TestSearch_LimitCapsResults(t *testing.T) {
	opts := DefaultOptions()
	opts.Threshold = 1
	opts.Limit = 1

	e := newEngine(t, opts)
	matches, err := e.Search(context.Background(), "golang")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
}

func TestSearch_CaseSensitive(t *testing.T) {
	opts := DefaultOptions()
	opts.CaseSensitive = true
	opts.Threshold = 0

	e := newEngine(t, opts)

	if matches, _ := e.Search(context.Background(), "going serverless"); len(matches) != 0 {
		t.Errorf("lowercase query should miss the capitalized title, got %+v", matches)
	}
	matches, err := e.Search(context.Background(), "Going Serverless")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("exact-case query should hit, got %+v", matches)
	}
}

func TestLen(t *testing.T) {
	e := newEngine(t, DefaultOptions())
	if e.Len() != 3 {
		t.Errorf("Len = %d", e.Len())
	}
}
