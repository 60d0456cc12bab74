// Package index derives the immutable, queryable representation of a corpus.
//
// An Index is built once from an ordered document corpus and a validated
// Options value. Construction is the sole mutation point; after Build
// returns, the Index may be read concurrently without coordination.
package index

import (
	"fmt"
	"strings"

	"github.com/hollowbrook/sitesearch/internal/domain"
	"github.com/hollowbrook/sitesearch/internal/domain/document"
	"github.com/hollowbrook/sitesearch/internal/domain/search/options"
)

// fieldText retains both the normalized (case-folded) text the matcher scans
// and the original text for downstream display and highlighting.
type fieldText struct {
	original string
	folded   string
}

// Doc is one indexed document entry.
type Doc struct {
	id     string
	fields map[string]fieldText
}

// ID returns the document identifier.
func (d Doc) ID() string { return d.id }

// Folded returns the normalized text of the named field and whether the
// field is present on this document.
func (d Doc) Folded(key string) (string, bool) {
	ft, ok := d.fields[key]
	return ft.folded, ok
}

// Original returns the non-folded field text for display.
func (d Doc) Original(key string) (string, bool) {
	ft, ok := d.fields[key]
	return ft.original, ok
}

// Index is the immutable searchable representation of one corpus.
type Index struct {
	opts   options.Options
	docs   []Doc
	byID   map[string]int
	locale string
}

// Build indexes the corpus under the given options. For each document and
// each configured key, the field text is extracted and case-folded unless
// the options are case sensitive. Missing fields are tolerated; documents
// keep their corpus order.
func Build(docs []document.Document, opts options.Options) (*Index, error) {
	if len(opts.Keys()) == 0 {
		return nil, fmt.Errorf("%w: nothing to search, keys are empty", domain.ErrInvalidOptions)
	}

	ix := &Index{
		opts: opts,
		docs: make([]Doc, 0, len(docs)),
		byID: make(map[string]int, len(docs)),
	}

	for _, doc := range docs {
		entry := Doc{id: doc.ID(), fields: make(map[string]fieldText, len(opts.Keys()))}
		for _, key := range opts.Keys() {
			text, ok := doc.Field(key)
			if !ok {
				continue
			}
			folded := text
			if !opts.CaseSensitive() {
				folded = strings.ToLower(text)
			}
			entry.fields[key] = fieldText{original: text, folded: folded}
		}
		if _, dup := ix.byID[entry.id]; !dup {
			ix.byID[entry.id] = len(ix.docs)
		}
		ix.docs = append(ix.docs, entry)
	}

	return ix, nil
}

// WithLocale tags the index with the locale it was built for.
func (ix *Index) WithLocale(locale string) *Index {
	ix.locale = locale
	return ix
}

// Locale returns the locale tag, empty if untagged.
func (ix *Index) Locale() string { return ix.locale }

// Len returns the number of indexed documents.
func (ix *Index) Len() int { return len(ix.docs) }

// At returns the indexed document at corpus position i.
func (ix *Index) At(i int) Doc { return ix.docs[i] }

// Lookup returns the indexed document with the given identifier.
func (ix *Index) Lookup(id string) (Doc, bool) {
	i, ok := ix.byID[id]
	if !ok {
		return Doc{}, false
	}
	return ix.docs[i], true
}

// Options returns the options the index was built with.
func (ix *Index) Options() options.Options { return ix.opts }
