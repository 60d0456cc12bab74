// Package options holds the validated fuzzy-search configuration.
//
// An Options value is immutable once constructed and safe to share across
// concurrent queries. All range validation happens in New; downstream code
// (index builder, matcher, query service) assumes a valid value.
package options

import (
	"fmt"

	"github.com/hollowbrook/sitesearch/internal/domain"
)

// Defaults mirror the host site's search settings.
const (
	DefaultDistance  = 1000
	DefaultThreshold = 0.4
)

// DefaultKeys is the default search scope, in priority order.
func DefaultKeys() []string {
	return []string{"title", "permalink", "summary", "content"}
}

// Params are the raw option values handed to New. The zero value is not a
// usable configuration; callers wanting defaults start from DefaultParams.
type Params struct {
	CaseSensitive      bool
	SortResults        bool
	Location           int
	Distance           int
	Threshold          float64
	MinMatchCharLength int
	Limit              int
	Keys               []string
}

// DefaultParams returns the documented option defaults: case folding on,
// sorted results, location 0, distance 1000, threshold 0.4, no match-length
// floor, unbounded results, keys title/permalink/summary/content.
func DefaultParams() Params {
	return Params{
		SortResults: true,
		Distance:    DefaultDistance,
		Threshold:   DefaultThreshold,
		Keys:        DefaultKeys(),
	}
}

// Options is a validated, immutable search configuration.
type Options struct {
	caseSensitive      bool
	sortResults        bool
	location           int
	distance           int
	threshold          float64
	minMatchCharLength int
	limit              int
	keys               []string
}

// New validates and creates an Options value.
// Threshold must be within [0,1]; location, distance, minMatchCharLength and
// limit must be non-negative; keys must name at least one field.
func New(p Params) (Options, error) {
	if len(p.Keys) == 0 {
		return Options{}, fmt.Errorf("%w: at least one search key is required", domain.ErrInvalidOptions)
	}
	for _, k := range p.Keys {
		if k == "" {
			return Options{}, fmt.Errorf("%w: search keys must be non-empty", domain.ErrInvalidOptions)
		}
	}
	if p.Location < 0 {
		return Options{}, fmt.Errorf("%w: location must be >= 0, got %d", domain.ErrInvalidOptions, p.Location)
	}
	if p.Distance < 0 {
		return Options{}, fmt.Errorf("%w: distance must be >= 0, got %d", domain.ErrInvalidOptions, p.Distance)
	}
	if p.Threshold < 0 || p.Threshold > 1 {
		return Options{}, fmt.Errorf("%w: threshold must be within [0,1], got %v", domain.ErrInvalidOptions, p.Threshold)
	}
	if p.MinMatchCharLength < 0 {
		return Options{}, fmt.Errorf("%w: minMatchCharLength must be >= 0, got %d", domain.ErrInvalidOptions, p.MinMatchCharLength)
	}
	if p.Limit < 0 {
		return Options{}, fmt.Errorf("%w: limit must be >= 0, got %d", domain.ErrInvalidOptions, p.Limit)
	}

	keys := make([]string, len(p.Keys))
	copy(keys, p.Keys)

	return Options{
		caseSensitive:      p.CaseSensitive,
		sortResults:        p.SortResults,
		location:           p.Location,
		distance:           p.Distance,
		threshold:          p.Threshold,
		minMatchCharLength: p.MinMatchCharLength,
		limit:              p.Limit,
		keys:               keys,
	}, nil
}

// Default returns the validated default configuration.
func Default() Options {
	opts, err := New(DefaultParams())
	if err != nil {
		panic(err) // defaults are always valid
	}
	return opts
}

// CaseSensitive reports whether lowercase folding is disabled.
func (o *Options) CaseSensitive() bool { return o.caseSensitive }

// SortResults reports whether results are ordered best-first.
func (o *Options) SortResults() bool { return o.sortResults }

// Location returns the expected match offset.
func (o *Options) Location() int { return o.location }

// Distance returns the maximum tolerated offset from Location.
// Zero means exact-location-only.
func (o *Options) Distance() int { return o.distance }

// Threshold returns the acceptance cutoff (0 = exact only, 1 = accept all).
func (o *Options) Threshold() float64 { return o.threshold }

// MinMatchCharLength returns the minimum accepted match span, 0 = no floor.
func (o *Options) MinMatchCharLength() int { return o.minMatchCharLength }

// Limit returns the maximum number of results, 0 = unbounded.
func (o *Options) Limit() int { return o.limit }

// Keys returns the searchable field names in priority order.
func (o *Options) Keys() []string { return o.keys }
