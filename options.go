package sitesearch

import "github.com/hollowbrook/sitesearch/internal/domain/search/options"

// Options configures an Engine. Start from DefaultOptions and override
// fields; the zero value is rejected because it has no search keys.
type Options struct {
	// CaseSensitive disables the default lowercase folding of both the
	// indexed text and the query.
	CaseSensitive bool

	// SortResults orders matches by ascending score. When false, matches
	// keep corpus order.
	SortResults bool

	// Location is the text position where the pattern is expected to
	// appear; matches farther away score worse.
	Location int

	// Distance scales the location penalty. 0 means only matches exactly
	// at Location are accepted.
	Distance int

	// Threshold is the score above which a match is discarded. 0 demands
	// perfection, 1 accepts everything.
	Threshold float64

	// MinMatchCharLength discards matches whose longest contiguous run of
	// matched characters is shorter than this. 0 disables the filter.
	MinMatchCharLength int

	// Limit caps the number of returned matches. 0 means no cap.
	Limit int

	// Keys lists the document fields to search.
	Keys []string
}

// DefaultOptions returns the standard engine configuration.
func DefaultOptions() Options {
	p := options.DefaultParams()
	return Options{
		CaseSensitive:      p.CaseSensitive,
		SortResults:        p.SortResults,
		Location:           p.Location,
		Distance:           p.Distance,
		Threshold:          p.Threshold,
		MinMatchCharLength: p.MinMatchCharLength,
		Limit:              p.Limit,
		Keys:               p.Keys,
	}
}

func (o Options) resolve() (options.Options, error) {
	return options.New(options.Params{
		CaseSensitive:      o.CaseSensitive,
		SortResults:        o.SortResults,
		Location:           o.Location,
		Distance:           o.Distance,
		Threshold:          o.Threshold,
		MinMatchCharLength: o.MinMatchCharLength,
		Limit:              o.Limit,
		Keys:               o.Keys,
	})
}
