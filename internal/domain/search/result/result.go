package result

// Match is a single ranked search hit (immutable value object).
// Lower score is better; 0 is a perfect match.
type Match struct {
	id     string
	score  float64
	fields []string
}

// New creates a match. fields lists the document fields that produced an
// accepted match, in search-key priority order.
func New(id string, score float64, fields []string) Match {
	return Match{id: id, score: score, fields: fields}
}

// ID returns the matched document identifier.
func (m *Match) ID() string { return m.id }

// Score returns the match score in [0,1], lower = better.
func (m *Match) Score() float64 { return m.score }

// MatchedFields returns the field names that contributed to the match.
func (m *Match) MatchedFields() []string { return m.fields }
