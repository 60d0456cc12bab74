package search

import (
	"strings"

	"github.com/hollowbrook/sitesearch/internal/domain/search/options"
)

// maxChunkSize is the rune capacity of one uint64 bit mask. Queries longer
// than this are split into chunks searched independently, with the chunk
// scores averaged.
const maxChunkSize = 64

// chunk is one bit-mask window of a compiled pattern.
type chunk struct {
	runes    []rune
	alphabet map[rune]uint64
	offset   int // rune offset of this chunk within the whole pattern
}

// pattern is a query string compiled for bitap scanning.
type pattern struct {
	chunks []chunk
	length int
}

func compile(p string) *pattern {
	runes := []rune(p)
	pat := &pattern{length: len(runes)}
	for start := 0; start < len(runes); start += maxChunkSize {
		end := start + maxChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		sub := runes[start:end]
		pat.chunks = append(pat.chunks, chunk{
			runes:    sub,
			alphabet: buildAlphabet(sub),
			offset:   start,
		})
	}
	return pat
}

// buildAlphabet maps each pattern rune to its occurrence bit mask. The first
// pattern position occupies the highest bit.
func buildAlphabet(runes []rune) map[rune]uint64 {
	m := make(map[rune]uint64, len(runes))
	for i, r := range runes {
		m[r] |= 1 << uint(len(runes)-i-1)
	}
	return m
}

// bitapScore blends textual accuracy with spatial proximity. Both terms are
// in [0,1] and the blend is additive, so the score is monotonic in each:
// more edits or a farther match never lowers it.
func bitapScore(errors, location, expected, distance, patternLen int) float64 {
	accuracy := float64(errors) / float64(patternLen)
	proximity := location - expected
	if proximity < 0 {
		proximity = -proximity
	}
	if distance == 0 {
		// Exact-location-only mode.
		if proximity != 0 {
			return 1
		}
		return accuracy
	}
	if proximity > distance {
		proximity = distance
	}
	return accuracy + float64(proximity)/float64(distance)
}

// search scans text for the best approximate occurrence of the pattern,
// favoring matches near loc. Returns whether a match within threshold was
// found and its score. Positions of matching runes are recorded in
// matchMask for span-length filtering.
func (p *pattern) search(text []rune, loc, dist int, threshold float64, matchMask []bool) (bool, float64) {
	if len(p.chunks) == 0 {
		return false, 1
	}

	total := 0.0
	matched := false
	for _, c := range p.chunks {
		ok, score := searchChunk(text, c, loc+c.offset, dist, threshold, matchMask)
		if ok {
			matched = true
		}
		total += score
	}
	if !matched {
		return false, 1
	}
	return true, total / float64(len(p.chunks))
}

// searchChunk is the bounded bitap scan for a single <=64-rune chunk.
// Errors cover insertions, deletions and substitutions; the scanned window
// narrows as better matches tighten the score threshold.
func searchChunk(text []rune, c chunk, expected, dist int, threshold float64, matchMask []bool) (bool, float64) {
	patLen := len(c.runes)
	if patLen == 0 || len(text) == 0 {
		return false, 1
	}
	if expected > len(text) {
		expected = len(text)
	}

	currentThreshold := threshold

	// Exact-occurrence fast path: seed the threshold with the best verbatim
	// hit around the expected location.
	if i := indexOf(text, c.runes, expected); i >= 0 {
		if s := bitapScore(0, i, expected, dist, patLen); s < currentThreshold {
			currentThreshold = s
		}
		if i = lastIndexOf(text, c.runes, expected+patLen); i >= 0 {
			if s := bitapScore(0, i, expected, dist, patLen); s < currentThreshold {
				currentThreshold = s
			}
		}
	}

	matchBit := uint64(1) << uint(patLen-1)
	bestLoc := -1
	finalScore := 1.0
	binMax := patLen + len(text)

	var lastBits []uint64

	for errs := 0; errs < patLen; errs++ {
		// Binary-search the widest window still able to beat the current
		// threshold at this error count.
		binMin, binMid := 0, binMax
		for binMin < binMid {
			if bitapScore(errs, expected+binMid, expected, dist, patLen) <= currentThreshold {
				binMin = binMid
			} else {
				binMax = binMid
			}
			binMid = (binMax-binMin)/2 + binMin
		}
		binMax = binMid

		start := expected - binMid + 1
		if start < 1 {
			start = 1
		}
		finish := expected + binMid
		if finish > len(text) {
			finish = len(text)
		}
		finish += patLen

		bits := make([]uint64, finish+2)
		bits[finish+1] = (1 << uint(errs)) - 1

		for j := finish; j >= start; j-- {
			cur := j - 1
			var charMatch uint64
			if cur < len(text) {
				charMatch = c.alphabet[text[cur]]
				if charMatch != 0 {
					matchMask[cur] = true
				}
			}

			bits[j] = ((bits[j+1] << 1) | 1) & charMatch
			if errs > 0 {
				bits[j] |= ((lastBits[j+1] | lastBits[j]) << 1) | 1 | lastBits[j+1]
			}

			if bits[j]&matchBit == 0 {
				continue
			}
			score := bitapScore(errs, cur, expected, dist, patLen)
			if score > currentThreshold {
				continue
			}
			currentThreshold = score
			bestLoc = cur
			finalScore = score
			if bestLoc <= expected {
				// Matches before the expected location only get worse.
				break
			}
			start = 2*expected - bestLoc
			if start < 1 {
				start = 1
			}
		}

		// One more error at the ideal location already misses the threshold.
		if bitapScore(errs+1, expected, expected, dist, patLen) > currentThreshold {
			break
		}
		lastBits = bits
	}

	if bestLoc < 0 {
		return false, 1
	}
	return true, finalScore
}

// indexOf returns the first verbatim occurrence of pat in text at or after
// from, or -1.
func indexOf(text, pat []rune, from int) int {
	if from < 0 {
		from = 0
	}
	for i := from; i+len(pat) <= len(text); i++ {
		if runesEqual(text[i:i+len(pat)], pat) {
			return i
		}
	}
	return -1
}

// lastIndexOf returns the last verbatim occurrence of pat starting at or
// before from, or -1.
func lastIndexOf(text, pat []rune, from int) int {
	start := from
	if start > len(text)-len(pat) {
		start = len(text) - len(pat)
	}
	for i := start; i >= 0; i-- {
		if runesEqual(text[i:i+len(pat)], pat) {
			return i
		}
	}
	return -1
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Matcher scores one compiled query against field texts. It is read-only
// after construction and safe for concurrent use.
type Matcher struct {
	phrase    *pattern
	tokens    []*pattern
	loc       int
	dist      int
	threshold float64
	minMatch  int
}

// FieldMatch is the outcome of matching one field's text.
type FieldMatch struct {
	OK    bool
	Score float64
}

// NewMatcher compiles the query under the given options. The query is
// case-folded unless the options are case sensitive. Multi-word queries are
// additionally compiled per whitespace token; the field score is then the
// better of the whole-phrase match and the mean of the token matches.
func NewMatcher(query string, opts options.Options) *Matcher {
	folded := query
	if !opts.CaseSensitive() {
		folded = strings.ToLower(folded)
	}

	m := &Matcher{
		phrase:    compile(folded),
		loc:       opts.Location(),
		dist:      opts.Distance(),
		threshold: opts.Threshold(),
		minMatch:  opts.MinMatchCharLength(),
	}

	if fields := strings.Fields(folded); len(fields) > 1 {
		m.tokens = make([]*pattern, len(fields))
		for i, f := range fields {
			m.tokens[i] = compile(f)
		}
	}
	return m
}

// Match computes the best match of the query in one field's normalized text.
// A missing match is reported as !OK; under an accept-everything threshold
// (>= 1) every present field matches with the worst score.
func (m *Matcher) Match(text string) FieldMatch {
	runes := []rune(text)
	if m.phrase.length == 0 {
		return FieldMatch{}
	}
	if len(runes) == 0 {
		return m.noMatch()
	}

	matchMask := make([]bool, len(runes))

	ok, score := m.phrase.search(runes, m.loc, m.dist, m.threshold, matchMask)

	if len(m.tokens) > 0 {
		sum := 0.0
		anyToken := false
		for _, tok := range m.tokens {
			tokOK, tokScore := tok.search(runes, m.loc, m.dist, m.threshold, matchMask)
			if tokOK {
				anyToken = true
			} else {
				tokScore = 1
			}
			sum += tokScore
		}
		if anyToken {
			if avg := sum / float64(len(m.tokens)); !ok || avg < score {
				ok, score = true, avg
			}
		}
	}

	if !ok {
		return m.noMatch()
	}
	if score > 1 {
		score = 1
	}
	if score > m.threshold {
		return m.noMatch()
	}
	if m.minMatch > 0 && longestSpan(matchMask) < m.minMatch {
		return FieldMatch{}
	}
	return FieldMatch{OK: true, Score: score}
}

func (m *Matcher) noMatch() FieldMatch {
	if m.threshold >= 1 {
		return FieldMatch{OK: true, Score: 1}
	}
	return FieldMatch{}
}

// longestSpan returns the length of the longest contiguous run of matched
// positions.
func longestSpan(mask []bool) int {
	best, run := 0, 0
	for _, hit := range mask {
		if hit {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return best
}
