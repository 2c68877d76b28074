package columns

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"

	"github.com/flow-tools/cbm-insight/pkg/models/domain"
)

// AcceptThreshold is the minimum similarity for a fuzzy header match.
// Mirrors the 80% ratio the detection was tuned to.
const AcceptThreshold = 0.8

// Resolve maps sheet headers to canonical fields. It is a pure function:
// fields with no header clearing the threshold are simply absent from the
// returned map, never an error. Exact normalized matches beat fuzzy ones;
// among equally scored fuzzy matches the leftmost column wins.
func Resolve(headers []string) domain.ColumnMap {
	normalized := make([]string, len(headers))
	tokens := make([][]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalizeHeader(h)
		tokens[i] = tokenize(h)
	}

	cm := domain.ColumnMap{}
	for _, field := range domain.Fields() {
		if match, ok := matchField(Synonyms[field], headers, normalized, tokens); ok {
			cm[field] = match
		}
	}
	return cm
}

func matchField(synonyms, headers, normalized []string, tokens [][]string) (domain.ColumnMatch, bool) {
	// Exact pass: first synonym whose normalized form equals a header,
	// leftmost header first.
	for _, syn := range synonyms {
		want := normalizeHeader(syn)
		for i, norm := range normalized {
			if norm != "" && norm == want {
				return domain.ColumnMatch{Header: headers[i], Score: 1, Exact: true}, true
			}
		}
	}

	best := domain.ColumnMatch{}
	bestIdx := -1
	for _, syn := range synonyms {
		synNorm := normalizeHeader(syn)
		synTokens := tokenize(syn)
		for i, norm := range normalized {
			if norm == "" {
				continue
			}
			score := similarity(synNorm, norm, synTokens, tokens[i])
			if score < AcceptThreshold {
				continue
			}
			if score > best.Score || (score == best.Score && i < bestIdx) {
				best = domain.ColumnMatch{Header: headers[i], Score: score}
				bestIdx = i
			}
		}
	}
	return best, bestIdx >= 0
}

// similarity blends edit distance over the collapsed strings with token
// overlap, so "Total CBM (m3)" still scores high against "total cbm".
func similarity(a, b string, aTokens, bTokens []string) float64 {
	editSim := 0.0
	if maxLen := max(len([]rune(a)), len([]rune(b))); maxLen > 0 {
		dist := levenshtein.ComputeDistance(a, b)
		editSim = 1 - float64(dist)/float64(maxLen)
	}

	overlap := tokenOverlap(aTokens, bTokens)
	if overlap > editSim {
		return overlap
	}
	return editSim
}

func tokenOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}
	common := 0
	for _, t := range b {
		if _, ok := set[t]; ok {
			common++
		}
	}
	return 2 * float64(common) / float64(len(a)+len(b))
}

// normalizeHeader lowercases and strips everything that is not a letter
// or digit, collapsing "SO  Date:" and "so date" to the same key.
func normalizeHeader(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
