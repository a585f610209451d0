package rank

import "strings"

// SubstringPolicy includes a candidate iff the case-folded query is a
// substring of its case-folded primary text. No reordering: fetch order is
// preserved and the first survivor becomes the default selection.
type SubstringPolicy struct{}

// Filter implements Policy.
func (SubstringPolicy) Filter(candidates []Candidate, query string) []Candidate {
	result := make([]Candidate, 0, len(candidates))
	if query == "" {
		return append(result, candidates...)
	}

	q := strings.ToLower(query)
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c.Primary), q) {
			result = append(result, c)
		}
	}
	return result
}

// ResolveIndex implements Policy.
func (p SubstringPolicy) ResolveIndex(candidates []Candidate, query string, index int) (Candidate, bool) {
	filtered := p.Filter(candidates, query)
	if index < 0 || index >= len(filtered) {
		return Candidate{}, false
	}
	return filtered[index], true
}
