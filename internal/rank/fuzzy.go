package rank

import (
	"sort"
	"strings"
)

// MaxResults caps the rendered list regardless of how many candidates score.
const MaxResults = 50

// Fuzzy scoring constants. Prefix rewards shorter, more specific queries;
// subsequence matches score per consecutive run.
const (
	scoreExact     = 1000
	scorePrefix    = 500
	scoreContains  = 200
	runWeight      = 10
	usageWeight    = 50
	secondaryScale = 2
)

// FuzzyPolicy ranks candidates by a field score plus a usage-frequency bias.
// Primary and secondary fields are scored independently (secondary halved)
// and the better one kept; a candidate with no scoring field is excluded.
type FuzzyPolicy struct{}

// Score computes the match score of query against a single field,
// case-folded both sides. The second result is false when the field does not
// match at all.
func Score(query, field string) (int, bool) {
	if query == "" {
		return 0, true
	}

	q := strings.ToLower(query)
	f := strings.ToLower(field)

	if f == q {
		return scoreExact, true
	}
	if strings.HasPrefix(f, q) {
		return scorePrefix + (100 - len(q)), true
	}
	if strings.Contains(f, q) {
		return scoreContains, true
	}

	// Subsequence walk: every query rune consumed in order scores by the
	// current consecutive run length; the run resets on any miss. Fails if
	// the query is not fully consumed.
	qr := []rune(q)
	qi := 0
	score := 0
	run := 0
	for _, c := range f {
		if qi < len(qr) && qr[qi] == c {
			qi++
			run++
			score += run * runWeight
		} else {
			run = 0
		}
	}
	if qi < len(qr) {
		return 0, false
	}
	return score, true
}

type scored struct {
	candidate Candidate
	score     int
}

// Filter implements Policy.
func (FuzzyPolicy) Filter(candidates []Candidate, query string) []Candidate {
	if query == "" {
		result := make([]Candidate, 0, len(candidates))
		result = append(result, candidates...)
		if len(result) > MaxResults {
			result = result[:MaxResults]
		}
		return result
	}

	matched := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		best, ok := 0, false
		if s, match := Score(query, c.Primary); match {
			best, ok = s, true
		}
		if s, match := Score(query, c.Secondary); match {
			if s /= secondaryScale; !ok || s > best {
				best, ok = s, true
			}
		}
		if !ok {
			continue
		}
		matched = append(matched, scored{candidate: c, score: best + c.Usage*usageWeight})
	}

	// Stable: ties keep the original list order (case-insensitive
	// alphabetical from the desktop scan).
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].score > matched[j].score
	})

	if len(matched) > MaxResults {
		matched = matched[:MaxResults]
	}
	result := make([]Candidate, len(matched))
	for i, m := range matched {
		result[i] = m.candidate
	}
	return result
}

// ResolveIndex implements Policy.
func (p FuzzyPolicy) ResolveIndex(candidates []Candidate, query string, index int) (Candidate, bool) {
	filtered := p.Filter(candidates, query)
	if index < 0 || index >= len(filtered) {
		return Candidate{}, false
	}
	return filtered[index], true
}
