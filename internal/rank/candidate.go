// Package rank filters and orders candidate lists against a live query.
package rank

// Candidate is one filterable, selectable list item.
type Candidate struct {
	// ID correlates the candidate back to its source entry (clipboard id,
	// application name). Not used for ranking.
	ID string

	// Primary is the text the user sees and the main ranking field.
	Primary string

	// Secondary is auxiliary text (description, content type). The fuzzy
	// policy ranks on it at half weight; the substring policy ignores it.
	Secondary string

	// Usage is how often the candidate has been selected this daemon
	// lifetime. Only the fuzzy policy biases on it.
	Usage int
}

// Policy reduces and orders candidates against a query.
type Policy interface {
	// Filter returns the ordered, reduced list for the query. An empty query
	// includes everything in original order.
	Filter(candidates []Candidate, query string) []Candidate

	// ResolveIndex maps a visible row ordinal back to the candidate that
	// occupies that position under the same filter. Selection is tracked by
	// row index and the list is rebuilt on every keystroke, so the mapping
	// must be recomputed rather than cached.
	ResolveIndex(candidates []Candidate, query string, index int) (Candidate, bool)
}
