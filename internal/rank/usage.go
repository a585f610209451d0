package rank

// UsageCounter tracks selection counts keyed by primary text. Counts live
// only for the daemon process lifetime and reset on restart.
type UsageCounter struct {
	counts map[string]int
}

// NewUsageCounter returns an empty counter.
func NewUsageCounter() *UsageCounter {
	return &UsageCounter{counts: make(map[string]int)}
}

// Bump increments the count for a primary text.
func (u *UsageCounter) Bump(primary string) {
	u.counts[primary]++
}

// Count returns the current count for a primary text.
func (u *UsageCounter) Count(primary string) int {
	return u.counts[primary]
}

// Annotate copies the current counts onto a candidate slice in place.
func (u *UsageCounter) Annotate(candidates []Candidate) {
	for i := range candidates {
		candidates[i].Usage = u.counts[candidates[i].Primary]
	}
}
