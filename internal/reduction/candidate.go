package reduction

import "math"

// Candidate is the best element found by a minimum-distance search.
type Candidate struct {
	// Index of the element in the dataset, -1 when nothing was found.
	Index int
	// Distance is the (squared) distance that was minimised.
	Distance float64
	// Owner is the worker whose merge installed the candidate, -1 before any merge.
	Owner int
}

// NoCandidate is the identity of the minimum search.
func NoCandidate() Candidate {
	return Candidate{Index: -1, Distance: math.Inf(1), Owner: -1}
}

// Found reports whether c designates an element.
func (c Candidate) Found() bool { return c.Index >= 0 }

// Better reports whether c beats o, ordering by (Distance, Index).
// The index tie-break makes the merged winner independent of the order in
// which workers reach the lock.
func (c Candidate) Better(o Candidate) bool {
	if !c.Found() {
		return false
	}
	if !o.Found() {
		return true
	}
	if c.Distance != o.Distance {
		return c.Distance < o.Distance
	}
	return c.Index < o.Index
}

// MinCombiner merges candidates, keeping the lexicographically smallest
// (distance, index) pair.
type MinCombiner struct{}

// Identity returns NoCandidate.
func (MinCombiner) Identity() Candidate { return NoCandidate() }

// Combine installs local when it beats the accumulator and records the
// merging worker as owner.
func (MinCombiner) Combine(acc *Candidate, local Candidate, workerID int) {
	if local.Better(*acc) {
		*acc = local
		acc.Owner = workerID
	}
}
