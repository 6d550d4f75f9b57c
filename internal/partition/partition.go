// Package partition splits an index range into contiguous worker chunks.
package partition

import (
	apperrors "github.com/agbru/threadbench/internal/errors"
)

// Range is the half-open index interval [Start, End) reduced by one worker.
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices in the range.
func (r Range) Len() int { return r.End - r.Start }

// Empty reports whether the range holds no index.
func (r Range) Empty() bool { return r.End <= r.Start }

// Split divides [0, n) into t contiguous ranges ordered by worker id.
//
// Every range holds n/t indices except the last, which also absorbs the
// remainder of the integer division. When t > n all ranges but the last are
// empty.
func Split(n, t int) ([]Range, error) {
	if t <= 0 {
		return nil, apperrors.NewInvalidArgument("threads", t, "must be at least 1")
	}
	if n < 0 {
		return nil, apperrors.NewInvalidArgument("size", n, "must not be negative")
	}

	chunk := n / t
	ranges := make([]Range, t)
	for id := range ranges {
		start := id * chunk
		end := start + chunk
		if id == t-1 {
			end = n
		}
		ranges[id] = Range{Start: start, End: end}
	}
	return ranges, nil
}

// Total returns the sum of the range lengths.
func Total(ranges []Range) int {
	total := 0
	for _, r := range ranges {
		total += r.Len()
	}
	return total
}
