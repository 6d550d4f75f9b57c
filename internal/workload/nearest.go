package workload

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	apperrors "github.com/agbru/threadbench/internal/errors"
	"github.com/agbru/threadbench/internal/partition"
	"github.com/agbru/threadbench/internal/reduction"
)

// ErrMalformedElement is returned when a dataset element cannot be measured.
var ErrMalformedElement = errors.New("malformed element")

// Nearest finds the element of data closest to a fixed query.
//
// Within a range the scan keeps the first minimum it sees (strict less-than);
// across ranges MinCombiner orders candidates by (distance, index), so the
// reported index does not depend on which worker merges first.
type Nearest[E any] struct {
	reduction.MinCombiner

	name string
	data []E
	// dist returns the squared distance from an element to the query.
	dist func(E) (float64, error)
}

// NewNearest builds a search over data. The dataset is shared read-only by
// every worker.
func NewNearest[E any](name string, data []E, dist func(E) (float64, error)) *Nearest[E] {
	return &Nearest[E]{name: name, data: data, dist: dist}
}

func (n *Nearest[E]) Name() string { return n.name }
func (n *Nearest[E]) Size() int    { return len(n.data) }

// Reduce scans data[r.Start:r.End]. Owner is left unset; the combiner
// stamps it with the merging worker.
func (n *Nearest[E]) Reduce(r partition.Range) (reduction.Candidate, error) {
	best := reduction.NoCandidate()
	for i := r.Start; i < r.End; i++ {
		d, err := n.dist(n.data[i])
		if err != nil {
			return reduction.NoCandidate(), apperrors.WrapError(err, "element %d", i)
		}
		if d < best.Distance {
			best.Distance = d
			best.Index = i
		}
	}
	return best, nil
}

func (n *Nearest[E]) Summarize(c reduction.Candidate) string {
	if !c.Found() {
		return "No element found (empty dataset)"
	}
	return fmt.Sprintf("Closest index: %d, distance: %.6f, owner worker: %d",
		c.Index, math.Sqrt(c.Distance), c.Owner)
}

// Equivalent ignores Owner, which depends on the partition.
func (n *Nearest[E]) Equivalent(a, b reduction.Candidate) bool {
	return a.Index == b.Index && (a.Distance == b.Distance || !a.Found() && !b.Found())
}

// Point is a position in 3-D space.
type Point [3]float64

// Distance2 returns the squared Euclidean distance between p and q.
func Distance2(p, q Point) float64 {
	dx, dy, dz := p[0]-q[0], p[1]-q[1], p[2]-q[2]
	return dx*dx + dy*dy + dz*dz
}

func (p Point) finite() bool {
	for _, c := range p {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// GeneratePoints returns a query point and n points drawn uniformly from the
// unit cube. The same seed always yields the same data.
func GeneratePoints(n int, seed uint64) (query Point, points []Point) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	query = Point{rng.Float64(), rng.Float64(), rng.Float64()}
	points = make([]Point, n)
	for i := range points {
		points[i] = Point{rng.Float64(), rng.Float64(), rng.Float64()}
	}
	return query, points
}

// NewPointSearch searches points for the one closest to query. A point with
// a NaN or infinite coordinate fails the worker that scans it.
func NewPointSearch(points []Point, query Point) *Nearest[Point] {
	return NewNearest(NearestNeighbor, points, func(p Point) (float64, error) {
		if !p.finite() {
			return 0, fmt.Errorf("%w: non-finite coordinate %v", ErrMalformedElement, p)
		}
		return Distance2(p, query), nil
	})
}
