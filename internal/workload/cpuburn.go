package workload

import (
	"fmt"
	"math"

	"github.com/agbru/threadbench/internal/partition"
	"github.com/agbru/threadbench/internal/reduction"
)

const burnModulus = 100_000_000

// CPUBurn sums Burn(i+1) over [0, size). It has no dataset: the index range
// is the data.
type CPUBurn struct {
	reduction.SumCombiner
	size int
}

// NewCPUBurn returns a burn workload over size indices.
func NewCPUBurn(size int) *CPUBurn { return &CPUBurn{size: size} }

func (c *CPUBurn) Name() string { return CPUBurnName }
func (c *CPUBurn) Size() int    { return c.size }

func (c *CPUBurn) Reduce(r partition.Range) (reduction.Sum, error) {
	var s reduction.Sum
	for i := r.Start; i < r.End; i++ {
		s.Value += Burn(i + 1)
	}
	s.Terms = r.Len()
	return s, nil
}

func (c *CPUBurn) Summarize(s reduction.Sum) string {
	return fmt.Sprintf("Global result: %.2f", math.Mod(s.Value, 1000))
}

// Equivalent allows for the rounding differences that a different merge
// order introduces into a floating-point sum.
func (c *CPUBurn) Equivalent(a, b reduction.Sum) bool {
	if a.Terms != b.Terms {
		return false
	}
	scale := math.Max(math.Abs(a.Value), math.Abs(b.Value))
	return math.Abs(a.Value-b.Value) <= 1e-9*math.Max(scale, 1)
}

// Burn is a deterministic, deliberately expensive function of i.
func Burn(i int) float64 {
	x := float64(i)
	sin := math.Sin(x)
	a := math.Sqrt(x) + sin*sin
	b := math.Log1p(x) * math.Exp(-a)
	c := factorialMod(uint64(i%500+500), burnModulus)
	return a*b + float64(c)
}

// factorialMod returns k! mod m by repeated modular multiplication.
func factorialMod(k, m uint64) uint64 {
	r := 1 % m
	for j := uint64(2); j <= k; j++ {
		r = r * j % m
	}
	return r
}
