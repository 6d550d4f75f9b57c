package reduction

// Sum is a floating-point accumulation.
type Sum struct {
	Value float64
	// Terms counts the indices that contributed.
	Terms int
}

// SumCombiner adds local sums unconditionally.
type SumCombiner struct{}

// Identity returns the zero sum.
func (SumCombiner) Identity() Sum { return Sum{} }

// Combine adds local into acc.
func (SumCombiner) Combine(acc *Sum, local Sum, _ int) {
	acc.Value += local.Value
	acc.Terms += local.Terms
}
