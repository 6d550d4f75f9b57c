package workload

import (
	"fmt"
	"math/big"

	"github.com/agbru/threadbench/internal/partition"
)

var factorialModulus = big.NewInt(1_000_000_007)

// Factorial computes n! as a product reduction: each worker multiplies the
// integers of its range, the merge multiplies the partial products.
type Factorial struct {
	n int
}

// NewFactorial returns a workload computing n!.
func NewFactorial(n int) *Factorial { return &Factorial{n: n} }

func (f *Factorial) Name() string { return FactorialName }
func (f *Factorial) Size() int    { return f.n }

func (f *Factorial) Identity() *big.Int { return big.NewInt(1) }

func (f *Factorial) Combine(acc **big.Int, local *big.Int, _ int) {
	(*acc).Mul(*acc, local)
}

// Reduce returns the product of the integers in (r.Start, r.End].
func (f *Factorial) Reduce(r partition.Range) (*big.Int, error) {
	if r.Empty() {
		return big.NewInt(1), nil
	}
	return new(big.Int).MulRange(int64(r.Start)+1, int64(r.End)), nil
}

func (f *Factorial) Summarize(v *big.Int) string {
	return fmt.Sprintf("%d! has %d bits, mod 1000000007 = %s",
		f.n, v.BitLen(), new(big.Int).Mod(v, factorialModulus))
}

func (f *Factorial) Equivalent(a, b *big.Int) bool { return a.Cmp(b) == 0 }
