// Package workload provides the benchmark workloads: a nearest-neighbour
// search over random 3-D points, a floating-point CPU burn, and a big
// integer factorial. Each is a pure reduction over an index range.
package workload

import (
	"math/big"
	"strings"

	apperrors "github.com/agbru/threadbench/internal/errors"
	"github.com/agbru/threadbench/internal/orchestration"
	"github.com/agbru/threadbench/internal/reduction"
)

// Workload names accepted by --workload.
const (
	NearestNeighbor = "nearest-neighbor"
	CPUBurnName     = "cpu-burn"
	FactorialName   = "factorial"
)

var defaultSizes = map[string]int{
	NearestNeighbor: 1_000_000,
	CPUBurnName:     100_000,
	FactorialName:   50_000,
}

// Names lists the workloads in display order.
func Names() []string {
	return []string{NearestNeighbor, CPUBurnName, FactorialName}
}

// DefaultSize returns the problem size used when --size is not given.
func DefaultSize(name string) (int, error) {
	size, ok := defaultSizes[name]
	if !ok {
		return 0, unknown(name)
	}
	return size, nil
}

// New builds the named workload over size indices. seed only affects
// nearest-neighbor, whose dataset is generated here, before any timing.
func New(name string, size int, seed uint64) (orchestration.Benchmark, error) {
	if size < 0 {
		return nil, apperrors.NewInvalidArgument("size", size, "must not be negative")
	}
	switch name {
	case NearestNeighbor:
		query, points := GeneratePoints(size, seed)
		return orchestration.Bind[reduction.Candidate](NewPointSearch(points, query)), nil
	case CPUBurnName:
		return orchestration.Bind[reduction.Sum](NewCPUBurn(size)), nil
	case FactorialName:
		return orchestration.Bind[*big.Int](NewFactorial(size)), nil
	default:
		return nil, unknown(name)
	}
}

func unknown(name string) error {
	return apperrors.NewInvalidArgument("workload", name, "must be one of "+strings.Join(Names(), ", "))
}

// Catalog exposes Names and DefaultSize as a value, for callers that take
// them through an interface.
type Catalog struct{}

func (Catalog) Names() []string { return Names() }
func (Catalog) DefaultSize(name string) (int, error) { return DefaultSize(name) }
