package config

import "runtime"

// Defaults used when neither a flag nor an environment variable is given.
const (
	DefaultThreads  = 4
	DefaultSeed     = 42
	DefaultWorkload = "nearest-neighbor"
	DefaultLogLevel = "warn"
)

// EstimateMaxThreads returns the number of workers that can run truly in
// parallel on this machine. Larger thread counts are allowed but only add
// scheduling overhead.
func EstimateMaxThreads() int {
	return max(1, min(runtime.NumCPU(), runtime.GOMAXPROCS(0)))
}

// SuggestedSweep returns the thread counts used by --sweep auto: powers of
// two up to EstimateMaxThreads, with the maximum itself appended when it is
// not a power of two.
func SuggestedSweep() []int {
	limit := EstimateMaxThreads()
	counts := []int{1}
	for t := 2; t <= limit; t *= 2 {
		counts = append(counts, t)
	}
	if counts[len(counts)-1] != limit {
		counts = append(counts, limit)
	}
	return counts
}

// Oversubscribed reports whether threads exceeds EstimateMaxThreads.
func Oversubscribed(threads int) bool {
	return threads > EstimateMaxThreads()
}
