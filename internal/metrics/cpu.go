package metrics

import "time"

// CPUUsage is process CPU time split by mode.
type CPUUsage struct {
	User   time.Duration
	System time.Duration
}

// Total returns user plus system time.
func (u CPUUsage) Total() time.Duration { return u.User + u.System }

// Sub returns u - before.
func (u CPUUsage) Sub(before CPUUsage) CPUUsage {
	return CPUUsage{User: u.User - before.User, System: u.System - before.System}
}

// Parallelism is the number of cores kept busy on average over wall:
// CPU time divided by elapsed time. It is 0 when wall is not positive.
func (u CPUUsage) Parallelism(wall time.Duration) float64 {
	if wall <= 0 {
		return 0
	}
	return float64(u.Total()) / float64(wall)
}
