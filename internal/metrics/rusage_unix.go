//go:build unix

package metrics

import (
	"time"

	"golang.org/x/sys/unix"
)

// ReadCPUUsage returns the user and system CPU time consumed so far by the
// whole process. ok is false when the platform call fails.
func ReadCPUUsage() (usage CPUUsage, ok bool) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return CPUUsage{}, false
	}
	return CPUUsage{
		User:   time.Duration(ru.Utime.Nano()),
		System: time.Duration(ru.Stime.Nano()),
	}, true
}
