// Package sysmon provides system-wide CPU and memory usage sampling.
package sysmon

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// Window measures system-wide utilisation over an interval, such as one
// benchmark run. It keeps its own CPU time counters, so concurrent Sample
// calls do not shift its baseline.
type Window struct {
	cpu   cpu.TimesStat
	valid bool
}

// Begin records the CPU time counters at the start of the interval.
func Begin() Window {
	times, err := cpu.Times(false)
	if err != nil || len(times) == 0 {
		return Window{}
	}
	return Window{cpu: times[0], valid: true}
}

// End reports CPU utilisation accumulated since Begin and the current
// memory usage. CPUPercent is zero when the counters are unavailable.
func (w Window) End() Stats {
	var s Stats
	if times, err := cpu.Times(false); w.valid && err == nil && len(times) > 0 {
		s.CPUPercent = busyPercent(w.cpu, times[0])
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// busyPercent is the share of non-idle CPU time between two counter readings.
func busyPercent(before, after cpu.TimesStat) float64 {
	total := cpuTotal(after) - cpuTotal(before)
	if total <= 0 {
		return 0
	}
	idle := (after.Idle + after.Iowait) - (before.Idle + before.Iowait)
	busy := total - idle
	return min(max(busy/total*100, 0), 100)
}

// cpuTotal sums the accounted CPU seconds. Guest time is already part of
// User on Linux.
func cpuTotal(t cpu.TimesStat) float64 {
	return t.User + t.System + t.Idle + t.Nice + t.Iowait + t.Irq + t.Softirq + t.Steal
}
