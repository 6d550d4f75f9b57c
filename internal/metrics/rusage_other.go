//go:build !unix

package metrics

// ReadCPUUsage is unavailable on this platform.
func ReadCPUUsage() (usage CPUUsage, ok bool) {
	return CPUUsage{}, false
}
