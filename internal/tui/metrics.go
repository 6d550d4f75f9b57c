package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/threadbench/internal/format"
)

// historyLength is the number of system samples kept for the sparklines.
const historyLength = 40

// MetricsModel displays runtime memory statistics and system load.
type MetricsModel struct {
	alloc        uint64
	heapSys      uint64
	numGC        uint32
	pauseTotalNs uint64
	numGoroutine int
	cpuHistory   *History
	memHistory   *History
	width        int
	height       int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{
		cpuHistory: NewHistory(historyLength),
		memHistory: NewHistory(historyLength),
	}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateMemStats updates memory statistics.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.alloc = msg.Alloc
	m.heapSys = msg.HeapSys
	m.numGC = msg.NumGC
	m.pauseTotalNs = msg.PauseTotalNs
	m.numGoroutine = msg.NumGoroutine
}

// UpdateSysStats appends a system load sample.
func (m *MetricsModel) UpdateSysStats(msg SysStatsMsg) {
	m.cpuHistory.Push(msg.CPUPercent)
	m.memHistory.Push(msg.MemPercent)
}

// Reset drops the system load history.
func (m *MetricsModel) Reset() {
	m.cpuHistory.Reset()
	m.memHistory.Reset()
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var rows strings.Builder
	rows.WriteString(titleStyle.Render("Runtime"))
	rows.WriteString("\n")
	rows.WriteString(metricRow("Heap:", format.FormatBytes(m.alloc)+" / "+format.FormatBytes(m.heapSys)))
	rows.WriteString("\n")
	rows.WriteString(metricRow("GC:", fmt.Sprintf("%d (%.1fms)", m.numGC, float64(m.pauseTotalNs)/1e6)))
	rows.WriteString("\n")
	rows.WriteString(metricRow("Goroutines:", fmt.Sprintf("%d", m.numGoroutine)))
	rows.WriteString("\n")
	rows.WriteString(metricRow("CPU:", fmt.Sprintf("%5.1f%% ", m.cpuHistory.Last())) +
		cpuSparklineStyle.Render(Sparkline(m.cpuHistory.Values(), 100)))
	rows.WriteString("\n")
	rows.WriteString(metricRow("Memory:", fmt.Sprintf("%5.1f%% ", m.memHistory.Last())) +
		memSparklineStyle.Render(Sparkline(m.memHistory.Values(), 100)))

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(rows.String())
}

func metricRow(label, value string) string {
	cell := labelStyle.Render(fmt.Sprintf("%-12s", label)) + valueStyle.Render(value)
	if pad := 26 - lipgloss.Width(cell); pad > 0 {
		cell += spaces(pad)
	}
	return cell
}
