package tui

// sparklineChars maps levels 0..7 to Unicode block elements ▁▂▃▄▅▆▇█.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// History keeps the most recent samples of a metric, oldest first.
type History struct {
	data  []float64
	head  int
	count int
}

// NewHistory creates a history holding at most capacity samples.
func NewHistory(capacity int) *History {
	return &History{data: make([]float64, max(capacity, 1))}
}

// Push adds a sample, dropping the oldest once full.
func (h *History) Push(v float64) {
	h.data[h.head] = v
	h.head = (h.head + 1) % len(h.data)
	h.count = min(h.count+1, len(h.data))
}

// Len returns the number of samples held.
func (h *History) Len() int { return h.count }

// Last returns the most recent sample, or 0 if empty.
func (h *History) Last() float64 {
	if h.count == 0 {
		return 0
	}
	return h.data[(h.head-1+len(h.data))%len(h.data)]
}

// Values returns the samples in chronological order.
func (h *History) Values() []float64 {
	out := make([]float64, h.count)
	start := h.head - h.count + len(h.data)
	for i := range out {
		out[i] = h.data[(start+i)%len(h.data)]
	}
	return out
}

// Reset drops every sample.
func (h *History) Reset() {
	h.head, h.count = 0, 0
}

// Sparkline renders values scaled against ceiling as one block per value.
// Values are clamped to [0, ceiling]; a non-positive ceiling renders the
// lowest block.
func Sparkline(values []float64, ceiling float64) string {
	runes := make([]rune, len(values))
	for i, v := range values {
		level := 0
		if ceiling > 0 {
			level = int(min(max(v, 0), ceiling) / ceiling * 7)
		}
		runes[i] = sparklineChars[level]
	}
	return string(runes)
}
