package orchestration

import (
	"sync"
	"time"
)

// WorkerProgress aggregates worker lifecycle events into counts that a
// display can poll. It is safe for concurrent use, so an Observer can update
// it from worker goroutines while a ticker reads it.
type WorkerProgress struct {
	mu       sync.Mutex
	total    int
	running  int
	finished int
	failed   int
	slowest  time.Duration
	phase    Phase
}

// ProgressSnapshot is a consistent copy of WorkerProgress.
type ProgressSnapshot struct {
	Total, Running, Finished, Failed int
	Slowest                          time.Duration
	Phase                            Phase
}

// Fraction returns the share of finished workers, 0 when no worker exists.
func (s ProgressSnapshot) Fraction() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Finished) / float64(s.Total)
}

// Reset prepares the tracker for a new run of total workers.
func (p *WorkerProgress) Reset(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total, p.running, p.finished, p.failed = total, 0, 0, 0
	p.slowest = 0
	p.phase = PhasePartitioned
}

// SetPhase records the coordinator phase.
func (p *WorkerProgress) SetPhase(phase Phase) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.phase = phase
}

// Started records a worker start.
func (p *WorkerProgress) Started() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.running++
}

// Finished records a worker completion.
func (p *WorkerProgress) Finished(elapsed time.Duration, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.running--
	p.finished++
	if err != nil {
		p.failed++
	}
	if elapsed > p.slowest {
		p.slowest = elapsed
	}
}

// Snapshot returns the current counts.
func (p *WorkerProgress) Snapshot() ProgressSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ProgressSnapshot{
		Total:    p.total,
		Running:  p.running,
		Finished: p.finished,
		Failed:   p.failed,
		Slowest:  p.slowest,
		Phase:    p.phase,
	}
}
