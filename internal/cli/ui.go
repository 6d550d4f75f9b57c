package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/threadbench/internal/orchestration"
	"github.com/agbru/threadbench/internal/partition"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner line.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner abstracts a terminal spinner so that SpinnerObserver can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// SpinnerObserver shows a spinner with worker progress while a run is in
// flight. It implements orchestration.Observer; one observer can follow the
// successive runs of a sweep.
type SpinnerObserver struct {
	out      io.Writer
	progress orchestration.WorkerProgress

	mu      sync.Mutex
	spinner Spinner
	stop    chan struct{}
	done    chan struct{}
}

var _ orchestration.Observer = (*SpinnerObserver)(nil)

// NewSpinnerObserver returns an observer that draws on out.
func NewSpinnerObserver(out io.Writer) *SpinnerObserver {
	return &SpinnerObserver{out: out}
}

// Partitioned starts the spinner for a new run.
func (o *SpinnerObserver) Partitioned(_ string, ranges []partition.Range) {
	o.progress.Reset(len(ranges))
	o.start()
}

// PhaseChanged records the phase and stops the spinner once workers joined.
func (o *SpinnerObserver) PhaseChanged(_ string, phase orchestration.Phase) {
	o.progress.SetPhase(phase)
	if phase == orchestration.PhaseJoined {
		o.finish()
	}
}

func (o *SpinnerObserver) WorkerStarted(string, int) { o.progress.Started() }

func (o *SpinnerObserver) WorkerFinished(_ string, _ int, elapsed time.Duration, err error) {
	o.progress.Finished(elapsed, err)
}

func (o *SpinnerObserver) start() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.spinner != nil {
		return
	}
	o.spinner = newSpinner(spinner.WithWriter(o.out))
	o.spinner.UpdateSuffix(o.suffix())
	o.spinner.Start()
	o.stop, o.done = make(chan struct{}), make(chan struct{})
	go o.refresh(o.spinner, o.stop, o.done)
}

func (o *SpinnerObserver) refresh(s Spinner, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.UpdateSuffix(o.suffix())
		}
	}
}

func (o *SpinnerObserver) finish() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.spinner == nil {
		return
	}
	close(o.stop)
	<-o.done
	o.spinner.Stop()
	o.spinner = nil
}

// suffix renders the spinner line for the current progress.
func (o *SpinnerObserver) suffix() string {
	s := o.progress.Snapshot()
	line := fmt.Sprintf(" %s %s %d/%d workers done", s.Phase, progressBar(s.Fraction(), ProgressBarWidth), s.Finished, s.Total)
	if s.Failed > 0 {
		line += fmt.Sprintf(", %d failed", s.Failed)
	}
	return line
}

// progressBar generates a textual progress bar of the given width.
func progressBar(progress float64, length int) string {
	progress = min(max(progress, 0), 1)
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}
