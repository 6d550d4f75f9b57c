package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/threadbench/internal/config"
	apperrors "github.com/agbru/threadbench/internal/errors"
	"github.com/agbru/threadbench/internal/metrics"
	"github.com/agbru/threadbench/internal/orchestration"
	"github.com/agbru/threadbench/internal/partition"
	"github.com/agbru/threadbench/internal/ui"
	"github.com/agbru/threadbench/internal/workload"
)

// MockSpinner records calls; the observer updates it from its refresh
// goroutine, hence the lock.
type MockSpinner struct {
	mu      sync.Mutex
	started bool
	stopped bool
	suffix  string
}

func (m *MockSpinner) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suffix = suffix
}

func init() {
	ui.SetCurrentTheme(ui.NoColorTheme)
}

func sampleRun(threads int) orchestration.RunResult {
	return orchestration.RunResult{
		RunID:      "run-1",
		Name:       "cpu-burn",
		Size:       100,
		Threads:    threads,
		Merge:      orchestration.MergeLock,
		Summary:    "Global result: 123.45",
		Elapsed:    1234 * time.Millisecond,
		Merges:     threads,
		Speedup:    1.9,
		Efficiency: 0.95,
		Consistent: true,
		Workers: []orchestration.WorkerStat{
			{ID: 0, Range: partition.Range{Start: 0, End: 50}, Elapsed: 5 * time.Millisecond},
			{ID: 1, Range: partition.Range{Start: 50, End: 100}, Elapsed: 6 * time.Millisecond, LockWait: time.Microsecond},
		},
		CPU:          metrics.CPUUsage{User: 2 * time.Second},
		CPUAvailable: true,
	}
}

func TestPresentResult(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		opts     orchestration.PresentationOptions
		contains []string
		excludes []string
	}{
		{
			name:     "default",
			contains: []string{"Elapsed time: 1.23 seconds", "Global result: 123.45"},
			excludes: []string{"Run Details"},
		},
		{
			name:     "details",
			opts:     orchestration.PresentationOptions{Details: true},
			contains: []string{"Run Details", "Run ID:    run-1", "[50, 100)", "Effective parallelism: 1.62 of 2 threads", "GC cycles"},
		},
		{
			name:     "quiet",
			opts:     orchestration.PresentationOptions{Quiet: true, Details: true},
			contains: []string{"1.23\tGlobal result: 123.45\n"},
			excludes: []string{"Elapsed time", "Run Details"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			CLIResultPresenter{}.PresentResult(sampleRun(2), tc.opts, &buf)
			out := buf.String()
			for _, s := range tc.contains {
				if !strings.Contains(out, s) {
					t.Errorf("expected output to contain %q, got:\n%s", s, out)
				}
			}
			for _, s := range tc.excludes {
				if strings.Contains(out, s) {
					t.Errorf("expected output not to contain %q, got:\n%s", s, out)
				}
			}
		})
	}
}

func TestPresentComparisonTable(t *testing.T) {
	t.Parallel()
	base := sampleRun(1)
	base.Speedup, base.Efficiency = 1, 1
	differs := sampleRun(4)
	differs.Consistent = false
	failed := orchestration.RunResult{Threads: 8, Err: errors.New("2 of 8 workers failed")}

	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable([]orchestration.RunResult{base, sampleRun(2), differs, failed}, &buf)
	out := buf.String()
	for _, want := range []string{"Sweep Summary", "Threads", "Speedup", "1.00x", "1.90x", "95%", "Success", "differs from baseline", "Failure (2 of 8 workers failed)"} {
		if !strings.Contains(out, want) {
			t.Errorf("table should contain %q, got:\n%s", want, out)
		}
	}
}

func TestHandleError(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := apperrors.NewWorkerFailure(4, []*apperrors.WorkerError{{WorkerID: 3, Start: 9, End: 12, Cause: errors.New("malformed element")}})
	code := CLIResultPresenter{}.HandleError(err, &buf)
	if code != apperrors.ExitErrorGeneric {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorGeneric)
	}
	if !strings.Contains(buf.String(), "malformed element") {
		t.Errorf("error output should name the cause:\n%s", buf.String())
	}
}

func TestSpinnerObserver(t *testing.T) {
	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()

	mockS := &MockSpinner{}
	newSpinner = func(options ...spinner.Option) Spinner {
		return mockS
	}

	obs := NewSpinnerObserver(&bytes.Buffer{})
	obs.Partitioned("run", []partition.Range{{Start: 0, End: 1}, {Start: 1, End: 2}})
	obs.PhaseChanged("run", orchestration.PhasePartitioned)
	obs.PhaseChanged("run", orchestration.PhaseRunning)
	obs.WorkerStarted("run", 0)
	obs.WorkerStarted("run", 1)
	obs.WorkerFinished("run", 0, time.Millisecond, nil)
	obs.WorkerFinished("run", 1, time.Millisecond, errors.New("boom"))
	if got := obs.suffix(); !strings.Contains(got, "2/2 workers done, 1 failed") {
		t.Errorf("unexpected suffix %q", got)
	}
	obs.PhaseChanged("run", orchestration.PhaseJoined)

	mockS.mu.Lock()
	defer mockS.mu.Unlock()
	if !mockS.started || !mockS.stopped {
		t.Errorf("spinner started=%v stopped=%v, want both", mockS.started, mockS.stopped)
	}
}

func TestSpinnerObserver_DrivenByRun(t *testing.T) {
	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()
	mockS := &MockSpinner{}
	newSpinner = func(options ...spinner.Option) Spinner { return mockS }

	bench, err := workload.New(workload.CPUBurnName, 300, 1)
	if err != nil {
		t.Fatal(err)
	}
	res := bench.Run(context.Background(), orchestration.RunOptions{Threads: 3, Observer: NewSpinnerObserver(&bytes.Buffer{})})
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	mockS.mu.Lock()
	defer mockS.mu.Unlock()
	if !mockS.started || !mockS.stopped {
		t.Error("spinner should run while workers are in flight and stop once they joined")
	}
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(&bytes.Buffer{}))
	rs := &realSpinner{s}

	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		want     string
	}{
		{0, "░░░░"},
		{0.5, "██░░"},
		{1, "████"},
		{2, "████"},
		{-1, "░░░░"},
	}
	for _, tc := range tests {
		if got := progressBar(tc.progress, 4); got != tc.want {
			t.Errorf("progressBar(%v) = %q, want %q", tc.progress, got, tc.want)
		}
	}
}

func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	cfg := config.AppConfig{Workload: "nearest-neighbor", Size: 1000, Seed: 7, Threads: 4, Merge: "lock"}
	PrintExecutionConfig(cfg, &buf)
	PrintExecutionMode(cfg, &buf)
	out := buf.String()
	for _, want := range []string{"nearest-neighbor", "1000 elements", "seed 7", "logical processors", "Single run with 4 threads, lock merge"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}

	buf.Reset()
	cfg.ThreadCounts = []int{1, 2, 4}
	PrintExecutionMode(cfg, &buf)
	if !strings.Contains(buf.String(), "Sweep over 1, 2, 4 threads") {
		t.Errorf("sweep mode not described:\n%s", buf.String())
	}
}

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	workloads := []string{"nearest-neighbor", "cpu-burn"}
	tests := []struct {
		shell    string
		contains []string
	}{
		{"bash", []string{"_threadbench_completions", "--threads", `workloads="nearest-neighbor cpu-burn"`, "--merge)", "lock slots"}},
		{"zsh", []string{"#compdef threadbench", "'(-t --threads)'{-t,--threads}", ":workload:($workloads)", ":file:_files"}},
		{"fish", []string{"complete -c threadbench -s w -l workload", "-xa 'nearest-neighbor cpu-burn'", "-l metrics-out -d 'Prometheus metrics output file' -rF"}},
	}
	for _, tc := range tests {
		t.Run(tc.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tc.shell, workloads); err != nil {
				t.Fatal(err)
			}
			for _, want := range tc.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s script should contain %q", tc.shell, want)
				}
			}
		})
	}
	if err := GenerateCompletion(&bytes.Buffer{}, "powershell", workloads); err == nil {
		t.Error("unsupported shell should fail")
	}
}

func TestWriteMetrics(t *testing.T) {
	t.Parallel()
	rec := metrics.NewRecorder()
	rec.RunFinished("cpu-burn", 4, time.Second, nil)

	path := filepath.Join(t.TempDir(), "nested", "metrics.prom")
	if err := WriteMetrics(path, rec, nil); err != nil {
		t.Fatalf("WriteMetrics: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `threadbench_runs_total{status="success",workload="cpu-burn"} 1`) {
		t.Errorf("unexpected metrics file:\n%s", data)
	}

	var stdout bytes.Buffer
	if err := WriteMetrics("-", rec, &stdout); err != nil || !strings.Contains(stdout.String(), "threadbench_runs_total") {
		t.Errorf("WriteMetrics to stdout: %v\n%s", err, stdout.String())
	}
}
