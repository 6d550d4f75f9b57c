package orchestration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/threadbench/internal/errors"
	"github.com/agbru/threadbench/internal/logging"
	"github.com/agbru/threadbench/internal/metrics"
	"github.com/agbru/threadbench/internal/partition"
	"github.com/agbru/threadbench/internal/reduction"
	"github.com/agbru/threadbench/internal/sysmon"
)

var tracer = otel.Tracer("github.com/agbru/threadbench/internal/orchestration")

// RunOptions configures a single run.
type RunOptions struct {
	// Threads is the number of workers, one per range. Must be >= 1.
	Threads int
	// Merge selects the merge strategy; empty means MergeLock.
	Merge MergeMode
	// Observer receives lifecycle events; nil means NullObserver.
	Observer Observer
	// Logger receives structured diagnostics; nil discards them.
	Logger logging.Logger
	// Metrics records Prometheus instruments; nil records nothing.
	Metrics *metrics.Recorder
}

func (o RunOptions) withDefaults() RunOptions {
	if o.Merge == "" {
		o.Merge = MergeLock
	}
	if o.Observer == nil {
		o.Observer = NullObserver{}
	}
	if o.Logger == nil {
		o.Logger = logging.Nop()
	}
	return o
}

// Outcome is the typed result of Execute.
type Outcome[R any] struct {
	RunID    string
	Workload string
	Size     int
	Threads  int
	Merge    MergeMode
	Ranges   []partition.Range

	// Value is the merged result. It stays the task identity unless Phase
	// is PhaseDone.
	Value   R
	Elapsed time.Duration
	Workers []WorkerStat
	Merges  int

	CPU          metrics.CPUUsage
	CPUAvailable bool
	System       sysmon.Stats
	Memory       metrics.MemoryDelta

	// Phase is the last phase the coordinator reached.
	Phase Phase
}

type coordinator[R any] struct {
	task  Task[R]
	opts  RunOptions
	runID string
	phase Phase
}

func (c *coordinator[R]) advance(p Phase) {
	c.phase = p
	c.opts.Logger.Debug("phase changed",
		logging.String("run_id", c.runID),
		logging.String("phase", p.String()))
	c.opts.Observer.PhaseChanged(c.runID, p)
}

// Execute runs task with opts.Threads workers and returns the merged result.
//
// The dataset is split into contiguous ranges, one goroutine reduces each
// range and merges its local result into the shared result. Execute returns
// only after every worker has finished, whether or not some failed. If any
// worker failed the error is a *apperrors.WorkerFailureError naming all of
// them, and no value is reported. Invalid thread counts, sizes or merge modes
// fail with an invalid-argument error before any worker is started.
//
// ctx carries tracing only: a started run is never abandoned.
func Execute[R any](ctx context.Context, task Task[R], opts RunOptions) (Outcome[R], error) {
	opts = opts.withDefaults()
	c := &coordinator[R]{task: task, opts: opts, runID: uuid.NewString(), phase: PhaseIdle}
	out := Outcome[R]{
		RunID:    c.runID,
		Workload: task.Name(),
		Size:     task.Size(),
		Threads:  opts.Threads,
		Merge:    opts.Merge,
		Value:    task.Identity(),
		Phase:    PhaseIdle,
	}

	ctx, span := tracer.Start(ctx, "benchmark.run", trace.WithAttributes(
		attribute.String("benchmark.run_id", c.runID),
		attribute.String("benchmark.workload", task.Name()),
		attribute.Int("benchmark.size", task.Size()),
		attribute.Int("benchmark.threads", opts.Threads),
		attribute.String("benchmark.merge", string(opts.Merge)),
	))
	defer span.End()

	merge, err := ParseMergeMode(string(opts.Merge))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return out, err
	}
	opts.Merge, out.Merge = merge, merge
	ranges, err := partition.Split(task.Size(), opts.Threads)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return out, err
	}
	out.Ranges = ranges
	opts.Observer.Partitioned(c.runID, ranges)
	c.advance(PhasePartitioned)

	shared := reduction.NewShared(task.Identity())
	var slots *reduction.Slots[R]
	if opts.Merge == MergeSlots {
		slots = reduction.NewSlots[R](len(ranges))
	}
	stats := make([]WorkerStat, len(ranges))

	memory := metrics.NewMemoryCollector()
	memBefore := memory.Snapshot()
	cpuBefore, cpuOK := metrics.ReadCPUUsage()
	window := sysmon.Begin()

	start := time.Now()
	c.advance(PhaseRunning)
	// Workers report failure through their WorkerStat rather than the group
	// error so that Wait always joins every one of them.
	var g errgroup.Group
	for id, r := range ranges {
		g.Go(func() error {
			stats[id] = c.work(ctx, id, r, shared, slots)
			return nil
		})
	}
	_ = g.Wait()
	out.Elapsed = time.Since(start)
	c.advance(PhaseJoined)

	out.System = window.End()
	cpuAfter, _ := metrics.ReadCPUUsage()
	out.CPU = cpuAfter.Sub(cpuBefore)
	out.CPUAvailable = cpuOK
	out.Memory = memory.Snapshot().Since(memBefore)
	out.Workers = stats

	var failures []*apperrors.WorkerError
	for _, s := range stats {
		var we *apperrors.WorkerError
		if errors.As(s.Err, &we) {
			failures = append(failures, we)
		}
	}
	if err := apperrors.NewWorkerFailure(len(ranges), failures); err != nil {
		out.Phase = c.phase
		opts.Logger.Error("run failed", err,
			logging.String("run_id", c.runID),
			logging.String("workload", task.Name()),
			logging.Int("failed_workers", len(failures)))
		span.RecordError(err)
		span.SetStatus(codes.Error, "worker failure")
		opts.Metrics.RunFinished(task.Name(), opts.Threads, out.Elapsed, err)
		return out, err
	}

	if slots != nil {
		out.Value, out.Merges = slots.Fold(task)
	} else {
		out.Value, out.Merges = shared.Value(), shared.Merges()
	}
	c.advance(PhaseDone)
	out.Phase = c.phase

	opts.Logger.Info("run finished",
		logging.String("run_id", c.runID),
		logging.String("workload", task.Name()),
		logging.Int("threads", opts.Threads),
		logging.Duration("elapsed", out.Elapsed),
		logging.Int("merges", out.Merges))
	span.SetAttributes(attribute.Int("benchmark.merges", out.Merges))
	opts.Metrics.RunFinished(task.Name(), opts.Threads, out.Elapsed, nil)
	return out, nil
}

// work reduces one range and merges the local result. A failing or
// panicking reduction is reported in the returned stat and contributes
// nothing to the shared result.
func (c *coordinator[R]) work(ctx context.Context, id int, r partition.Range, shared *reduction.Shared[R], slots *reduction.Slots[R]) (stat WorkerStat) {
	stat = WorkerStat{ID: id, Range: r}
	_, span := tracer.Start(ctx, "benchmark.worker", trace.WithAttributes(
		attribute.Int("benchmark.worker", id),
		attribute.Int("benchmark.range.start", r.Start),
		attribute.Int("benchmark.range.end", r.End),
	))
	c.opts.Observer.WorkerStarted(c.runID, id)
	c.opts.Metrics.WorkerStarted()
	began := time.Now()

	defer func() {
		if p := recover(); p != nil {
			stat.Err = c.workerError(id, r, fmt.Errorf("panic: %v", p))
		}
		stat.Elapsed = time.Since(began)
		if stat.Err != nil {
			span.RecordError(stat.Err)
			span.SetStatus(codes.Error, "worker failed")
			c.opts.Logger.Warn("worker failed",
				logging.String("run_id", c.runID),
				logging.Int("worker", id),
				logging.Err(stat.Err))
		}
		span.End()
		c.opts.Metrics.WorkerFinished(c.task.Name(), stat.Elapsed)
		c.opts.Observer.WorkerFinished(c.runID, id, stat.Elapsed, stat.Err)
	}()

	local, err := c.task.Reduce(r)
	if err != nil {
		stat.Err = c.workerError(id, r, err)
		return stat
	}
	if slots != nil {
		slots.Store(id, local)
		return stat
	}
	stat.LockWait = shared.Merge(func(acc *R) {
		c.task.Combine(acc, local, id)
	})
	c.opts.Metrics.Merged(c.task.Name(), stat.LockWait)
	return stat
}

func (c *coordinator[R]) workerError(id int, r partition.Range, cause error) error {
	return &apperrors.WorkerError{WorkerID: id, Start: r.Start, End: r.End, Cause: cause}
}
