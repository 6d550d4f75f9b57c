package tui

import (
	"context"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/threadbench/internal/config"
	apperrors "github.com/agbru/threadbench/internal/errors"
	"github.com/agbru/threadbench/internal/logging"
	"github.com/agbru/threadbench/internal/orchestration"
	"github.com/agbru/threadbench/internal/sysmon"
)

// Layout constants for the TUI dashboard.
const (
	headerHeight             = 1
	footerHeight             = 1
	minBodyHeight            = 8
	WorkersPanelWidthPercent = 55
	MetricsPanelHeight       = 8
)

// tickInterval is the sampling period of memory and system statistics.
const tickInterval = 500 * time.Millisecond

// ExecutionState holds the execution-related fields of a TUI session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	bench      orchestration.Benchmark
	generation uint64
	done       bool
	exitCode   int
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight, minBodyHeight)
}

func (l LayoutManager) workersWidth() int {
	return l.width * WorkersPanelWidthPercent / 100
}

func (l LayoutManager) rightWidth() int {
	return l.width - l.workersWidth()
}

func (l LayoutManager) metricsHeight() int {
	return min(MetricsPanelHeight, l.bodyHeight()/2)
}

func (l LayoutManager) resultsHeight() int {
	return l.bodyHeight() - l.metricsHeight()
}

// Model is the root bubbletea model for the TUI dashboard.
type Model struct {
	header  HeaderModel
	workers WorkersModel
	metrics MetricsModel
	results ResultsModel

	keymap KeyMap

	ExecutionState
	LayoutManager

	parentCtx context.Context
	config    config.AppConfig
	ref       *programRef
	paused    bool
}

// NewModel creates a dashboard that sweeps bench over the configured thread
// counts.
func NewModel(parentCtx context.Context, bench orchestration.Benchmark, cfg config.AppConfig, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	return Model{
		header:  NewHeaderModel(version, bench.Name(), bench.Size(), len(cfg.RunThreadCounts())),
		metrics: NewMetricsModel(),
		keymap:  DefaultKeyMap(),
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			bench:    bench,
			exitCode: apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		config:    cfg,
		ref:       &programRef{},
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startSweepCmd(m.ref, m.ctx, m.bench, m.config, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case PartitionedMsg:
		if msg.Generation == m.generation {
			m.header.NextRun()
			m.workers.Reset(msg.RunID, msg.Ranges)
		}
		return m, nil

	case PhaseMsg:
		if msg.Generation == m.generation {
			m.workers.SetPhase(msg.RunID, msg.Phase)
		}
		return m, nil

	case WorkerStartedMsg:
		if msg.Generation == m.generation {
			m.workers.Started(msg.Worker)
		}
		return m, nil

	case WorkerFinishedMsg:
		if msg.Generation == m.generation {
			m.workers.Finished(msg.Worker, msg.Elapsed, msg.Err)
		}
		return m, nil

	case SweepResultsMsg:
		if msg.Generation == m.generation {
			m.results.SetSweep(msg.Results)
		}
		return m, nil

	case RunResultMsg:
		if msg.Generation == m.generation {
			m.results.SetFinal(msg.Result)
		}
		return m, nil

	case ErrorMsg:
		if msg.Generation == m.generation {
			m.results.SetError(msg.Err)
		}
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if !m.paused {
			return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(), tickCmd())
		}
		return m, tickCmd()

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.metrics.UpdateSysStats(msg)
		return m, nil

	case SweepCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a previous sweep
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.header.SetDone()
		m.results.SetDone(msg.ExitCode)
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a previous sweep
		}
		m.done = true
		if m.exitCode == apperrors.ExitSuccess {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		m.header.SetDone()
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		if m.cancel != nil {
			m.cancel()
		}

		m.generation++
		ctx, cancel := context.WithCancel(m.parentCtx)
		m.ctx = ctx
		m.cancel = cancel

		m.header.Reset()
		m.workers.Clear()
		m.metrics.Reset()
		m.results.Reset()
		m.done = false
		m.paused = false
		m.exitCode = apperrors.ExitSuccess

		return m, tea.Batch(
			tickCmd(),
			startSweepCmd(m.ref, m.ctx, m.bench, m.config, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)

	case key.Matches(msg, m.keymap.Up):
		m.workers.Scroll(-1)
	case key.Matches(msg, m.keymap.Down):
		m.workers.Scroll(1)
	case key.Matches(msg, m.keymap.PageUp):
		m.workers.Scroll(-m.workers.visibleRows())
	case key.Matches(msg, m.keymap.PageDown):
		m.workers.Scroll(m.workers.visibleRows())
	}

	return m, nil
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	rightCol := lipgloss.JoinVertical(lipgloss.Left, m.metrics.View(), m.results.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.workers.View(), rightCol)
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footerView())
}

func (m Model) footerView() string {
	parts := make([]string, 0, 6)
	for _, b := range m.keymap.footerBindings() {
		h := b.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+dimStyle.Render(h.Desc))
	}
	status := m.results.Status()
	if m.paused {
		status = warningStyle.Render("Paused")
	}
	parts = append(parts, status)
	return " " + strings.Join(parts, dimStyle.Render("  •  "))
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.workers.SetSize(m.workersWidth(), m.bodyHeight())
	m.metrics.SetSize(m.rightWidth(), m.metricsHeight())
	m.results.SetSize(m.rightWidth(), m.resultsHeight())
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, bench orchestration.Benchmark, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, bench, cfg, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so the sweep can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startSweepCmd returns a tea.Cmd that runs the sweep and reports it to the
// dashboard.
func startSweepCmd(ref *programRef, ctx context.Context, bench orchestration.Benchmark, cfg config.AppConfig, gen uint64) tea.Cmd {
	return func() tea.Msg {
		presenter := &TUIResultPresenter{ref: ref, generation: gen}
		merge, err := orchestration.ParseMergeMode(cfg.Merge)
		if err != nil {
			return SweepCompleteMsg{ExitCode: presenter.HandleError(err, io.Discard), Generation: gen}
		}
		opts := orchestration.RunOptions{
			Merge:    merge,
			Observer: &TUIObserver{ref: ref, generation: gen},
			// Log lines would corrupt the alternate screen.
			Logger: logging.Nop(),
		}
		results := orchestration.ExecuteSweep(ctx, bench, cfg.RunThreadCounts(), opts)
		presOpts := orchestration.PresentationOptions{Details: cfg.Details}
		exitCode := orchestration.AnalyzeSweepResults(results, presOpts, presenter, presenter, io.Discard)
		return SweepCompleteMsg{ExitCode: exitCode, Generation: gen}
	}
}

// tickCmd returns a command that sends a TickMsg after tickInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads runtime memory stats and returns a MemStatsMsg.
func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return MemStatsMsg{
			Alloc:        ms.Alloc,
			HeapSys:      ms.HeapSys,
			NumGC:        ms.NumGC,
			PauseTotalNs: ms.PauseTotalNs,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

// sampleSysStatsCmd reads system-wide CPU and memory stats and returns a SysStatsMsg.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{
			CPUPercent: s.CPUPercent,
			MemPercent: s.MemPercent,
		}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
