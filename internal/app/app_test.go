package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/agbru/threadbench/internal/errors"
)

func newApp(t *testing.T, args ...string) *Application {
	t.Helper()
	a, err := New(append([]string{"threadbench"}, args...), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("New(%v): %v", args, err)
	}
	return a
}

func TestNew(t *testing.T) {
	a := newApp(t, "-w", "cpu-burn", "-t", "3", "--merge", "slots")
	if a.Config.Workload != "cpu-burn" || a.Config.Threads != 3 || a.Config.Merge != "slots" {
		t.Errorf("unexpected config %+v", a.Config)
	}
	if a.Config.Size != 100_000 {
		t.Errorf("Size = %d, want the cpu-burn default", a.Config.Size)
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		help     bool
		wantCode int
	}{
		{"help", []string{"--help"}, true, apperrors.ExitErrorGeneric},
		{"unknown workload", []string{"-w", "sorting"}, false, apperrors.ExitErrorConfig},
		{"zero threads", []string{"-t", "0"}, false, apperrors.ExitErrorConfig},
		{"unknown merge", []string{"--merge", "atomic"}, false, apperrors.ExitErrorConfig},
		{"positional argument", []string{"extra"}, false, apperrors.ExitErrorConfig},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(append([]string{"threadbench"}, tc.args...), &bytes.Buffer{})
			if err == nil {
				t.Fatal("expected an error")
			}
			if IsHelpError(err) != tc.help {
				t.Errorf("IsHelpError = %v, want %v", IsHelpError(err), tc.help)
			}
			if !tc.help && apperrors.ExitCodeFor(err) != tc.wantCode {
				t.Errorf("ExitCodeFor = %d, want %d", apperrors.ExitCodeFor(err), tc.wantCode)
			}
		})
	}
}

func TestRun_QuietSingleRun(t *testing.T) {
	a := newApp(t, "-w", "factorial", "-n", "20", "-t", "4", "-q")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit = %d, output:\n%s", code, out.String())
	}
	got := out.String()
	if !strings.Contains(got, "\t20! has 62 bits") {
		t.Errorf("quiet output should be one result line, got %q", got)
	}
	if strings.Contains(got, "Benchmark Configuration") {
		t.Error("quiet mode should not print the configuration")
	}
}

func TestRun_Sweep(t *testing.T) {
	a := newApp(t, "-w", "nearest-neighbor", "-n", "5000", "--sweep", "1,2,4", "--no-color")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit = %d, output:\n%s", code, out.String())
	}
	for _, want := range []string{"Benchmark Configuration", "Sweep over 1, 2, 4 threads", "Sweep Summary", "Global Status: Success", "Closest index:"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output should contain %q:\n%s", want, out.String())
		}
	}
}

func TestRun_MetricsOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.prom")
	a := newApp(t, "-w", "cpu-burn", "-n", "500", "-q", "--metrics-out", path)
	if code := a.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitSuccess {
		t.Fatalf("exit = %d", code)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `threadbench_merges_total{workload="cpu-burn"} 4`) {
		t.Errorf("unexpected metrics:\n%s", data)
	}
}

func TestRun_Canceled(t *testing.T) {
	a := newApp(t, "-w", "cpu-burn", "-n", "100", "-q")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a.ErrWriter = &bytes.Buffer{}
	var out bytes.Buffer
	if code := a.Run(ctx, &out); code != apperrors.ExitErrorCanceled {
		t.Errorf("exit = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
}

func TestRun_Completion(t *testing.T) {
	a := newApp(t, "--completion", "bash")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(out.String(), "complete -F _threadbench_completions threadbench") ||
		!strings.Contains(out.String(), "nearest-neighbor cpu-burn factorial") {
		t.Errorf("unexpected completion script:\n%s", out.String())
	}

	var errOut bytes.Buffer
	a = newApp(t, "--completion", "powershell")
	a.ErrWriter = &errOut
	if code := a.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitErrorConfig {
		t.Errorf("unsupported shell: exit = %d", code)
	}
	if !strings.Contains(errOut.String(), "unsupported shell") {
		t.Errorf("error output: %q", errOut.String())
	}
}

func TestHasVersionFlag(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"-t", "4"}, false},
		{[]string{"--version"}, true},
		{[]string{"-w", "cpu-burn", "-V"}, true},
		{[]string{"-version"}, true},
	}
	for _, tc := range tests {
		if got := HasVersionFlag(tc.args); got != tc.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tc.args, got, tc.want)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	var out bytes.Buffer
	PrintVersion(&out)
	if !strings.HasPrefix(out.String(), "threadbench "+Version) || !strings.Contains(out.String(), "Go version:") {
		t.Errorf("unexpected banner %q", out.String())
	}
}
