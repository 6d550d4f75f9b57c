package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// Every shell script is generated from flagRegistry, so adding a flag only
// requires appending to it.
type FlagCompletion struct {
	Long       string   // long flag name without "--" (e.g., "threads")
	Short      string   // short flag without "-" (e.g., "t")
	Help       string   // description text
	Values     []string // suggested completion values (nil = boolean/no suggestions)
	ValueName  string   // label for the value in zsh (e.g., "count")
	IsFile     bool     // true if the flag takes a file path
	IsWorkload bool     // true if values come from the workload list
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "threads", Short: "t", Help: "Number of worker goroutines", Values: []string{"1", "2", "4", "8", "16"}, ValueName: "count"},
	{Long: "size", Short: "n", Help: "Problem size", ValueName: "number"},
	{Long: "workload", Short: "w", Help: "Workload to run", IsWorkload: true, ValueName: "workload"},
	{Long: "merge", Help: "Merge strategy", Values: []string{"lock", "slots"}, ValueName: "mode"},
	{Long: "seed", Help: "Dataset seed", ValueName: "number"},
	{Long: "sweep", Help: "Thread counts to compare", Values: []string{"auto", "1,2,4,8"}, ValueName: "list"},
	{Long: "details", Short: "d", Help: "Show per-worker details"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "tui", Help: "Interactive dashboard"},
	{Long: "no-color", Help: "Disable colors"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error", "off"}, ValueName: "level"},
	{Long: "metrics-out", Help: "Prometheus metrics output file", IsFile: true, ValueName: "file"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// GenerateCompletion writes a completion script for shell ("bash", "zsh" or
// "fish") to out.
func GenerateCompletion(out io.Writer, shell string, workloads []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(workloads)
	case "zsh":
		script = zshCompletion(workloads)
	case "fish":
		script = fishCompletion(workloads)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

func flagNames(f FlagCompletion) []string {
	var names []string
	if f.Long != "" {
		names = append(names, "--"+f.Long)
	}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

func bashCompletion(workloads []string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		names := flagNames(f)
		opts = append(opts, names...)

		var body string
		switch {
		case f.IsWorkload:
			body = `COMPREPLY=( $(compgen -W "${workloads}" -- "${cur}") )`
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n", strings.Join(names, "|"), body)
	}

	return fmt.Sprintf(`# Bash completion script for threadbench
# Add this to your ~/.bashrc or ~/.bash_completion

_threadbench_completions() {
    local cur prev opts workloads
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"
    workloads="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _threadbench_completions threadbench
`, strings.Join(opts, " "), strings.Join(workloads, " "), cases.String())
}

func zshCompletion(workloads []string) string {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	return fmt.Sprintf(`#compdef threadbench

# Zsh completion script for threadbench
# Add this to your ~/.zshrc or place in $fpath

_threadbench() {
    local -a workloads
    workloads=(%s)

    _arguments -s \
%s
}

_threadbench "$@"
`, strings.Join(workloads, " "), strings.Join(args, " \\\n"))
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsWorkload:
		valueSuffix = fmt.Sprintf(":%s:($workloads)", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

func fishCompletion(workloads []string) string {
	lines := []string{
		"# Fish completion script for threadbench",
		"# Add this to ~/.config/fish/completions/threadbench.fish",
		"",
		"complete -c threadbench -f",
	}
	for _, f := range flagRegistry {
		parts := []string{"complete -c threadbench"}
		if f.Short != "" {
			parts = append(parts, "-s "+f.Short)
		}
		parts = append(parts, "-l "+f.Long, fmt.Sprintf("-d '%s'", f.Help))
		switch {
		case f.IsFile:
			parts = append(parts, "-rF")
		case f.IsWorkload:
			parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(workloads, " ")))
		case len(f.Values) > 0:
			parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
		case f.ValueName != "":
			parts = append(parts, "-x")
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n") + "\n"
}
