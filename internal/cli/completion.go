package cli

import (
	"fmt"
	"io"
	"strings"

	apperrors "github.com/agbru/pitaylor/internal/errors"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long         string   // long flag name without "--" (e.g., "help")
	Short        string   // short flag without "-" (e.g., "h")
	Help         string   // description text
	Values       []string // suggested completion values (nil = boolean/no suggestions)
	ValueName    string   // label for the value in zsh (e.g., "policy")
	IsFile       bool     // true if the flag takes a file path
	ParallelOnly bool     // true if only the parallel program accepts the flag
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "partition", Help: "Partition policy", Values: []string{"chunked", "interleaved"}, ValueName: "policy", ParallelOnly: true},
	{Long: "summation", Help: "Summation policy", Values: []string{"naive", "kahan"}, ValueName: "policy"},
	{Long: "precision", Help: "Floating-point width", Values: []string{"float64", "float32"}, ValueName: "width"},
	{Long: "time", Help: "Print the elapsed time"},
	{Long: "verbose", Short: "v", Help: "Execution report on stderr"},
	{Long: "progress", Help: "Show a spinner while computing"},
	{Long: "compare", Help: "Compare every policy combination", ParallelOnly: true},
	{Long: "metrics-file", Help: "Prometheus textfile output", IsFile: true, ValueName: "file"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// completionFlags returns the registry entries the program accepts.
func completionFlags(sequential bool) []FlagCompletion {
	flags := make([]FlagCompletion, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		if sequential && f.ParallelOnly {
			continue
		}
		flags = append(flags, f)
	}
	return flags
}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish").
//   - program: The program name the script completes.
//   - sequential: Whether the program is the sequential variant.
//
// Returns:
//   - error: A ConfigError if the shell is not supported.
func GenerateCompletion(out io.Writer, shell, program string, sequential bool) error {
	flags := completionFlags(sequential)
	switch shell {
	case "bash":
		return generateBashCompletion(out, program, flags)
	case "zsh":
		return generateZshCompletion(out, program, flags, sequential)
	case "fish":
		return generateFishCompletion(out, program, flags)
	default:
		return apperrors.NewConfigError("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
}

// funcName turns a program name into a shell function identifier.
func funcName(program string) string {
	return "_" + strings.NewReplacer("-", "_", ".", "_").Replace(program)
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer, program string, flags []FlagCompletion) error {
	var opts []string
	var caseBody strings.Builder
	for _, f := range flags {
		opts = append(opts, "--"+f.Long)
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
		switch {
		case f.IsFile:
			fmt.Fprintf(&caseBody, "        --%s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n", f.Long)
		case len(f.Values) > 0:
			fmt.Fprintf(&caseBody, "        --%s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
				f.Long, strings.Join(f.Values, " "))
		}
	}

	fn := funcName(program)
	script := fmt.Sprintf(`# Bash completion script for %[1]s
# Add this to your ~/.bashrc or ~/.bash_completion

%[2]s_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%[3]s"

    case "${prev}" in
%[4]s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F %[2]s_completions %[1]s
`, program, fn, strings.Join(opts, " "), caseBody.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer, program string, flags []FlagCompletion, sequential bool) error {
	var args []string
	for _, f := range flags {
		args = append(args, zshArgEntry(f))
	}
	args = append(args, "        '1:steps:'")
	if !sequential {
		args = append(args, "        '2:threads:'")
	}

	fn := funcName(program)
	script := fmt.Sprintf(`#compdef %[1]s

# Zsh completion script for %[1]s
# Add this to your ~/.zshrc or place in $fpath

%[2]s() {
    _arguments -s \
%[3]s
}

%[2]s "$@"
`, program, fn, strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	if f.IsFile {
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	} else if len(f.Values) > 0 {
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	}

	if f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer, program string, flags []FlagCompletion) error {
	lines := []string{
		"# Fish completion script for " + program,
		fmt.Sprintf("# Add this to ~/.config/fish/completions/%s.fish", program),
		"",
		"# Disable file completion by default",
		"complete -c " + program + " -f",
		"",
	}
	for _, f := range flags {
		lines = append(lines, fishCompleteLine(program, f))
	}
	lines = append(lines, "")

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(program string, f FlagCompletion) string {
	parts := []string{"complete -c " + program}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	parts = append(parts, "-l "+f.Long, fmt.Sprintf("-d '%s'", f.Help))

	if f.IsFile {
		parts = append(parts, "-rF")
	} else if len(f.Values) > 0 {
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	}
	return strings.Join(parts, " ")
}
