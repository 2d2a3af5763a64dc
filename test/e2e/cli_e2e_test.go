package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// buildBinary compiles the given command into a temporary directory.
// go test runs with the package directory as CWD, so builds run from the
// module root two levels up.
func buildBinary(t *testing.T, name string) string {
	t.Helper()
	binName := name
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}
	binPath := filepath.Join(t.TempDir(), binName)

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/"+name)
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build %s: %v", name, err)
	}
	return binPath
}

type e2eCase struct {
	name       string
	args       []string
	wantStdout string // substring match
	wantStderr string // substring match
	wantCode   int
}

func runCases(t *testing.T, binPath string, tests []e2eCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			var stdout, stderr strings.Builder
			cmd.Stdout = &stdout
			cmd.Stderr = &stderr
			err := cmd.Run()

			code := 0
			if err != nil {
				var exitErr *exec.ExitError
				if !errors.As(err, &exitErr) {
					t.Fatalf("Command did not run: %v", err)
				}
				code = exitErr.ExitCode()
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nstdout: %s\nstderr: %s", code, tt.wantCode, stdout.String(), stderr.String())
			}
			if !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout missing %q\nGot:\n%s", tt.wantStdout, stdout.String())
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr missing %q\nGot:\n%s", tt.wantStderr, stderr.String())
			}
		})
	}
}

// TestParallelCLI_E2E verifies the built parallel binary.
func TestParallelCLI_E2E(t *testing.T) {
	binPath := buildBinary(t, "pitaylor")

	runCases(t, binPath, []e2eCase{
		{
			name:       "Concrete Scenario",
			args:       []string{"1000000", "4"},
			wantStdout: "For 1000000 steps and 4 threads, pi value: 3.14159",
		},
		{
			name:       "Kahan Interleaved",
			args:       []string{"--summation", "kahan", "--partition", "interleaved", "100000", "7"},
			wantStdout: "For 100000 steps and 7 threads, pi value: 3.1415",
		},
		{
			name:       "Float32 With Time",
			args:       []string{"--precision", "float32", "--time", "1000", "2"},
			wantStdout: "Time: ",
		},
		{
			name:       "Compare",
			args:       []string{"--compare", "10000", "4"},
			wantStdout: "Global Status: Success",
		},
		{
			name:       "Steps Equal Threads",
			args:       []string{"8", "8"},
			wantStderr: "should be larger than the number of threads",
			wantCode:   1,
		},
		{
			name:       "Steps Below Threads",
			args:       []string{"7", "8"},
			wantStderr: "Error:",
			wantCode:   1,
		},
		{
			name:       "Missing Threads",
			args:       []string{"1000"},
			wantStderr: "Invalid syntax: pitaylor <steps> <threads>",
			wantCode:   1,
		},
		{
			name:       "Not A Number",
			args:       []string{"abc", "4"},
			wantStderr: `invalid steps "abc"`,
			wantCode:   1,
		},
		{
			name:       "Help",
			args:       []string{"--help"},
			wantStderr: "Usage: pitaylor [flags] <steps> <threads>",
		},
		{
			name:       "Version Flag",
			args:       []string{"--version"},
			wantStdout: "pitaylor",
		},
		{
			name:       "Completion",
			args:       []string{"--completion", "bash"},
			wantStdout: "complete -F _pitaylor_completions pitaylor",
		},
	})
}

// TestSequentialCLI_E2E verifies the built sequential binary.
func TestSequentialCLI_E2E(t *testing.T) {
	binPath := buildBinary(t, "pitaylor-seq")

	runCases(t, binPath, []e2eCase{
		{
			name:       "Basic Calculation",
			args:       []string{"1000"},
			wantStdout: "For 1000, pi value: 3.1405926",
		},
		{
			name:       "Time Line",
			args:       []string{"1000"},
			wantStdout: "Time: ",
		},
		{
			name:       "Verbose Report",
			args:       []string{"-v", "1000"},
			wantStderr: "--- Worker Report ---",
		},
		{
			name:       "Extra Argument",
			args:       []string{"1000", "4"},
			wantStderr: "Invalid syntax: pitaylor-seq <steps>",
			wantCode:   1,
		},
		{
			name:       "Zero Steps",
			args:       []string{"0"},
			wantStderr: "must be at least 1",
			wantCode:   1,
		},
		{
			name:       "Partition Is Not Accepted",
			args:       []string{"--partition", "chunked", "1000"},
			wantStderr: "flag provided but not defined",
			wantCode:   1,
		},
	})
}
