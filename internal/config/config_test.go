package config

import (
	"bytes"
	"errors"
	"flag"
	"strconv"
	"strings"
	"testing"

	apperrors "github.com/agbru/pitaylor/internal/errors"
	"github.com/agbru/pitaylor/internal/series"
)

func TestParseConfig_Parallel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg AppConfig)
	}{
		{
			name: "defaults",
			args: []string{"1000000", "4"},
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.Steps != 1_000_000 || cfg.Threads != 4 {
					t.Errorf("steps/threads = %d/%d, want 1000000/4", cfg.Steps, cfg.Threads)
				}
				if cfg.Partition != series.Chunked || cfg.Summation != series.Naive || cfg.Precision != series.Float64 {
					t.Errorf("unexpected default policies: %+v", cfg)
				}
				if cfg.ShowTime {
					t.Error("parallel mode should not print time by default")
				}
			},
		},
		{
			name: "policies from flags",
			args: []string{"--partition", "interleaved", "--summation=kahan", "--precision", "float32", "-v", "100", "3"},
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.Partition != series.Interleaved || cfg.Summation != series.Kahan || cfg.Precision != series.Float32 {
					t.Errorf("unexpected policies: %+v", cfg)
				}
				if !cfg.Verbose {
					t.Error("-v should enable verbose")
				}
			},
		},
		{
			name: "completion needs no positional arguments",
			args: []string{"--completion", "bash"},
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.Completion != "bash" {
					t.Errorf("Completion = %q, want bash", cfg.Completion)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var errBuf bytes.Buffer
			cfg, err := ParseConfig("/usr/bin/pitaylor", tt.args, &errBuf, ModeParallel)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.ProgramName != "pitaylor" {
				t.Errorf("ProgramName = %q, want pitaylor", cfg.ProgramName)
			}
			tt.check(t, cfg)
		})
	}
}

func TestParseConfig_Sequential(t *testing.T) {
	t.Parallel()
	var errBuf bytes.Buffer
	cfg, err := ParseConfig("pitaylor-seq", []string{"--summation", "kahan", "1000"}, &errBuf, ModeSequential)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Steps != 1000 || cfg.Summation != series.Kahan {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if !cfg.ShowTime {
		t.Error("sequential mode should print time by default")
	}

	_, err = ParseConfig("pitaylor-seq", []string{"--partition", "interleaved", "1000"}, &errBuf, ModeSequential)
	if err == nil {
		t.Error("sequential mode should not accept --partition")
	}
}

func TestParseConfig_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		args    []string
		mode    Mode
		wantAs  func(error) bool
		wantMsg string
	}{
		{"no arguments", nil, ModeParallel, isConfigError, "Invalid syntax: pitaylor <steps> <threads>"},
		{"missing threads", []string{"100"}, ModeParallel, isConfigError, "Invalid syntax"},
		{"too many arguments", []string{"100", "4", "2"}, ModeParallel, isConfigError, "Invalid syntax"},
		{"sequential extra argument", []string{"100", "4"}, ModeSequential, isConfigError, "Invalid syntax: pitaylor <steps>"},
		{"non-numeric steps", []string{"abc", "4"}, ModeParallel, isParseError, `invalid steps "abc"`},
		{"negative threads", []string{"100", "-4"}, ModeParallel, isParseError, `invalid threads "-4"`},
		{"signed steps", []string{"+100", "4"}, ModeParallel, isParseError, "invalid steps"},
		{"overflowing steps", []string{"99999999999999999999", "4"}, ModeParallel, isParseError, "value out of range"},
		{"steps equal threads", []string{"8", "8"}, ModeParallel, isValidationError, "should be larger than the number of threads"},
		{"steps below threads", []string{"7", "8"}, ModeParallel, isValidationError, "should be larger"},
		{"zero threads", []string{"100", "0"}, ModeParallel, isValidationError, "threads"},
		{"zero steps sequential", []string{"0"}, ModeSequential, isValidationError, "at least 1"},
		{"unknown partition", []string{"--partition", "striped", "100", "4"}, ModeParallel, isConfigError, "unknown partition policy"},
		{"unknown flag", []string{"--threads", "4", "100"}, ModeParallel, isConfigError, "flag provided but not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var errBuf bytes.Buffer
			_, err := ParseConfig("pitaylor", tt.args, &errBuf, tt.mode)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !tt.wantAs(err) {
				t.Errorf("unexpected error type %T: %v", err, err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantMsg)
			}
			if code := apperrors.ExitCodeFor(err); code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
		})
	}
}

func TestParseConfig_Help(t *testing.T) {
	t.Parallel()
	var errBuf bytes.Buffer
	_, err := ParseConfig("pitaylor", []string{"--help"}, &errBuf, ModeParallel)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(errBuf.String(), "Usage: pitaylor [flags] <steps> <threads>") {
		t.Errorf("usage output missing synopsis: %s", errBuf.String())
	}
}

func TestEngineConfig(t *testing.T) {
	t.Parallel()
	cfg := AppConfig{Steps: 10, Threads: 2, Partition: series.Interleaved, Summation: series.Kahan, Precision: series.Float32}
	ec := cfg.EngineConfig(nil)
	if ec.Steps != 10 || ec.Threads != 2 || ec.Label() != "interleaved/kahan/float32" {
		t.Errorf("unexpected engine config: %+v", ec)
	}
}

// Environment tests cannot run in parallel because t.Setenv mutates process state.
func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"PARTITION", "interleaved")
	t.Setenv(EnvPrefix+"SUMMATION", "kahan")
	t.Setenv(EnvPrefix+"TIME", "yes")
	t.Setenv(EnvPrefix+"METRICS_FILE", "/tmp/pi.prom")

	var errBuf bytes.Buffer
	cfg, err := ParseConfig("pitaylor", []string{"--summation", "naive", "100", "4"}, &errBuf, ModeParallel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Partition != series.Interleaved {
		t.Error("PITAYLOR_PARTITION should apply when --partition is not set")
	}
	if cfg.Summation != series.Naive {
		t.Error("command-line flag should take precedence over PITAYLOR_SUMMATION")
	}
	if !cfg.ShowTime {
		t.Error("PITAYLOR_TIME=yes should enable the time line")
	}
	if cfg.MetricsFile != "/tmp/pi.prom" {
		t.Errorf("MetricsFile = %q", cfg.MetricsFile)
	}
}

func TestApplyEnvOverrides_InvalidPolicy(t *testing.T) {
	t.Setenv(EnvPrefix+"PRECISION", "float128")

	var errBuf bytes.Buffer
	_, err := ParseConfig("pitaylor", []string{"100", "4"}, &errBuf, ModeParallel)
	if !isConfigError(err) {
		t.Fatalf("expected ConfigError for invalid PITAYLOR_PRECISION, got %v", err)
	}
}

func TestApplyEnvOverrides_IgnoresUnregisteredFlags(t *testing.T) {
	t.Setenv(EnvPrefix+"PARTITION", "not-a-policy")

	var errBuf bytes.Buffer
	if _, err := ParseConfig("pitaylor-seq", []string{"100"}, &errBuf, ModeSequential); err != nil {
		t.Fatalf("PITAYLOR_PARTITION should be ignored in sequential mode: %v", err)
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in         string
		defaultVal bool
		want       bool
	}{
		{"true", false, true},
		{"YES", false, true},
		{"1", false, true},
		{"no", true, false},
		{"0", true, false},
		{"maybe", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.in+"/"+strconv.FormatBool(tt.defaultVal), func(t *testing.T) {
			t.Parallel()
			if got := parseBoolEnv(tt.in, tt.defaultVal); got != tt.want {
				t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.in, tt.defaultVal, got, tt.want)
			}
		})
	}
}

func isConfigError(err error) bool {
	var e apperrors.ConfigError
	return errors.As(err, &e)
}

func isParseError(err error) bool {
	var e apperrors.ParseError
	return errors.As(err, &e)
}

func isValidationError(err error) bool {
	var e apperrors.ValidationError
	return errors.As(err, &e)
}
