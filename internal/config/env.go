// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strings"
)

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the PITAYLOR_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*flagValues, *AppConfig, string)
}

// envOverrides is the declarative table of all environment variable overrides.
// Policy names are stored raw and validated together with the flag values.
var envOverrides = []envOverride{
	{"PARTITION", []string{"partition"}, func(r *flagValues, _ *AppConfig, v string) {
		r.partition = v
	}},
	{"SUMMATION", []string{"summation"}, func(r *flagValues, _ *AppConfig, v string) {
		r.summation = v
	}},
	{"PRECISION", []string{"precision"}, func(r *flagValues, _ *AppConfig, v string) {
		r.precision = v
	}},
	{"METRICS_FILE", []string{"metrics-file"}, func(_ *flagValues, c *AppConfig, v string) {
		c.MetricsFile = v
	}},
	{"TIME", []string{"time"}, func(_ *flagValues, c *AppConfig, v string) {
		c.ShowTime = parseBoolEnv(v, c.ShowTime)
	}},
	{"VERBOSE", []string{"v", "verbose"}, func(_ *flagValues, c *AppConfig, v string) {
		c.Verbose = parseBoolEnv(v, c.Verbose)
	}},
	{"PROGRESS", []string{"progress"}, func(_ *flagValues, c *AppConfig, v string) {
		c.Progress = parseBoolEnv(v, c.Progress)
	}},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// Overrides for flags the mode does not register (e.g. PARTITION in
// sequential mode) are ignored.
//
// Supported environment variables (all prefixed with PITAYLOR_):
//   - PARTITION, SUMMATION, PRECISION, METRICS_FILE, TIME, VERBOSE, PROGRESS
func applyEnvOverrides(raw *flagValues, cfg *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if fs.Lookup(o.flags[0]) == nil || isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(raw, cfg, val)
		}
	}
}
