package format

import (
	"math"
	"testing"
	"time"
)

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "< 1µs"},
		{"microseconds", 250 * time.Microsecond, "250µs"},
		{"milliseconds", 42 * time.Millisecond, "42ms"},
		{"seconds", 1500 * time.Millisecond, "1.5s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatExecutionDuration(tt.d); got != tt.want {
				t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestFormatMilliseconds(t *testing.T) {
	t.Parallel()
	if got := FormatMilliseconds(1234567 * time.Microsecond); got != "1234" {
		t.Errorf("FormatMilliseconds = %q, want 1234", got)
	}
	if got := FormatMilliseconds(300 * time.Microsecond); got != "0" {
		t.Errorf("FormatMilliseconds = %q, want 0", got)
	}
}

func TestFormatFloat(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		v      float64
		digits int
		bits   int
		want   string
	}{
		{"float64 pi", math.Pi, 16, 64, "3.141592653589793"},
		{"float32 pi", float64(float32(math.Pi)), 7, 32, "3.141593"},
		{"few digits", 3.1415916535897743, 6, 64, "3.14159"},
		{"exact", 4, 16, 64, "4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatFloat(tt.v, tt.digits, tt.bits); got != tt.want {
				t.Errorf("FormatFloat(%v, %d, %d) = %q, want %q", tt.v, tt.digits, tt.bits, got, tt.want)
			}
		})
	}
}

func TestFormatError(t *testing.T) {
	t.Parallel()
	if got := FormatError(1.0e-6); got != "1.00e-06" {
		t.Errorf("FormatError = %q", got)
	}
}
