package format

import (
	"testing"
	"time"
)

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   time.Duration
		want string
	}{
		{500 * time.Microsecond, "500µs"},
		{250 * time.Millisecond, "250ms"},
		{1500 * time.Millisecond, "1.5s"},
	}
	for _, tc := range tests {
		if got := FormatExecutionDuration(tc.in); got != tc.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	t.Parallel()
	if got := FormatSeconds(1234 * time.Millisecond); got != "1.23" {
		t.Errorf("FormatSeconds = %q, want 1.23", got)
	}
	if got := FormatSeconds(0); got != "0.00" {
		t.Errorf("FormatSeconds(0) = %q, want 0.00", got)
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536 * 1024, "1.5 MiB"},
		{3 << 30, "3.0 GiB"},
	}
	for _, tc := range tests {
		if got := FormatBytes(tc.in); got != tc.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatRatioAndPercent(t *testing.T) {
	t.Parallel()
	if FormatRatio(3.871) != "3.87x" || FormatRatio(0) != "-" {
		t.Errorf("unexpected ratios %q %q", FormatRatio(3.871), FormatRatio(0))
	}
	if FormatPercent(0.966) != "97%" || FormatPercent(0) != "-" {
		t.Errorf("unexpected percents %q %q", FormatPercent(0.966), FormatPercent(0))
	}
}
