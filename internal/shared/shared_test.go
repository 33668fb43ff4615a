package shared

import (
	"testing"
)

func TestFormatRTT(t *testing.T) {
	tests := []struct {
		name   string
		micros int64
		want   string
	}{
		{"sub-millisecond", 500, "0.50"},
		{"just under 1ms", 990, "0.99"},
		{"exactly 1ms", 1000, "1.00"},
		{"1.5ms", 1500, "1.50"},
		{"just under 10ms", 9990, "9.99"},
		{"exactly 10ms", 10000, "10.0"},
		{"12.34ms truncates to one decimal", 12340, "12.3"},
		{"just under 100ms", 99990, "99.9"},
		{"exactly 100ms", 100000, "100"},
		{"150ms", 150000, "150"},
		{"over one second", 1500000, "1500"},
		{"zero", 0, "0.00"},
		{"tiny", 50, "0.05"},
		{"negative clamps to zero", -1200, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRTT(tt.micros); got != tt.want {
				t.Errorf("FormatRTT(%d) = %q, want %q", tt.micros, got, tt.want)
			}
		})
	}
}

func TestFormatRTT_TruncatesNotRounds(t *testing.T) {
	// 12.39 ms must render as 12.3, not 12.4: the renderer drops digits
	// past the significant ones instead of rounding.
	if got := FormatRTT(12390); got != "12.3" {
		t.Errorf("FormatRTT(12390) = %q, want %q", got, "12.3")
	}
	if got := FormatRTT(999); got != "0.99" {
		t.Errorf("FormatRTT(999) = %q, want %q", got, "0.99")
	}
}
