package domain

import (
	"strings"
	"testing"
)

func TestHumanize(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{"zero", 0, "0.00"},
		{"fraction", 0.5, "0.500"},
		{"small", 1.5, "1.50"},
		{"two digits", 42, "42.0"},
		{"three digits", 512, "512"},
		{"below divisor but over 1000", 1023, "1023"},
		{"exactly one k", 1024, "1.00k"},
		{"one and a half k", 1536, "1.50k"},
		{"one M", 1024 * 1024, "1.00M"},
		{"one G", 1024 * 1024 * 1024, "1.00G"},
		{"scaled 1000k", 1000 * 1024, "1000k"},
		{"rounds to four digits", 999.6, "1000"},
		{"T is the last suffix", 2048 * 1024 * 1024 * 1024 * 1024, "2048T"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Humanize(tt.input); got != tt.want {
				t.Errorf("Humanize(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHumanize_NoDecimalsAtOrAboveThousand(t *testing.T) {
	for _, v := range []float64{1000, 1020, 1000 * 1024, 1010 * 1024 * 1024} {
		got := Humanize(v)
		if strings.Contains(got, ".") {
			t.Errorf("Humanize(%v) = %q, expected no decimal point", v, got)
		}
	}
}
