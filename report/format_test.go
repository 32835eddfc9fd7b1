package report

import (
	"testing"
)

func TestFixed(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		want     string
	}{
		{3.14159, 2, "3.14"},
		{2, 2, "2"},
		{2.5, 2, "2.5"},
		{0.125, 2, "0.13"},
		{-0.001, 2, "0"},
		{10.916666, 3, "10.917"},
		{1234.5, 3, "1234.5"},
		{0.00004, 4, "0"},
	}
	for _, tt := range tests {
		if got := fixed(tt.v, tt.decimals); got != tt.want {
			t.Errorf("fixed(%v, %d) = %q, want %q", tt.v, tt.decimals, got, tt.want)
		}
	}
}

func TestOptional(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0.5, ".5"},
		{0, ""},
		{-0.25, "-.25"},
		{12.345, "12.35"},
	}
	for _, tt := range tests {
		if got := optional(tt.v, 2); got != tt.want {
			t.Errorf("optional(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0.95123, "95.12%"},
		{1, "100.00%"},
		{0, "0.00%"},
	}
	for _, tt := range tests {
		if got := percent(tt.v); got != tt.want {
			t.Errorf("percent(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
