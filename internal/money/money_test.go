package money

import (
	"math"
	"testing"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "already two decimals", in: 97.5, want: 97.5},
		{name: "rounds up", in: 10.005, want: 10.01},
		{name: "rounds down", in: 10.004, want: 10.0},
		{name: "negative rounds away from zero", in: -2.675, want: -2.68},
		{name: "zero", in: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round2(tt.in); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name           string
		v, lo, hi, want float64
	}{
		{name: "inside range", v: 0.5, lo: 0, hi: 1, want: 0.5},
		{name: "below range", v: -0.2, lo: 0, hi: 1, want: 0},
		{name: "above range", v: 1.7, lo: 0, hi: 1, want: 1},
		{name: "at boundary", v: 1.0, lo: 0, hi: 1, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name            string
		v, minV, maxV   float64
		want            float64
	}{
		{name: "midpoint", v: 50, minV: 0, maxV: 100, want: 0.5},
		{name: "minimum maps to zero", v: 10, minV: 10, maxV: 20, want: 0},
		{name: "maximum maps to one", v: 20, minV: 10, maxV: 20, want: 1},
		{name: "degenerate range yields half", v: 42, minV: 42, maxV: 42, want: 0.5},
		{name: "out of range clamps", v: 200, minV: 0, maxV: 100, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.v, tt.minV, tt.maxV); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Normalize(%v, %v, %v) = %v, want %v", tt.v, tt.minV, tt.maxV, got, tt.want)
			}
		})
	}
}
