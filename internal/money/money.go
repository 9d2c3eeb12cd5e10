// Package money provides small numeric helpers for currency rounding and
// score normalization.
package money

import "math"

// Round2 rounds a value to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Clamp restricts v to the inclusive range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Normalize maps v onto [0,1] via min-max scaling over [minV, maxV]. A
// degenerate range (min equals max, as with a single candidate) yields 0.5.
func Normalize(v, minV, maxV float64) float64 {
	if maxV == minV {
		return 0.5
	}
	return Clamp((v-minV)/(maxV-minV), 0, 1)
}
