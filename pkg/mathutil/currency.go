// Package mathutil provides common mathematical utility functions.
package mathutil

import "math"

// ApproxEqual reports whether two values agree within a relative tolerance.
// The tolerance is scaled by the larger magnitude, but never by less than 1,
// so values near zero compare against the tolerance as an absolute bound.
func ApproxEqual(val1, val2, relTolerance float64) bool {
	if val1 == val2 {
		return true
	}
	scale := math.Max(math.Abs(val1), math.Abs(val2))
	if scale < 1 {
		scale = 1
	}
	return math.Abs(val1-val2) <= relTolerance*scale
}

// IsFinite reports whether val is neither NaN nor infinite.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// ApplyRate multiplies a value by a fractional rate (0.10 == 10%).
func ApplyRate(value, rate float64) float64 {
	return value * rate
}
