package fmath

import "math"

// Some functions that only operate on basic types, that are useful
// all over the grading pipeline. Everything here treats color channel
// values as unit floats unless it says otherwise.

func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0.0, 1.0)
}

// FiniteOr substitutes `def` for NaN/Inf. The editing surface can
// momentarily hand us garbage (mid-drag slider, malformed preset);
// we degrade to the default rather than let a NaN poison the image.
func FiniteOr(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// BoundedOr substitutes `def` when v is non-finite or outside [min, max].
func BoundedOr(v, min, max, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < min || v > max {
		return def
	}
	return v
}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// RoundByte maps a unit float to an 8-bit channel value, clamping first.
func RoundByte(v float64) uint8 {
	return uint8(math.Round(Clamp01(v) * 255.0))
}

// RoundLevel rounds a value already in the [0,255] domain to a level.
func RoundLevel(v float64) uint8 {
	return uint8(math.Round(Clamp(v, 0.0, 255.0)))
}
