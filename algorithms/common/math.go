package common

import (
	"math"
)

// Clip bounds v to [lo, hi].
func Clip(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ClipInPlace bounds every element of data to [lo, hi].
func ClipInPlace(data []float64, lo, hi float64) {
	for i, v := range data {
		data[i] = Clip(v, lo, hi)
	}
}

// RoundHalfEven rounds v to the given number of decimal places, sending
// exact ties to the even neighbour (0.125 -> 0.12, 0.375 -> 0.38).
// Rounding an already-rounded value at the same precision is a no-op.
func RoundHalfEven(v float64, decimals int) float64 {
	if decimals < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	scale := math.Pow(10, float64(decimals))
	r := math.RoundToEven(v*scale) / scale
	if r == 0 {
		// drop negative zero
		return 0
	}
	return r
}

// IsFinite reports whether every element of data is neither NaN nor infinite.
func IsFinite(data []float64) bool {
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
