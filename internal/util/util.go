// Package util holds small numeric helpers shared across the report builders.
package util

import "math"

// Round2 rounds to two decimal places, the precision of every monetary and
// percentage field in the output document.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Ratio returns a/b rounded to two decimals, or nil when the denominator is
// zero. Undefined ratios are emitted as JSON null, never coerced to zero.
func Ratio(a, b float64) *float64 {
	if b == 0 {
		return nil
	}
	v := Round2(a / b)

	return &v
}

// PctOf returns a/b*100 rounded to two decimals, or nil when the denominator
// is zero.
func PctOf(a, b float64) *float64 {
	if b == 0 {
		return nil
	}
	v := Round2(a / b * 100)

	return &v
}

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 {
	return &v
}
