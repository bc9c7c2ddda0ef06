package vmath

import (
	"math"
)

// Q10 fixed point, used for every per-sample value in the render path
const (
	Shift = 10
	Scale = 1 << Shift
	Half  = 1 << (Shift - 1)
)

// Q30 fixed point, used for accumulated angles so per-frame rounding stays far below Q10 resolution
const (
	AngleShift = 30
	AngleScale = 1 << AngleShift

	// angleToFixed drops Q30 to Q10
	angleToFixed = AngleShift - Shift
)

// DepthShift scales reciprocal depth: score = 2^DepthShift / z(Q10)
const DepthShift = 30

// --- Arithmetic ---

func FromInt(i int) int { return i << Shift }
func ToInt(f int) int   { return f >> Shift }

// FromFloat converts a real value to Q10. Setup-time only
func FromFloat(f float64) int { return int(math.Round(f * Scale)) }
func ToFloat(f int) float64   { return float64(f) / Scale }

// Mul multiplies two Q10 values
func Mul(a, b int) int {
	return a * b >> Shift
}

// FloorDiv returns floor(a/b) for b > 0
// Go division truncates toward zero, which would fold (-1, 0) onto column 0
func FloorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// ClampIndex maps a signed score onto [0, n)
// Negative scores map to 0, scores at or past n map to n-1, n <= 0 yields 0
func ClampIndex(score, n int) int {
	if n <= 0 || score < 0 {
		return 0
	}
	if score >= n {
		return n - 1
	}
	return score
}

// Abs returns absolute value
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
