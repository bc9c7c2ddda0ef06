package vmath

import (
	"math"
)

// Rotor is an angle carried as a unit (sin, cos) pair in Q30
// Angles advance by angle-sum steps instead of re-evaluating sin/cos, so the render path never calls the math library
type Rotor struct {
	Sin, Cos int64
}

// RotorIdentity is the zero angle
var RotorIdentity = Rotor{Sin: 0, Cos: AngleScale}

// NewRotor builds the rotor for an angle in radians
// Setup-time only: this is the single place a transcendental function is evaluated
func NewRotor(rad float64) Rotor {
	return Rotor{
		Sin: int64(math.Round(math.Sin(rad) * AngleScale)),
		Cos: int64(math.Round(math.Cos(rad) * AngleScale)),
	}
}

// Step returns the rotor for r+d using the angle-sum identities
//
//	sin(a+d) = sin(a)cos(d) + cos(a)sin(d)
//	cos(a+d) = cos(a)cos(d) - sin(a)sin(d)
//
// followed by one Newton step pulling the magnitude back to 1
func (r Rotor) Step(d Rotor) Rotor {
	s := (r.Sin*d.Cos + r.Cos*d.Sin) >> AngleShift
	c := (r.Cos*d.Cos - r.Sin*d.Sin) >> AngleShift
	return renormalize(s, c)
}

// renormalize scales (s, c) by (3 - |v|^2) / 2, the first-order inverse square root around 1
func renormalize(s, c int64) Rotor {
	m2 := (s*s + c*c) >> AngleShift
	f := (3*AngleScale - m2) >> 1
	return Rotor{
		Sin: s * f >> AngleShift,
		Cos: c * f >> AngleShift,
	}
}

// IsZero reports whether r is the degenerate (0, 0) pair, which no angle maps to
// Stepping a zero rotor stays at zero
func (r Rotor) IsZero() bool {
	return r.Sin == 0 && r.Cos == 0
}

// Fixed returns the Q10 (sin, cos) pair, rounded to nearest
func (r Rotor) Fixed() (sin, cos int) {
	const half = 1 << (angleToFixed - 1)
	return int((r.Sin + half) >> angleToFixed), int((r.Cos + half) >> angleToFixed)
}

// Angle returns the angle in radians in (-pi, pi]. Diagnostics only
func (r Rotor) Angle() float64 {
	return math.Atan2(float64(r.Sin), float64(r.Cos))
}

// Magnitude returns |(sin, cos)| as a real value. Diagnostics only
func (r Rotor) Magnitude() float64 {
	s, c := float64(r.Sin)/AngleScale, float64(r.Cos)/AngleScale
	return math.Sqrt(s*s + c*c)
}
