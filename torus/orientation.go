package torus

import (
	"github.com/lixenwraith/donut/vmath"
)

// Orientation is the global rotation carried from frame to frame
// A turns about the X axis, B about the Z axis
// The zero value is degenerate; Normalize maps it to Identity
type Orientation struct {
	A, B vmath.Rotor
}

// Identity is the orientation with both angles at zero
func Identity() Orientation {
	return Orientation{A: vmath.RotorIdentity, B: vmath.RotorIdentity}
}

// Normalize replaces a degenerate zero rotor on either axis with angle zero
func (o Orientation) Normalize() Orientation {
	if o.A.IsZero() {
		o.A = vmath.RotorIdentity
	}
	if o.B.IsZero() {
		o.B = vmath.RotorIdentity
	}
	return o
}

// Advance steps both axes by their increments
func (o Orientation) Advance(da, db vmath.Rotor) Orientation {
	return Orientation{A: o.A.Step(da), B: o.B.Step(db)}
}

// Angles returns both angles in radians. Diagnostics only
func (o Orientation) Angles() (a, b float64) {
	return o.A.Angle(), o.B.Angle()
}

// basis is the Q10 view of an orientation, fixed for the duration of one frame
type basis struct {
	sinA, cosA int
	sinB, cosB int
}

func (o Orientation) basis() basis {
	var b basis
	b.sinA, b.cosA = o.A.Fixed()
	b.sinB, b.cosB = o.B.Fixed()
	return b
}

// apply rotates v about X by A, then about Z by B
func (b basis) apply(v vmath.Vec3) vmath.Vec3 {
	y1 := (v.Y*b.cosA - v.Z*b.sinA) >> vmath.Shift
	z1 := (v.Y*b.sinA + v.Z*b.cosA) >> vmath.Shift
	return vmath.Vec3{
		X: (v.X*b.cosB - y1*b.sinB) >> vmath.Shift,
		Y: (v.X*b.sinB + y1*b.cosB) >> vmath.Shift,
		Z: z1,
	}
}
