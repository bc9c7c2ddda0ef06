package torus

import (
	"github.com/lixenwraith/donut/vmath"
)

// Sample is one surface point of the torus in object space with its unit normal, both Q10
type Sample struct {
	Point  vmath.Vec3
	Normal vmath.Vec3
}

// sample places the tube circle (R2 + R1 cos t, R1 sin t) and sweeps it around the ring axis (Y) by r
func (r *Renderer) sample(sinT, cosT, sinR, cosR int) Sample {
	cx := r.ringRadius + vmath.Mul(r.tubeRadius, cosT)
	cy := vmath.Mul(r.tubeRadius, sinT)
	return Sample{
		Point:  vmath.Vec3{X: vmath.Mul(cx, cosR), Y: cy, Z: vmath.Mul(cx, sinR)},
		Normal: vmath.Vec3{X: vmath.Mul(cosT, cosR), Y: sinT, Z: vmath.Mul(cosT, sinR)},
	}
}

// Trace runs the tube/ring double loop for orientation o and emits every sample in front of the camera
// Cells may lie outside the grid; Frame.Plot drops those
func (r *Renderer) Trace(o Orientation, emit func(Projected)) {
	b := o.basis()

	tube := vmath.RotorIdentity
	for i := 0; i < r.tubeCount; i++ {
		sinT, cosT := tube.Fixed()

		ring := vmath.RotorIdentity
		for j := 0; j < r.ringCount; j++ {
			sinR, cosR := ring.Fixed()
			if p, ok := r.project(b, r.sample(sinT, cosT, sinR, cosR)); ok {
				emit(p)
			}
			ring = ring.Step(r.ringStep)
		}

		tube = tube.Step(r.tubeStep)
	}
}
