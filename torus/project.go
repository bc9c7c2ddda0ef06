package torus

import (
	"github.com/lixenwraith/donut/vmath"
)

// Projected is one sample mapped onto the screen grid
type Projected struct {
	Col, Row int
	// Depth is the reciprocal-depth score, larger is nearer
	Depth int32
	// Level is the ramp index of Glyph
	Level int
	Glyph rune
}

// project rotates s by b and applies the camera offset and perspective divide
// Returns false only for samples at or behind the viewer
func (r *Renderer) project(b basis, s Sample) (Projected, bool) {
	p := b.apply(s.Point)
	z := r.cameraDistance + p.Z
	if z <= 0 {
		return Projected{}, false
	}

	level := vmath.ClampIndex(Luminance(b.apply(s.Normal)), len(r.ramp))

	return Projected{
		// W/2 + K1*x/z and H/2 - K1*y/(2z), screen y grows downward
		Col:   vmath.FloorDiv(r.width*z+2*r.perspective*p.X, 2*z),
		Row:   vmath.FloorDiv(r.height*z-r.perspective*p.Y, 2*z),
		Depth: int32((1 << vmath.DepthShift) / z),
		Level: level,
		Glyph: r.ramp[level],
	}, true
}
