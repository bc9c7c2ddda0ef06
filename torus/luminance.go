package torus

import (
	"github.com/lixenwraith/donut/parameter"
	"github.com/lixenwraith/donut/vmath"
)

// lightDir is (0, 1, -1), unnormalized so the dot product is exactly Ny - Nz
var lightDir = vmath.Vec3{X: 0, Y: vmath.Scale, Z: -vmath.Scale}

// Luminance scores a rotated Q10 normal against the light direction
// The result is an unclamped ramp index: about -12 facing away, 11 facing the light
func Luminance(n vmath.Vec3) int {
	return vmath.V3Dot(n, lightDir) >> parameter.LuminanceShift
}
