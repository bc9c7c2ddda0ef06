package vmath

// Vec3 is a 3D vector in Q10 fixed-point
type Vec3 struct {
	X, Y, Z int
}

func V3Dot(a, b Vec3) int {
	return Mul(a.X, b.X) + Mul(a.Y, b.Y) + Mul(a.Z, b.Z)
}

func V3MagSq(v Vec3) int {
	return V3Dot(v, v)
}
