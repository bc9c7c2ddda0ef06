package parameter

// Screen grid in terminal cells
const (
	ScreenWidth  = 80
	ScreenHeight = 22
)

// Torus geometry in object units
// CameraDistance must exceed TubeRadius+RingRadius so every sample stays in front of the viewer
const (
	TubeRadius     = 1.0
	RingRadius     = 2.0
	CameraDistance = 5.0

	// PerspectiveScale is horizontal cells per object unit at distance 1
	// Rows use half of it since terminal cells are about twice as tall as wide
	PerspectiveScale = 30
)

// Surface sampling steps in radians
// Not configurable: the sweep counts derive from them and fix the per-frame sample budget
const (
	TubeStep = 0.07
	RingStep = 0.02
)

// Per-frame orientation increments in radians
const (
	// StepA rotates about the X axis
	StepA = 0.04
	// StepB rotates about the Z axis
	StepB = 0.02
)

// Brightness ramp, faint to bright
const (
	GlyphRamp  = ".,-~:;=!*#$@"
	GlyphCount = 12

	// LuminanceShift brings a Q10 light score (range about +-sqrt(2)) into ramp indices: score*8
	LuminanceShift = 7
)

// Limits accepted by config validation
const (
	MaxScreenWidth  = 1000
	MaxScreenHeight = 500

	// MaxExtent bounds radii and camera distance so Q10 products stay far from overflow
	MaxExtent = 1000.0

	// MaxPerspectiveScale bounds the projection numerator 2*K1*x for x within MaxExtent
	MaxPerspectiveScale = 10000
)
