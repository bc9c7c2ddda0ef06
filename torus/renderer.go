package torus

import (
	"fmt"
	"math"

	"github.com/lixenwraith/donut/parameter"
	"github.com/lixenwraith/donut/vmath"
)

// Renderer holds the fixed-point form of a Config
// It is immutable after New and safe to share; frames are not
type Renderer struct {
	width, height int

	tubeRadius     int // Q10
	ringRadius     int // Q10
	cameraDistance int // Q10
	perspective    int

	ramp []rune

	tubeStep, ringStep   vmath.Rotor
	tubeCount, ringCount int

	stepA, stepB vmath.Rotor
}

// New validates cfg and precomputes every rotor the render path needs
func New(cfg Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Renderer{
		width:          cfg.Width,
		height:         cfg.Height,
		tubeRadius:     vmath.FromFloat(cfg.TubeRadius),
		ringRadius:     vmath.FromFloat(cfg.RingRadius),
		cameraDistance: vmath.FromFloat(cfg.CameraDistance),
		perspective:    cfg.PerspectiveScale,
		ramp:           []rune(cfg.Ramp),
		tubeStep:       vmath.NewRotor(parameter.TubeStep),
		ringStep:       vmath.NewRotor(parameter.RingStep),
		tubeCount:      sweepCount(parameter.TubeStep),
		ringCount:      sweepCount(parameter.RingStep),
		stepA:          vmath.NewRotor(cfg.StepA),
		stepB:          vmath.NewRotor(cfg.StepB),
	}, nil
}

// sweepCount is the number of steps covering a full turn
func sweepCount(step float64) int {
	return int(math.Ceil(2 * math.Pi / step))
}

// Size returns the grid dimensions
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// Samples returns the number of surface samples traced per frame
func (r *Renderer) Samples() int {
	return r.tubeCount * r.ringCount
}

// Glyph returns the ramp glyph for a level, clamping out-of-range levels
func (r *Renderer) Glyph(level int) rune {
	return r.ramp[vmath.ClampIndex(level, len(r.ramp))]
}

// Increments returns the per-frame orientation rotors
func (r *Renderer) Increments() (a, b vmath.Rotor) {
	return r.stepA, r.stepB
}

// NewFrame allocates a frame sized for this renderer
func (r *Renderer) NewFrame() *Frame {
	return NewFrame(r.width, r.height)
}

// RenderFrame renders o into a new frame and returns it with the advanced orientation
func (r *Renderer) RenderFrame(o Orientation) (*Frame, Orientation) {
	f := r.NewFrame()
	return f, r.RenderInto(f, o)
}

// RenderInto renders o into f, reusing its buffers, and returns the advanced orientation
// f must come from NewFrame of this renderer; a zero o renders as Identity
func (r *Renderer) RenderInto(f *Frame, o Orientation) Orientation {
	if f.Width != r.width || f.Height != r.height || len(f.Glyphs) != len(f.Depth) {
		panic(fmt.Sprintf("torus: frame %dx%d does not match renderer %dx%d", f.Width, f.Height, r.width, r.height))
	}

	o = o.Normalize()
	f.Reset()
	r.Trace(o, func(p Projected) {
		f.Plot(p)
	})
	return o.Advance(r.stepA, r.stepB)
}
