package torus

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/lixenwraith/donut/parameter"
)

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid torus config")

// Config is the complete set of kernel knobs
type Config struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`

	TubeRadius     float64 `toml:"tube_radius"`
	RingRadius     float64 `toml:"ring_radius"`
	CameraDistance float64 `toml:"camera_distance"`

	PerspectiveScale int `toml:"perspective_scale"`

	// StepA and StepB are per-frame orientation increments in radians
	StepA float64 `toml:"step_a"`
	StepB float64 `toml:"step_b"`

	// Ramp lists GlyphCount glyphs from faint to bright
	Ramp string `toml:"ramp"`
}

// DefaultConfig returns the stock 80x22 donut
func DefaultConfig() Config {
	return Config{
		Width:            parameter.ScreenWidth,
		Height:           parameter.ScreenHeight,
		TubeRadius:       parameter.TubeRadius,
		RingRadius:       parameter.RingRadius,
		CameraDistance:   parameter.CameraDistance,
		PerspectiveScale: parameter.PerspectiveScale,
		StepA:            parameter.StepA,
		StepB:            parameter.StepB,
		Ramp:             parameter.GlyphRamp,
	}
}

// Validate checks every knob
func (c Config) Validate() error {
	if c.Width <= 0 || c.Width > parameter.MaxScreenWidth {
		return fmt.Errorf("%w: width %d outside (0, %d]", ErrInvalidConfig, c.Width, parameter.MaxScreenWidth)
	}
	if c.Height <= 0 || c.Height > parameter.MaxScreenHeight {
		return fmt.Errorf("%w: height %d outside (0, %d]", ErrInvalidConfig, c.Height, parameter.MaxScreenHeight)
	}
	if !(c.TubeRadius > 0) || !(c.RingRadius > 0) {
		return fmt.Errorf("%w: radii must be positive (tube %g, ring %g)", ErrInvalidConfig, c.TubeRadius, c.RingRadius)
	}
	if c.TubeRadius > parameter.MaxExtent || c.RingRadius > parameter.MaxExtent {
		return fmt.Errorf("%w: radii exceed %g", ErrInvalidConfig, parameter.MaxExtent)
	}
	if !(c.CameraDistance > c.TubeRadius+c.RingRadius) || c.CameraDistance > parameter.MaxExtent {
		return fmt.Errorf("%w: camera distance %g outside (%g, %g]",
			ErrInvalidConfig, c.CameraDistance, c.TubeRadius+c.RingRadius, parameter.MaxExtent)
	}
	if c.PerspectiveScale <= 0 || c.PerspectiveScale > parameter.MaxPerspectiveScale {
		return fmt.Errorf("%w: perspective scale %d outside (0, %d]",
			ErrInvalidConfig, c.PerspectiveScale, parameter.MaxPerspectiveScale)
	}
	for _, s := range []float64{c.StepA, c.StepB} {
		if math.IsNaN(s) || math.Abs(s) >= math.Pi {
			return fmt.Errorf("%w: orientation increment %g outside (-pi, pi)", ErrInvalidConfig, s)
		}
	}
	if n := utf8.RuneCountInString(c.Ramp); n != parameter.GlyphCount {
		return fmt.Errorf("%w: glyph ramp %q has %d glyphs, need %d", ErrInvalidConfig, c.Ramp, n, parameter.GlyphCount)
	}
	return nil
}
