// Package torus renders a rotating torus into a fixed character grid using fixed-point arithmetic only.
//
// One frame is a pure function of the Orientation:
//
//	frame, next := renderer.RenderFrame(o)
//
// Pipeline per frame:
//   - Reset glyph and depth buffers together
//   - Sweep tube and ring angles with incremental rotors (no sin/cos calls)
//   - Rotate each sample and its normal by the orientation, project with perspective
//   - Score the rotated normal against a fixed light and pick a ramp glyph
//   - Keep the nearest sample per cell
//   - Advance the orientation by its per-frame increments
package torus
