package torus

import (
	"math"
	"strings"
)

const (
	// Background fills every cell at frame start
	Background = ' '
	// DepthFar is the depth sentinel; any projected sample is nearer
	DepthFar int32 = math.MinInt32
)

// Frame holds the glyph and depth buffers of one rendered frame
// Both buffers are row-major, index = row*Width + col, and always share one length
type Frame struct {
	Width  int
	Height int
	Glyphs []rune
	Depth  []int32
}

// NewFrame creates a reset frame
func NewFrame(width, height int) *Frame {
	size := width * height
	f := &Frame{
		Width:  width,
		Height: height,
		Glyphs: make([]rune, size),
		Depth:  make([]int32, size),
	}
	f.Reset()
	return f
}

// Reset clears glyphs to Background and depths to DepthFar using exponential copy
func (f *Frame) Reset() {
	if len(f.Glyphs) == 0 {
		return
	}
	f.Glyphs[0] = Background
	f.Depth[0] = DepthFar
	for filled := 1; filled < len(f.Glyphs); filled *= 2 {
		copy(f.Glyphs[filled:], f.Glyphs[:filled])
		copy(f.Depth[filled:], f.Depth[:filled])
	}
}

// Index returns the buffer index of (col, row) and whether the cell is on screen
func (f *Frame) Index(col, row int) (int, bool) {
	if col < 0 || col >= f.Width || row < 0 || row >= f.Height {
		return 0, false
	}
	return row*f.Width + col, true
}

// Plot keeps p if it is strictly nearer than the cell's current sample
// Off-screen points and ties are discarded; reports whether the cell changed
func (f *Frame) Plot(p Projected) bool {
	idx, ok := f.Index(p.Col, p.Row)
	if !ok || p.Depth <= f.Depth[idx] {
		return false
	}
	f.Depth[idx] = p.Depth
	f.Glyphs[idx] = p.Glyph
	return true
}

// At returns the glyph at (col, row), Background when off screen
func (f *Frame) At(col, row int) rune {
	idx, ok := f.Index(col, row)
	if !ok {
		return Background
	}
	return f.Glyphs[idx]
}

// Row returns the glyphs of one row, sharing storage with the frame
func (f *Frame) Row(row int) []rune {
	start := row * f.Width
	return f.Glyphs[start : start+f.Width]
}

// String renders the frame as newline-separated rows
func (f *Frame) String() string {
	var sb strings.Builder
	sb.Grow((f.Width + 1) * f.Height)
	for y := 0; y < f.Height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, r := range f.Row(y) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
