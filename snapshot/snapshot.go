// Package snapshot exports a rendered frame as an image or as text
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lixenwraith/donut/torus"
)

// Cell size in pixels, matching basicfont.Face7x13
const (
	CellWidth  = 7
	CellHeight = 13
)

var (
	Foreground = color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	Backdrop   = color.RGBA{A: 0xff}
)

// Rasterize draws every glyph of f into its own cell of a new image
func Rasterize(f *torus.Frame) *image.RGBA {
	face := basicfont.Face7x13
	img := image.NewRGBA(image.Rect(0, 0, f.Width*CellWidth, f.Height*CellHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(Backdrop), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(Foreground),
		Face: face,
	}
	ascent := face.Metrics().Ascent

	for row := 0; row < f.Height; row++ {
		for col, r := range f.Row(row) {
			if r == torus.Background {
				continue
			}
			// Dot is the baseline origin of the cell
			d.Dot = fixed.P(col*CellWidth, row*CellHeight)
			d.Dot.Y += ascent
			d.DrawString(string(r))
		}
	}
	return img
}

// WritePNG encodes the rasterized frame as PNG
func WritePNG(w io.Writer, f *torus.Frame) error {
	if err := png.Encode(w, Rasterize(f)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WriteText writes the frame as plain text lines
func WriteText(w io.Writer, f *torus.Frame) error {
	if _, err := io.WriteString(w, f.String()+"\n"); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}

// Save writes f to path, as PNG when the path ends in .png and as text otherwise
func Save(path string, f *torus.Frame) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close snapshot: %w", cerr)
		}
	}()

	if isPNG(path) {
		return WritePNG(file, f)
	}
	return WriteText(file, f)
}

func isPNG(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".png")
}
