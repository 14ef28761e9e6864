package render

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"codeshots/pkg/text"
)

// Renderer is a fixed-size canvas with a white background.
type Renderer struct {
	context *gg.Context
}

func NewRenderer(width, height int) *Renderer {
	r := &Renderer{context: gg.NewContext(width, height)}
	r.Clear()
	return r
}

// Clear fills the canvas with white.
func (r *Renderer) Clear() {
	r.context.SetRGB(1, 1, 1)
	r.context.Clear()
}

// DrawCode draws code in black, one line per newline, with the top of the
// first line at (x, y). Lines are never wrapped; anything past the canvas
// edge is clipped.
func (r *Renderer) DrawCode(code string, face font.Face, x, y, lineSpacing float64) {
	r.context.SetFontFace(face)
	r.context.SetRGB(0, 0, 0)

	ascent := text.Ascent(face)
	step := text.LineHeight(face) + lineSpacing
	for i, line := range text.SplitLines(code) {
		if line == "" {
			continue
		}
		r.context.DrawString(line, x, y+ascent+float64(i)*step)
	}
}

// Image returns the canvas.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

func (r *Renderer) Width() int  { return r.context.Width() }
func (r *Renderer) Height() int { return r.context.Height() }

// EncodePNG writes the canvas as PNG.
func (r *Renderer) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.context.Image())
}

// SavePNG writes the canvas to filename, replacing any existing file.
func (r *Renderer) SavePNG(filename string) error {
	if err := r.context.SavePNG(filename); err != nil {
		return fmt.Errorf("save %s: %w", filename, err)
	}
	return nil
}
