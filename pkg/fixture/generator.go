// Package fixture renders catalog entries to PNG files for OCR test runs.
package fixture

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"codeshots/pkg/catalog"
	"codeshots/pkg/render"
	"codeshots/pkg/text"
)

// Options holds the canvas and output settings shared by every fixture.
type Options struct {
	OutputDir   string
	Width       int
	Height      int
	FontSize    float64 // points
	Margin      float64 // pixels from the top-left corner to the first line
	LineSpacing float64 // extra pixels between lines
}

// DefaultOptions returns 600x400 canvases with 16pt text written to assets/.
func DefaultOptions() Options {
	return Options{
		OutputDir:   "assets",
		Width:       600,
		Height:      400,
		FontSize:    16,
		Margin:      20,
		LineSpacing: 4,
	}
}

func (o Options) validate() error {
	switch {
	case o.OutputDir == "":
		return errors.New("output directory is empty")
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("invalid canvas size %dx%d", o.Width, o.Height)
	case o.FontSize <= 0:
		return fmt.Errorf("invalid font size %v", o.FontSize)
	}
	return nil
}

// Generator writes one PNG per catalog entry and reports progress to out.
type Generator struct {
	opts   Options
	fonts  text.FontConfig
	out    io.Writer
	logger *slog.Logger
}

func New(opts Options, fonts text.FontConfig, out io.Writer) (*Generator, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Generator{
		opts:   opts,
		fonts:  fonts,
		out:    out,
		logger: slog.Default(),
	}, nil
}

// SetLogger replaces the logger used for font and layout diagnostics.
func (g *Generator) SetLogger(l *slog.Logger) {
	g.logger = l
}

// EnsureOutputDirectory creates path and any missing parents.
func EnsureOutputDirectory(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// RenderFixture draws the entry's code and writes <OutputDir>/<Name>.png,
// replacing any existing file. Font problems never fail the call; only
// errors writing the file are returned.
func (g *Generator) RenderFixture(e catalog.Entry) (string, error) {
	face, res := g.fonts.MonospaceFace(g.opts.FontSize)
	g.logger.Debug("font resolved", "fixture", e.Name, "provider", res.Provider, "skipped", res.Err())

	if w, h := text.MeasureText(face, e.Code, g.opts.LineSpacing); g.opts.Margin+w > float64(g.opts.Width) || g.opts.Margin+h > float64(g.opts.Height) {
		g.logger.Debug("code clipped", "fixture", e.Name, "width", w, "height", h)
	}

	r := render.NewRenderer(g.opts.Width, g.opts.Height)
	r.DrawCode(e.Code, face, g.opts.Margin, g.opts.Margin, g.opts.LineSpacing)

	path := filepath.Join(g.opts.OutputDir, e.FileName())
	if err := r.SavePNG(path); err != nil {
		return "", err
	}
	fmt.Fprintf(g.out, "Created %s\n", path)
	return path, nil
}

// Run renders every entry in order and prints a summary. It stops at the
// first write error; files written before it are left in place.
func (g *Generator) Run(entries []catalog.Entry) error {
	if err := EnsureOutputDirectory(g.opts.OutputDir); err != nil {
		return err
	}

	fmt.Fprintln(g.out, "Generating test code images for CodeBuddy app...")

	for _, e := range entries {
		if _, err := g.RenderFixture(e); err != nil {
			return fmt.Errorf("fixture %s: %w", e.Name, err)
		}
		fmt.Fprintf(g.out, "  - %s\n", e.Description)
	}

	fmt.Fprintf(g.out, "\nGenerated %d test images in the %s directory.\n", len(entries), g.opts.OutputDir)
	fmt.Fprintln(g.out, "You can now use these images to test the CodeBuddy app's OCR and AI explanation features.")
	return nil
}
