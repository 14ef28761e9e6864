package text

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
)

// FontProvider produces a font face at a given point size.
type FontProvider interface {
	Name() string
	Face(points float64) (font.Face, error)
}

// FileFont loads a TrueType file by name. The name is tried as given first,
// then searched for recursively under Dirs.
type FileFont struct {
	File string
	Dirs []string
}

func (f FileFont) Name() string { return f.File }

func (f FileFont) Face(points float64) (font.Face, error) {
	path, err := f.locate()
	if err != nil {
		return nil, err
	}
	face, err := gg.LoadFontFace(path, points)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return face, nil
}

func (f FileFont) locate() (string, error) {
	if info, err := os.Stat(f.File); err == nil && !info.IsDir() {
		return f.File, nil
	}
	if filepath.Base(f.File) != f.File {
		return "", fmt.Errorf("font %s: %w", f.File, fs.ErrNotExist)
	}

	for _, dir := range f.Dirs {
		var found string
		filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// unreadable subtrees are skipped
				return nil
			}
			if !d.IsDir() && d.Name() == f.File {
				found = path
				return fs.SkipAll
			}
			return nil
		})
		if found != "" {
			return found, nil
		}
	}
	return "", fmt.Errorf("font %s: %w", f.File, fs.ErrNotExist)
}

// BuiltinMono is the Go Mono face compiled into the binary.
type BuiltinMono struct{}

func (BuiltinMono) Name() string { return "gomono" }

func (BuiltinMono) Face(points float64) (font.Face, error) {
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse gomono: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: points}), nil
}

// BasicFont is the fixed 7x13 bitmap face. It ignores the point size and
// never fails.
type BasicFont struct{}

func (BasicFont) Name() string { return "basicfont-7x13" }

func (BasicFont) Face(float64) (font.Face, error) { return basicfont.Face7x13, nil }

// Resolution reports which provider supplied the face and why the ones
// before it were passed over.
type Resolution struct {
	Provider string
	Skipped  []error
}

// Err joins the skipped provider errors, or returns nil if none were skipped.
func (r Resolution) Err() error {
	return errors.Join(r.Skipped...)
}

// Resolve returns the face of the first provider that succeeds. Provider
// failures are recorded, never returned. With no working provider the 7x13
// bitmap face is used.
func Resolve(providers []FontProvider, points float64) (font.Face, Resolution) {
	var res Resolution
	for _, p := range providers {
		face, err := p.Face(points)
		if err != nil {
			res.Skipped = append(res.Skipped, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		res.Provider = p.Name()
		return face, res
	}
	res.Provider = BasicFont{}.Name()
	return basicfont.Face7x13, res
}

// FontConfig lists font providers in priority order.
type FontConfig struct {
	Monospace []FontProvider
}

// DefaultFontConfig tries Consolas, then DejaVu Sans Mono, then the fonts
// built into the binary.
func DefaultFontConfig() FontConfig {
	dirs := systemFontDirs()
	return FontConfig{
		Monospace: []FontProvider{
			FileFont{File: "consola.ttf", Dirs: dirs},
			FileFont{File: "DejaVuSansMono.ttf", Dirs: dirs},
			BuiltinMono{},
			BasicFont{},
		},
	}
}

// MonospaceFace resolves the configured monospace providers.
func (fc FontConfig) MonospaceFace(points float64) (font.Face, Resolution) {
	return Resolve(fc.Monospace, points)
}

func systemFontDirs() []string {
	home, _ := os.UserHomeDir()
	var dirs []string
	switch runtime.GOOS {
	case "windows":
		windir := os.Getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		dirs = append(dirs, filepath.Join(windir, "Fonts"))
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			dirs = append(dirs, filepath.Join(local, "Microsoft", "Windows", "Fonts"))
		}
	case "darwin":
		dirs = append(dirs, "/System/Library/Fonts", "/Library/Fonts")
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			dirs = append(dirs, filepath.Join(xdg, "fonts"))
		}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, ".local", "share", "fonts"), filepath.Join(home, ".fonts"))
		}
		dirs = append(dirs, "/usr/local/share/fonts", "/usr/share/fonts")
	}
	return dirs
}

// MeasureText returns the size of multi-line text drawn with face, using
// lineSpacing extra pixels between lines.
func MeasureText(face font.Face, s string, lineSpacing float64) (width, height float64) {
	dc := gg.NewContext(1, 1)
	dc.SetFontFace(face)

	lines := SplitLines(s)
	lineHeight := LineHeight(face)
	for _, line := range lines {
		w, _ := dc.MeasureString(line)
		if w > width {
			width = w
		}
	}
	height = float64(len(lines))*lineHeight + float64(len(lines)-1)*lineSpacing
	return width, height
}

// LineHeight is the ascent plus descent of face in pixels.
func LineHeight(face font.Face) float64 {
	m := face.Metrics()
	return float64(m.Ascent+m.Descent) / 64
}

// Ascent is the distance from the top of a line to its baseline in pixels.
func Ascent(face font.Face) float64 {
	return float64(face.Metrics().Ascent) / 64
}

// SplitLines splits s on newlines, dropping a carriage return before each.
// A trailing newline yields a final empty line.
func SplitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
