// Package visualtest inspects generated fixture images in tests.
package visualtest

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// LoadPNG decodes the PNG file at path.
func LoadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Dimensions returns the width and height of the PNG at path.
func Dimensions(path string) (width, height int, err error) {
	img, err := LoadPNG(path)
	if err != nil {
		return 0, 0, err
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), nil
}

// InkBounds returns the number of non-white pixels and the smallest rectangle
// containing them. The rectangle is empty when there is no ink.
func InkBounds(img image.Image) (count int, bounds image.Rectangle) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r == 0xffff && g == 0xffff && bl == 0xffff {
				continue
			}
			count++
			bounds = bounds.Union(image.Rect(x, y, x+1, y+1))
		}
	}
	return count, bounds
}
