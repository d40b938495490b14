//go:build ignore

// gen_fixtures creates small sample images for manual smoke runs of
// imgpress. Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	if err := os.MkdirAll(dir, 0o755); err != nil {
		panic(err)
	}

	write(filepath.Join(dir, "cat.png"), func(w io.Writer) error {
		return png.Encode(w, gradient(400, 225))
	})
	write(filepath.Join(dir, "cat.jpg"), func(w io.Writer) error {
		return jpeg.Encode(w, gradient(400, 225), &jpeg.Options{Quality: 95})
	})
	write(filepath.Join(dir, "logo.png"), func(w io.Writer) error {
		return png.Encode(w, alphaGradient(100, 100))
	})
	write(filepath.Join(dir, "card.bmp"), func(w io.Writer) error {
		return bmp.Encode(w, solidWithBorder(200, 150, 60))
	})
	write(filepath.Join(dir, "card.gif"), func(w io.Writer) error {
		return gif.Encode(w, solidWithBorder(200, 150, 120), nil)
	})

	// Valid TIFF header, unsupported extension: must be rejected.
	if err := os.WriteFile(filepath.Join(dir, "cat.tiff"), []byte("II*\x00\x08\x00\x00\x00"), 0o644); err != nil {
		panic(err)
	}

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 6 fixtures in %s\n", dir)
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func solidWithBorder(w, h int, base uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: base, G: base + 40, B: base + 80, A: 255}
			if x < 4 || x >= w-4 || y < 4 || y >= h-4 {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func alphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: 220, G: 60, B: 30,
				A: uint8(x * 255 / w),
			})
		}
	}
	return img
}

func write(path string, encode func(io.Writer) error) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := encode(f); err != nil {
		panic(err)
	}
}
