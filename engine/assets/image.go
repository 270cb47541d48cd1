package assets

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is decoded pixel data ready for upload: tightly packed RGBA8 rows,
// top row first.
type Image struct {
	Width, Height int
	Pix           []byte
	Format        string // as registered with the image package, e.g. "png"
}

// LoadImage decodes a PNG, JPEG, GIF, BMP, TIFF or WebP file.
func LoadImage(path string) (Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return Image{}, fmt.Errorf("assets: open %q: %w", path, err)
	}
	defer f.Close()

	img, err := DecodeImage(f)
	if err != nil {
		return Image{}, fmt.Errorf("assets: %q: %w", path, err)
	}
	return img, nil
}

// DecodeImage is LoadImage for an already open stream.
func DecodeImage(r io.Reader) (Image, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return Image{}, fmt.Errorf("decode image: %w", err)
	}
	rgba := toPackedRGBA(src)
	return Image{
		Width:  rgba.Rect.Dx(),
		Height: rgba.Rect.Dy(),
		Pix:    rgba.Pix,
		Format: format,
	}, nil
}

// toPackedRGBA returns src as an RGBA image anchored at the origin whose
// stride is exactly four bytes per pixel.
func toPackedRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	if m, ok := src.(*image.RGBA); ok && b.Min == (image.Point{}) && m.Stride == 4*b.Dx() {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
