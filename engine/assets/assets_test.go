package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

func TestLoadShader(t *testing.T) {
	for _, name := range []string{"quad.vert.glsl", "quad.frag.glsl"} {
		src, err := LoadShader(name)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(src, "#version 330 core") {
			t.Fatalf("expected %s to target GLSL 3.30", name)
		}
		if !strings.HasSuffix(src, "\x00") {
			t.Fatalf("expected %s to be null terminated", name)
		}
	}
	if _, err := LoadShader("missing.glsl"); err == nil {
		t.Fatalf("expected an error for a missing shader")
	}
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeImagePacksRows(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	img.Set(2, 1, color.NRGBA{0, 0, 255, 255})

	got, err := DecodeImage(bytes.NewReader(encodePNG(t, img)))
	if err != nil {
		t.Fatal(err)
	}
	if got.Width != 3 || got.Height != 2 || len(got.Pix) != 3*2*4 {
		t.Fatalf("expected 3x2 with 24 bytes; got %dx%d with %d", got.Width, got.Height, len(got.Pix))
	}
	if got.Format != "png" {
		t.Fatalf("expected png format; got %q", got.Format)
	}
	if px := got.Pix[0:4]; !bytes.Equal(px, []byte{255, 0, 0, 255}) {
		t.Fatalf("expected red top-left pixel; got %v", px)
	}
	if px := got.Pix[20:24]; !bytes.Equal(px, []byte{0, 0, 255, 255}) {
		t.Fatalf("expected blue bottom-right pixel; got %v", px)
	}
}

func TestDecodeImageBMP(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	got, err := DecodeImage(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Format != "bmp" || got.Width != 2 || got.Height != 2 {
		t.Fatalf("expected a 2x2 bmp; got %dx%d %q", got.Width, got.Height, got.Format)
	}
	if px := got.Pix[4:8]; !bytes.Equal(px, []byte{0, 255, 0, 255}) {
		t.Fatalf("expected green top-right pixel; got %v", px)
	}
}

func TestLoadImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.png")
	if err := os.WriteFile(path, encodePNG(t, image.NewRGBA(image.Rect(0, 0, 4, 4))), 0o644); err != nil {
		t.Fatal(err)
	}
	if img, err := LoadImage(path); err != nil || img.Width != 4 || img.Height != 4 {
		t.Fatalf("expected 4x4; got %dx%d (%v)", img.Width, img.Height, err)
	}

	if _, err := LoadImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
	bad := filepath.Join(t.TempDir(), "bad.png")
	_ = os.WriteFile(bad, []byte("nope"), 0o644)
	if _, err := LoadImage(bad); err == nil {
		t.Fatalf("expected a decode error")
	}
}
