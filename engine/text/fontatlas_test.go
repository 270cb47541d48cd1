package text

import (
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/clayray/engine/colors"
	"github.com/hubastard/clayray/engine/gfx/gfxtest"
	"github.com/hubastard/clayray/engine/gfx/renderer2d"
	"golang.org/x/image/font/gofont/goregular"
)

func loadDefault(t *testing.T, dev *gfxtest.Device, size float32) *FontAtlas {
	t.Helper()
	fa, err := LoadTTF(dev, "", size)
	if err != nil {
		t.Fatal(err)
	}
	return fa
}

func TestLoadDefaultFont(t *testing.T) {
	dev := gfxtest.New()
	fa := loadDefault(t, dev, 16)

	if fa.BaseSize() != 16 {
		t.Fatalf("expected base size 16; got %v", fa.BaseSize())
	}
	if len(dev.Textures) != 1 {
		t.Fatalf("expected one atlas texture; got %d", len(dev.Textures))
	}
	w, h := fa.Texture.Size()
	if w != fa.AtlasW || h != fa.AtlasH || w&(w-1) != 0 {
		t.Fatalf("expected a power of two atlas of %dx%d; got %dx%d", fa.AtlasW, fa.AtlasH, w, h)
	}
	if fa.Advance('a') <= 0 {
		t.Fatalf("expected a positive advance for 'a'")
	}
	if fa.Advance('世') != fa.Advance(' ') {
		t.Fatalf("expected runes outside the atlas to advance like a space")
	}
	if fa.LineHeight() < fa.Ascent {
		t.Fatalf("expected line height %v to cover the ascent %v", fa.LineHeight(), fa.Ascent)
	}

	if err := fa.Close(); err != nil {
		t.Fatal(err)
	}
	if !dev.Textures[0].Closed {
		t.Fatalf("expected Close to release the atlas texture")
	}
}

func TestLoadTTFBytesErrors(t *testing.T) {
	dev := gfxtest.New()
	if _, err := LoadTTFBytes(dev, []byte("not a font"), 16); err == nil {
		t.Fatalf("expected a parse error")
	}
	if _, err := LoadTTFBytes(dev, goregular.TTF, 0); err == nil {
		t.Fatalf("expected an error for size 0")
	}
	if _, err := LoadTTF(dev, "does/not/exist.ttf", 16); err == nil {
		t.Fatalf("expected a read error")
	}
}

func TestPackShelves(t *testing.T) {
	sizes := []image.Point{{10, 10}, {0, 0}, {10, 12}, {10, 10}}
	pos, side, err := packShelves(sizes, 32, 64)
	if err != nil {
		t.Fatal(err)
	}
	if side != 32 {
		t.Fatalf("expected side 32; got %d", side)
	}
	exp := []image.Point{{2, 2}, {0, 0}, {14, 2}, {2, 16}}
	for i, e := range exp {
		if pos[i] != e {
			t.Errorf("[spec %d] expected %v; got %v", i, e, pos[i])
		}
	}

	if _, _, err := packShelves([]image.Point{{100, 100}}, 32, 64); err == nil {
		t.Fatalf("expected an error when a box cannot fit")
	}
	if _, side, _ := packShelves([]image.Point{{40, 40}}, 32, 64); side != 64 {
		t.Fatalf("expected the atlas to grow to 64; got %d", side)
	}
}

func TestDrawTextScalesAndSpaces(t *testing.T) {
	dev := gfxtest.New()
	fa := loadDefault(t, dev, 16)
	defer fa.Close()

	r2d, err := renderer2d.New(dev, "vs", "fs", 0)
	if err != nil {
		t.Fatal(err)
	}

	r2d.BeginScene(mgl32.Ident4())
	DrawText(r2d, fa, 0, 0, "a a", 16, 0, colors.White)
	r2d.EndScene()
	if q := r2d.Stats().QuadCount; q != 2 {
		t.Fatalf("expected two glyph quads (space draws nothing); got %d", q)
	}
	plain := dev.Draws[len(dev.Draws)-1]

	r2d.BeginScene(mgl32.Ident4())
	DrawText(r2d, fa, 0, 0, "a a", 32, 0, colors.White)
	r2d.EndScene()
	scaled := dev.Draws[len(dev.Draws)-1]

	// The second glyph's left edge doubles with the size.
	const second = 4 * 9 // first vertex of the second quad
	if got, exp := scaled.Vertices[second], 2*plain.Vertices[second]; mgl32.Abs(got-exp) > 1e-3 {
		t.Fatalf("expected second glyph at x=%v; got %v", exp, got)
	}

	r2d.BeginScene(mgl32.Ident4())
	DrawText(r2d, fa, 0, 0, "a a", 16, 5, colors.White)
	r2d.EndScene()
	spaced := dev.Draws[len(dev.Draws)-1]
	if got, exp := spaced.Vertices[second], plain.Vertices[second]+10; mgl32.Abs(got-exp) > 1e-3 {
		t.Fatalf("expected spacing to push the second glyph to x=%v; got %v", exp, got)
	}
}

func TestDrawTextStepsLinesBySize(t *testing.T) {
	dev := gfxtest.New()
	fa := loadDefault(t, dev, 16)
	defer fa.Close()

	r2d, err := renderer2d.New(dev, "vs", "fs", 0)
	if err != nil {
		t.Fatal(err)
	}

	specs := []float32{16, 20, 40}
	for i, size := range specs {
		r2d.BeginScene(mgl32.Ident4())
		DrawText(r2d, fa, 3, 7, "a\na", size, 0, colors.White)
		r2d.EndScene()
		v := dev.Draws[len(dev.Draws)-1].Vertices

		const second = 4 * 9
		if got, exp := v[second], v[0]; mgl32.Abs(got-exp) > 1e-3 {
			t.Errorf("[spec %d] expected the second line to restart at x=%v; got %v", i, exp, got)
		}
		if got, exp := v[second+1], v[1]+size; mgl32.Abs(got-exp) > 1e-3 {
			t.Errorf("[spec %d] expected the second line at y=%v; got %v", i, exp, got)
		}
	}
}
