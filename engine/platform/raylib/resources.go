package raylib

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/hubastard/clayray/engine/core"
)

// Font wraps a raylib font. It satisfies core.Font.
type Font struct {
	font   rl.Font
	owned  bool
	closed bool
}

// Raw returns the underlying raylib font.
func (f *Font) Raw() rl.Font { return f.font }

func (f *Font) BaseSize() float32 { return float32(f.font.BaseSize) }

// Advance returns the advance of r at the base size. Glyphs without an
// advance use the width of their atlas rectangle.
func (f *Font) Advance(r rune) float32 {
	if gi := rl.GetGlyphInfo(f.font, r); gi.AdvanceX != 0 {
		return float32(gi.AdvanceX)
	}
	return rl.GetGlyphAtlasRec(f.font, r).Width
}

// Close unloads the font. The raylib default font is shared and never unloaded.
func (f *Font) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	if f.owned {
		rl.UnloadFont(f.font)
	}
	return nil
}

// Texture wraps a raylib texture. It satisfies core.Texture.
type Texture struct {
	tex    rl.Texture2D
	closed bool
}

// Raw returns the underlying raylib texture.
func (t *Texture) Raw() rl.Texture2D { return t.tex }

func (t *Texture) Size() (int, int) { return int(t.tex.Width), int(t.tex.Height) }

func (t *Texture) Close() error {
	if !t.closed {
		t.closed = true
		rl.UnloadTexture(t.tex)
	}
	return nil
}

// LoadFont loads the font at path rasterised at size pixels. An empty path
// returns raylib's built-in font.
func (b *Backend) LoadFont(path string, size int) (core.Font, error) {
	if !b.open {
		return nil, errNotOpen
	}
	if path == "" {
		return &Font{font: rl.GetFontDefault()}, nil
	}
	if size <= 0 {
		return nil, fmt.Errorf("platform/raylib: invalid font size %d", size)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("platform/raylib: load font: %w", err)
	}
	f := rl.LoadFontEx(path, int32(size), nil)
	// raylib falls back to its default font when loading fails
	if f.Texture.ID == 0 || f.Texture.ID == rl.GetFontDefault().Texture.ID {
		return nil, fmt.Errorf("platform/raylib: load font %q failed", path)
	}
	return &Font{font: f, owned: true}, nil
}

func (b *Backend) LoadTexture(path string) (core.Texture, error) {
	if !b.open {
		return nil, errNotOpen
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("platform/raylib: load texture: %w", err)
	}
	t := rl.LoadTexture(path)
	if t.ID == 0 {
		return nil, fmt.Errorf("platform/raylib: load texture %q failed", path)
	}
	return &Texture{tex: t}, nil
}
