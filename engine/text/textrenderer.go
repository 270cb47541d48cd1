package text

import (
	"github.com/hubastard/clayray/engine/colors"
	"github.com/hubastard/clayray/engine/gfx/renderer2d"
)

// DrawText draws s with the top-left of its first line at (x,y), scaled from
// the atlas size to size and with spacing extra pixels after every glyph.
// Lines advance by size. Glyphs are placed by advance alone, the same rule
// the layout measures text with. Positive Y goes downward (matching the 2D
// projection).
func DrawText(r2d *renderer2d.Renderer2D, font *FontAtlas, x, y float32, s string, size, spacing float32, color colors.Color) {
	scale := float32(1)
	if size > 0 {
		scale = size / font.SizePx
	}
	penX := x
	baseY := y + font.Ascent*scale // move origin to top left

	for _, r := range s {
		if r == '\n' {
			penX = x
			baseY += lineStep(font, size)
			continue
		}

		g, ok := font.Glyphs[r]
		if !ok {
			penX += font.Advance(r)*scale + spacing
			continue
		}

		if g.W > 0 && g.H > 0 {
			// Baseline-aligned quad center (Y-down system)
			w, h := float32(g.W)*scale, float32(g.H)*scale
			left := penX + g.BearingX*scale
			top := baseY - g.BearingY*scale
			r2d.DrawSubTexQuad(left+w*0.5, top+h*0.5, w, h, g.Sub, color, 0)
		}

		penX += g.Advance*scale + spacing
	}
}

// lineStep is the distance between baselines: the requested pixel size, or
// the font's own line height when no size is given.
func lineStep(font *FontAtlas, size float32) float32 {
	if size > 0 {
		return size
	}
	return font.LineHeight()
}
