package text

import (
	"fmt"
	"image"
	"os"

	"github.com/hubastard/clayray/engine/gfx"
	"github.com/hubastard/clayray/engine/gfx/renderer2d"
	"github.com/hubastard/clayray/engine/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var logger = log.New("text")

type Glyph struct {
	Rune     rune
	Advance  float32 // pixels
	BearingX float32 // left bearing in pixels
	BearingY float32 // top bearing in pixels (distance from baseline to glyph top)
	W, H     int     // glyph bitmap size
	X, Y     int     // top-left in the atlas
	Sub      renderer2d.SubTexture2D
}

// FontAtlas is a rasterised font at one pixel size. It satisfies core.Font.
type FontAtlas struct {
	SizePx                   float32
	Ascent, Descent, LineGap float32
	Glyphs                   map[rune]Glyph
	Texture                  gfx.Texture
	AtlasW, AtlasH           int
	Face                     font.Face
}

func (fa *FontAtlas) BaseSize() float32 { return fa.SizePx }

// Advance returns the horizontal advance of r at the atlas size. Runes
// missing from the atlas advance like a space.
func (fa *FontAtlas) Advance(r rune) float32 {
	if g, ok := fa.Glyphs[r]; ok {
		return g.Advance
	}
	return fa.Glyphs[' '].Advance
}

// LineHeight is the baseline to baseline distance at the atlas size.
func (fa *FontAtlas) LineHeight() float32 { return fa.Ascent - fa.Descent + fa.LineGap }

// Close releases the face and the atlas texture.
func (fa *FontAtlas) Close() error {
	if fa == nil {
		return nil
	}
	var err error
	if fa.Face != nil {
		err = fa.Face.Close()
		fa.Face = nil
	}
	if fa.Texture != nil {
		if terr := fa.Texture.Close(); err == nil {
			err = terr
		}
		fa.Texture = nil
	}
	return err
}

// LoadTTF reads a TrueType/OpenType file and builds its atlas. An empty
// path selects the bundled Go Regular face.
func LoadTTF(dev gfx.Device, path string, sizePx float32) (*FontAtlas, error) {
	if path == "" {
		return LoadTTFBytes(dev, goregular.TTF, sizePx)
	}
	ttfData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: read font: %w", err)
	}
	return LoadTTFBytes(dev, ttfData, sizePx)
}

// LoadTTFBytes builds a monochrome (white) glyph atlas (alpha coverage) and uploads it as RGBA texture.
func LoadTTFBytes(dev gfx.Device, ttfData []byte, sizePx float32) (*FontAtlas, error) {
	if sizePx <= 0 {
		return nil, fmt.Errorf("text: invalid font size %v", sizePx)
	}
	ft, err := opentype.Parse(ttfData)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}

	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("text: new face: %w", err)
	}

	// Metrics in pixels
	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(-m.Descent.Round())
	lineGap := float32(m.Height.Round()) - ascent + descent

	// Latin-1 only.
	var runes []rune
	for r := rune(32); r <= rune(255); r++ {
		runes = append(runes, r)
	}

	// Measure all glyph bounds/advances to pack a simple shelf atlas
	type meas struct {
		r      rune
		w, h   int
		adv    float32
		bx, by float32
	}
	measure := make([]meas, 0, len(runes))
	for _, rr := range runes {
		br, adv, ok := face.GlyphBounds(rr)
		if !ok {
			continue
		}
		gb := image.Rect(0, 0, (br.Max.X - br.Min.X).Ceil(), (br.Max.Y - br.Min.Y).Ceil())
		measure = append(measure, meas{
			r: rr,
			w: gb.Dx(), h: gb.Dy(),
			adv: float32(adv.Round()),
			bx:  float32(br.Min.X.Floor()),
			by:  float32(-br.Min.Y.Floor()), // distance from baseline to top
		})
	}

	sizes := make([]image.Point, len(measure))
	for i, g := range measure {
		sizes[i] = image.Pt(g.w, g.h)
	}
	pos, atlasSize, err := packShelves(sizes, 256, 4096)
	if err != nil {
		_ = face.Close()
		return nil, err
	}

	// Build atlas RGBA: white glyphs with alpha coverage on a transparent background
	dst := image.NewRGBA(image.Rect(0, 0, atlasSize, atlasSize))
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: face,
	}

	glyphs := make(map[rune]Glyph, len(measure))
	for i, g := range measure {
		glyph := Glyph{
			Rune: g.r, Advance: g.adv,
			BearingX: g.bx, BearingY: g.by,
			W: g.w, H: g.h,
		}
		if g.w > 0 && g.h > 0 {
			p := pos[i]
			// Drawer expects a dot at the baseline, shifted left by the bearing.
			drawer.Dot = fixed.P(p.X-int(g.bx), p.Y+int(g.by))
			drawer.DrawString(string(g.r))
			glyph.X, glyph.Y = p.X, p.Y
		}
		glyphs[g.r] = glyph
	}

	tex, err := dev.CreateTexture(gfx.TextureDesc{
		Width: atlasSize, Height: atlasSize,
		Format:    gfx.TextureRGBA8,
		Pixels:    dst.Pix,
		MinFilter: gfx.FilterLinear,
		MagFilter: gfx.FilterLinear,
		WrapU:     gfx.WrapClamp,
		WrapV:     gfx.WrapClamp,
	})
	if err != nil {
		_ = face.Close()
		return nil, err
	}
	for r, g := range glyphs {
		g.Sub = renderer2d.FromPixels(tex, g.X, g.Y, g.W, g.H, atlasSize, atlasSize)
		glyphs[r] = g
	}
	logger.Debugf("font atlas %vpx: %d glyphs in %dx%d", sizePx, len(glyphs), atlasSize, atlasSize)

	return &FontAtlas{
		SizePx: sizePx,
		Ascent: ascent, Descent: descent, LineGap: lineGap,
		Glyphs:  glyphs,
		Texture: tex,
		AtlasW:  atlasSize, AtlasH: atlasSize,
		Face: face,
	}, nil
}

const atlasPadding = 2

// packShelves places boxes left to right in rows on a square atlas, doubling
// the side from start until everything fits or limit is exceeded. Empty boxes
// get the zero point.
func packShelves(sizes []image.Point, start, limit int) ([]image.Point, int, error) {
	for side := start; side <= limit; side *= 2 {
		pos := make([]image.Point, len(sizes))
		x, y, rowH := atlasPadding, atlasPadding, 0
		fits := true
		for i, s := range sizes {
			if s.X == 0 || s.Y == 0 {
				continue
			}
			if s.X+atlasPadding*2 > side || s.Y+atlasPadding*2 > side {
				fits = false
				break
			}
			if x+s.X+atlasPadding > side {
				x = atlasPadding
				y += rowH + atlasPadding
				rowH = 0
			}
			if y+s.Y+atlasPadding > side {
				fits = false
				break
			}
			pos[i] = image.Pt(x, y)
			x += s.X + atlasPadding
			rowH = max(rowH, s.Y)
		}
		if fits {
			return pos, side, nil
		}
	}
	return nil, 0, fmt.Errorf("text: font atlas too large (>%d)", limit)
}
