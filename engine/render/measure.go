package render

import (
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hubastard/clayray/engine/clay"
	"github.com/hubastard/clayray/engine/core"
)

const defaultMeasureCacheSize = 1024

type measureKey struct {
	font       uint16
	size       uint16
	spacing    uint16
	lineHeight uint16
	text       string
}

type measureCache = lru.Cache[measureKey, clay.Dimensions]

func newMeasureCache(size int) *measureCache {
	if size <= 0 {
		size = defaultMeasureCacheSize
	}
	c, err := lru.New[measureKey, clay.Dimensions](size)
	if err != nil {
		// only possible for a non-positive size
		panic(err)
	}
	return c
}

// MeasureText is the layout engine's measure callback: it returns the size
// text occupies when drawn with cfg. Results are cached per font set.
func (it *Interpreter) MeasureText(text string, cfg clay.TextConfig, fonts *FontSet) (clay.Dimensions, error) {
	f, err := fonts.Get(cfg.FontID)
	if err != nil {
		return clay.Dimensions{}, err
	}

	key := measureKey{font: cfg.FontID, size: cfg.FontSize, spacing: cfg.LetterSpacing, lineHeight: cfg.LineHeight, text: text}
	cache := fonts.measureCache()
	if dims, ok := cache.Get(key); ok {
		return dims, nil
	}
	dims := MeasureText(f, text, cfg)
	cache.Add(key, dims)
	return dims, nil
}

// MeasureText measures text set in f without caching.
//
// Width is the widest line: glyph advances scaled from the font's base size
// to cfg.FontSize, plus LetterSpacing between consecutive glyphs. Height is
// one LineHeight (or FontSize when LineHeight is zero) per line.
func MeasureText(f core.Font, text string, cfg clay.TextConfig) clay.Dimensions {
	size := float32(cfg.FontSize)
	scale := float32(1)
	if base := f.BaseSize(); base > 0 {
		scale = size / base
	}
	spacing := float32(cfg.LetterSpacing)

	lineHeight := float32(cfg.LineHeight)
	if lineHeight == 0 {
		lineHeight = size
	}

	var (
		maxWidth float32
		advance  float32
		glyphs   int
		lines    = 1
	)
	endLine := func() {
		w := advance * scale
		if glyphs > 1 {
			w += float32(glyphs-1) * spacing
		}
		maxWidth = float32(math.Max(float64(maxWidth), float64(w)))
		advance, glyphs = 0, 0
	}

	for _, r := range text {
		if r == '\n' {
			endLine()
			lines++
			continue
		}
		advance += f.Advance(r)
		glyphs++
	}
	endLine()

	return clay.Dimensions{Width: maxWidth, Height: float32(lines) * lineHeight}
}

func roundf(v float32) float32 { return float32(math.Round(float64(v))) }
