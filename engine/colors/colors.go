package colors

import "math"

// Color is a straight-alpha RGBA color with channels in [0..1].
type Color [4]float32

var (
	White       = Color{1, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Magenta     = Color{1, 0, 1, 1}
	Cyan        = Color{0, 1, 1, 1}
	Yellow      = Color{1, 1, 0, 1}
	Gray        = Color{0.5, 0.5, 0.5, 1}
	DarkGray    = Color{0.08, 0.10, 0.12, 1}
	Transparent = Color{}
)

// From255 builds a color from channels in the 0..255 range, clamping out-of-range input.
func From255(r, g, b, a float32) Color {
	return Color{clamp01(r / 255), clamp01(g / 255), clamp01(b / 255), clamp01(a / 255)}
}

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// RGBA8 quantizes the color to 8 bits per channel.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return to8(c[0]), to8(c[1]), to8(c[2]), to8(c[3])
}

// Visible reports whether drawing with c can change a pixel.
func (c Color) Visible() bool { return c[3] > 0 }

func to8(v float32) uint8 {
	return uint8(math.Round(float64(clamp01(v) * 255)))
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
