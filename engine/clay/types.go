package clay

import (
	"math"

	"github.com/hubastard/clayray/engine/colors"
)

// BoundingBox is an axis aligned box in screen pixels. Origin is top-left, Y grows downward.
type BoundingBox struct {
	X, Y          float32
	Width, Height float32
}

// Rounded returns the box snapped to whole pixels.
func (b BoundingBox) Rounded() (x, y, w, h int) {
	return round(b.X), round(b.Y), round(b.Width), round(b.Height)
}

// Center returns the middle of the box.
func (b BoundingBox) Center() (float32, float32) {
	return b.X + b.Width*0.5, b.Y + b.Height*0.5
}

// Intersect returns the overlap of two boxes. Disjoint boxes yield a zero sized box.
func (b BoundingBox) Intersect(o BoundingBox) BoundingBox {
	x0 := max(b.X, o.X)
	y0 := max(b.Y, o.Y)
	x1 := min(b.X+b.Width, o.X+o.Width)
	y1 := min(b.Y+b.Height, o.Y+o.Height)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return BoundingBox{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Empty reports whether the box covers no area.
func (b BoundingBox) Empty() bool { return b.Width <= 0 || b.Height <= 0 }

// Color uses Clay's convention of channels in the 0..255 range.
type Color struct {
	R, G, B, A float32
}

func RGBA(r, g, b, a float32) Color { return Color{R: r, G: g, B: b, A: a} }

// IsZero reports whether every channel is zero.
func (c Color) IsZero() bool { return c == Color{} }

// Normalized converts to the engine color space.
func (c Color) Normalized() colors.Color { return colors.From255(c.R, c.G, c.B, c.A) }

type CornerRadius struct {
	TopLeft     float32
	TopRight    float32
	BottomLeft  float32
	BottomRight float32
}

// UniformRadius returns a CornerRadius with every corner set to r.
func UniformRadius(r float32) CornerRadius {
	return CornerRadius{TopLeft: r, TopRight: r, BottomLeft: r, BottomRight: r}
}

type BorderWidth struct {
	Left            uint16
	Right           uint16
	Top             uint16
	Bottom          uint16
	BetweenChildren uint16
}

// UniformBorder returns a BorderWidth with the four outer edges set to w.
func UniformBorder(w uint16) BorderWidth {
	return BorderWidth{Left: w, Right: w, Top: w, Bottom: w}
}

// Dimensions is the measured size of a text run.
type Dimensions struct {
	Width, Height float32
}

// TextConfig carries the text attributes the layout engine hands to its measure callback.
type TextConfig struct {
	FontID        uint16
	FontSize      uint16
	LetterSpacing uint16
	LineHeight    uint16
}

func round(v float32) int { return int(math.Round(float64(v))) }
