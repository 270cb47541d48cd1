package renderer2d

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Quad holds four corners in TL, TR, BL, BR winding, the order the batch
// indexes them in.
type Quad [4]mgl32.Vec2

// RingQuads tessellates a ring sector into one quad per segment. Each quad
// spans two outer and two inner points; with inner == 0 the inner pair
// collapses to the centre and the quad degenerates into a triangle.
func RingQuads(center mgl32.Vec2, inner, outer, startDeg, endDeg float32, segments int) []Quad {
	if outer <= 0 || startDeg == endDeg {
		return nil
	}
	if inner < 0 {
		inner = 0
	}
	if inner > outer {
		inner, outer = outer, inner
	}
	if startDeg > endDeg {
		startDeg, endDeg = endDeg, startDeg
	}
	if segments < 1 {
		segments = 1
	}

	step := (endDeg - startDeg) / float32(segments)
	out := make([]Quad, 0, segments)
	for i := 0; i < segments; i++ {
		a0 := startDeg + step*float32(i)
		a1 := a0 + step
		out = append(out, Quad{
			polar(center, outer, a0),
			polar(center, outer, a1),
			polar(center, inner, a0),
			polar(center, inner, a1),
		})
	}
	return out
}

func polar(c mgl32.Vec2, r, deg float32) mgl32.Vec2 {
	rad := float64(mgl32.DegToRad(deg))
	return mgl32.Vec2{c[0] + r*float32(math.Cos(rad)), c[1] + r*float32(math.Sin(rad))}
}
