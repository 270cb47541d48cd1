package raylib

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/clayray/engine/colors"
	"github.com/hubastard/clayray/engine/core"
	"github.com/hubastard/clayray/engine/scene"
)

func toColor(c colors.Color) color.RGBA {
	r, g, b, a := c.RGBA8()
	return color.RGBA{R: r, G: g, B: b, A: a}
}

func toRect(r core.Rect) rl.Rectangle {
	return rl.Rectangle{X: r.X, Y: r.Y, Width: r.W, Height: r.H}
}

func toVector2(v mgl32.Vec2) rl.Vector2 { return rl.Vector2{X: v[0], Y: v[1]} }

func toVector3(v mgl32.Vec3) rl.Vector3 { return rl.Vector3{X: v[0], Y: v[1], Z: v[2]} }

func toCamera3D(c scene.Camera) rl.Camera3D {
	proj := rl.CameraPerspective
	if c.Projection == scene.Orthographic {
		proj = rl.CameraOrthographic
	}
	return rl.Camera3D{
		Position:   toVector3(c.Position),
		Target:     toVector3(c.Target),
		Up:         toVector3(c.Up),
		Fovy:       c.Fovy,
		Projection: proj,
	}
}

// roundness converts a corner radius in pixels into raylib's roundness, the
// radius as a fraction of half the shorter side.
func roundness(radius, w, h float32) float32 {
	short := min(w, h)
	if short <= 0 || radius <= 0 {
		return 0
	}
	return min(2*radius/short, 1)
}
