package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// PointerState is the input the orbit controller reads each update.
type PointerState interface {
	MouseDelta() (dx, dy float32)
	MouseButtonDown() bool
	ScrollDelta() float32
}

// OrbitController: drag to orbit around the target, scroll to zoom.
type OrbitController struct {
	RotSpeed    float32 // radians per dragged pixel
	ZoomSpeed   float32 // distance factor per scroll step
	MinDistance float32
	MaxDistance float32
	Camera      *Camera
}

func NewOrbitController(cam *Camera) *OrbitController {
	return &OrbitController{
		RotSpeed:    0.005,
		ZoomSpeed:   1.1,
		MinDistance: 1,
		MaxDistance: 1000,
		Camera:      cam,
	}
}

func (oc *OrbitController) Update(in PointerState) {
	c := oc.Camera
	offset := c.Position.Sub(c.Target)
	if offset.Len() == 0 {
		return
	}
	up := c.Up.Normalize()

	if dx, dy := in.MouseDelta(); in.MouseButtonDown() && (dx != 0 || dy != 0) {
		offset = mgl32.QuatRotate(-dx*oc.RotSpeed, up).Rotate(offset)

		right := up.Cross(offset).Normalize()
		pitched := mgl32.QuatRotate(-dy*oc.RotSpeed, right).Rotate(offset)
		// stop short of the poles so LookAt keeps a valid basis
		if abs32(pitched.Normalize().Dot(up)) < 0.99 {
			offset = pitched
		}
	}

	if s := in.ScrollDelta(); s != 0 {
		dist := offset.Len() * float32(math.Pow(float64(oc.ZoomSpeed), float64(-s)))
		dist = mgl32.Clamp(dist, oc.MinDistance, oc.MaxDistance)
		offset = offset.Normalize().Mul(dist)
	}

	c.Position = c.Target.Add(offset)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
