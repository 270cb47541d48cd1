package scene

import "github.com/go-gl/mathgl/mgl32"

// Projection selects how a Camera maps view space to clip space.
type Projection int

const (
	Perspective Projection = iota
	Orthographic
)

func (p Projection) String() string {
	if p == Orthographic {
		return "orthographic"
	}
	return "perspective"
}

// Camera describes a 3D viewpoint. For perspective cameras Fovy is the
// vertical field of view in degrees; for orthographic cameras it is the
// height of the view volume in world units.
//
// A Camera is plain data owned by the application loop and handed to the
// projector and renderer explicitly.
type Camera struct {
	Position   mgl32.Vec3
	Target     mgl32.Vec3
	Up         mgl32.Vec3
	Fovy       float32
	Projection Projection
}

// NewPerspective returns a Y-up perspective camera.
func NewPerspective(position, target mgl32.Vec3, fovy float32) Camera {
	return Camera{
		Position:   position,
		Target:     target,
		Up:         mgl32.Vec3{0, 1, 0},
		Fovy:       fovy,
		Projection: Perspective,
	}
}

// NewOrthographic returns a Y-up orthographic camera whose view volume is height units tall.
func NewOrthographic(position, target mgl32.Vec3, height float32) Camera {
	cam := NewPerspective(position, target, height)
	cam.Projection = Orthographic
	return cam
}

// Forward returns the unit view direction. A camera looking at its own
// position faces down -Z.
func (c Camera) Forward() mgl32.Vec3 {
	dir := c.Target.Sub(c.Position)
	if dir.Len() == 0 {
		return mgl32.Vec3{0, 0, -1}
	}
	return dir.Normalize()
}

// ViewMatrix returns the world->view transform.
func (c Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the view->clip transform for the given viewport aspect ratio and depth range.
func (c Camera) ProjectionMatrix(aspect, near, far float32) mgl32.Mat4 {
	if c.Projection == Orthographic {
		top := c.Fovy / 2
		right := top * aspect
		return mgl32.Ortho(-right, right, -top, top, near, far)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.Fovy), aspect, near, far)
}
