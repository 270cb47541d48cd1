package scene

import "github.com/go-gl/mathgl/mgl32"

const (
	projNear = 0.01
	orthoFar = 1000.0
)

// Ray is a half line in world space. Direction is unit length.
type Ray struct {
	Position  mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point t units along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Position.Add(r.Direction.Mul(t))
}

// ScreenToWorldRay casts a ray through the pixel at position for a viewport of
// screenWidth x screenHeight pixels seen through cam, and anchors it at view
// depth zDistance: Position is the point under the pixel zDistance units in
// front of the camera plane, measured along the view axis. A zDistance of
// zero or less anchors the ray at the eye (perspective) or on the camera
// plane (orthographic).
func ScreenToWorldRay(position mgl32.Vec2, cam Camera, screenWidth, screenHeight int, zDistance float32) Ray {
	fwd := cam.Forward()
	if screenWidth <= 0 || screenHeight <= 0 {
		return Ray{Position: cam.Position.Add(fwd.Mul(max(zDistance, 0))), Direction: fwd}
	}

	w, h := float32(screenWidth), float32(screenHeight)
	x := 2*position.X()/w - 1
	y := 1 - 2*position.Y()/h
	aspect := w / h

	far := zDistance
	if cam.Projection == Orthographic {
		far = orthoFar
	} else if !(far > projNear) {
		far = projNear + 1
	}

	invViewProj := cam.ProjectionMatrix(aspect, projNear, far).Mul4(cam.ViewMatrix()).Inv()

	nearPoint := unproject(invViewProj, x, y, -1)
	farPoint := unproject(invViewProj, x, y, 1)

	dir := farPoint.Sub(nearPoint)
	if dir.Len() == 0 {
		dir = fwd
	}
	dir = dir.Normalize()

	origin := cam.Position
	if cam.Projection == Orthographic {
		origin = nearPoint.Sub(fwd.Mul(projNear))
	}

	depth := max(zDistance, 0)
	if cos := dir.Dot(fwd); cos > 0 {
		depth /= cos
	}
	return Ray{Position: origin.Add(dir.Mul(depth)), Direction: dir}
}

// unproject maps a normalized device coordinate back to world space.
func unproject(invViewProj mgl32.Mat4, x, y, z float32) mgl32.Vec3 {
	v := invViewProj.Mul4x1(mgl32.Vec4{x, y, z, 1})
	if v.W() == 0 {
		return v.Vec3()
	}
	return v.Vec3().Mul(1 / v.W())
}
