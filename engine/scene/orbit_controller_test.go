package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

type fakePointer struct {
	dx, dy float32
	down   bool
	scroll float32
}

func (p fakePointer) MouseDelta() (float32, float32) { return p.dx, p.dy }
func (p fakePointer) MouseButtonDown() bool          { return p.down }
func (p fakePointer) ScrollDelta() float32           { return p.scroll }

func TestOrbitKeepsDistance(t *testing.T) {
	cam := NewPerspective(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, 45)
	oc := NewOrbitController(&cam)

	oc.Update(fakePointer{dx: 100, dy: 40, down: true})

	if got := cam.Position.Len(); !mgl32.FloatEqualThreshold(got, 10, 1e-3) {
		t.Fatalf("expected orbit to keep distance 10; got %f", got)
	}
	if cam.Position.ApproxEqualThreshold(mgl32.Vec3{0, 0, 10}, 1e-3) {
		t.Fatal("expected camera to move")
	}
}

func TestOrbitIgnoresDragWithoutButton(t *testing.T) {
	cam := NewPerspective(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, 45)
	NewOrbitController(&cam).Update(fakePointer{dx: 100, dy: 40})

	if cam.Position != (mgl32.Vec3{0, 0, 10}) {
		t.Fatalf("expected camera to stay put; got %v", cam.Position)
	}
}

func TestOrbitZoomClamps(t *testing.T) {
	cam := NewPerspective(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, 45)
	oc := NewOrbitController(&cam)
	oc.MaxDistance = 12

	oc.Update(fakePointer{scroll: -100})
	if got := cam.Position.Len(); !mgl32.FloatEqualThreshold(got, 12, 1e-3) {
		t.Fatalf("expected zoom out to clamp at 12; got %f", got)
	}

	oc.Update(fakePointer{scroll: 1})
	if got := cam.Position.Len(); got >= 12 {
		t.Fatalf("expected zoom in to reduce distance; got %f", got)
	}
}
