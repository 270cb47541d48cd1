package raylib

import (
	"errors"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/clayray/engine/clay"
	"github.com/hubastard/clayray/engine/colors"
	"github.com/hubastard/clayray/engine/render"
	"github.com/hubastard/clayray/engine/scene"
)

const (
	// The model hangs slightly below the centre of its box, 140 units into the scene.
	modelYOffset = 20
	modelDepth   = 140

	// Layout size the model scale is tuned for.
	refWidth  = 1024
	refHeight = 768
	maxScale  = 1.5
)

var errNoCamera = errors.New("platform/raylib: 3D model needs a camera")

// Model3D is a custom element payload that draws a 3D model under its box.
type Model3D struct {
	Model rl.Model
	// Scale multiplies the layout-derived scale; zero means 1.
	Scale float32
	// Tint defaults to white.
	Tint colors.Color
}

// LoadModel loads a model file (OBJ, glTF, ...) for use as a custom element.
func LoadModel(path string) (*Model3D, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("platform/raylib: load model: %w", err)
	}
	m := rl.LoadModel(path)
	if m.MeshCount == 0 {
		return nil, fmt.Errorf("platform/raylib: load model %q: no meshes", path)
	}
	return &Model3D{Model: m}, nil
}

func (m *Model3D) Close() { rl.UnloadModel(m.Model) }

func (m *Model3D) DrawCustom(cc *render.CustomContext) error {
	if cc.Camera == nil {
		return errNoCamera
	}
	if _, ok := cc.Backend.(*Backend); !ok {
		return fmt.Errorf("platform/raylib: 3D model drawn through %T", cc.Backend)
	}

	w, h := cc.Backend.ScreenSize()
	pos, scale := modelPlacement(cc.Command.BoundingBox, cc.Root, *cc.Camera, w, h)
	if m.Scale != 0 {
		scale *= m.Scale
	}
	tint := colors.White
	if m.Tint != (colors.Color{}) {
		tint = m.Tint
	}

	rl.BeginMode3D(toCamera3D(*cc.Camera))
	rl.DrawModel(m.Model, toVector3(pos), scale, toColor(tint))
	rl.EndMode3D()
	return nil
}

// modelPlacement returns where a model laid out in box sits in the world and
// how much to scale it for the current root layout size.
func modelPlacement(box, root clay.BoundingBox, cam scene.Camera, screenW, screenH int) (mgl32.Vec3, float32) {
	cx, cy := box.Center()
	ray := scene.ScreenToWorldRay(mgl32.Vec2{cx, cy + modelYOffset}, cam, screenW, screenH, modelDepth)
	return ray.Position, layoutScale(root)
}

// layoutScale shrinks models on short layouts and grows them on wide ones.
func layoutScale(root clay.BoundingBox) float32 {
	if root.Width <= 0 || root.Height <= 0 {
		return 1
	}
	s := min(1, refHeight/root.Height) * max(1, root.Width/refWidth)
	return min(s, maxScale)
}

var _ render.CustomElement = (*Model3D)(nil)
