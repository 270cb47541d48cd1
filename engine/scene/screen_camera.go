package scene

import "github.com/go-gl/mathgl/mgl32"

// ScreenCamera is an orthographic camera mapping pixel coordinates
// (origin top-left, Y down) to clip space. Used for 2D UI passes.
type ScreenCamera struct {
	width, height float32
	vp            mgl32.Mat4
	dirty         bool
}

func NewScreenCamera(width, height int) *ScreenCamera {
	c := &ScreenCamera{}
	c.SetViewportPixels(width, height)
	return c
}

func (c *ScreenCamera) SetViewportPixels(w, h int) {
	c.width, c.height = float32(w), float32(h)
	c.dirty = true
}

func (c *ScreenCamera) Width() float32  { return c.width }
func (c *ScreenCamera) Height() float32 { return c.height }

// VP returns the column-major view-projection matrix.
func (c *ScreenCamera) VP() [16]float32 {
	if c.dirty {
		c.vp = mgl32.Ortho(0, c.width, c.height, 0, -1, 1)
		c.dirty = false
	}
	return c.vp
}
