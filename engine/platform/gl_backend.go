package platform

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/clayray/engine/assets"
	"github.com/hubastard/clayray/engine/colors"
	"github.com/hubastard/clayray/engine/core"
	"github.com/hubastard/clayray/engine/gfx"
	glbackend "github.com/hubastard/clayray/engine/gfx/gl"
	"github.com/hubastard/clayray/engine/gfx/renderer2d"
	"github.com/hubastard/clayray/engine/log"
	"github.com/hubastard/clayray/engine/scene"
	"github.com/hubastard/clayray/engine/text"
)

var logger = log.New("platform")

var errNotOpen = errors.New("platform: backend not open")

// Corner tessellation of rounded rectangles.
const roundedSegments = 8

// GLBackend implements core.Backend with GLFW for the window and an OpenGL
// 3.3 device for drawing.
type GLBackend struct {
	win *GLFWWindow
	dev *glbackend.Device
	r2d *renderer2d.Renderer2D
	cam *scene.ScreenCamera

	onEv    func(core.Event)
	limiter frameLimiter
	last    renderer2d.Statistics
}

func NewGL() *GLBackend { return &GLBackend{} }

func (b *GLBackend) Open(cfg core.WindowConfig) error {
	var undo undoStack
	win, err := NewGLFWWindow(cfg, b.handle)
	if err != nil {
		return err
	}
	undo.push(win.Destroy)

	fbW, fbH := win.FramebufferSize()
	dev, err := glbackend.NewDevice(fbW, fbH)
	if err != nil {
		undo.run()
		return err
	}
	undo.push(func() {
		if cerr := dev.Close(); cerr != nil {
			logger.Warningf("close device after failed open: %v", cerr)
		}
	})

	r2d, err := newQuadRenderer(dev)
	if err != nil {
		undo.run()
		return err
	}

	w, h := win.Size()
	b.win, b.dev, b.r2d = win, dev, r2d
	b.cam = scene.NewScreenCamera(w, h)
	b.limiter = newFrameLimiter(cfg.TargetFPS)
	win.onFramebuffer = dev.Resize

	logger.Debugf("glfw window %dx%d (framebuffer %dx%d)", w, h, fbW, fbH)
	return nil
}

// undoStack releases what a partially completed Open acquired, newest first.
type undoStack []func()

func (u *undoStack) push(f func()) { *u = append(*u, f) }

func (u *undoStack) run() {
	for i := len(*u) - 1; i >= 0; i-- {
		(*u)[i]()
	}
	*u = nil
}

func newQuadRenderer(dev gfx.Device) (*renderer2d.Renderer2D, error) {
	vs, err := assets.LoadShader("quad.vert.glsl")
	if err != nil {
		return nil, err
	}
	fs, err := assets.LoadShader("quad.frag.glsl")
	if err != nil {
		return nil, err
	}
	return renderer2d.New(dev, vs, fs, 0)
}

func (b *GLBackend) Close() error {
	if b.win == nil {
		return errNotOpen
	}
	b.r2d.Release()
	err := b.dev.Close()
	b.win.Destroy()
	b.win, b.dev, b.r2d, b.cam = nil, nil, nil, nil
	return err
}

// FrameStats reports the batches submitted by the last completed frame.
func (b *GLBackend) FrameStats() renderer2d.Statistics { return b.last }

// GPUInfo returns the GL vendor, renderer and version strings.
func (b *GLBackend) GPUInfo() (vendor, renderer, version string) {
	if b.dev == nil {
		return "", "", ""
	}
	return b.dev.Vendor, b.dev.Renderer, b.dev.Version
}

func (b *GLBackend) handle(ev core.Event) {
	if r, ok := ev.(core.EventResize); ok && b.cam != nil {
		b.cam.SetViewportPixels(r.W, r.H)
	}
	if b.onEv != nil {
		b.onEv(ev)
	}
}

func (b *GLBackend) ShouldClose() bool                    { return b.win.ShouldClose() }
func (b *GLBackend) PollEvents()                          { b.win.PollEvents() }
func (b *GLBackend) SetEventCallback(cb func(core.Event)) { b.onEv = cb }
func (b *GLBackend) ScreenSize() (int, int)               { return b.win.Size() }

func (b *GLBackend) BeginFrame(clear colors.Color) {
	b.dev.Scissor(false, 0, 0, 0, 0)
	b.dev.Clear(clear)
	b.r2d.BeginScene(b.cam.VP())
}

func (b *GLBackend) EndFrame() {
	b.r2d.EndScene()
	b.last = b.r2d.Stats()
	b.dev.Scissor(false, 0, 0, 0, 0)
	b.win.SwapBuffers()
	b.limiter.wait()
}

func (b *GLBackend) DrawRectangle(r core.Rect, c colors.Color) {
	b.r2d.DrawRect(r.X, r.Y, r.W, r.H, c)
}

func (b *GLBackend) DrawRoundedRectangle(r core.Rect, radius float32, c colors.Color) {
	b.r2d.DrawRoundedRect(r.X, r.Y, r.W, r.H, radius, roundedSegments, c)
}

func (b *GLBackend) DrawRing(center mgl32.Vec2, inner, outer, startDeg, endDeg float32, segments int, c colors.Color) {
	b.r2d.DrawRing(center, inner, outer, startDeg, endDeg, segments, c)
}

func (b *GLBackend) DrawText(f core.Font, s string, pos mgl32.Vec2, size, spacing float32, c colors.Color) error {
	fa, ok := f.(*text.FontAtlas)
	if !ok {
		return fmt.Errorf("%w: %T", core.ErrForeignFont, f)
	}
	text.DrawText(b.r2d, fa, pos[0], pos[1], s, size, spacing, c)
	return nil
}

// DrawTexture draws t with its top-left corner at pos, rotated by rotation
// degrees around that corner.
func (b *GLBackend) DrawTexture(t core.Texture, pos mgl32.Vec2, rotation, scale float32, tint colors.Color) error {
	tex, ok := t.(*glbackend.Texture)
	if !ok {
		return fmt.Errorf("%w: %T", core.ErrForeignTexture, t)
	}
	tw, th := tex.Size()
	w, h := float32(tw)*scale, float32(th)*scale
	center, rad := rotatedCenter(pos, w, h, rotation)
	b.r2d.DrawTexturedQuad(center[0], center[1], w, h, tex, tint, rad)
	return nil
}

// rotatedCenter returns the centre of a w*h box whose top-left corner is
// pinned at pos while the box turns by deg degrees.
func rotatedCenter(pos mgl32.Vec2, w, h, deg float32) (mgl32.Vec2, float32) {
	rad := mgl32.DegToRad(deg)
	half := mgl32.Rotate2D(rad).Mul2x1(mgl32.Vec2{w * 0.5, h * 0.5})
	return pos.Add(half), rad
}

func (b *GLBackend) BeginScissor(x, y, w, h int) {
	b.r2d.Flush()
	sx, sy := b.pixelScale()
	b.dev.Scissor(true, scalei(x, sx), scalei(y, sy), scalei(w, sx), scalei(h, sy))
}

func (b *GLBackend) EndScissor() {
	b.r2d.Flush()
	b.dev.Scissor(false, 0, 0, 0, 0)
}

// pixelScale is the framebuffer to window size ratio.
func (b *GLBackend) pixelScale() (float32, float32) {
	w, h := b.win.Size()
	fw, fh := b.win.FramebufferSize()
	if w == 0 || h == 0 {
		return 1, 1
	}
	return float32(fw) / float32(w), float32(fh) / float32(h)
}

func scalei(v int, s float32) int { return int(math.Round(float64(float32(v) * s))) }

// LoadFont rasterises the TrueType font at path; an empty path loads the
// bundled Go Regular face.
func (b *GLBackend) LoadFont(path string, size int) (core.Font, error) {
	if b.dev == nil {
		return nil, errNotOpen
	}
	fa, err := text.LoadTTF(b.dev, path, float32(size))
	if err != nil {
		return nil, err
	}
	return fa, nil
}

// LoadTexture uploads an image file in any format assets.LoadImage reads.
func (b *GLBackend) LoadTexture(path string) (core.Texture, error) {
	if b.dev == nil {
		return nil, errNotOpen
	}
	img, err := assets.LoadImage(path)
	if err != nil {
		return nil, err
	}
	logger.Debugf("texture %q: %dx%d %s", path, img.Width, img.Height, img.Format)
	return b.dev.CreateTexture(gfx.TextureDesc{
		Width: img.Width, Height: img.Height,
		Format:    gfx.TextureRGBA8,
		Pixels:    img.Pix,
		MinFilter: gfx.FilterLinear,
		MagFilter: gfx.FilterLinear,
		WrapU:     gfx.WrapClamp,
		WrapV:     gfx.WrapClamp,
	})
}

// frameLimiter sleeps out the rest of a frame when a target rate is set.
type frameLimiter struct {
	frame time.Duration
	last  time.Time
	now   func() time.Time
	sleep func(time.Duration)
}

func newFrameLimiter(fps int) frameLimiter {
	l := frameLimiter{now: time.Now, sleep: time.Sleep}
	if fps > 0 {
		l.frame = time.Second / time.Duration(fps)
	}
	return l
}

func (l *frameLimiter) wait() {
	if l.frame == 0 {
		return
	}
	now := l.now()
	if !l.last.IsZero() {
		if d := l.frame - now.Sub(l.last); d > 0 {
			l.sleep(d)
			now = now.Add(d)
		}
	}
	l.last = now
}

var _ core.Backend = (*GLBackend)(nil)
