package platform

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/hubastard/clayray/engine/core"
)

// GLFWWindow owns a GLFW window with a current GL 3.3 core context and
// translates its callbacks into core events.
type GLFWWindow struct {
	w    *glfw.Window
	onEv func(core.Event)
	// onFramebuffer sees framebuffer resizes, which differ from window
	// resizes on high-DPI displays.
	onFramebuffer func(w, h int)
}

type windowHint struct {
	hint  glfw.Hint
	value int
}

// windowHints maps window flags onto GLFW creation hints, after the hints
// that request the GL 3.3 core context.
func windowHints(flags core.WindowFlags) []windowHint {
	hints := []windowHint{
		{glfw.ContextVersionMajor, 3},
		{glfw.ContextVersionMinor, 3},
		{glfw.OpenGLProfile, glfw.OpenGLCoreProfile},
		{glfw.OpenGLForwardCompatible, glfw.True},
		{glfw.Resizable, boolHint(flags.Has(core.FlagWindowResizable))},
		{glfw.Decorated, boolHint(!flags.Has(core.FlagWindowUndecorated))},
		{glfw.Visible, boolHint(!flags.Has(core.FlagWindowHidden))},
		{glfw.Floating, boolHint(flags.Has(core.FlagWindowTopmost))},
		{glfw.TransparentFramebuffer, boolHint(flags.Has(core.FlagWindowTransparent))},
		{glfw.ScaleToMonitor, boolHint(flags.Has(core.FlagWindowHighdpi))},
	}
	samples := 0
	if flags.Has(core.FlagMsaa4xHint) {
		samples = 4
	}
	return append(hints, windowHint{glfw.Samples, samples})
}

func boolHint(v bool) int {
	if v {
		return glfw.True
	}
	return glfw.False
}

func swapInterval(flags core.WindowFlags) int {
	if flags.Has(core.FlagVsyncHint) {
		return 1
	}
	return 0
}

// NewGLFWWindow initializes GLFW and opens the window. Must be called on the
// main thread before any GL calls.
func NewGLFWWindow(cfg core.WindowConfig, onEvent func(core.Event)) (*GLFWWindow, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("platform: glfw init: %w", err)
	}

	glfw.DefaultWindowHints()
	for _, h := range windowHints(cfg.Flags) {
		glfw.WindowHint(h.hint, h.value)
	}

	width, height := cfg.Width, cfg.Height
	var monitor *glfw.Monitor
	if cfg.Flags.Has(core.FlagFullscreenMode) {
		monitor = glfw.GetPrimaryMonitor()
		if mode := monitor.GetVideoMode(); mode != nil {
			glfw.WindowHint(glfw.RefreshRate, mode.RefreshRate)
		}
	}

	win, err := glfw.CreateWindow(width, height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("platform: create window: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(swapInterval(cfg.Flags))

	gw := &GLFWWindow{w: win, onEv: onEvent}

	// Callbacks -> translate to core.Event
	win.SetCloseCallback(func(*glfw.Window) { gw.emit(core.EventCloseRequested{}) })
	win.SetSizeCallback(func(_ *glfw.Window, w, h int) {
		gw.emit(core.EventResize{W: w, H: h})
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		if gw.onFramebuffer != nil {
			gw.onFramebuffer(w, h)
		}
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		gw.emit(core.EventMouseMove{X: x, Y: y})
	})
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		b, ok := translateButton(button)
		if !ok {
			return
		}
		gw.emit(core.EventMouseButton{Button: b, Down: action != glfw.Release})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		k := translateKey(key)
		if k == core.KeyUnknown {
			return
		}
		gw.emit(core.EventKey{Key: k, Down: action != glfw.Release, Mods: translateMods(mods)})
	})
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		gw.emit(core.EventScroll{Xoff: xoff, Yoff: yoff})
	})

	return gw, nil
}

func (g *GLFWWindow) emit(ev core.Event) {
	if g.onEv != nil {
		g.onEv(ev)
	}
}

func (g *GLFWWindow) PollEvents()                          { glfw.PollEvents() }
func (g *GLFWWindow) SwapBuffers()                         { g.w.SwapBuffers() }
func (g *GLFWWindow) ShouldClose() bool                    { return g.w.ShouldClose() }
func (g *GLFWWindow) Size() (int, int)                     { return g.w.GetSize() }
func (g *GLFWWindow) FramebufferSize() (int, int)          { return g.w.GetFramebufferSize() }
func (g *GLFWWindow) SetTitle(t string)                    { g.w.SetTitle(t) }
func (g *GLFWWindow) SetEventCallback(cb func(core.Event)) { g.onEv = cb }

// Destroy closes the window and terminates GLFW.
func (g *GLFWWindow) Destroy() {
	g.w.Destroy()
	glfw.Terminate()
}

func translateKey(k glfw.Key) core.Key {
	switch k {
	case glfw.KeyEscape:
		return core.KeyEscape
	case glfw.KeySpace:
		return core.KeySpace
	case glfw.KeyW:
		return core.KeyW
	case glfw.KeyA:
		return core.KeyA
	case glfw.KeyS:
		return core.KeyS
	case glfw.KeyD:
		return core.KeyD
	case glfw.KeyP:
		return core.KeyP
	case glfw.KeyF1:
		return core.KeyF1
	default:
		return core.KeyUnknown
	}
}

func translateButton(b glfw.MouseButton) (core.MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return core.MouseLeft, true
	case glfw.MouseButtonRight:
		return core.MouseRight, true
	case glfw.MouseButtonMiddle:
		return core.MouseMiddle, true
	default:
		return 0, false
	}
}

func translateMods(m glfw.ModifierKey) core.Mod {
	var out core.Mod
	if m&glfw.ModShift != 0 {
		out |= core.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= core.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		out |= core.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= core.ModSuper
	}
	return out
}
