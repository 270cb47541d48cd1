package core

import (
	"time"

	"github.com/hubastard/clayray/engine/colors"
	"github.com/hubastard/clayray/engine/scene"
)

// App defines the application hooks.
type App interface {
	OnStart(e *Engine) error           // called once after the window is up
	OnUpdate(e *Engine, dt float64)    // called at a fixed tick (60Hz)
	OnRender(e *Engine, alpha float64) // between BeginFrame and EndFrame
	OnEvent(e *Engine, ev Event)       // input/window events
	OnShutdown(e *Engine)              // before the window closes
}

// Engine exposes core services to the App and its layers.
type Engine struct {
	Context *Context
	Backend Backend
	Input   *Input
	Layers  LayerStack

	// Camera is the 3D viewpoint shared by the projector and custom
	// elements. Owned by the loop; mutate it between frames only.
	Camera *scene.Camera

	start time.Time
	quit  bool
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// RequestClose ends the loop after the current frame.
func (e *Engine) RequestClose() { e.quit = true }

// Config for the engine run.
type Config struct {
	Title      string
	Width      int
	Height     int
	Flags      WindowFlags
	TargetFPS  int
	ClearColor colors.Color
	Camera     scene.Camera
}

func (c Config) window() WindowConfig {
	return WindowConfig{
		Width:     c.Width,
		Height:    c.Height,
		Title:     c.Title,
		Flags:     c.Flags,
		TargetFPS: c.TargetFPS,
	}
}

// Event model.
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

type EventResize struct{ W, H int }

func (EventResize) isEvent() {}

type EventKey struct {
	Key  Key
	Down bool
	Mods Mod
}

func (EventKey) isEvent() {}

type EventMouseMove struct{ X, Y float64 }

func (EventMouseMove) isEvent() {}

type EventMouseButton struct {
	Button MouseButton
	Down   bool
}

func (EventMouseButton) isEvent() {}

type EventScroll struct{ Xoff, Yoff float64 }

func (EventScroll) isEvent() {}

// Key/mod enums (subset; add as needed).
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyW
	KeyA
	KeyS
	KeyD
	KeyP
	KeyF1
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)

type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)
