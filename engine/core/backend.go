package core

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/clayray/engine/colors"
)

// Rect is a screen-space rectangle in pixels, origin top-left.
type Rect struct {
	X, Y, W, H float32
}

// WindowConfig is what a backend needs to bring up its window.
type WindowConfig struct {
	Width     int
	Height    int
	Title     string
	Flags     WindowFlags
	TargetFPS int
}

// Font is a backend font resource. Advance is expressed at BaseSize pixels.
type Font interface {
	BaseSize() float32
	Advance(r rune) float32
	Close() error
}

// Texture is a backend image resource.
type Texture interface {
	Size() (w, h int)
	Close() error
}

// Backend is the window + primitive drawing surface the engine renders through.
// Every method must be called from the thread that called Open.
type Backend interface {
	Open(cfg WindowConfig) error
	Close() error
	ShouldClose() bool
	PollEvents()
	SetEventCallback(cb func(Event))
	ScreenSize() (w, h int)

	BeginFrame(clear colors.Color)
	EndFrame()

	DrawRectangle(r Rect, c colors.Color)
	// DrawRoundedRectangle fills r with all four corners rounded by radius pixels.
	DrawRoundedRectangle(r Rect, radius float32, c colors.Color)
	// DrawRing fills the annulus sector between startDeg and endDeg.
	// Angles grow clockwise on screen starting at +X.
	DrawRing(center mgl32.Vec2, inner, outer, startDeg, endDeg float32, segments int, c colors.Color)
	// DrawText draws s with its top-left corner at pos. size is the pixel height of a line.
	DrawText(f Font, s string, pos mgl32.Vec2, size, spacing float32, c colors.Color) error
	DrawTexture(t Texture, pos mgl32.Vec2, rotation, scale float32, tint colors.Color) error
	BeginScissor(x, y, w, h int)
	EndScissor()

	LoadFont(path string, size int) (Font, error)
	LoadTexture(path string) (Texture, error)
}
