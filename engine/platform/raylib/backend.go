// Package raylib implements core.Backend on raylib through raylib-go. Every
// call must happen on the thread that called Open.
package raylib

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/clayray/engine/colors"
	"github.com/hubastard/clayray/engine/core"
	"github.com/hubastard/clayray/engine/log"
)

var logger = log.New("raylib")

var (
	errNotOpen    = errors.New("platform/raylib: backend not open")
	errWindowInit = errors.New("platform/raylib: window initialization failed")
)

// Corner tessellation of rounded rectangles.
const roundedSegments = 8

type Backend struct {
	open bool
	onEv func(core.Event)
	prev snapshot
}

func New() *Backend { return &Backend{} }

func (b *Backend) Open(cfg core.WindowConfig) error {
	rl.SetTraceLogCallback(traceLog)
	rl.SetConfigFlags(uint32(cfg.Flags))
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Title)
	if !rl.IsWindowReady() {
		return errWindowInit
	}
	if cfg.TargetFPS > 0 {
		rl.SetTargetFPS(int32(cfg.TargetFPS))
	}
	b.open = true
	b.prev = readSnapshot()
	logger.Debugf("raylib window %dx%d flags=%s", cfg.Width, cfg.Height, cfg.Flags)
	return nil
}

func (b *Backend) Close() error {
	if !b.open {
		return errNotOpen
	}
	rl.CloseWindow()
	b.open = false
	return nil
}

func (b *Backend) ShouldClose() bool                    { return rl.WindowShouldClose() }
func (b *Backend) SetEventCallback(cb func(core.Event)) { b.onEv = cb }
func (b *Backend) ScreenSize() (int, int)               { return rl.GetScreenWidth(), rl.GetScreenHeight() }

// PollEvents turns the input state raylib collected during the last
// EndDrawing into core events.
func (b *Backend) PollEvents() {
	cur := readSnapshot()
	events := diffSnapshots(b.prev, cur)
	b.prev = cur
	if b.onEv == nil {
		return
	}
	for _, ev := range events {
		b.onEv(ev)
	}
}

func (b *Backend) BeginFrame(clear colors.Color) {
	rl.BeginDrawing()
	rl.ClearBackground(toColor(clear))
}

func (b *Backend) EndFrame() { rl.EndDrawing() }

func (b *Backend) DrawRectangle(r core.Rect, c colors.Color) {
	rl.DrawRectangleRec(toRect(r), toColor(c))
}

func (b *Backend) DrawRoundedRectangle(r core.Rect, radius float32, c colors.Color) {
	rl.DrawRectangleRounded(toRect(r), roundness(radius, r.W, r.H), roundedSegments, toColor(c))
}

func (b *Backend) DrawRing(center mgl32.Vec2, inner, outer, startDeg, endDeg float32, segments int, c colors.Color) {
	rl.DrawRing(toVector2(center), inner, outer, startDeg, endDeg, int32(segments), toColor(c))
}

func (b *Backend) DrawText(f core.Font, s string, pos mgl32.Vec2, size, spacing float32, c colors.Color) error {
	font, ok := f.(*Font)
	if !ok {
		return fmt.Errorf("%w: %T", core.ErrForeignFont, f)
	}
	if font.closed {
		return fmt.Errorf("platform/raylib: draw with closed font")
	}
	rl.DrawTextEx(font.font, s, toVector2(pos), size, spacing, toColor(c))
	return nil
}

func (b *Backend) DrawTexture(t core.Texture, pos mgl32.Vec2, rotation, scale float32, tint colors.Color) error {
	tex, ok := t.(*Texture)
	if !ok {
		return fmt.Errorf("%w: %T", core.ErrForeignTexture, t)
	}
	if tex.closed {
		return fmt.Errorf("platform/raylib: draw with closed texture")
	}
	rl.DrawTextureEx(tex.tex, toVector2(pos), rotation, scale, toColor(tint))
	return nil
}

func (b *Backend) BeginScissor(x, y, w, h int) {
	rl.BeginScissorMode(int32(x), int32(y), int32(w), int32(h))
}

func (b *Backend) EndScissor() { rl.EndScissorMode() }

func traceLog(level int, msg string) {
	switch rl.TraceLogLevel(level) {
	case rl.LogError, rl.LogFatal:
		logger.Error(msg)
	case rl.LogWarning:
		logger.Warning(msg)
	case rl.LogInfo:
		logger.Info(msg)
	default:
		logger.Debug(msg)
	}
}

var _ core.Backend = (*Backend)(nil)
