package main

import (
	"fmt"
	"time"

	"github.com/hubastard/clayray/engine/clay"
	"github.com/hubastard/clayray/engine/core"
	"github.com/hubastard/clayray/engine/gfx/renderer2d"
	"github.com/hubastard/clayray/engine/platform"
	"github.com/hubastard/clayray/engine/profiler"
	"github.com/hubastard/clayray/engine/render"
)

// ------- Stats overlay -------
type layerDebug struct {
	app     *App
	visible bool

	lastFrame     time.Time
	frameDuration float32 // ms
	frame         int
}

func (l *layerDebug) OnAttach(e *core.Engine) error       { return nil }
func (l *layerDebug) OnDetach(e *core.Engine)             {}
func (l *layerDebug) OnUpdate(e *core.Engine, dt float64) {}

func (l *layerDebug) OnRender(e *core.Engine, alpha float64) {
	defer profiler.Start("layerDebug.OnRender")()

	now := time.Now()
	if !l.lastFrame.IsZero() {
		l.frameDuration = float32(now.Sub(l.lastFrame).Seconds() * 1000.0)
	}
	l.lastFrame = now
	l.frame++

	if !l.visible {
		return
	}
	w, _ := e.Backend.ScreenSize()
	lines := debugLines(l.frame, l.frameDuration, l.app.dash.stats, profiler.ReadRuntimeStats(), e.Uptime())
	if gb, ok := e.Backend.(glStats); ok {
		lines = append(lines, gpuLines(gb)...)
	}
	size := uint16(max(l.app.opts.FontSize/2, 10))
	if err := l.app.it.Render(hudCommands(lines, float32(w), size, l.app.measure), l.app.fonts); err != nil {
		logger.Debugf("render overlay: %v", err)
	}
}

func (l *layerDebug) OnEvent(e *core.Engine, ev core.Event) bool {
	k, ok := ev.(core.EventKey)
	if !ok || !k.Down {
		return false
	}
	switch {
	case k.Key == core.KeyF1:
		l.visible = !l.visible
		return true
	case k.Key == core.KeyP && k.Mods&core.ModCtrl != 0:
		if path, err := profiler.OpenProfilerGraph(); err == nil {
			logger.Noticef("speedscope dump: %s", path)
		} else {
			logger.Errorf("profiler dump: %v", err)
		}
		return true
	}
	return false
}

// glStats is implemented by the GL backend.
type glStats interface {
	FrameStats() renderer2d.Statistics
	GPUInfo() (vendor, renderer, version string)
}

var _ glStats = (*platform.GLBackend)(nil)

func gpuLines(g glStats) []string {
	st := g.FrameStats()
	vendor, renderer, version := g.GPUInfo()
	return []string{
		fmt.Sprintf("Batches: %d  Quads: %d  Textures: %d", st.DrawCalls, st.QuadCount, st.TextureCount),
		fmt.Sprintf("GPU: %s (%s)", renderer, vendor),
		fmt.Sprintf("GL: %s", version),
	}
}

// debugLines formats the overlay text.
func debugLines(frame int, ms float32, rs render.Stats, mem profiler.RuntimeStats, uptime time.Duration) []string {
	fps := float32(0)
	if ms > 0 {
		fps = 1000 / ms
	}
	return []string{
		fmt.Sprintf("Frame: %d (%.2f ms, %.0f FPS)", frame, ms, fps),
		fmt.Sprintf("Uptime: %s", uptime.Truncate(time.Second)),
		fmt.Sprintf("Commands: %d (skipped %d)", rs.Total(), rs.Skipped),
		fmt.Sprintf("  rect %d  border %d  text %d",
			rs.Commands[clay.CommandRectangle], rs.Commands[clay.CommandBorder], rs.Commands[clay.CommandText]),
		fmt.Sprintf("  image %d  custom %d  clip depth %d",
			rs.Commands[clay.CommandImage], rs.Commands[clay.CommandCustom], rs.MaxScissorDepth),
		fmt.Sprintf("Heap: %.3f MB (%d allocs)", float32(mem.HeapAlloc)/(1<<20), mem.Mallocs),
		fmt.Sprintf("Goroutines: %d  CPUs: %d", mem.Goroutines, mem.CPUs),
	}
}
