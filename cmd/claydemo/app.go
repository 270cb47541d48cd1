package main

import (
	"errors"
	"fmt"

	"github.com/hubastard/clayray/engine/clay"
	"github.com/hubastard/clayray/engine/core"
	"github.com/hubastard/clayray/engine/platform/raylib"
	"github.com/hubastard/clayray/engine/profiler"
	"github.com/hubastard/clayray/engine/render"
	"github.com/hubastard/clayray/engine/scene"
)

const numItems = 40

type App struct {
	opts options

	fonts *render.FontSet
	image core.Texture
	model *raylib.Model3D

	it    *render.Interpreter
	orbit *scene.OrbitController

	dash *layerDashboard
	hud  *layerDebug
}

func newApp(opts options) *App { return &App{opts: opts} }

func (a *App) OnStart(e *core.Engine) error {
	profiler.Init(1 << 10)

	var err error
	if a.fonts, err = render.LoadFonts(e.Backend, a.opts.FontSize, a.opts.Font); err != nil {
		return err
	}
	if a.opts.Image != "" {
		if a.image, err = e.Backend.LoadTexture(a.opts.Image); err != nil {
			a.release()
			return fmt.Errorf("claydemo: %w", err)
		}
	}
	if a.opts.Model != "" {
		if a.model, err = raylib.LoadModel(a.opts.Model); err != nil {
			a.release()
			return err
		}
	}

	a.it = render.New(e.Context, render.WithCamera(e.Camera))
	a.orbit = scene.NewOrbitController(e.Camera)

	a.dash = &layerDashboard{app: a, items: demoItems(numItems)}
	e.Layers.Push(a.dash)
	a.hud = &layerDebug{app: a, visible: true}
	e.Layers.Push(a.hud)
	return nil
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {
	if e.Input.IsKeyDown(core.KeyEscape) {
		e.RequestClose()
	}
	a.orbit.Update(pointer{Input: e.Input, overList: a.dash.hovered(e)})
}

func (a *App) OnRender(e *core.Engine, alpha float64) {}
func (a *App) OnEvent(e *core.Engine, ev core.Event)  {}

func (a *App) OnShutdown(e *core.Engine) {
	a.release()
}

// release frees everything OnStart loaded. Safe to call twice.
func (a *App) release() {
	var errs []error
	if a.fonts != nil {
		errs = append(errs, a.fonts.Close())
		a.fonts = nil
	}
	if a.image != nil {
		errs = append(errs, a.image.Close())
		a.image = nil
	}
	if a.model != nil {
		a.model.Close()
		a.model = nil
	}
	if err := errors.Join(errs...); err != nil {
		logger.Warningf("release resources: %v", err)
	}
}

// measure adapts the interpreter's cached measurement to the layout code.
// Unknown fonts measure as zero; the render pass reports them.
func (a *App) measure(text string, cfg clay.TextConfig) clay.Dimensions {
	dim, err := a.it.MeasureText(text, cfg, a.fonts)
	if err != nil {
		logger.Debugf("measure %q: %v", text, err)
	}
	return dim
}

// customModel returns the custom payload for the model card, if any.
func (a *App) customModel() any {
	if a.model == nil {
		return nil
	}
	return a.model
}

// pointer hides scroll input from the orbit controller while the mouse is
// over the list, which consumes it instead.
type pointer struct {
	*core.Input
	overList bool
}

func (p pointer) ScrollDelta() float32 {
	if p.overList {
		return 0
	}
	return p.Input.ScrollDelta()
}

func demoItems(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("Item %02d", i+1)
	}
	return items
}

// ------- Dashboard layer -------
type layerDashboard struct {
	app    *App
	items  []string
	scroll float32
	last   dashboard

	stats   render.Stats
	lastErr string
}

func (l *layerDashboard) OnAttach(e *core.Engine) error       { return nil }
func (l *layerDashboard) OnDetach(e *core.Engine)             {}
func (l *layerDashboard) OnUpdate(e *core.Engine, dt float64) {}

func (l *layerDashboard) layout(e *core.Engine) dashboard {
	w, h := e.Backend.ScreenSize()
	return dashboard{
		Width:    float32(w),
		Height:   float32(h),
		Title:    l.app.opts.Title,
		Items:    l.items,
		Scroll:   l.scroll,
		FontSize: uint16(l.app.opts.FontSize),
		Image:    l.app.image,
		Model:    l.app.customModel(),
		Measure:  l.app.measure,
	}
}

func (l *layerDashboard) OnRender(e *core.Engine, alpha float64) {
	defer profiler.Start("layerDashboard.OnRender")()

	l.last = l.layout(e)
	err := l.app.it.Render(l.last.build(), l.app.fonts)
	l.stats = l.app.it.Stats()

	// Same failure every frame; log it once.
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if msg != l.lastErr && err != nil {
		logger.Warningf("render dashboard: %v", err)
	}
	l.lastErr = msg
}

func (l *layerDashboard) hovered(e *core.Engine) bool {
	x, y := e.Input.Mouse()
	v := l.last.listView()
	return float32(x) >= v.X && float32(x) < v.X+v.Width && float32(y) >= v.Y && float32(y) < v.Y+v.Height
}

func (l *layerDashboard) OnEvent(e *core.Engine, ev core.Event) bool {
	if s, ok := ev.(core.EventScroll); ok && l.hovered(e) {
		l.scroll = l.last.clampScroll(l.scroll - float32(s.Yoff)*l.last.rowHeight())
		return true
	}
	return false
}
