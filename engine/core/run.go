package core

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/hubastard/clayray/engine/profiler"
)

// Run initializes ctx, executes the main loop until the window or the app asks
// to close, and closes ctx on every exit path.
func Run(app App, ctx *Context, cfg Config) (err error) {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ctx.InitializeConfig(cfg.window()); err != nil {
		return err
	}
	defer func() {
		if cerr := ctx.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	cam := cfg.Camera
	eng := &Engine{
		Context: ctx,
		Backend: ctx.Backend(),
		Input:   NewInput(),
		Camera:  &cam,
		start:   time.Now(),
	}
	eng.Backend.SetEventCallback(func(ev Event) { dispatch(app, eng, ev) })

	if err := app.OnStart(eng); err != nil {
		return fmt.Errorf("core: app start: %w", err)
	}
	defer app.OnShutdown(eng)

	attached, err := attachLayers(eng)
	defer func() {
		for i := len(attached) - 1; i >= 0; i-- {
			attached[i].OnDetach(eng)
		}
	}()
	if err != nil {
		return err
	}

	runLoop(app, eng, cfg)
	logger.Info("engine exit")
	return nil
}

// attachLayers attaches the stack bottom to top and stops at the first
// failure. It returns the layers that attached, which are the only ones to
// detach.
func attachLayers(eng *Engine) ([]Layer, error) {
	var (
		attached []Layer
		err      error
	)
	eng.Layers.ForEach(func(l Layer) {
		if err != nil {
			return
		}
		if aerr := l.OnAttach(eng); aerr != nil {
			err = fmt.Errorf("core: attach layer %T: %w", l, aerr)
			return
		}
		attached = append(attached, l)
	})
	return attached, err
}

func dispatch(app App, eng *Engine, ev Event) {
	eng.Input.Handle(ev)
	if _, ok := ev.(EventCloseRequested); ok {
		eng.RequestClose()
	}
	app.OnEvent(eng, ev)
	eng.Layers.ForEachReverse(func(l Layer) bool { return l.OnEvent(eng, ev) })
}

func runLoop(app App, eng *Engine, cfg Config) {
	b := eng.Backend

	// Fixed-timestep (60 Hz) with interpolation
	const tick = time.Second / 60
	var (
		accum   time.Duration
		prev    = time.Now()
		maxStep = 10 // prevent spiral of death
	)

	for !eng.quit && !b.ShouldClose() {
		endFrame := profiler.Start("core.Frame")

		now := time.Now()
		accum += now.Sub(prev)
		prev = now

		// Poll OS events (backend emits via callback)
		b.PollEvents()

		steps := 0
		for accum >= tick && steps < maxStep {
			dt := float64(tick) / float64(time.Second)
			app.OnUpdate(eng, dt)
			eng.Layers.ForEach(func(l Layer) { l.OnUpdate(eng, dt) })
			accum -= tick
			steps++
		}
		if steps == maxStep {
			accum = 0
		}
		alpha := float64(accum) / float64(tick)

		b.BeginFrame(cfg.ClearColor)
		app.OnRender(eng, alpha)
		eng.Layers.ForEach(func(l Layer) { l.OnRender(eng, alpha) })
		b.EndFrame()

		eng.Input.EndFrame()
		endFrame()
	}
}
