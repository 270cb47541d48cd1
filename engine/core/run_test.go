package core_test

import (
	"errors"
	"testing"

	"github.com/hubastard/clayray/engine/backendtest"
	"github.com/hubastard/clayray/engine/colors"
	"github.com/hubastard/clayray/engine/core"
)

type countingApp struct {
	startErr  error
	started   bool
	renders   int
	events    []core.Event
	shutdowns int
	layer     *countingLayer
	extra     []core.Layer
}

func (a *countingApp) OnStart(e *core.Engine) error {
	a.started = true
	if a.layer != nil {
		e.Layers.Push(a.layer)
	}
	for _, l := range a.extra {
		e.Layers.Push(l)
	}
	return a.startErr
}
func (a *countingApp) OnUpdate(e *core.Engine, dt float64)    {}
func (a *countingApp) OnRender(e *core.Engine, alpha float64) { a.renders++ }
func (a *countingApp) OnEvent(e *core.Engine, ev core.Event)  { a.events = append(a.events, ev) }
func (a *countingApp) OnShutdown(e *core.Engine)              { a.shutdowns++ }

type countingLayer struct {
	attached, detached bool
	renders            int
}

func (l *countingLayer) OnAttach(e *core.Engine) error          { l.attached = true; return nil }
func (l *countingLayer) OnDetach(e *core.Engine)                { l.detached = true }
func (l *countingLayer) OnUpdate(e *core.Engine, dt float64)    {}
func (l *countingLayer) OnRender(e *core.Engine, alpha float64) { l.renders++ }
func (l *countingLayer) OnEvent(e *core.Engine, ev core.Event) bool {
	return false
}

func TestRunDrivesFramesAndCloses(t *testing.T) {
	rec := backendtest.New()
	rec.FramesUntilClose = 3
	app := &countingApp{layer: &countingLayer{}}
	ctx := core.NewContext(rec)

	err := core.Run(app, ctx, core.Config{Title: "run", Width: 320, Height: 200, ClearColor: colors.Black})
	if err != nil {
		t.Fatal(err)
	}

	if !app.started || app.renders != 3 || app.shutdowns != 1 {
		t.Fatalf("unexpected app hooks: started=%t renders=%d shutdowns=%d", app.started, app.renders, app.shutdowns)
	}
	if !app.layer.attached || !app.layer.detached || app.layer.renders != 3 {
		t.Fatalf("unexpected layer hooks: %+v", app.layer)
	}
	if ctx.State() != core.StateClosed {
		t.Fatalf("expected context to be closed; got %s", ctx.State())
	}
	if leaks := rec.Leaks(); len(leaks) != 0 {
		t.Fatalf("expected no leaks; got %v", leaks)
	}

	ops := rec.Ops()
	if ops[0] != backendtest.OpOpen || ops[len(ops)-1] != backendtest.OpClose {
		t.Fatalf("expected open ... close; got %v", ops)
	}
}

func TestRunClosesOnStartFailure(t *testing.T) {
	rec := backendtest.New()
	app := &countingApp{startErr: errors.New("boom")}
	ctx := core.NewContext(rec)

	err := core.Run(app, ctx, core.Config{Width: 10, Height: 10})
	if !errors.Is(err, app.startErr) {
		t.Fatalf("expected start error; got %v", err)
	}
	if rec.IsOpen() || ctx.State() != core.StateClosed {
		t.Fatal("expected the window to be closed after a failed start")
	}
}

type failingLayer struct {
	countingLayer
	err error
}

func (l *failingLayer) OnAttach(e *core.Engine) error { return l.err }

func TestRunUnwindsOnAttachFailure(t *testing.T) {
	rec := backendtest.New()
	failing := &failingLayer{err: errors.New("boom")}
	app := &countingApp{layer: &countingLayer{}, extra: []core.Layer{failing}}
	ctx := core.NewContext(rec)

	err := core.Run(app, ctx, core.Config{Width: 10, Height: 10})
	if !errors.Is(err, failing.err) {
		t.Fatalf("expected the attach error; got %v", err)
	}
	if app.renders != 0 {
		t.Fatalf("expected no frames after a failed attach; got %d", app.renders)
	}
	if app.shutdowns != 1 {
		t.Fatalf("expected OnShutdown once after a failed attach; got %d", app.shutdowns)
	}
	if !app.layer.attached || !app.layer.detached {
		t.Fatalf("expected the attached layer to be detached; got %+v", app.layer)
	}
	if failing.detached {
		t.Fatal("expected the layer that failed to attach not to be detached")
	}
	if rec.IsOpen() || ctx.State() != core.StateClosed {
		t.Fatal("expected the window to be closed after a failed attach")
	}
	if leaks := rec.Leaks(); len(leaks) != 0 {
		t.Fatalf("expected no leaks; got %v", leaks)
	}
}

func TestRunStopsOnCloseRequest(t *testing.T) {
	rec := backendtest.New()
	rec.Emit(core.EventCloseRequested{})
	app := &countingApp{}

	if err := core.Run(app, core.NewContext(rec), core.Config{Width: 10, Height: 10}); err != nil {
		t.Fatal(err)
	}
	if app.renders != 1 {
		t.Fatalf("expected the loop to finish the current frame and stop; got %d renders", app.renders)
	}
	if len(app.events) != 1 {
		t.Fatalf("expected the app to see the close event; got %v", app.events)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	rec := backendtest.New()
	err := core.Run(&countingApp{}, core.NewContext(rec), core.Config{})
	if !errors.Is(err, core.ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize; got %v", err)
	}
	if len(rec.Calls) != 0 {
		t.Fatalf("expected no backend calls; got %v", rec.Ops())
	}
}
