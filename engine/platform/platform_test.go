package platform

import (
	"testing"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/clayray/engine/core"
)

func hintValue(hints []windowHint, h glfw.Hint) (int, bool) {
	for _, wh := range hints {
		if wh.hint == h {
			return wh.value, true
		}
	}
	return 0, false
}

func TestWindowHints(t *testing.T) {
	specs := []struct {
		flags core.WindowFlags
		hint  glfw.Hint
		exp   int
	}{
		{0, glfw.Resizable, glfw.False},
		{core.FlagWindowResizable, glfw.Resizable, glfw.True},
		{0, glfw.Decorated, glfw.True},
		{core.FlagWindowUndecorated, glfw.Decorated, glfw.False},
		{core.FlagWindowHidden, glfw.Visible, glfw.False},
		{core.FlagWindowTopmost, glfw.Floating, glfw.True},
		{core.FlagWindowTransparent, glfw.TransparentFramebuffer, glfw.True},
		{core.FlagWindowHighdpi, glfw.ScaleToMonitor, glfw.True},
		{0, glfw.Samples, 0},
		{core.FlagMsaa4xHint, glfw.Samples, 4},
		{core.FlagMsaa4xHint | core.FlagWindowResizable, glfw.ContextVersionMajor, 3},
		{0, glfw.OpenGLProfile, glfw.OpenGLCoreProfile},
	}
	for i, s := range specs {
		got, ok := hintValue(windowHints(s.flags), s.hint)
		if !ok {
			t.Fatalf("[spec %d] hint %v not set", i, s.hint)
		}
		if got != s.exp {
			t.Errorf("[spec %d] expected %d for flags %s; got %d", i, s.exp, s.flags, got)
		}
	}
}

func TestSwapInterval(t *testing.T) {
	if swapInterval(0) != 0 {
		t.Fatalf("expected no vsync by default")
	}
	if swapInterval(core.FlagVsyncHint|core.FlagWindowResizable) != 1 {
		t.Fatalf("expected vsync when requested")
	}
}

func TestTranslateInput(t *testing.T) {
	if translateKey(glfw.KeyF1) != core.KeyF1 || translateKey(glfw.KeyZ) != core.KeyUnknown {
		t.Fatalf("unexpected key translation")
	}
	if b, ok := translateButton(glfw.MouseButtonMiddle); !ok || b != core.MouseMiddle {
		t.Fatalf("expected middle button; got %v %v", b, ok)
	}
	if _, ok := translateButton(glfw.MouseButton4); ok {
		t.Fatalf("expected extra buttons to be ignored")
	}
	if m := translateMods(glfw.ModShift | glfw.ModAlt); m != core.ModShift|core.ModAlt {
		t.Fatalf("expected shift|alt; got %v", m)
	}
}

func TestRotatedCenter(t *testing.T) {
	c, rad := rotatedCenter(mgl32.Vec2{10, 10}, 4, 2, 0)
	if !c.ApproxEqual(mgl32.Vec2{12, 11}) || rad != 0 {
		t.Fatalf("expected (12,11); got %v", c)
	}
	// A quarter turn swings the box below-left of the pinned corner.
	c, _ = rotatedCenter(mgl32.Vec2{10, 10}, 4, 2, 90)
	if !c.ApproxEqualThreshold(mgl32.Vec2{9, 12}, 1e-4) {
		t.Fatalf("expected (9,12); got %v", c)
	}
}

func TestScalei(t *testing.T) {
	if scalei(10, 2) != 20 || scalei(3, 1.5) != 5 || scalei(7, 1) != 7 {
		t.Fatalf("unexpected scaling")
	}
}

func TestFrameLimiter(t *testing.T) {
	clock := time.Unix(0, 0)
	var slept []time.Duration
	l := newFrameLimiter(50)
	l.now = func() time.Time { return clock }
	l.sleep = func(d time.Duration) {
		slept = append(slept, d)
		clock = clock.Add(d)
	}

	l.wait() // first frame only records the time
	clock = clock.Add(5 * time.Millisecond)
	l.wait()
	clock = clock.Add(30 * time.Millisecond)
	l.wait()

	if len(slept) != 1 || slept[0] != 15*time.Millisecond {
		t.Fatalf("expected a single 15ms sleep; got %v", slept)
	}

	off := newFrameLimiter(0)
	off.sleep = func(time.Duration) { t.Fatalf("unexpected sleep without a target rate") }
	off.wait()
	off.wait()
}

func TestUndoStackRunsNewestFirst(t *testing.T) {
	var (
		undo undoStack
		got  []string
	)
	undo.push(func() { got = append(got, "window") })
	undo.push(func() { got = append(got, "device") })

	undo.run()
	if len(got) != 2 || got[0] != "device" || got[1] != "window" {
		t.Fatalf("expected [device window]; got %v", got)
	}

	undo.run()
	if len(got) != 2 {
		t.Fatalf("expected a second run to do nothing; got %v", got)
	}
}
