package main

import (
	"errors"
	"flag"
	"strings"
	"testing"
	"time"

	"github.com/hubastard/clayray/engine/clay"
	"github.com/hubastard/clayray/engine/core"
	"github.com/hubastard/clayray/engine/gfx/renderer2d"
	"github.com/hubastard/clayray/engine/profiler"
	"github.com/hubastard/clayray/engine/render"
	"github.com/urfave/cli"
)

func parseRunFlags(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("run", flag.ContinueOnError)
	for _, f := range runFlags {
		f.Apply(set)
	}
	if err := set.Parse(args); err != nil {
		t.Fatal(err)
	}
	return cli.NewContext(nil, set, nil)
}

func TestOptionsDefaults(t *testing.T) {
	opts := optionsFromContext(parseRunFlags(t))
	cfg, err := opts.config()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Backend != "raylib" {
		t.Fatalf("expected raylib backend by default; got %q", opts.Backend)
	}
	if cfg.Width != 1024 || cfg.Height != 768 {
		t.Fatalf("expected a 1024x768 window; got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Flags != 0 {
		t.Fatalf("expected no window flags; got %s", cfg.Flags)
	}
	if cfg.TargetFPS != 60 {
		t.Fatalf("expected 60 FPS; got %d", cfg.TargetFPS)
	}
}

func TestOptionsFromFlags(t *testing.T) {
	ctx := parseRunFlags(t, "--backend", "gl", "--width", "640", "--height", "480", "--title", "Hello", "--vsync", "--msaa", "--resizable")
	opts := optionsFromContext(ctx)
	cfg, err := opts.config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 640 || cfg.Height != 480 || cfg.Title != "Hello" {
		t.Fatalf("expected 640x480 %q; got %dx%d %q", "Hello", cfg.Width, cfg.Height, cfg.Title)
	}
	exp := core.FlagVsyncHint | core.FlagMsaa4xHint | core.FlagWindowResizable
	if cfg.Flags != exp {
		t.Fatalf("expected flags %s; got %s", exp, cfg.Flags)
	}
}

func TestOptionsConfigErrors(t *testing.T) {
	base := options{Backend: "raylib", Width: 10, Height: 10, FontSize: 16}

	unknown := base
	unknown.Backend = "vulkan"
	_, err := unknown.config()
	if !errors.Is(err, errUnknownBackend) {
		t.Fatalf("expected errUnknownBackend; got %v", err)
	}
	if !strings.Contains(err.Error(), "gl, raylib") {
		t.Fatalf("expected the error to list backends; got %v", err)
	}

	noFont := base
	noFont.FontSize = 0
	if _, err := noFont.config(); err == nil {
		t.Fatal("expected an error for a zero font size")
	}

	glModel := base
	glModel.Backend = "gl"
	glModel.Model = "cube.obj"
	if _, err := glModel.config(); err == nil {
		t.Fatal("expected an error for a model on the gl backend")
	}
}

func TestBackendNames(t *testing.T) {
	names := backendNames()
	if len(names) != 2 || names[0] != "gl" || names[1] != "raylib" {
		t.Fatalf("expected [gl raylib]; got %v", names)
	}
}

func TestDebugLines(t *testing.T) {
	var rs render.Stats
	rs.Commands[clay.CommandRectangle] = 4
	rs.Commands[clay.CommandText] = 2
	rs.Skipped = 1

	lines := debugLines(3, 20, rs, profiler.RuntimeStats{Goroutines: 2, CPUs: 8}, 1500*time.Millisecond)
	if lines[0] != "Frame: 3 (20.00 ms, 50 FPS)" {
		t.Fatalf("unexpected frame line %q", lines[0])
	}
	if lines[1] != "Uptime: 1s" {
		t.Fatalf("unexpected uptime line %q", lines[1])
	}
	if lines[2] != "Commands: 6 (skipped 1)" {
		t.Fatalf("unexpected command line %q", lines[2])
	}

	if got := debugLines(1, 0, rs, profiler.RuntimeStats{}, 0)[0]; got != "Frame: 1 (0.00 ms, 0 FPS)" {
		t.Fatalf("expected 0 FPS before the second frame; got %q", got)
	}
}

type fakeGL struct{}

func (fakeGL) FrameStats() renderer2d.Statistics {
	return renderer2d.Statistics{DrawCalls: 2, QuadCount: 10, TextureCount: 3}
}

func (fakeGL) GPUInfo() (string, string, string) { return "ACME", "Rasterizer", "3.3" }

func TestGPULines(t *testing.T) {
	lines := gpuLines(fakeGL{})
	exp := []string{
		"Batches: 2  Quads: 10  Textures: 3",
		"GPU: Rasterizer (ACME)",
		"GL: 3.3",
	}
	if len(lines) != len(exp) {
		t.Fatalf("expected %d lines; got %d", len(exp), len(lines))
	}
	for i := range exp {
		if lines[i] != exp[i] {
			t.Errorf("[spec %d] expected %q; got %q", i, exp[i], lines[i])
		}
	}
}
