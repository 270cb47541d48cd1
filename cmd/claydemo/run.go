package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/clayray/engine/colors"
	"github.com/hubastard/clayray/engine/core"
	"github.com/hubastard/clayray/engine/platform"
	"github.com/hubastard/clayray/engine/platform/raylib"
	"github.com/hubastard/clayray/engine/scene"
	"github.com/urfave/cli"
)

var errUnknownBackend = errors.New("claydemo: unknown backend")

var backends = map[string]func() core.Backend{
	"raylib": func() core.Backend { return raylib.New() },
	"gl":     func() core.Backend { return platform.NewGL() },
}

var runFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "backend",
		Value: "raylib",
		Usage: "window backend (raylib or gl)",
	},
	cli.IntFlag{
		Name:  "width",
		Value: 1024,
		Usage: "window width",
	},
	cli.IntFlag{
		Name:  "height",
		Value: 768,
		Usage: "window height",
	},
	cli.StringFlag{
		Name:  "title",
		Value: "Clay demo",
		Usage: "window title",
	},
	cli.StringFlag{
		Name:  "font",
		Usage: "TTF font for text commands; empty selects the backend default",
	},
	cli.IntFlag{
		Name:  "font-size",
		Value: 32,
		Usage: "pixel size the font is loaded at",
	},
	cli.StringFlag{
		Name:  "image",
		Usage: "PNG shown in the image card",
	},
	cli.StringFlag{
		Name:  "model",
		Usage: "3D model shown in the model card (raylib backend only)",
	},
	cli.IntFlag{
		Name:  "fps",
		Value: 60,
		Usage: "target frame rate; 0 disables the limiter",
	},
	cli.BoolFlag{
		Name:  "msaa",
		Usage: "request 4x multisampling",
	},
	cli.BoolFlag{
		Name:  "vsync",
		Usage: "wait for vertical sync",
	},
	cli.BoolFlag{
		Name:  "resizable",
		Usage: "allow the window to be resized",
	},
	cli.BoolFlag{
		Name:  "highdpi",
		Usage: "request a high-DPI framebuffer",
	},
}

type options struct {
	Backend   string
	Width     int
	Height    int
	Title     string
	Font      string
	FontSize  int
	Image     string
	Model     string
	FPS       int
	MSAA      bool
	VSync     bool
	Resizable bool
	HighDPI   bool
}

func optionsFromContext(ctx *cli.Context) options {
	return options{
		Backend:   ctx.String("backend"),
		Width:     ctx.Int("width"),
		Height:    ctx.Int("height"),
		Title:     ctx.String("title"),
		Font:      ctx.String("font"),
		FontSize:  ctx.Int("font-size"),
		Image:     ctx.String("image"),
		Model:     ctx.String("model"),
		FPS:       ctx.Int("fps"),
		MSAA:      ctx.Bool("msaa"),
		VSync:     ctx.Bool("vsync"),
		Resizable: ctx.Bool("resizable"),
		HighDPI:   ctx.Bool("highdpi"),
	}
}

func (o options) flags() core.WindowFlags {
	var f core.WindowFlags
	if o.MSAA {
		f |= core.FlagMsaa4xHint
	}
	if o.VSync {
		f |= core.FlagVsyncHint
	}
	if o.Resizable {
		f |= core.FlagWindowResizable
	}
	if o.HighDPI {
		f |= core.FlagWindowHighdpi
	}
	return f
}

// config validates the options and turns them into an engine configuration.
func (o options) config() (core.Config, error) {
	if _, ok := backends[o.Backend]; !ok {
		return core.Config{}, fmt.Errorf("%w %q (available: %s)", errUnknownBackend, o.Backend, strings.Join(backendNames(), ", "))
	}
	if o.FontSize <= 0 {
		return core.Config{}, fmt.Errorf("claydemo: font size must be positive; got %d", o.FontSize)
	}
	if o.Model != "" && o.Backend != "raylib" {
		return core.Config{}, fmt.Errorf("claydemo: models need the raylib backend; got %q", o.Backend)
	}
	return core.Config{
		Title:      o.Title,
		Width:      o.Width,
		Height:     o.Height,
		Flags:      o.flags(),
		TargetFPS:  o.FPS,
		ClearColor: colors.DarkGray,
		Camera:     scene.NewPerspective(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, 45),
	}, nil
}

func backendNames() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func runDemo(ctx *cli.Context) error {
	setupLogging(ctx)

	opts := optionsFromContext(ctx)
	cfg, err := opts.config()
	if err != nil {
		logger.Error(err)
		return err
	}

	logger.Noticef("starting %s backend (%dx%d, flags: %s)", opts.Backend, cfg.Width, cfg.Height, cfg.Flags)
	backend := backends[opts.Backend]()
	if err := core.Run(newApp(opts), core.NewContext(backend), cfg); err != nil {
		logger.Error(err)
		return err
	}
	return nil
}

func listBackends(ctx *cli.Context) error {
	setupLogging(ctx)
	for _, name := range backendNames() {
		fmt.Println(name)
	}
	return nil
}
