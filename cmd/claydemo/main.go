package main

import (
	"os"

	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "claydemo"
	app.Usage = "render a hand-built Clay command list through a window backend"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "run",
			Usage: "open a window and render the demo layout",
			Description: `
Open a window through the selected backend and render a small dashboard
built from Clay render commands: panels, borders, text, a clipped list,
an optional image and, on the raylib backend, an optional 3D model.

Drag with the left mouse button to orbit the 3D camera, scroll the list
with the mouse wheel, press F1 to toggle the stats overlay and Ctrl+P to
dump a profiler capture (profile builds only).`,
			Flags:  runFlags,
			Action: runDemo,
		},
		{
			Name:   "backends",
			Usage:  "list the available window backends",
			Action: listBackends,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
