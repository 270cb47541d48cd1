package main

import (
	"github.com/hubastard/clayray/engine/log"
	"github.com/urfave/cli"
)

var logger = log.New("claydemo")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
