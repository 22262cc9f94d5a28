// Package main is the entry point for the ymd command line.
package main

import (
	"os"

	"github.com/natty-misc/ymd3/cmd"
	"github.com/natty-misc/ymd3/config"
	"github.com/natty-misc/ymd3/engine"
	"github.com/natty-misc/ymd3/internal/cache"
	"github.com/natty-misc/ymd3/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cache.CollectGarbage()

	eng := lo.Must(engine.New())
	code := cmd.Execute(eng)
	eng.Close()

	os.Exit(code)
}
