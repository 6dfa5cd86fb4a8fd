package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	clicmd "github.com/localizer-dev/localizer/internal/cmd/cli"
	"github.com/localizer-dev/localizer/internal/platform/config"
)

// main runs the localizer CLI.
func main() {
	cfg, err := clicmd.ParseConfig()
	if err != nil {
		config.Exitf("parse config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := clicmd.Run(ctx, cfg, os.Args[1:]); err != nil {
		config.Exitf("%v", err)
	}
}
