package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/hexmek/hexmek/internal/cmd/simulate"
	"github.com/hexmek/hexmek/internal/platform/config"
)

func main() {
	cfg, err := simulate.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := simulate.Run(ctx, cfg); err != nil {
		config.Exitf("simulate: %v", err)
	}
}
