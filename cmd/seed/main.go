// Package main provides a CLI that loads the sample course catalog into a
// running course registry.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	seedcmd "github.com/louisbranch/registrar/internal/cmd/seed"
	"github.com/louisbranch/registrar/internal/platform/config"
)

func main() {
	cfg, err := seedcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := seedcmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}
