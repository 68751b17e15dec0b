package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/thesrcielos/guildmaster/internal/cmd/mapserver"
	"github.com/thesrcielos/guildmaster/internal/config"
	"github.com/thesrcielos/guildmaster/internal/logging"
)

func main() {
	boot := logging.Must(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	config.LoadDotEnvOrWarn(boot)

	cfg, err := mapserver.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mapserver.Run(ctx, cfg); err != nil {
		config.Exitf("Error: %v", err)
	}
}
