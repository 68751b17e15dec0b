package main

import (
	"context"
	"flag"
	"os"

	mapdeploy "github.com/thesrcielos/guildmaster/internal/cmd/mapdeploy"
	"github.com/thesrcielos/guildmaster/internal/config"
	"github.com/thesrcielos/guildmaster/internal/logging"
)

func main() {
	boot := logging.Must(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	config.LoadDotEnvOrWarn(boot)

	cfg, err := mapdeploy.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	if err := mapdeploy.Run(context.Background(), cfg, os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}
