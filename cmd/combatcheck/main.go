package main

import (
	"context"
	"flag"
	"os"

	"github.com/thesrcielos/guildmaster/internal/cmd/combatcheck"
	"github.com/thesrcielos/guildmaster/internal/config"
	"github.com/thesrcielos/guildmaster/internal/logging"
)

func main() {
	boot := logging.Must(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	config.LoadDotEnvOrWarn(boot)

	cfg, err := combatcheck.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	code, err := combatcheck.Run(context.Background(), cfg, os.Stdout)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	os.Exit(code)
}
