// Package combatcheck implements the combat systems validator command.
package combatcheck

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/thesrcielos/guildmaster/internal/config"
	"github.com/thesrcielos/guildmaster/internal/logging"
	"github.com/thesrcielos/guildmaster/internal/validate"
	"go.uber.org/zap"
)

type Config struct {
	Root      string
	Checklist string
	Threshold float64
	NoColor   bool
	Log       config.LogConfig
}

func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	env, err := config.Load()
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		Root:      env.Validate.Root,
		Checklist: env.Validate.Checklist,
		Threshold: env.Validate.Threshold,
		Log:       env.Log,
	}

	fs.StringVar(&cfg.Root, "root", cfg.Root, "client project root the checklist paths are relative to")
	fs.StringVar(&cfg.Checklist, "checklist", cfg.Checklist, "YAML checklist (default: built-in combat checklist)")
	fs.Float64Var(&cfg.Threshold, "threshold", cfg.Threshold, "minimum passed/total ratio for exit code 0")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable colored output")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Threshold <= 0 || cfg.Threshold > 1 {
		return Config{}, fmt.Errorf("threshold must be in (0, 1], got %v", cfg.Threshold)
	}
	return cfg, nil
}

// Run validates cfg.Root, prints the scorecard to out and returns the
// process exit code. A non-nil error means the checklist itself could not
// be loaded.
func Run(ctx context.Context, cfg Config, out io.Writer) (int, error) {
	if out == nil {
		out = io.Discard
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return 1, err
	}
	defer logger.Sync()

	checklist := validate.DefaultChecklist()
	if cfg.Checklist != "" {
		checklist, err = validate.LoadChecklist(cfg.Checklist)
		if err != nil {
			return 1, err
		}
	}

	report := validate.NewRunner(cfg.Root, logger).Run(checklist)
	if err := report.Render(out, validate.NewTheme(out, !cfg.NoColor), cfg.Threshold); err != nil {
		return 1, fmt.Errorf("write report: %w", err)
	}

	logger.Debug("validation finished",
		zap.Int("passed", report.Passed()),
		zap.Int("total", report.Total()),
		zap.Float64("threshold", cfg.Threshold))
	return report.ExitCode(cfg.Threshold), nil
}
