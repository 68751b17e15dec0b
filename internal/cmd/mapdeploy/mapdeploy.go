// Package mapdeploy implements the map deploy command: load the CSV
// tilemaps of a directory and replace the map templates of the game
// database with them.
package mapdeploy

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/thesrcielos/guildmaster/internal/config"
	"github.com/thesrcielos/guildmaster/internal/deploy"
	"github.com/thesrcielos/guildmaster/internal/logging"
	"github.com/thesrcielos/guildmaster/internal/mapstore"
	"github.com/thesrcielos/guildmaster/internal/tilemap"
	"github.com/thesrcielos/guildmaster/pkg/db"
	"go.uber.org/zap"
)

// Config holds mapdeploy command configuration.
type Config struct {
	MapsDir   string
	Spacetime config.SpacetimeConfig
	Postgres  config.PostgresConfig
	Redis     config.RedisConfig
	Log       config.LogConfig

	DryRun         bool
	Out            string
	MirrorPostgres bool
	MirrorRedis    bool
}

// ParseConfig reads the environment, then lets flags override it.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	env, err := config.Load()
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		MapsDir:   env.MapsDir,
		Spacetime: env.Spacetime,
		Postgres:  env.Postgres,
		Redis:     env.Redis,
		Log:       env.Log,
	}

	fs.StringVar(&cfg.MapsDir, "dir", cfg.MapsDir, "directory of CSV tilemaps")
	fs.StringVar(&cfg.Spacetime.Server, "server", cfg.Spacetime.Server, "SpacetimeDB server url")
	fs.StringVar(&cfg.Spacetime.Database, "db", cfg.Spacetime.Database, "SpacetimeDB database name")
	fs.StringVar(&cfg.Spacetime.Reducer, "reducer", cfg.Spacetime.Reducer, "reducer replacing the template table")
	fs.StringVar(&cfg.Spacetime.Binary, "bin", cfg.Spacetime.Binary, "spacetime CLI binary")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "load and encode the maps without publishing")
	fs.StringVar(&cfg.Out, "out", "", "dry run: write the reducer payload to this file instead of stdout")
	fs.BoolVar(&cfg.MirrorPostgres, "postgres", false, "also mirror templates into Postgres (DB_* env); refreshes Redis too when REDIS_ADDR is set")
	fs.BoolVar(&cfg.MirrorRedis, "redis", false, "also refresh the Redis template cache (REDIS_* env)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if strings.TrimSpace(cfg.MapsDir) == "" {
		return Config{}, errors.New("maps directory is required")
	}
	if cfg.MirrorPostgres && !cfg.Postgres.Enabled() {
		return Config{}, errors.New("-postgres requires DB_HOST")
	}
	if cfg.MirrorRedis && !cfg.Redis.Enabled() {
		return Config{}, errors.New("-redis requires REDIS_ADDR")
	}
	return cfg, nil
}

// Run executes the deploy. Progress lines go to out; diagnostics go to the
// logger.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer logger.Sync()

	loader := tilemap.NewLoader(logger)
	batch, loaded, err := deploy.NewDeployer(loader, logger).Plan(cfg.MapsDir)
	for _, name := range loaded.Skipped {
		fmt.Fprintf(out, "⚠️  Skipped empty map %s\n", name)
	}
	if errors.Is(err, deploy.ErrNoTemplates) {
		fmt.Fprintf(out, "⚠️  No maps found in %s\n", cfg.MapsDir)
		return nil
	}
	if err != nil {
		return err
	}

	if cfg.DryRun {
		return writePayload(cfg, batch, out)
	}

	publishers, closeAll, err := openPublishers(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeAll()

	fmt.Fprintf(out, "🚀 Sending %d maps to %s...\n", len(batch.Templates), cfg.Spacetime.Database)
	published, err := deploy.NewDeployer(loader, logger, publishers...).Publish(ctx, batch)
	if err != nil {
		var cmdErr *deploy.CommandError
		if errors.As(err, &cmdErr) {
			fmt.Fprintf(out, "❌ Deploy failed: %s\n", strings.TrimSpace(cmdErr.Stderr))
		} else {
			fmt.Fprintf(out, "❌ Deploy failed: %v\n", err)
		}
		return err
	}

	fmt.Fprintf(out, "✅ Deploy done: map tables updated (%s).\n", strings.Join(published, ", "))
	return nil
}

func writePayload(cfg Config, batch deploy.Batch, out io.Writer) error {
	payload, err := deploy.EncodeArgs(batch.Templates)
	if err != nil {
		return fmt.Errorf("encode reducer args: %w", err)
	}

	if cfg.Out == "" {
		fmt.Fprintln(out, string(payload))
	} else if err := os.WriteFile(cfg.Out, payload, 0o644); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	fmt.Fprintf(out, "📝 Dry run: %d maps encoded, nothing sent.\n", len(batch.Templates))
	return nil
}

// refreshCache reports whether the Redis template cache must be rewritten.
// Map servers read the cache before Postgres, so mirroring to Postgres with
// a configured Redis refreshes it too.
func refreshCache(cfg Config) bool {
	return cfg.MirrorRedis || (cfg.MirrorPostgres && cfg.Redis.Enabled())
}

func openPublishers(ctx context.Context, cfg Config, logger *zap.Logger) ([]deploy.Publisher, func(), error) {
	publishers := []deploy.Publisher{
		&deploy.SpacetimePublisher{
			Binary:   cfg.Spacetime.Binary,
			Server:   cfg.Spacetime.Server,
			Database: cfg.Spacetime.Database,
			Reducer:  cfg.Spacetime.Reducer,
			Logger:   logger,
		},
	}

	var closers []func() error
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Warn("error closing connection", zap.Error(err))
			}
		}
	}

	if cfg.MirrorPostgres {
		gdb, err := db.OpenPostgres(cfg.Postgres)
		if err != nil {
			return nil, func() {}, err
		}
		if sqlDB, err := gdb.DB(); err == nil {
			closers = append(closers, sqlDB.Close)
		}
		repo := mapstore.NewGormRepository(gdb)
		if err := repo.Migrate(); err != nil {
			closeAll()
			return nil, func() {}, err
		}
		publishers = append(publishers, &deploy.RepositoryPublisher{Repo: repo})
	}

	if refreshCache(cfg) {
		rdb, err := db.OpenRedis(ctx, cfg.Redis)
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		closers = append(closers, rdb.Close)
		publishers = append(publishers, &deploy.CachePublisher{Cache: mapstore.NewRedisCache(rdb, logger)})
	}

	return publishers, closeAll, nil
}
