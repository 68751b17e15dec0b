// Package mapserver wires the map template HTTP API and deploy feed.
package mapserver

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	api_middleware "github.com/thesrcielos/guildmaster/api/middleware"
	v1 "github.com/thesrcielos/guildmaster/api/v1"
	"github.com/thesrcielos/guildmaster/internal/auth"
	"github.com/thesrcielos/guildmaster/internal/config"
	"github.com/thesrcielos/guildmaster/internal/deploy"
	"github.com/thesrcielos/guildmaster/internal/logging"
	"github.com/thesrcielos/guildmaster/internal/mapstore"
	"github.com/thesrcielos/guildmaster/internal/tilemap"
	"github.com/thesrcielos/guildmaster/pkg/db"
	"github.com/thesrcielos/guildmaster/websocket"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type Config struct {
	config.Config

	// PublishSpacetime makes API deploys call the reducer before mirroring.
	PublishSpacetime bool
}

func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	env, err := config.Load()
	if err != nil {
		return Config{}, err
	}
	cfg := Config{Config: env}

	fs.StringVar(&cfg.Server.Addr, "addr", cfg.Server.Addr, "HTTP listen address")
	fs.StringVar(&cfg.MapsDir, "dir", cfg.MapsDir, "directory of CSV tilemaps deployed by POST /api/v1/maps/deploy")
	fs.BoolVar(&cfg.PublishSpacetime, "spacetime", false, "deploys also call the SpacetimeDB reducer")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Auth.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if !cfg.Postgres.Enabled() {
		return Config{}, errors.New("DB_HOST is required")
	}
	return cfg, nil
}

// Deps are the services behind the HTTP routes.
type Deps struct {
	Templates v1.TemplateReader
	Deployer  v1.DeployRunner
	Auth      v1.Authenticator
	Feed      *websocket.FeedHandler
	Secret    string
	MapsDir   string
	Logger    *zap.Logger
}

func NewServer(d Deps) *echo.Echo {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.Error(v.Error))
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	api := e.Group("/api/v1")

	maps := api.Group("/maps")
	v1.RegisterMapRoutes(maps, &v1.MapHandler{Templates: d.Templates})
	v1.RegisterDeployRoutes(maps, &v1.DeployHandler{
		Deployer: d.Deployer,
		MapsDir:  d.MapsDir,
		Logger:   logger,
	}, api_middleware.SetupJWTMiddleware(d.Secret))

	v1.RegisterAuthRoutes(api.Group("/auth"), &v1.AuthHandler{Auth: d.Auth})

	if d.Feed != nil {
		e.GET("/maps/feed", d.Feed.WebSocketHandler)
	}
	return e
}

// Run serves until ctx is done, then shuts the server down gracefully.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer logger.Sync()

	gdb, err := db.OpenPostgres(cfg.Postgres)
	if err != nil {
		return err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer sqlDB.Close()
	}
	repo := mapstore.NewGormRepository(gdb)
	if err := repo.Migrate(); err != nil {
		return err
	}

	var publishers []deploy.Publisher
	if cfg.PublishSpacetime {
		publishers = append(publishers, &deploy.SpacetimePublisher{
			Binary:   cfg.Spacetime.Binary,
			Server:   cfg.Spacetime.Server,
			Database: cfg.Spacetime.Database,
			Reducer:  cfg.Spacetime.Reducer,
			Logger:   logger,
		})
	}
	publishers = append(publishers, &deploy.RepositoryPublisher{Repo: repo})

	var cache mapstore.Cache
	var redisCache *mapstore.RedisCache
	if cfg.Redis.Enabled() {
		rdb, err := db.OpenRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer rdb.Close()
		redisCache = mapstore.NewRedisCache(rdb, logger)
		cache = redisCache
		publishers = append(publishers, &deploy.CachePublisher{Cache: redisCache})
	} else {
		logger.Warn("REDIS_ADDR not set, template cache and deploy feed relay disabled")
	}

	templates := mapstore.NewTemplateService(repo, cache, logger)
	feed := websocket.NewFeedHandler(cfg.Auth.JWTSecret, templates, logger)
	if redisCache != nil {
		if err := feed.Relay(ctx, redisCache); err != nil {
			return err
		}
	}

	e := NewServer(Deps{
		Templates: templates,
		Deployer:  deploy.NewDeployer(tilemap.NewLoader(logger), logger, publishers...),
		Auth:      auth.NewAdminService(cfg.Auth.AdminUsername, cfg.Auth.AdminPasswordHash, cfg.Auth.JWTSecret),
		Feed:      feed,
		Secret:    cfg.Auth.JWTSecret,
		MapsDir:   cfg.MapsDir,
		Logger:    logger,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("map server listening", zap.String("addr", cfg.Server.Addr))
		errCh <- e.Start(cfg.Server.Addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("shutting down map server")
	return e.Shutdown(shutdownCtx)
}
