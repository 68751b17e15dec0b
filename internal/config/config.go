package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config is the environment shared by the deploy tool, the validator and
// the map server. Each binary reads the sections it needs.
type Config struct {
	MapsDir string `env:"MAPS_DIR" envDefault:"src/maps"`

	Spacetime SpacetimeConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Log       LogConfig
	Auth      AuthConfig
	Server    ServerConfig
	Validate  ValidateConfig
}

type SpacetimeConfig struct {
	Binary   string `env:"SPACETIME_BIN" envDefault:"spacetime"`
	Server   string `env:"SPACETIME_SERVER" envDefault:"http://localhost:7734"`
	Database string `env:"SPACETIME_DB" envDefault:"guildmaster"`
	Reducer  string `env:"SPACETIME_REDUCER" envDefault:"replace_all_templates"`
}

type PostgresConfig struct {
	Host     string `env:"DB_HOST"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// Enabled reports whether a Postgres host was configured.
func (p PostgresConfig) Enabled() bool {
	return p.Host != ""
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		p.Host, p.User, p.Password, p.Name, p.Port, p.SSLMode,
	)
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Username string `env:"REDIS_USERNAME"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	TLS      bool   `env:"REDIS_TLS" envDefault:"false"`
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"console"`
}

type AuthConfig struct {
	JWTSecret         string `env:"JWT_SECRET"`
	AdminUsername     string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
}

type ServerConfig struct {
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`
}

type ValidateConfig struct {
	Root      string  `env:"VALIDATE_ROOT" envDefault:"."`
	Checklist string  `env:"VALIDATE_CHECKLIST"`
	Threshold float64 `env:"VALIDATE_THRESHOLD" envDefault:"0.8"`
}

// LoadDotEnv loads .env style files into the process environment. Values
// already present in the environment win.
func LoadDotEnv(files ...string) error {
	return godotenv.Load(files...)
}

// LoadDotEnvOrWarn is LoadDotEnv for main packages: a missing or unreadable
// file is logged and the process environment is used as is.
func LoadDotEnvOrWarn(logger *zap.Logger, files ...string) bool {
	if err := LoadDotEnv(files...); err != nil {
		logger.Warn(".env file not loaded, using system values", zap.Error(err))
		return false
	}
	return true
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
