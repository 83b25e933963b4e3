package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the server configuration. Values come from an optional YAML file
// and are overridden by environment variables.
type Config struct {
	LogLevel  string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log-format" env:"LOG_FORMAT" env-default:"json"`
	HTTP      HTTP   `yaml:"http"`
	Game      Game   `yaml:"game"`
}

type HTTP struct {
	Addr            string        `yaml:"addr" env:"HTTP_ADDR" env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read-timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown-timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
	Heartbeat       time.Duration `yaml:"sse-heartbeat" env:"SSE_HEARTBEAT" env-default:"15s"`
}

type Game struct {
	IdleTTL       time.Duration `yaml:"idle-ttl" env:"GAME_IDLE_TTL" env-default:"1h"`
	SweepInterval time.Duration `yaml:"sweep-interval" env:"GAME_SWEEP_INTERVAL" env-default:"5m"`
}

var (
	ErrInvalidLogFormat = errors.New("log format must be json or console")
	ErrInvalidDuration  = errors.New("duration must be positive")
)

// Load reads path (when non-empty) and the environment into a Config.
// A .env file in the working directory is loaded first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is Load that panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}
	return cfg
}

func (c *Config) validate() error {
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat)
	}
	for name, d := range map[string]time.Duration{
		"http.read-timeout":     c.HTTP.ReadTimeout,
		"http.shutdown-timeout": c.HTTP.ShutdownTimeout,
		"http.sse-heartbeat":    c.HTTP.Heartbeat,
		"game.idle-ttl":         c.Game.IdleTTL,
		"game.sweep-interval":   c.Game.SweepInterval,
	} {
		if d <= 0 {
			return fmt.Errorf("%w: %s", ErrInvalidDuration, name)
		}
	}
	return nil
}
