// Package cli wires the skein runtime into the command-line host: config
// loading, the interactive session loop, validation and the HTTP server.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config is the CLI host configuration, read from skein.yaml in the project
// directory when present.
type Config struct {
	// TickInterval is the fixed update rate of the loop.
	TickInterval time.Duration `mapstructure:"tick_interval"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	// Variables selects the variable storage backend: "memory" or "redis".
	Variables string `mapstructure:"variables"`

	// Namespace optionally scopes all script variables under a prefix,
	// isolating save slots sharing one backend.
	Namespace string `mapstructure:"namespace"`

	Redis RedisConfig `mapstructure:"redis"`
	HTTP  HTTPConfig  `mapstructure:"http"`
}

// RedisConfig configures the redis variable backend.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// HTTPConfig configures the serve command.
type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// DefaultConfig returns the defaults applied before file values.
func DefaultConfig() Config {
	return Config{
		TickInterval: 16 * time.Millisecond,
		LogLevel:     "info",
		Variables:    "memory",
		Redis:        RedisConfig{Addr: "localhost:6379", Prefix: "skein:var:"},
		HTTP:         HTTPConfig{Addr: ":8465"},
	}
}

// LoadConfig reads path (YAML) over the defaults. A missing file is not an
// error; a malformed one is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	// YAML lands in a generic map first so mapstructure can apply weak
	// typing and duration parsing over the typed struct.
	var values map[string]any
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return cfg, err
	}
	if err := dec.Decode(values); err != nil {
		return cfg, fmt.Errorf("applying config: %w", err)
	}
	return cfg, nil
}

// Level parses the configured log level.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
