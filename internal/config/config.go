// Package config reads the settings shared by the tictactoe binaries from
// flags, falling back to TICTACTOE_* environment variables.
package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/jaminalder/tictactoe-minimax/internal/logging"
)

const envPrefix = "TICTACTOE_"

// Config holds the parsed settings.
type Config struct {
	Addr      string
	LogLevel  slog.Level
	LogFormat string
	NoColor   bool
}

// Default returns the settings used when nothing is given.
func Default() Config {
	return Config{
		Addr:      ":8080",
		LogLevel:  slog.LevelInfo,
		LogFormat: logging.FormatText,
	}
}

// Load parses args for the named program. getenv supplies the environment
// fallbacks; flags win over the environment.
func Load(name string, args []string, getenv func(string) string, errOut io.Writer) (Config, error) {
	cfg := Default()
	env := func(key, def string) string {
		if v := getenv(envPrefix + key); v != "" {
			return v
		}
		return def
	}

	noColor := cfg.NoColor
	if v := getenv(envPrefix + "NO_COLOR"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%sNO_COLOR: %w", envPrefix, err)
		}
		noColor = b
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(errOut)
	addr := fs.String("addr", env("ADDR", cfg.Addr), "HTTP listen address")
	level := fs.String("log-level", env("LOG_LEVEL", cfg.LogLevel.String()), "log level: debug, info, warn, error")
	format := fs.String("log-format", env("LOG_FORMAT", cfg.LogFormat), "log format: text or json")
	fs.BoolVar(&cfg.NoColor, "no-color", noColor, "disable coloured board output")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	lvl, err := logging.ParseLevel(*level)
	if err != nil {
		return Config{}, err
	}
	switch *format {
	case logging.FormatText, logging.FormatJSON:
	default:
		return Config{}, fmt.Errorf("unknown log format %q", *format)
	}
	if *addr == "" {
		return Config{}, fmt.Errorf("listen address must not be empty")
	}
	cfg.Addr = *addr
	cfg.LogLevel = lvl
	cfg.LogFormat = *format
	return cfg, nil
}

// Logger builds the logger described by cfg.
func (c Config) Logger(w io.Writer) (*slog.Logger, error) {
	return logging.New(w, c.LogLevel, c.LogFormat)
}
