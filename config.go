package scribe

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Color mode values for Config.Colors.
const (
	ColorsAuto = "auto" // colorize when the stream is a terminal
	ColorsOn   = "on"
	ColorsOff  = "off"
)

// Config defines the construction parameters for a Logger.
//
// Fields:
//   - Verbosity: initial threshold; messages with a level above it are
//     dropped (negative levels always pass)
//   - StripPath: reduce origin files to their basename in preambles
//   - MaxLogRate: maximum accepted messages per second (0 = unlimited)
//   - Colors: one of "auto", "on", "off" ("" means auto)
//   - AlertOutput: stream for Warning and worse (default os.Stderr)
//   - NormalOutput: stream for Info and verbose tiers (default os.Stdout)
//   - ErrorHandler: invoked for the engine's own failures, such as a
//     file sink write error; defaults to a stderr report
//   - FatalHandler: invoked once right before process termination on
//     the fatal path, for last-chance diagnostics
type Config struct {
	Verbosity  Verbosity `json:"verbosity" koanf:"verbosity"`
	StripPath  bool      `json:"strip_path" koanf:"strip_path"`
	MaxLogRate int       `json:"max_log_rate" koanf:"max_log_rate"`
	Colors     string    `json:"colors" koanf:"colors"`

	AlertOutput  io.Writer   `json:"-" koanf:"-"`
	NormalOutput io.Writer   `json:"-" koanf:"-"`
	ErrorHandler func(error) `json:"-" koanf:"-"`
	FatalHandler func()      `json:"-" koanf:"-"`
}

// DefaultConfig returns the configuration used when nothing is
// overridden: Info threshold, stripped paths, no rate limit, color
// auto-detection, stderr/stdout streams.
func DefaultConfig() Config {
	return Config{
		Verbosity: Info,
		StripPath: true,
		Colors:    ColorsAuto,
	}
}

// Validate checks the configuration for values no Logger can run with.
func (c *Config) Validate() error {
	if c.Verbosity < Fatal || c.Verbosity > Max {
		return fmt.Errorf("verbosity %d out of range [%d, %d]", c.Verbosity, Fatal, Max)
	}
	if c.MaxLogRate < 0 {
		return fmt.Errorf("MaxLogRate cannot be negative")
	}
	switch c.Colors {
	case "", ColorsAuto, ColorsOn, ColorsOff:
	default:
		return fmt.Errorf("invalid colors mode: %q", c.Colors)
	}
	return nil
}

// FromJSONConfig parses a JSON document into a Config, starting from
// DefaultConfig so absent keys keep their defaults.
func FromJSONConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse JSON config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig builds a Config by layering, in order: defaults, the
// optional YAML file at path, and SCRIBE_* environment variables
// (SCRIBE_VERBOSITY, SCRIBE_STRIP_PATH, SCRIBE_MAX_LOG_RATE,
// SCRIBE_COLORS). Pass an empty path to skip the file layer.
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load default config: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %q: %w", path, err)
		}
	}
	if err := k.Load(env.Provider("SCRIBE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SCRIBE_"))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load config environment: %w", err)
	}

	cfg := DefaultConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
