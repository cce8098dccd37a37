// Package config loads mantra settings from .mantra.yaml, MANTRA_*
// environment variables and built-in defaults.
package config

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/roach88/mantra/internal/compiler"
)

// Defaults applied when neither file nor environment sets a value.
const (
	DefaultDatabase          = "mantra.db"
	DefaultCycles            = 8
	DefaultCycleMs   float64 = 4000
	DefaultEventMs   float64 = compiler.DefaultEventDurationMs
	DefaultSeed      int64   = 0
	DefaultLogLevel          = "warn"
	DefaultLogFormat         = "text"
)

// Config is the top-level configuration struct for mantra.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Database string        `mapstructure:"database"`
	Compile  CompileConfig `mapstructure:"compile"`
	Log      LogConfig     `mapstructure:"log"`
}

// CompileConfig holds the fallback compile options used when a session
// leaves them unset.
type CompileConfig struct {
	Cycles  int     `mapstructure:"cycles"`
	CycleMs float64 `mapstructure:"cycle_ms"`
	EventMs float64 `mapstructure:"event_ms"`
	Seed    int64   `mapstructure:"seed"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidCycles indicates a non-positive cycle count.
	ErrInvalidCycles = errors.New("compile.cycles must be positive")
	// ErrInvalidCycleMs indicates a non-positive cycle duration.
	ErrInvalidCycleMs = errors.New("compile.cycle_ms must be positive")
	// ErrInvalidEventMs indicates a negative event duration.
	ErrInvalidEventMs = errors.New("compile.event_ms must be non-negative")
	// ErrInvalidLogLevel indicates an unknown log level.
	ErrInvalidLogLevel = errors.New("log.level must be a logrus level name")
	// ErrInvalidLogFormat indicates an unknown log format.
	ErrInvalidLogFormat = errors.New("log.format must be text or json")
)

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	switch {
	case c.Compile.Cycles <= 0:
		return ErrInvalidCycles
	case c.Compile.CycleMs <= 0:
		return ErrInvalidCycleMs
	case c.Compile.EventMs < 0:
		return ErrInvalidEventMs
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return ErrInvalidLogLevel
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return ErrInvalidLogFormat
	}
	return nil
}

// Options fills the zero fields of o from the compile defaults.
func (c *Config) Options(o compiler.Options) compiler.Options {
	if o.Cycles == 0 {
		o.Cycles = c.Compile.Cycles
	}
	if o.CycleDurationMs == 0 {
		o.CycleDurationMs = c.Compile.CycleMs
	}
	if o.EventDurationMs == 0 {
		o.EventDurationMs = c.Compile.EventMs
	}
	if o.Seed == 0 {
		o.Seed = c.Compile.Seed
	}
	return o
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	return &Config{
		Database: DefaultDatabase,
		Compile: CompileConfig{
			Cycles:  DefaultCycles,
			CycleMs: DefaultCycleMs,
			EventMs: DefaultEventMs,
			Seed:    DefaultSeed,
		},
		Log: LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}
