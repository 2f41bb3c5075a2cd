// Package config loads runtime settings from ALCHEMY_* environment variables
// and command-line flags.
package config

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the startup parameters of a game session.
type Config struct {
	// TimeLimit is the initial time budget. Zero plays without a clock.
	TimeLimit time.Duration `env:"ALCHEMY_TIME_LIMIT" envDefault:"60"`
	// TimeBonus is added to the budget for every fulfilled request.
	TimeBonus time.Duration `env:"ALCHEMY_TIME_BONUS" envDefault:"10"`
	// Seed for request generation. Zero means derive one from the clock.
	Seed int64 `env:"ALCHEMY_SEED"`
	// Plain forces the line-based console instead of the full-screen UI.
	Plain bool `env:"ALCHEMY_PLAIN"`
	// Trace prints emitted events after each turn.
	Trace bool `env:"ALCHEMY_TRACE"`

	// Flag only.
	Script  string // replay input lines from a file
	Version bool
}

// Load reads the environment and then applies command-line arguments.
func Load(args []string, environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeOf(time.Duration(0)): func(v string) (interface{}, error) {
				return ParseSeconds(v)
			},
		},
	}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.applyArgs(args); err != nil {
		return Config{}, err
	}
	if cfg.TimeLimit < 0 {
		return Config{}, fmt.Errorf("time limit must not be negative, got %s", cfg.TimeLimit)
	}
	if cfg.TimeBonus < 0 {
		return Config{}, fmt.Errorf("time bonus must not be negative, got %s", cfg.TimeBonus)
	}
	return cfg, nil
}

// applyArgs overrides settings from flags.
func (c *Config) applyArgs(args []string) error {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			c.Version = true
		case "--plain":
			c.Plain = true
		case "--trace":
			c.Trace = true
		case "--script", "--time-limit", "--seed":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a value", args[i])
			}
			flag, value := args[i], args[i+1]
			i++
			if err := c.setValue(flag, value); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown argument %q", args[i])
		}
	}
	return nil
}

func (c *Config) setValue(flag, value string) error {
	switch flag {
	case "--script":
		c.Script = value
		c.Plain = true
	case "--time-limit":
		d, err := ParseSeconds(value)
		if err != nil {
			return fmt.Errorf("--time-limit: %w", err)
		}
		c.TimeLimit = d
	case "--seed":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("--seed: %w", err)
		}
		c.Seed = n
	}
	return nil
}

// ParseSeconds accepts a bare number of seconds ("90") or a Go duration
// string ("1m30s").
func ParseSeconds(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}

// Usage is the one-line command synopsis.
const Usage = "Usage: alchemy [--version] [--plain] [--trace] [--script <file>] [--time-limit <seconds>] [--seed <n>]"
