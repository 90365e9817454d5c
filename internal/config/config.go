// Package config loads Tally's configuration.
//
// Settings come from defaults, then an optional TOML file, then
// TALLY_* environment variables, later sources winning. A missing
// config file is not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidCapacity is returned when a configured capacity is below 1.
var ErrInvalidCapacity = errors.New("capacity must be at least 1")

// Config holds all settings for a calculator session.
type Config struct {
	// HistoryCapacity caps the evaluation history.
	HistoryCapacity int `toml:"history_capacity"`

	// FormulaCapacity caps the saved-formula list.
	FormulaCapacity int `toml:"formula_capacity"`

	// DataFile is the TOML file holding the persisted record lists.
	DataFile string `toml:"data_file"`

	// LogFile receives structured logs; empty disables logging.
	LogFile string `toml:"log_file"`

	// Debug enables verbose logging.
	Debug bool `toml:"debug"`
}

// Default returns the built-in configuration. The data file lives under
// the user config directory, falling back to the working directory when
// it cannot be resolved.
func Default() Config {
	dataFile := "records.toml"
	if dir, err := os.UserConfigDir(); err == nil {
		dataFile = filepath.Join(dir, "tally", "records.toml")
	}
	return Config{
		HistoryCapacity: 100,
		FormulaCapacity: 100,
		DataFile:        dataFile,
	}
}

// Load builds the configuration from defaults, the TOML file at path
// (skipped when path is empty or absent), and environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err != nil && os.IsNotExist(err):
			// Absent file, keep defaults.
		case err != nil:
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.HistoryCapacity < 1 {
		return fmt.Errorf("history_capacity %d: %w", c.HistoryCapacity, ErrInvalidCapacity)
	}
	if c.FormulaCapacity < 1 {
		return fmt.Errorf("formula_capacity %d: %w", c.FormulaCapacity, ErrInvalidCapacity)
	}
	return nil
}

// applyEnv overrides settings from TALLY_* environment variables.
func applyEnv(cfg *Config) {
	if v, ok := envInt("TALLY_HISTORY_CAPACITY"); ok {
		cfg.HistoryCapacity = v
	}
	if v, ok := envInt("TALLY_FORMULA_CAPACITY"); ok {
		cfg.FormulaCapacity = v
	}
	if v := os.Getenv("TALLY_DATA_FILE"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("TALLY_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("TALLY_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
}

func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
