// Package config loads and saves the messbook TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Environment overrides, applied after the config file.
const (
	EnvDataDir     = "MESSBOOK_DATA_DIR"
	EnvBackend     = "MESSBOOK_BACKEND"
	EnvDatabaseURL = "MESSBOOK_DATABASE_URL"
)

// Config holds all messbook configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Budget     BudgetConfig     `toml:"budget"`
	Appearance AppearanceConfig `toml:"appearance"`
	Server     ServerConfig     `toml:"server"`
}

// GeneralConfig selects where records are stored.
type GeneralConfig struct {
	DataDir  string `toml:"data_dir,omitempty"`
	Backend  string `toml:"backend"`
	DSN      string `toml:"dsn,omitempty"`
	LogLevel string `toml:"log_level,omitempty"`
}

// BudgetConfig holds planner and calculator defaults.
type BudgetConfig struct {
	MealsPerDay      int     `toml:"meals_per_day"`
	CalculatorBudget float64 `toml:"calculator_budget"`
	CalculatorDays   int     `toml:"calculator_days"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ServerConfig holds settings for `messbook serve`.
type ServerConfig struct {
	Addr            string `toml:"addr"`
	PollIntervalSec int    `toml:"poll_interval_sec"`
	EventsBuffer    int    `toml:"events_buffer"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Backend: "sqlite",
		},
		Budget: BudgetConfig{
			MealsPerDay:      3,
			CalculatorBudget: 3000,
			CalculatorDays:   30,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Server: ServerConfig{
			Addr:            "127.0.0.1:8787",
			PollIntervalSec: 10,
			EventsBuffer:    200,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "messbook")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "messbook")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DefaultDataDir returns the XDG-compliant data directory.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "messbook")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "messbook")
}

// DataDir returns the configured data directory or the default.
func (c Config) DataDir() string {
	if c.General.DataDir != "" {
		return expandHome(c.General.DataDir)
	}
	return DefaultDataDir()
}

// Load reads the config file, returning defaults if it doesn't exist, then
// applies environment overrides.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.General.DataDir = v
	}
	if v := os.Getenv(EnvBackend); v != "" {
		cfg.General.Backend = strings.ToLower(v)
	}
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		cfg.General.DSN = v
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
