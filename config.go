package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the process configuration, loaded from an optional YAML file and
// then overridden by environment variables so deployments can tweak single
// values without shipping a file.
type Config struct {
	Server struct {
		Port    string `yaml:"port"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"server"`

	Database struct {
		// URL is a Postgres connection string. Empty disables the
		// finished-match archive entirely.
		URL string `yaml:"url"`
	} `yaml:"database"`

	Simulation struct {
		// Seed is the base seed for world generation; each match derives
		// its own seed from it so whole seasons replay identically.
		Seed                int64 `yaml:"seed"`
		HalfLengthMinutes   int   `yaml:"half_length_minutes"`
		ExtraHalfMinutes    int   `yaml:"extra_half_minutes"`
		ExtraTimeEnabled    bool  `yaml:"extra_time_enabled"`
		TickIntervalMillis  int   `yaml:"tick_interval_millis"`
		ConcurrentMatchdays int   `yaml:"concurrent_matchdays"`
	} `yaml:"simulation"`
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Server.Port = "8080"
	cfg.Simulation.Seed = 20260831
	cfg.Simulation.HalfLengthMinutes = 45
	cfg.Simulation.ExtraHalfMinutes = 15
	cfg.Simulation.TickIntervalMillis = 500
	cfg.Simulation.ConcurrentMatchdays = 1
	return cfg
}

// loadConfig builds the effective configuration: defaults, then the YAML
// file named by CONFIG_PATH (or config.yaml when present), then environment
// variables. A missing .env or config file is fine; an unreadable or
// malformed one is not.
func loadConfig() (*Config, error) {
	// .env is a developer convenience, absence is normal
	_ = godotenv.Load()

	cfg := defaultConfig()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err) && os.Getenv("CONFIG_PATH") == "":
		// no file, defaults apply
	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("BASE_URL"); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("SIM_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("SIM_SEED %q: %w", v, err)
		}
		cfg.Simulation.Seed = seed
	}
	if v := os.Getenv("SIM_EXTRA_TIME"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("SIM_EXTRA_TIME %q: %w", v, err)
		}
		cfg.Simulation.ExtraTimeEnabled = enabled
	}

	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = fmt.Sprintf("http://0.0.0.0:%s", cfg.Server.Port)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Simulation.HalfLengthMinutes <= 0 {
		return fmt.Errorf("half_length_minutes must be positive, got %d", c.Simulation.HalfLengthMinutes)
	}
	if c.Simulation.ExtraTimeEnabled && c.Simulation.ExtraHalfMinutes <= 0 {
		return fmt.Errorf("extra_half_minutes must be positive when extra time is enabled, got %d", c.Simulation.ExtraHalfMinutes)
	}
	if c.Simulation.TickIntervalMillis <= 0 {
		return fmt.Errorf("tick_interval_millis must be positive, got %d", c.Simulation.TickIntervalMillis)
	}
	return nil
}

// matchConfig translates the process configuration into the per-match one.
func (c *Config) matchConfig(matchSeed int64) MatchConfig {
	mc := DefaultMatchConfig(matchSeed)
	mc.HalfLength = time.Duration(c.Simulation.HalfLengthMinutes) * time.Minute
	mc.ExtraTimeEnabled = c.Simulation.ExtraTimeEnabled
	mc.ExtraHalfLength = time.Duration(c.Simulation.ExtraHalfMinutes) * time.Minute
	return mc
}

func (c *Config) tickInterval() time.Duration {
	return time.Duration(c.Simulation.TickIntervalMillis) * time.Millisecond
}
