package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"FundScope/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		SQLitePath  string `yaml:"sqlite_path"`
		HistoryPath string `yaml:"history_path"`
	} `yaml:"database"`
	Schedule struct {
		SnapshotCron string `yaml:"snapshot_cron"`
	} `yaml:"schedule"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
	Scenarios []ScenarioConfig `yaml:"scenarios"`
}

// ScenarioConfig is one macro scenario: a label and the multiplier applied to
// the portfolio's total exit value.
type ScenarioConfig struct {
	Label      string  `yaml:"label"`
	Multiplier float64 `yaml:"multiplier"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HISTORY_PATH"); v != "" {
		cfg.Database.HistoryPath = v
	}
	if v := os.Getenv("SNAPSHOT_CRON"); v != "" {
		cfg.Schedule.SnapshotCron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/fundscope.db"
	}
	if cfg.Database.HistoryPath == "" {
		cfg.Database.HistoryPath = "data/history.db"
	}
	if cfg.Schedule.SnapshotCron == "" {
		// Daily at 22:00
		cfg.Schedule.SnapshotCron = "0 0 22 * * *"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if len(cfg.Scenarios) == 0 {
		cfg.Scenarios = []ScenarioConfig{
			{Label: "Base", Multiplier: 1.0},
			{Label: "Upside", Multiplier: 1.5},
			{Label: "High-Growth", Multiplier: 2.0},
		}
	}

	return cfg, nil
}

// Validate checks that all fields are usable.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Schedule.SnapshotCron == "" {
		return fmt.Errorf("schedule.snapshot_cron is required")
	}
	for i, s := range c.Scenarios {
		if s.Label == "" {
			return fmt.Errorf("scenarios[%d].label is required", i)
		}
		if s.Multiplier < 0 {
			return fmt.Errorf("scenarios[%d].multiplier must be non-negative", i)
		}
	}
	return nil
}

// ScenarioSet converts the configured scenarios into the engine's input form,
// preserving order.
func (c *Config) ScenarioSet() []model.ScenarioSpec {
	set := make([]model.ScenarioSpec, len(c.Scenarios))
	for i, s := range c.Scenarios {
		set[i] = model.ScenarioSpec{Label: s.Label, Multiplier: s.Multiplier}
	}
	return set
}
