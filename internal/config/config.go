package config

import (
	"fmt"
	"os"
	"time"

	"github.com/bytedance/sonic"
)

// Config holds the appliance configuration. The idle thresholds are
// device-tuning constants, supplied here rather than hard-coded in the
// core state machines.
type Config struct {
	// Paths
	ProjectsDir string
	LogFile     string
	LogFormat   string // "text" or "json"

	// Display geometry in text cells
	DisplayCols int
	DisplayRows int

	// Timers
	AutosaveIdle time.Duration // idle time before a dirty buffer is persisted
	ShutdownIdle time.Duration // idle time before the safe shutdown sequence
	SessionGap   time.Duration // journal idle gap that starts a new session marker
	TickInterval time.Duration // scheduler tick period

	Timezone string
	Debug    bool
}

// fileConfig is the on-disk JSON shape. Durations are plain seconds so the
// file stays editable over the network transfer surface.
type fileConfig struct {
	ProjectsDir     string `json:"projects_dir,omitempty"`
	LogFile         string `json:"log_file,omitempty"`
	LogFormat       string `json:"log_format,omitempty"`
	DisplayCols     int    `json:"display_cols,omitempty"`
	DisplayRows     int    `json:"display_rows,omitempty"`
	AutosaveIdleSec int    `json:"autosave_idle_seconds,omitempty"`
	ShutdownIdleSec int    `json:"shutdown_idle_seconds,omitempty"`
	SessionGapSec   int    `json:"session_gap_seconds,omitempty"`
	Timezone        string `json:"timezone,omitempty"`
}

// Default returns the device defaults.
func Default() *Config {
	return &Config{
		ProjectsDir:  "projects",
		LogFormat:    "text",
		DisplayCols:  48,
		DisplayRows:  14,
		AutosaveIdle: 5 * time.Second,
		ShutdownIdle: 600 * time.Second,
		SessionGap:   300 * time.Second,
		TickInterval: time.Second,
		Timezone:     "Local",
	}
}

// Load reads a JSON config file and merges it over the defaults. A missing
// file is not an error; the defaults stand.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := sonic.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.ProjectsDir != "" {
		cfg.ProjectsDir = fc.ProjectsDir
	}
	if fc.LogFile != "" {
		cfg.LogFile = fc.LogFile
	}
	if fc.LogFormat != "" {
		cfg.LogFormat = fc.LogFormat
	}
	if fc.DisplayCols > 0 {
		cfg.DisplayCols = fc.DisplayCols
	}
	if fc.DisplayRows > 0 {
		cfg.DisplayRows = fc.DisplayRows
	}
	if fc.AutosaveIdleSec > 0 {
		cfg.AutosaveIdle = time.Duration(fc.AutosaveIdleSec) * time.Second
	}
	if fc.ShutdownIdleSec > 0 {
		cfg.ShutdownIdle = time.Duration(fc.ShutdownIdleSec) * time.Second
	}
	if fc.SessionGapSec > 0 {
		cfg.SessionGap = time.Duration(fc.SessionGapSec) * time.Second
	}
	if fc.Timezone != "" {
		cfg.Timezone = fc.Timezone
	}

	return cfg, nil
}

// Validate checks the configuration for values the core cannot work with.
func (c *Config) Validate() error {
	if c.ProjectsDir == "" {
		return fmt.Errorf("projects directory must be set")
	}
	if c.DisplayCols < 1 {
		return fmt.Errorf("display columns must be at least 1, got %d", c.DisplayCols)
	}
	if c.DisplayRows < 3 {
		return fmt.Errorf("display rows must be at least 3, got %d", c.DisplayRows)
	}
	if c.AutosaveIdle <= 0 {
		return fmt.Errorf("autosave idle threshold must be positive")
	}
	if c.ShutdownIdle <= c.AutosaveIdle {
		return fmt.Errorf("shutdown idle threshold (%s) must exceed autosave idle threshold (%s)",
			c.ShutdownIdle, c.AutosaveIdle)
	}
	if c.SessionGap <= 0 {
		return fmt.Errorf("journal session gap must be positive")
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log format must be text or json, got %q", c.LogFormat)
	}
	return nil
}
