package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paperwright.json")
	content := `{"display_cols": 64, "autosave_idle_seconds": 10, "timezone": "UTC", "log_format": "json"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.DisplayCols)
	assert.Equal(t, 10*time.Second, cfg.AutosaveIdle)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "json", cfg.LogFormat)
	// Untouched fields keep their defaults.
	assert.Equal(t, Default().DisplayRows, cfg.DisplayRows)
	assert.Equal(t, Default().ShutdownIdle, cfg.ShutdownIdle)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paperwright.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{name: "defaults", mutate: func(c *Config) {}, valid: true},
		{name: "zero columns", mutate: func(c *Config) { c.DisplayCols = 0 }, valid: false},
		{name: "too few rows", mutate: func(c *Config) { c.DisplayRows = 2 }, valid: false},
		{name: "shutdown before autosave", mutate: func(c *Config) {
			c.ShutdownIdle = c.AutosaveIdle - time.Second
		}, valid: false},
		{name: "no projects dir", mutate: func(c *Config) { c.ProjectsDir = "" }, valid: false},
		{name: "zero session gap", mutate: func(c *Config) { c.SessionGap = 0 }, valid: false},
		{name: "unknown log format", mutate: func(c *Config) { c.LogFormat = "yaml" }, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if tt.valid {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}
