package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesJSONEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, err := NewLogger("info", path, "json", false)
	require.NoError(t, err)
	logger.Info("buffer persisted")
	logger.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry LogEntry
	require.NoError(t, sonic.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry))
	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "buffer persisted", entry.Message)
	assert.False(t, entry.Timestamp.IsZero())
}

func TestLoggerWritesTextEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, err := NewLogger("info", path, "text", false)
	require.NoError(t, err)
	logger.Warnf("autosave failed, attempt %d", 2)
	logger.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	assert.Contains(t, line, "[WARN] autosave failed, attempt 2")
}

func TestLoggerFiltersBelowLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, err := NewLogger("warn", path, "text", false)
	require.NoError(t, err)
	logger.Debug("chatter")
	logger.Info("more chatter")
	logger.Error("storage failure")
	logger.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "chatter")
	assert.Contains(t, string(data), "storage failure")
}

func TestParseLogFormatDefaultsToText(t *testing.T) {
	assert.Equal(t, FormatJSON, parseLogFormat("json"))
	assert.Equal(t, FormatText, parseLogFormat("text"))
	assert.Equal(t, FormatText, parseLogFormat(""))
	assert.Equal(t, FormatText, parseLogFormat("yaml"))
}
