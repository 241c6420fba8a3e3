package observability

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/sojus-client/internal/config"
)

func TestNewLoggerFiltersByLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sojus.log")
	logger, err := NewLogger(config.LoggerConfig{Level: "INFO", Output: path})
	require.NoError(t, err)

	logger.Named("session").Debug("hidden")
	logger.Named("session").Info("restored")
	require.NoError(t, logger.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "session", entry["logger"])
	assert.Equal(t, "restored", entry["message"])
}

func TestNewLoggerUnknownLevelFallsBackToWarn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sojus.log")
	logger, err := NewLogger(config.LoggerConfig{Level: "chatty", Output: path, Format: "console"})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept")
	require.NoError(t, logger.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "dropped")
	assert.Contains(t, string(raw), "kept")
}
