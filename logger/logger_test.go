package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/milk9111/catcafe/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupProductionWritesJSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	log := SetupTo(&buf, &config.Config{Environment: "production", LogLevel: slog.LevelInfo})
	WithAgent(log, "henry").Info("npc: replan")
	log.Debug("hidden")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "npc: replan", line["msg"])
	assert.Equal(t, "henry", line["agent"])
	assert.Same(t, log, slog.Default())
}

func TestSetupDevelopmentWritesText(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	log := SetupTo(&buf, &config.Config{Environment: "development", LogLevel: slog.LevelDebug})
	WithError(log, errors.New("boom")).Debug("save: failed")

	assert.Contains(t, buf.String(), `msg="save: failed"`)
	assert.Contains(t, buf.String(), "error=boom")
}
