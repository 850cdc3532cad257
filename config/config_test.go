package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "LOG_LEVEL", "CATCAFE_SAVE_BACKEND", "CATCAFE_SAVE_DIR", "REDIS_ADDR", "CATCAFE_SQLITE_PATH", "CATCAFE_TRACE_DIR", "CATCAFE_OBSERVE_ADDR", "CATCAFE_PREFAB_DIR"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, SaveFile, cfg.SaveBackend)
	assert.Equal(t, "saves", cfg.SaveDir)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Empty(t, cfg.TraceDir)
	assert.Empty(t, cfg.ObserveAddr)
	assert.Equal(t, "prefabs", cfg.PrefabDir)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "WARNING")
	t.Setenv("CATCAFE_SAVE_BACKEND", "Redis")
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("CATCAFE_TRACE_DIR", "/var/trace")
	t.Setenv("CATCAFE_OBSERVE_ADDR", ":8090")

	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, SaveRedis, cfg.SaveBackend)
	assert.Equal(t, "cache:6380", cfg.RedisAddr)
	assert.Equal(t, "/var/trace", cfg.TraceDir)
	assert.Equal(t, ":8090", cfg.ObserveAddr)
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"loud":  slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLogLevel(in), in)
	}
}

func TestUnknownBackendFallsBackToFile(t *testing.T) {
	t.Setenv("CATCAFE_SAVE_BACKEND", "floppy")
	assert.Equal(t, SaveFile, Load().SaveBackend)
}
