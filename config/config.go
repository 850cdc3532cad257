// Package config reads process settings from the environment.
package config

import (
	"log/slog"
	"os"
	"strings"
)

const (
	SaveNone   = "none"
	SaveFile   = "file"
	SaveRedis  = "redis"
	SaveSQLite = "sqlite"
)

type Config struct {
	Environment string
	LogLevel    slog.Level

	SaveBackend string
	SaveDir     string
	RedisAddr   string
	SQLitePath  string

	// TraceDir is empty when event tracing is off.
	TraceDir string
	// ObserveAddr is empty when the websocket observer is off.
	ObserveAddr string
	PrefabDir   string
}

func Load() *Config {
	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		SaveBackend: parseBackend(getEnv("CATCAFE_SAVE_BACKEND", SaveFile)),
		SaveDir:     getEnv("CATCAFE_SAVE_DIR", "saves"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		SQLitePath:  getEnv("CATCAFE_SQLITE_PATH", "saves/catcafe.db"),
		TraceDir:    getEnv("CATCAFE_TRACE_DIR", ""),
		ObserveAddr: getEnv("CATCAFE_OBSERVE_ADDR", ""),
		PrefabDir:   getEnv("CATCAFE_PREFAB_DIR", "prefabs"),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ParseLogLevel maps a level name to a slog level, defaulting to info.
func ParseLogLevel(level string) slog.Level {
	return parseLogLevel(level)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseBackend(backend string) string {
	switch b := strings.ToLower(backend); b {
	case SaveNone, SaveFile, SaveRedis, SaveSQLite:
		return b
	default:
		return SaveFile
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
