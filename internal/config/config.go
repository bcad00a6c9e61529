// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Folder tree defaults
const (
	DefaultTreeMaxDepthValue     = 3
	DefaultTreeFetchWorkersValue = 4
)

// Report query defaults
const (
	DefaultQueryMaxResultsValue = 100
)

// Config holds all configuration for the MCP server and the CLI.
type Config struct {
	CognosURL      string // COGNOS_URL, no default
	Namespace      string // COGNOS_NAMESPACE, default "" (discovered from the logon prompt)
	Username       string // COGNOS_USERNAME
	Password       string // COGNOS_PASSWORD
	Debug          bool   // COGNOS_DEBUG, default false
	IDFromLocation bool   // COGNOS_ID_FROM_LOCATION, default false
	MaxSessions    int    // COGNOS_MAX_SESSIONS, default 1

	HTTPClientTimeout  time.Duration // HTTP_CLIENT_TIMEOUT_MS, default 30000ms (30s)
	SessionInitTimeout time.Duration // SESSION_INIT_TIMEOUT_MS, default 30000ms (30s)

	// Tool output limits
	TreeMaxDepth     int // TREE_MAX_DEPTH, default 3
	TreeFetchWorkers int // TREE_FETCH_WORKERS, default 4
	QueryMaxResults  int // QUERY_MAX_RESULTS, default 100

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		CognosURL:      getEnvString("COGNOS_URL", ""),
		Namespace:      getEnvString("COGNOS_NAMESPACE", ""),
		Username:       getEnvString("COGNOS_USERNAME", ""),
		Password:       getEnvString("COGNOS_PASSWORD", ""),
		Debug:          getEnvBool("COGNOS_DEBUG", false),
		IDFromLocation: getEnvBool("COGNOS_ID_FROM_LOCATION", false),
		MaxSessions:    getEnvInt("COGNOS_MAX_SESSIONS", 1),

		HTTPClientTimeout:  getEnvDurationMs("HTTP_CLIENT_TIMEOUT_MS", 30000),
		SessionInitTimeout: getEnvDurationMs("SESSION_INIT_TIMEOUT_MS", 30000),

		TreeMaxDepth:     getEnvInt("TREE_MAX_DEPTH", DefaultTreeMaxDepthValue),
		TreeFetchWorkers: getEnvInt("TREE_FETCH_WORKERS", DefaultTreeFetchWorkersValue),
		QueryMaxResults:  getEnvInt("QUERY_MAX_RESULTS", DefaultQueryMaxResultsValue),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

// HasCredentials reports whether a default username and password are set.
func (c *Config) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}
