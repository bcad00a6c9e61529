package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"COGNOS_URL", "COGNOS_NAMESPACE", "COGNOS_USERNAME", "COGNOS_PASSWORD",
		"COGNOS_DEBUG", "COGNOS_ID_FROM_LOCATION", "COGNOS_MAX_SESSIONS",
		"HTTP_CLIENT_TIMEOUT_MS", "SESSION_INIT_TIMEOUT_MS",
		"TREE_MAX_DEPTH", "TREE_FETCH_WORKERS", "QUERY_MAX_RESULTS",
		"LOG_LEVEL", "LOG_FILE", "LOG_COMPRESS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Empty(t, cfg.CognosURL)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.IDFromLocation)
	assert.Equal(t, 1, cfg.MaxSessions)
	assert.Equal(t, 30*time.Second, cfg.HTTPClientTimeout)
	assert.Equal(t, 30*time.Second, cfg.SessionInitTimeout)
	assert.Equal(t, DefaultTreeMaxDepthValue, cfg.TreeMaxDepth)
	assert.Equal(t, DefaultTreeFetchWorkersValue, cfg.TreeFetchWorkers)
	assert.Equal(t, DefaultQueryMaxResultsValue, cfg.QueryMaxResults)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogCompress)
	assert.False(t, cfg.HasCredentials())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("COGNOS_URL", "https://cognos.example.com/ibmcognos/")
	t.Setenv("COGNOS_NAMESPACE", "CorpLDAP")
	t.Setenv("COGNOS_USERNAME", "jdoe")
	t.Setenv("COGNOS_PASSWORD", "secret")
	t.Setenv("COGNOS_DEBUG", "yes")
	t.Setenv("COGNOS_ID_FROM_LOCATION", "1")
	t.Setenv("COGNOS_MAX_SESSIONS", "4")
	t.Setenv("HTTP_CLIENT_TIMEOUT_MS", "1500")
	t.Setenv("TREE_MAX_DEPTH", "5")
	t.Setenv("LOG_COMPRESS", "off")

	cfg := Load()
	assert.Equal(t, "https://cognos.example.com/ibmcognos/", cfg.CognosURL)
	assert.Equal(t, "CorpLDAP", cfg.Namespace)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.IDFromLocation)
	assert.Equal(t, 4, cfg.MaxSessions)
	assert.Equal(t, 1500*time.Millisecond, cfg.HTTPClientTimeout)
	assert.Equal(t, 5, cfg.TreeMaxDepth)
	assert.False(t, cfg.LogCompress)
	assert.True(t, cfg.HasCredentials())
}

func TestGetEnvHelpers_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("TEST_INT", "twelve")
	t.Setenv("TEST_BOOL", "maybe")

	assert.Equal(t, 7, getEnvInt("TEST_INT", 7))
	assert.True(t, getEnvBool("TEST_BOOL", true))
	assert.Equal(t, 250*time.Millisecond, getEnvDurationMs("TEST_INT", 250))
}
