package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every key Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CONFIG_FILE", "PORT", "DATABASE_URL", "DB_PATH", "OSRM_BASE_URL", "OSRM_PROFILE",
		"OSRM_RATE_PER_SEC", "REDIS_URL", "CACHE_TTL", "MATRIX_TIMEOUT", "GEOMETRY_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := "port: \"9090\"\nosrm_base_url: http://osrm.local:5000\ncache_ttl: 1h\nosrm_rate_per_sec: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	clearEnv(t)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7070")
	t.Setenv("MATRIX_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "http://osrm.local:5000", cfg.OSRMBaseURL)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, 5.0, cfg.OSRMRatePerSec)
	assert.Equal(t, 5*time.Second, cfg.MatrixTimeout)
	assert.Equal(t, 60*time.Second, cfg.GeometryTimeout)
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("CACHE_TTL", "forever")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("CACHE_TTL", "")
	t.Setenv("OSRM_RATE_PER_SEC", "-1")
	_, err = Load()
	require.Error(t, err)
}

func TestGetFallback(t *testing.T) {
	t.Setenv("SOME_KEY", "  ")
	assert.Equal(t, "fb", Get("SOME_KEY", "fb"))
	t.Setenv("SOME_KEY", "v")
	assert.Equal(t, "v", Get("SOME_KEY", "fb"))
}
