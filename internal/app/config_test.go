package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfgHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgHome)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "file", cfg.Store)
	require.Equal(t, filepath.Join(cfgHome, "eagl", "session.json"), cfg.StorePath)
	require.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	require.Zero(t, cfg.RateLimit)
	require.Equal(t, 5, cfg.RateBurst)
	require.False(t, cfg.SoftRefresh)
	require.False(t, cfg.Sealed())
	require.Equal(t, "prod", cfg.Env)
	require.Empty(t, cfg.EnvBase())
}

func TestLoadConfigFromEnv(t *testing.T) {
	cfgHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgHome)
	t.Setenv("EAGL_API_URL", "https://legacy.example.com")
	t.Setenv("EAGL_API_BASE_URL", " https://api.example.com/ ")
	t.Setenv("EAGL_STORE", "SQLite")
	t.Setenv("EAGL_HTTP_TIMEOUT", "30s")
	t.Setenv("EAGL_RATE_LIMIT", "2.5")
	t.Setenv("EAGL_SOFT_REFRESH", "true")
	t.Setenv("EAGL_MASTER_KEY", "secret")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "https://api.example.com/", cfg.EnvBase())
	require.Equal(t, "sqlite", cfg.Store)
	require.Equal(t, filepath.Join(cfgHome, "eagl", "session.db"), cfg.StorePath)
	require.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	require.InDelta(t, 2.5, cfg.RateLimit, 0.0001)
	require.True(t, cfg.SoftRefresh)
	require.True(t, cfg.Sealed())
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigRejectsMalformedValues(t *testing.T) {
	t.Setenv("EAGL_HTTP_TIMEOUT", "soon")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestSanitizeGuardrails(t *testing.T) {
	cfg := Config{
		APIURL:      "https://legacy.example.com",
		Store:       "",
		StorePath:   "/tmp/eagl/session.json",
		HTTPTimeout: time.Hour,
		RateLimit:   -1,
		RateBurst:   0,
	}
	cfg.Sanitize()

	require.Equal(t, "file", cfg.Store)
	require.Equal(t, "/tmp/eagl/session.json", cfg.StorePath)
	require.Equal(t, 2*time.Minute, cfg.HTTPTimeout)
	require.Zero(t, cfg.RateLimit)
	require.Equal(t, 1, cfg.RateBurst)
	require.Equal(t, "https://legacy.example.com", cfg.EnvBase())

	cfg = Config{HTTPTimeout: -time.Second}
	cfg.Sanitize()
	require.Equal(t, 10*time.Second, cfg.HTTPTimeout)
}

func TestSanitizeExpandsHome(t *testing.T) {
	cfg := Config{StorePath: "~/eagl/session.json"}
	cfg.Sanitize()
	require.True(t, filepath.IsAbs(cfg.StorePath))
	require.Equal(t, "session.json", filepath.Base(cfg.StorePath))
}
