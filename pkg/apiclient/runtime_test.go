package apiclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/eagl/console/pkg/apiclient"
	"github.com/stretchr/testify/require"
)

func TestLoadRuntimeConfigFromURL(t *testing.T) {
	t.Parallel()

	var cacheControl string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cacheControl = r.Header.Get("Cache-Control")
		writeJSON(w, http.StatusOK, map[string]string{
			"apiBaseUrl":  "https://api.eagl.com.br/",
			"environment": "prod",
		})
	}))
	t.Cleanup(srv.Close)

	cfg, err := apiclient.LoadRuntimeConfig(context.Background(), srv.URL+"/config.json", nil)
	require.NoError(t, err)
	require.Equal(t, "https://api.eagl.com.br/", cfg.APIBaseURL)
	require.Equal(t, "prod", cfg.Environment)
	require.Equal(t, "no-store", cacheControl)
}

func TestLoadRuntimeConfigStatusError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	_, err := apiclient.LoadRuntimeConfig(context.Background(), srv.URL+"/config.json", nil)
	require.ErrorContains(t, err, "status 404")
}

func TestLoadRuntimeConfigFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"apiBaseUrl":"https://json.example.com","environment":"staging"}`), 0o600))

	cfg, err := apiclient.LoadRuntimeConfig(context.Background(), jsonPath, nil)
	require.NoError(t, err)
	require.Equal(t, "https://json.example.com", cfg.APIBaseURL)
	require.Equal(t, "staging", cfg.Environment)

	yamlPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("apiBaseUrl: https://yaml.example.com\n"), 0o600))

	cfg, err = apiclient.LoadRuntimeConfig(context.Background(), yamlPath, nil)
	require.NoError(t, err)
	require.Equal(t, "https://yaml.example.com", cfg.APIBaseURL)
	require.Empty(t, cfg.Environment)
}

func TestLoadRuntimeConfigEmptySource(t *testing.T) {
	t.Parallel()

	cfg, err := apiclient.LoadRuntimeConfig(context.Background(), "", nil)
	require.NoError(t, err)
	require.Equal(t, apiclient.RuntimeConfig{}, cfg)

	_, err = apiclient.LoadRuntimeConfig(context.Background(), filepath.Join(t.TempDir(), "missing.json"), nil)
	require.Error(t, err)
}
