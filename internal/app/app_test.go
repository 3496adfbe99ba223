package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/eagl/console/pkg/session"
	"github.com/stretchr/testify/require"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok-1","user":{"id":"u-1","name":"Ana","email":"ana@x.com","role":"admin"}}`))
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid token"}`))
			return
		}
		_, _ = w.Write([]byte(`{"user":{"id":"u-1","name":"Ana","email":"ana@x.com","role":"admin"}}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T) Config {
	t.Helper()

	cfg := Config{
		Store:     "file",
		StorePath: filepath.Join(t.TempDir(), "session.json"),
		LogLevel:  "debug",
		LogOutput: &bytes.Buffer{},
	}
	cfg.Sanitize()
	return cfg
}

func TestNewWiresSessionAgainstEnvBase(t *testing.T) {
	ctx := context.Background()
	srv := fakeAPI(t)

	cfg := testConfig(t)
	cfg.APIBaseURL = srv.URL

	app, err := New(ctx, cfg)
	require.NoError(t, err)
	defer app.Close()

	require.Equal(t, srv.URL, app.API.Base())
	require.True(t, app.Session.Login(ctx, "ana@x.com", "pw"))
	require.FileExists(t, cfg.StorePath)

	// A second process over the same store picks the session up
	again, err := New(ctx, cfg)
	require.NoError(t, err)
	defer again.Close()

	snap := again.Start(ctx)
	require.Equal(t, session.PhaseAuthenticated, snap.Phase)
	require.Equal(t, "u-1", snap.User.ID)
}

func TestRuntimeConfigOverridesEnvBase(t *testing.T) {
	srv := fakeAPI(t)

	doc := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(doc, []byte(`{"apiBaseUrl":"`+srv.URL+`/","environment":"staging"}`), 0o600))

	cfg := testConfig(t)
	cfg.APIBaseURL = "http://unused.invalid"
	cfg.RuntimeConfig = doc

	app, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Close()

	require.Equal(t, srv.URL, app.API.Base())
	require.Equal(t, "staging", app.Runtime.Environment)
}

func TestMissingRuntimeConfigFallsBack(t *testing.T) {
	cfg := testConfig(t)
	cfg.APIBaseURL = "https://api.example.com"
	cfg.RuntimeConfig = filepath.Join(t.TempDir(), "missing.json")
	logs := &bytes.Buffer{}
	cfg.LogOutput = logs

	app, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Close()

	require.Equal(t, "https://api.example.com", app.API.Base())
	require.Contains(t, logs.String(), "runtime config unavailable")
}

func TestSealedStoreNeedsReadableKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.MasterKeyPath = filepath.Join(t.TempDir(), "missing.key")

	_, err := New(context.Background(), cfg)
	require.Error(t, err)
}

func TestUnknownStoreDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store = "etcd"

	_, err := New(context.Background(), cfg)
	require.Error(t, err)
}
