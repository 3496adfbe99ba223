package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/viper"
)

// RuntimeConfig is the document consulted once at boot to locate the API.
type RuntimeConfig struct {
	APIBaseURL  string `json:"apiBaseUrl,omitempty"  yaml:"apiBaseUrl,omitempty"`
	Environment string `json:"environment,omitempty" yaml:"environment,omitempty"`
}

// LoadRuntimeConfig reads the runtime document from source. Sources starting
// with http:// or https:// are fetched; anything else is read as a JSON or
// YAML file. An empty source yields an empty document.
//
// Callers are expected to log a failure and continue with the zero value so
// the environment base and the local default still apply.
func LoadRuntimeConfig(ctx context.Context, source string, hc *http.Client) (RuntimeConfig, error) {
	source = strings.TrimSpace(source)
	switch {
	case source == "":
		return RuntimeConfig{}, nil
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return fetchRuntimeConfig(ctx, source, hc)
	default:
		return readRuntimeConfig(source)
	}
}

func fetchRuntimeConfig(ctx context.Context, url string, hc *http.Client) (RuntimeConfig, error) {
	if hc == nil {
		hc = &http.Client{Timeout: DefaultTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return RuntimeConfig{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := hc.Do(req)
	if err != nil {
		return RuntimeConfig{}, fmt.Errorf("runtime config: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return RuntimeConfig{}, fmt.Errorf("runtime config status %d", resp.StatusCode)
	}

	var cfg RuntimeConfig
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&cfg); err != nil {
		return RuntimeConfig{}, fmt.Errorf("runtime config: failed to decode: %w", err)
	}
	return cfg, nil
}

func readRuntimeConfig(path string) (RuntimeConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return RuntimeConfig{}, fmt.Errorf("runtime config: %w", err)
	}

	return RuntimeConfig{
		APIBaseURL:  v.GetString("apiBaseUrl"),
		Environment: v.GetString("environment"),
	}, nil
}
