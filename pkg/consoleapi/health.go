package consoleapi

import (
	"context"
	"net/http"

	"github.com/eagl/console/pkg/apiclient"
)

// Health is the body of GET /api/health.
type Health struct {
	OK      bool   `json:"ok" yaml:"ok"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	Env     string `json:"env,omitempty" yaml:"env,omitempty"`
}

// CheckHealth calls GET /api/health. It needs no session.
func CheckHealth(ctx context.Context, api *apiclient.Client) (*Health, error) {
	var h Health
	if err := api.Do(ctx, "/health", apiclient.RequestOptions{Method: http.MethodGet}, &h); err != nil {
		return nil, err
	}
	return &h, nil
}
