package consoleapi

import (
	"context"
	"net/http"
)

// LogEvent is one entry of the platform event log.
type LogEvent struct {
	ID        string         `json:"id" yaml:"id"`
	TenantID  string         `json:"tenantId,omitempty" yaml:"tenantId,omitempty"`
	Level     string         `json:"level" yaml:"level"`
	Message   string         `json:"message" yaml:"message"`
	Context   map[string]any `json:"context,omitempty" yaml:"context,omitempty"`
	CreatedAt string         `json:"createdAt" yaml:"createdAt"`
}

// LogFilter narrows ListLogs. From and To are passed through as given.
type LogFilter struct {
	TenantID string
	Level    string
	From     string
	To       string
}

// ListLogs calls GET /api/admin/logs.
func (c *Client) ListLogs(ctx context.Context, f LogFilter) ([]LogEvent, error) {
	var resp struct {
		Logs []LogEvent `json:"logs"`
	}
	path := withQuery("/admin/logs", "tenantId", f.TenantID, "level", f.Level, "from", f.From, "to", f.To)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Logs, nil
}
