package session

import (
	"log/slog"
	"time"
)

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithOnChange registers fn to receive every committed snapshot. fn runs on
// the goroutine that made the change, after the change is visible.
func WithOnChange(fn func(Snapshot)) Option {
	return func(m *Manager) { m.onChange = fn }
}

// WithSoftTransportFailure keeps the current session when revalidation fails
// because the API could not be reached at all. Rejected tokens still clear
// the session. Off by default: any failure to validate logs the user out.
func WithSoftTransportFailure(enabled bool) Option {
	return func(m *Manager) { m.softTransport = enabled }
}

// WithRequestTimeout bounds a shared revalidation request. Non-positive
// values keep the default.
func WithRequestTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.requestTimeout = d
		}
	}
}

// RefreshOption adjusts a single Refresh call.
type RefreshOption func(*refreshConfig)

type refreshConfig struct {
	token       string
	supportMode *bool
	tenantID    *string
}

// WithToken validates token instead of the current one.
func WithToken(token string) RefreshOption {
	return func(c *refreshConfig) { c.token = token }
}

// WithSupportMode sets the support-mode flag committed on success.
func WithSupportMode(enabled bool) RefreshOption {
	return func(c *refreshConfig) { c.supportMode = &enabled }
}

// WithImpersonatedTenant sets the impersonated tenant committed on success.
func WithImpersonatedTenant(tenantID string) RefreshOption {
	return func(c *refreshConfig) { c.tenantID = &tenantID }
}
