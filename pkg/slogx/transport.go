package slogx

import (
	"log/slog"
	"net/http"
	"time"
)

// Transport logs every outbound request made through it. The logger is taken
// from the request context when present, otherwise Base is used.
type Transport struct {
	Base   *slog.Logger
	Next   http.RoundTripper
	Header string // request ID header to echo into the log line
}

// NewTransport wraps next (http.DefaultTransport when nil).
func NewTransport(base *slog.Logger, next http.RoundTripper) *Transport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &Transport{Base: base, Next: next, Header: "X-Request-ID"}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	logger := FromContextOr(req.Context(), t.Base)
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(
		"req_id", req.Header.Get(t.Header),
		"method", req.Method,
		"path", req.URL.Path,
	)

	start := time.Now()
	resp, err := t.Next.RoundTrip(req)
	duration := time.Since(start).Milliseconds()

	if err != nil {
		logger.Warn("http_request_failed", "duration_ms", duration, "err", err)
		return nil, err
	}

	logger.Debug("http_request",
		"status", resp.StatusCode,
		"duration_ms", duration,
	)
	return resp, nil
}
