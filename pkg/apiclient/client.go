package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/eagl/console/pkg/idx"
	"github.com/eagl/console/pkg/slogx"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout bounds every request; the API defines none of its own.
	DefaultTimeout = 10 * time.Second

	// RequestIDHeader carries the per-request ULID.
	RequestIDHeader = "X-Request-ID"

	// maxBodyBytes caps how much of a response body is read into memory.
	maxBodyBytes = 8 << 20
)

// Client issues requests against the EAGL API.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string

	envBase string
	logger  *slog.Logger
	limiter *rate.Limiter
	base    *http.Client
	timeout time.Duration

	mu          sync.RWMutex
	runtimeBase string
}

// Option configures a Client.
type Option func(*Client)

// WithEnvBase sets the environment supplied base address.
func WithEnvBase(base string) Option {
	return func(c *Client) { c.envBase = base }
}

// WithHTTPClient builds on a copy of hc; hc itself is never modified. A nil
// hc keeps the default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.base = hc }
}

// WithTimeout sets the per-request timeout. Non-positive values keep the
// default, or the timeout of the client given to WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRateLimit paces outbound requests to perSecond with the given burst.
// Non-positive rates disable pacing.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
	}
}

// WithLogger logs every request through slogx.Transport.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.UserAgent = ua }
}

// New creates a Client. Without options it targets DefaultBase with a 10s timeout.
func New(opts ...Option) *Client {
	c := &Client{UserAgent: "eagl-console"}
	for _, opt := range opts {
		opt(c)
	}

	hc := &http.Client{Timeout: DefaultTimeout}
	if c.base != nil {
		cp := *c.base
		hc = &cp
	}
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	if c.logger != nil {
		hc.Transport = slogx.NewTransport(c.logger, hc.Transport)
	}
	c.HTTPClient = hc
	return c
}

// SetBase caches a runtime base address. It takes precedence over the
// environment base. An empty value clears the cache.
func (c *Client) SetBase(base string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runtimeBase = base
}

// ApplyRuntimeConfig caches the base from a runtime configuration document
// when it names one.
func (c *Client) ApplyRuntimeConfig(cfg RuntimeConfig) {
	if strings.TrimSpace(cfg.APIBaseURL) != "" {
		c.SetBase(cfg.APIBaseURL)
	}
}

// Base returns the resolved base address.
func (c *Client) Base() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return ResolveBase(c.runtimeBase, c.envBase)
}

// URL returns the absolute URL for an API path.
func (c *Client) URL(path string) string {
	return BuildURL(c.Base(), path)
}

// RequestOptions describe a single API call.
type RequestOptions struct {
	// Method defaults to GET.
	Method string

	// Headers are applied before the Authorization header.
	Headers map[string]string

	// Body is JSON encoded when non-nil.
	Body any

	// Token is sent as a bearer credential when non-empty.
	Token string
}

// Do performs the request and, when the response is JSON and out is non-nil,
// decodes the body into out. Non-2xx responses return *Error; failures to get
// a response return *TransportError.
func (c *Client) Do(ctx context.Context, path string, opts RequestOptions, out any) error {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	url := c.URL(path)

	var body io.Reader
	if opts.Body != nil {
		b, err := json.Marshal(opts.Body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &TransportError{Method: method, URL: url, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	reqID := idx.New().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set(RequestIDHeader, reqID)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &TransportError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &TransportError{Method: method, URL: url, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	isJSON := strings.Contains(resp.Header.Get("Content-Type"), "application/json")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseErrorResponse(resp.StatusCode, isJSON, bodyBytes, reqID)
	}

	if out == nil || !isJSON || len(bytes.TrimSpace(bodyBytes)) == 0 {
		return nil
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Get is shorthand for a GET request.
func (c *Client) Get(ctx context.Context, path, token string, out any) error {
	return c.Do(ctx, path, RequestOptions{Token: token}, out)
}
