// Package remote is the typed client for the external veterans-platform API.
// Every endpoint returns fully enumerated response structs; transport
// failures are normalized into coded domain errors.
package remote

import (
	"log/slog"
	"time"

	"resty.dev/v3"

	"vetgate/internal/platform/metrics"
	domainerrors "vetgate/pkg/domain-errors"
	"vetgate/pkg/platform/circuit"
)

// Endpoint paths on the platform API.
const (
	epRegister          = "/functions/v1/auth-register"
	epLogin             = "/functions/v1/auth-login"
	epMe                = "/functions/v1/auth-me"
	epLogout            = "/functions/v1/auth-logout"
	epRefresh           = "/functions/v1/auth-refresh"
	epCheckEmail        = "/functions/v1/auth-check-email"
	epPublicProjects    = "/functions/v1/public-projects"
	epProjectBySlug     = "/functions/v1/project-by-slug"
	epUserProjectStatus = "/functions/v1/user-project-status"
	epNewsList          = "/functions/v1/news-list"
	epNewsArticle       = "/functions/v1/news-article"
)

// TokenSource returns the current session token, or "" when no user is
// signed in.
type TokenSource func() string

// Client talks to the platform API. Requests carry the session token when one
// exists, otherwise the public anonymous key; a 401 response invokes the
// unauthorized hook so the session layer can invalidate itself.
type Client struct {
	http           *resty.Client
	anonKey        string
	tokenSource    TokenSource
	onUnauthorized func()
	breaker        *circuit.Breaker
	metrics        *metrics.Metrics
	logger         *slog.Logger
}

type Option func(*Client)

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(timeout) }
}

// WithCircuitCooldown sets how long the client waits after an outage before
// probing the platform again.
func WithCircuitCooldown(d time.Duration) Option {
	return func(c *Client) {
		c.breaker = circuit.New("platform-api", circuit.WithCooldown(d))
	}
}

func New(baseURL, anonKey string, opts ...Option) *Client {
	c := &Client{
		http:    resty.New().SetBaseURL(baseURL),
		anonKey: anonKey,
		breaker: circuit.New("platform-api"),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.http.AddRequestMiddleware(func(_ *resty.Client, req *resty.Request) error {
		if !c.breaker.Allow() {
			return domainerrors.New(domainerrors.CodeRemote, "platform API circuit open")
		}
		token := ""
		if c.tokenSource != nil {
			token = c.tokenSource()
		}
		if token == "" {
			token = c.anonKey
		}
		req.SetHeader("Authorization", "Bearer "+token)
		return nil
	})
	c.http.AddResponseMiddleware(func(_ *resty.Client, res *resty.Response) error {
		if res.StatusCode() == 401 && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil
	})

	return c
}

// SetTokenSource installs the session token provider. Wired after
// construction because the session layer itself depends on this client.
func (c *Client) SetTokenSource(src TokenSource) {
	c.tokenSource = src
}

// SetUnauthorizedHandler installs the hook invoked on any 401 response.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

// Close releases the underlying transport.
func (c *Client) Close() error {
	return c.http.Close()
}

// finish normalizes a completed request: records latency, logs failures and
// converts non-2xx statuses into coded errors.
func (c *Client) finish(endpoint string, res *resty.Response, err error, started time.Time) error {
	status := "error"
	if res != nil {
		status = res.Status()
	}
	if c.metrics != nil {
		c.metrics.RemoteRequestDuration.
			WithLabelValues(endpoint, status).
			Observe(time.Since(started).Seconds())
	}
	if err != nil {
		c.recordOutcome(false)
		return domainerrors.Wrap(err, domainerrors.CodeRemote, "platform API request failed")
	}
	c.recordOutcome(res.StatusCode() < 500)
	if res.IsError() {
		if c.logger != nil {
			c.logger.Warn("platform API error",
				"endpoint", endpoint,
				"status", res.StatusCode(),
			)
		}
		return domainerrors.Newf(domainerrors.FromHTTPStatus(res.StatusCode()),
			"platform API returned %d for %s", res.StatusCode(), endpoint)
	}
	return nil
}

// recordOutcome feeds the circuit breaker. Only transport failures and 5xx
// responses count against it; client-side 4xx answers mean the platform is
// alive.
func (c *Client) recordOutcome(healthy bool) {
	if healthy {
		if _, change := c.breaker.RecordSuccess(); change.Closed && c.logger != nil {
			c.logger.Info("platform API circuit closed")
		}
		return
	}
	if _, change := c.breaker.RecordFailure(); change.Opened && c.logger != nil {
		c.logger.Warn("platform API circuit opened")
	}
}
