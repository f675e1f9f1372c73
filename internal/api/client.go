// Package api is the HTTP access layer: it resolves the target backend
// service, attaches bearer auth, and normalizes error and empty-body
// handling. It is the only package that performs network I/O or triggers
// auth-driven navigation.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/user-console/internal/config"
	"github.com/user-console/internal/logger"
	"github.com/user-console/internal/report"
	"github.com/user-console/internal/session"
)

// Service names a backend behind the console.
type Service string

const (
	ServiceUser         Service = "user"
	ServiceNotification Service = "notification"
)

const LoginPath = "/auth/login"

// serviceRoutes maps endpoint prefixes to backend services. Longest matching
// prefix wins; unmatched endpoints fall back to the user service.
var serviceRoutes = map[string]Service{
	"/users":         ServiceUser,
	"/auth":          ServiceUser,
	"/login":         ServiceUser,
	"/notifications": ServiceNotification,
}

// Options control a single call. The zero value is an authenticated GET
// routed by prefix.
type Options struct {
	Method  string
	Body    interface{}
	Service Service // explicit target, skips prefix routing
	BaseURL string  // absolute base, bypasses the routing table entirely
	Public  bool    // true skips the token requirement (login only)
}

type Client struct {
	http     *http.Client
	bases    map[Service]string
	session  *session.Session
	redirect func(path string)
	reporter *report.Reporter
}

type Option func(*Client)

// WithRedirect installs the navigation hook fired on auth failures.
func WithRedirect(fn func(path string)) Option {
	return func(c *Client) { c.redirect = fn }
}

func WithReporter(r *report.Reporter) Option {
	return func(c *Client) { c.reporter = r }
}

// NewClient builds the access layer. A zero timeout disables client-side
// request timeouts.
func NewClient(cfg config.ServicesConfig, timeout time.Duration, sess *session.Session, opts ...Option) *Client {
	c := &Client{
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 30 * time.Second,
			},
		},
		bases: map[Service]string{
			ServiceUser:         strings.TrimRight(cfg.UserServiceURL, "/"),
			ServiceNotification: strings.TrimRight(cfg.NotificationServiceURL, "/"),
		},
		session: sess,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Call performs a request and decodes the 2xx JSON body into T. A 204 or an
// empty body yields the zero value with a nil error.
func Call[T any](ctx context.Context, c *Client, endpoint string, o Options) (T, error) {
	var out T

	raw, err := c.Raw(ctx, endpoint, o)
	if err != nil {
		return out, err
	}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}
	return out, nil
}

// Raw performs a request and returns the undecoded 2xx body; nil for a 204
// or an empty body. Pagination-aware callers normalize the body themselves.
func (c *Client) Raw(ctx context.Context, endpoint string, o Options) ([]byte, error) {
	method := o.Method
	if method == "" {
		method = http.MethodGet
	}

	base := o.BaseURL
	if base == "" {
		base = c.resolve(endpoint, o.Service)
	}
	url := strings.TrimRight(base, "/") + "/api" + endpoint

	var token string
	if !o.Public {
		token = c.session.Token()
		if token == "" {
			// Fail fast, never proceed unauthenticated.
			c.redirectToLogin()
			return nil, ErrUnauthorized
		}
	}

	var body io.Reader
	if o.Body != nil {
		raw, err := json.Marshal(o.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.reporter.CaptureException(err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// 401 clears the session and redirects before any message extraction.
	if resp.StatusCode == http.StatusUnauthorized {
		logger.Warn("unauthorized response, clearing session",
			"endpoint", endpoint, "request_id", requestID)
		if err := c.session.Clear(); err != nil {
			logger.Error("failed to clear session", "error", err)
		}
		c.redirectToLogin()
		return nil, ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}
		var parsed errorBody
		if len(raw) > 0 && json.Unmarshal(raw, &parsed) == nil {
			apiErr.Message = parsed.text()
		}
		logger.Warn("backend error",
			"endpoint", endpoint, "status", resp.StatusCode,
			"message", apiErr.Message, "request_id", requestID)
		if resp.StatusCode >= 500 {
			c.reporter.CaptureException(apiErr)
		}
		return nil, apiErr
	}

	// Success with no payload is a valid outcome, not an error.
	if resp.StatusCode == http.StatusNoContent || len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

// resolve picks the base URL for an endpoint: explicit service tag first,
// then longest-prefix match against the route table.
func (c *Client) resolve(endpoint string, explicit Service) string {
	if explicit != "" {
		if base, ok := c.bases[explicit]; ok {
			return base
		}
	}

	var matched Service
	longest := -1
	for prefix, svc := range serviceRoutes {
		if strings.HasPrefix(endpoint, prefix) && len(prefix) > longest {
			matched = svc
			longest = len(prefix)
		}
	}
	if longest < 0 {
		logger.Warn("no service mapping for endpoint, falling back to user service",
			"endpoint", endpoint)
		matched = ServiceUser
	}
	return c.bases[matched]
}

func (c *Client) redirectToLogin() {
	if c.redirect != nil {
		c.redirect(LoginPath)
	}
}

// Healthy probes a service's health endpoint, outside the /api root.
func (c *Client) Healthy(ctx context.Context, svc Service) bool {
	base, ok := c.bases[svc]
	if !ok {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode <= 299
}

// ServiceStatuses reports reachability of every routed backend.
func (c *Client) ServiceStatuses(ctx context.Context) map[Service]bool {
	statuses := make(map[Service]bool, len(c.bases))
	for svc := range c.bases {
		statuses[svc] = c.Healthy(ctx, svc)
	}
	return statuses
}
