// Package transport wraps net/http for the SDK's outbound calls:
// per-attempt timeout, bounded exponential-backoff retries on transport
// errors and 5xx responses, default headers, and structured attempt
// logging. The credential engine itself never touches the network; this
// client serves the OAuth and API collaborators around it.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/suncar110/paycore/internal/observability"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
	defaultUserAgent  = "paycore-go"
)

// Config configures a Client.
type Config struct {
	Timeout    time.Duration // Per-attempt timeout. 0 = 30s.
	MaxRetries int           // Retries after the first attempt. Negative = none, 0 = 3.
	UserAgent  string        // 0-value = "paycore-go".
}

// Client is a retrying HTTP client. Safe for concurrent use.
type Client struct {
	http    *http.Client
	cfg     Config
	logger  *slog.Logger
	metrics *observability.MetricsCollector
}

// ClientOption configures optional Client collaborators.
type ClientOption func(*Client)

// WithMetrics enables outbound HTTP metrics.
func WithMetrics(metrics *observability.MetricsCollector) ClientOption {
	return func(c *Client) { c.metrics = metrics }
}

// NewClient creates a Client with the given settings.
func NewClient(cfg Config, logger *slog.Logger, opts ...ClientOption) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c := &Client{
		http:   &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Execute sends the request, building a fresh *http.Request per attempt so
// the body can be replayed on retry. Responses with status < 500 are
// returned as-is — callers own status handling; only transport errors and
// 5xx are retried. The returned response body must be closed by the
// caller.
func (c *Client) Execute(ctx context.Context, method, url string, headers http.Header, body []byte) (*http.Response, error) {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.cfg.MaxRetries)),
		ctx,
	)

	attempt := 0
	var resp *http.Response
	operation := func() error {
		attempt++
		r, err := c.attempt(ctx, method, url, headers, body, attempt)
		if err != nil {
			return err
		}
		resp = r
		return nil
	}
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, fmt.Errorf("%s %s failed after %d attempt(s): %w", method, url, attempt, err)
	}
	return resp, nil
}

func (c *Client) attempt(ctx context.Context, method, url string, headers http.Header, body []byte, attempt int) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	for name, values := range headers {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		c.logger.Warn("http attempt failed",
			slog.String("method", method),
			slog.String("url", url),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
		c.observe(method, "error", elapsed)
		return nil, err
	}

	c.observe(method, strconv.Itoa(resp.StatusCode), elapsed)
	if resp.StatusCode >= http.StatusInternalServerError {
		// Drain so the connection can be reused across attempts.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		c.logger.Warn("http attempt returned server error",
			slog.String("method", method),
			slog.String("url", url),
			slog.Int("attempt", attempt),
			slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}
	return resp, nil
}

func (c *Client) observe(method, status string, elapsed time.Duration) {
	if c.metrics == nil {
		return
	}
	c.metrics.HTTPRequestsTotal.WithLabelValues(method, status).Inc()
	c.metrics.HTTPRequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}
