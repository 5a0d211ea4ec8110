// Package oauth exchanges REST client credentials for a bearer access
// token and caches it in-memory until expiry. Resolution of account
// credentials is a separate concern; this collaborator serves callers of
// the REST surface, where the token is mandatory per request context.
package oauth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/suncar110/paycore/internal/observability"
	"github.com/suncar110/paycore/internal/transport"
)

// expirySafetyWindow is subtracted from the server-reported lifetime so a
// token is never handed out moments before it lapses mid-call.
const expirySafetyWindow = 30 * time.Second

// TokenCredential acquires and caches an OAuth access token using the
// client_credentials grant. Safe for concurrent use; a refresh is
// single-flight behind the mutex so concurrent callers after expiry cause
// one fetch.
type TokenCredential struct {
	clientID     string
	clientSecret string
	endpoint     string
	client       *transport.Client
	logger       *slog.Logger
	metrics      *observability.MetricsCollector
	tracer       trace.Tracer

	mu        sync.Mutex
	token     string
	tokenType string
	expiresAt time.Time
}

// Option configures optional TokenCredential collaborators.
type Option func(*TokenCredential)

// WithMetrics enables token fetch metrics.
func WithMetrics(metrics *observability.MetricsCollector) Option {
	return func(t *TokenCredential) { t.metrics = metrics }
}

// WithTracer sets the tracer used to span token fetches.
func WithTracer(tracer trace.Tracer) Option {
	return func(t *TokenCredential) { t.tracer = tracer }
}

// NewTokenCredential creates a TokenCredential against the given token
// endpoint.
func NewTokenCredential(clientID, clientSecret, endpoint string, client *transport.Client, logger *slog.Logger, opts ...Option) (*TokenCredential, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("client id and secret are required")
	}
	if endpoint == "" {
		return nil, fmt.Errorf("token endpoint is required")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	t := &TokenCredential{
		clientID:     clientID,
		clientSecret: clientSecret,
		endpoint:     endpoint,
		client:       client,
		logger:       logger,
		tracer:       noop.NewTracerProvider().Tracer(""),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// GetAccessToken returns a header-ready token ("Bearer xxx..."), fetching
// a fresh one when the cached token is absent or inside the expiry safety
// window.
func (t *TokenCredential) GetAccessToken(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.token != "" && time.Now().Before(t.expiresAt) {
		return t.tokenType + " " + t.token, nil
	}
	if err := t.fetch(ctx); err != nil {
		return "", err
	}
	return t.tokenType + " " + t.token, nil
}

// ExpiresIn reports the remaining cached-token lifetime; zero or negative
// means the next GetAccessToken fetches.
func (t *TokenCredential) ExpiresIn() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.token == "" {
		return 0
	}
	return time.Until(t.expiresAt)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (t *TokenCredential) fetch(ctx context.Context) error {
	ctx, span := t.tracer.Start(ctx, "oauth.fetch_token",
		trace.WithAttributes(attribute.String("oauth.endpoint", t.endpoint)))
	defer span.End()

	basic := base64.StdEncoding.EncodeToString([]byte(t.clientID + ":" + t.clientSecret))
	form := url.Values{"grant_type": {"client_credentials"}}

	headers := http.Header{}
	headers.Set("Authorization", "Basic "+basic)
	headers.Set("Content-Type", "application/x-www-form-urlencoded")
	headers.Set("Accept", "application/json")

	resp, err := t.client.Execute(ctx, http.MethodPost, t.endpoint, headers, []byte(form.Encode()))
	if err != nil {
		t.observe("error")
		span.RecordError(err)
		span.SetStatus(codes.Error, "token request failed")
		return fmt.Errorf("requesting access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.observe(fmt.Sprintf("%d", resp.StatusCode))
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		err := fmt.Errorf("token endpoint returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
		span.RecordError(err)
		span.SetStatus(codes.Error, "token endpoint rejected request")
		return err
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		t.observe("malformed")
		span.RecordError(err)
		return fmt.Errorf("decoding token response: %w", err)
	}
	if tok.AccessToken == "" {
		t.observe("malformed")
		return fmt.Errorf("token response has no access_token")
	}
	if tok.TokenType == "" {
		tok.TokenType = "Bearer"
	}

	// A lifetime inside the safety window counts as already stale.
	lifetime := time.Duration(tok.ExpiresIn)*time.Second - expirySafetyWindow
	if lifetime < 0 {
		lifetime = 0
	}

	t.token = tok.AccessToken
	t.tokenType = tok.TokenType
	t.expiresAt = time.Now().Add(lifetime)
	t.observe("ok")
	t.logger.Debug("access token acquired",
		slog.String("token_type", tok.TokenType),
		slog.Duration("lifetime", lifetime))
	return nil
}

func (t *TokenCredential) observe(status string) {
	if t.metrics == nil {
		return
	}
	t.metrics.TokenRequestsTotal.WithLabelValues(status).Inc()
}
