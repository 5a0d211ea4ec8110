package oauth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/suncar110/paycore/internal/transport"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func tokenServer(t *testing.T, calls *atomic.Int32, expiresIn int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		want := "Basic " + base64.StdEncoding.EncodeToString([]byte("client-id:client-secret"))
		if r.Header.Get("Authorization") != want {
			t.Errorf("wrong authorization header: %q", r.Header.Get("Authorization"))
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), "grant_type=client_credentials") {
			t.Errorf("wrong grant: %q", body)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": fmt.Sprintf("token-%d", calls.Load()),
			"token_type":   "Bearer",
			"expires_in":   expiresIn,
		})
	}))
}

func newTestCredential(t *testing.T, endpoint string) *TokenCredential {
	t.Helper()
	client := transport.NewClient(transport.Config{MaxRetries: -1}, testLogger())
	tc, err := NewTokenCredential("client-id", "client-secret", endpoint, client, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return tc
}

func TestTokenCredential_FetchAndCache(t *testing.T) {
	var calls atomic.Int32
	srv := tokenServer(t, &calls, 3600)
	defer srv.Close()

	tc := newTestCredential(t, srv.URL)

	token, err := tc.GetAccessToken(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "Bearer token-1" {
		t.Fatalf("unexpected token: %q", token)
	}

	// Cached: no second request inside the lifetime.
	for i := 0; i < 5; i++ {
		again, err := tc.GetAccessToken(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != token {
			t.Fatalf("cached token changed: %q", again)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single fetch, got %d", calls.Load())
	}
	if tc.ExpiresIn() <= 0 {
		t.Fatalf("cached token should report remaining lifetime")
	}
}

func TestTokenCredential_RefetchAfterExpiry(t *testing.T) {
	var calls atomic.Int32
	// expires_in below the safety window: the token is already inside the
	// window when cached, so the next call refetches.
	srv := tokenServer(t, &calls, 1)
	defer srv.Close()

	tc := newTestCredential(t, srv.URL)

	first, err := tc.GetAccessToken(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := tc.GetAccessToken(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Fatalf("expected a fresh token after expiry, got %q twice", first)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 fetches, got %d", calls.Load())
	}
}

func TestTokenCredential_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	tc := newTestCredential(t, srv.URL)
	if _, err := tc.GetAccessToken(context.Background()); err == nil {
		t.Fatal("expected error for rejected client")
	}
}

func TestTokenCredential_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"token_type":"Bearer"}`))
	}))
	defer srv.Close()

	tc := newTestCredential(t, srv.URL)
	if _, err := tc.GetAccessToken(context.Background()); err == nil {
		t.Fatal("expected error for response without access_token")
	}
}

func TestNewTokenCredential_Validation(t *testing.T) {
	client := transport.NewClient(transport.Config{}, testLogger())
	if _, err := NewTokenCredential("", "secret", "https://x", client, testLogger()); err == nil {
		t.Fatal("expected error for missing client id")
	}
	if _, err := NewTokenCredential("id", "secret", "", client, testLogger()); err == nil {
		t.Fatal("expected error for missing endpoint")
	}
}
