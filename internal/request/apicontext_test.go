package request

import "testing"

func TestNewAPIContext_RequiresToken(t *testing.T) {
	if _, err := NewAPIContext(""); err == nil {
		t.Fatal("expected error for empty access token")
	}
}

func TestAPIContext_AccessToken(t *testing.T) {
	ctx, err := NewAPIContext("Bearer abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.AccessToken() != "Bearer abc" {
		t.Fatalf("unexpected token: %q", ctx.AccessToken())
	}
}

func TestAPIContext_RequestIDGeneratedOnceAndStable(t *testing.T) {
	ctx, _ := NewAPIContext("Bearer abc")
	first := ctx.RequestID()
	if first == "" {
		t.Fatal("expected a generated request id")
	}
	if again := ctx.RequestID(); again != first {
		t.Fatalf("request id not stable: %q vs %q", first, again)
	}
}

func TestAPIContext_ExplicitRequestID(t *testing.T) {
	ctx, _ := NewAPIContext("Bearer abc")
	if err := ctx.SetRequestID("idempotency-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.RequestID() != "idempotency-1" {
		t.Fatalf("explicit id lost: %q", ctx.RequestID())
	}
	if err := ctx.SetRequestID(""); err == nil {
		t.Fatal("expected error for empty request id")
	}
}

func TestAPIContext_MaskRequestID(t *testing.T) {
	ctx, _ := NewAPIContext("Bearer abc")
	ctx.SetMaskRequestID(true)
	if id := ctx.RequestID(); id != "" {
		t.Fatalf("masked context must return empty id, got %q", id)
	}
	// Unmasking resumes lazy generation.
	ctx.SetMaskRequestID(false)
	if ctx.RequestID() == "" {
		t.Fatal("expected generated id after unmasking")
	}
}
