package credential

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func newRequest(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequestWithContext(
		context.Background(), http.MethodPost, "https://example.search.windows.net", http.NoBody,
	)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	return req
}

func TestKey_Apply(t *testing.T) {
	req := newRequest(t)

	if err := NewKey("admin-key").Apply(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := req.Header.Get("api-key"); got != "admin-key" {
		t.Errorf("expected api-key header, got %q", got)
	}
	if got := req.Header.Get("Authorization"); got != "" {
		t.Errorf("key credential must not set Authorization, got %q", got)
	}
}

func TestToken_Apply(t *testing.T) {
	req := newRequest(t)

	cred := NewToken(func(_ context.Context) (string, error) {
		return "abc123", nil
	})
	if err := cred.Apply(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer abc123" {
		t.Errorf("expected bearer header, got %q", got)
	}
}

func TestToken_Apply_ProviderError(t *testing.T) {
	req := newRequest(t)

	wantErr := errors.New("identity unavailable")
	cred := NewToken(func(_ context.Context) (string, error) {
		return "", wantErr
	})

	err := cred.Apply(req)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped provider error, got %v", err)
	}
}

func TestResolve_PrefersKey(t *testing.T) {
	cred, err := Resolve("admin-key", func(_ context.Context) (string, error) {
		return "tok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cred.(*Key); !ok {
		t.Fatalf("expected *Key, got %T", cred)
	}
}

func TestResolve_FallsBackToProvider(t *testing.T) {
	cred, err := Resolve("", func(_ context.Context) (string, error) {
		return "tok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cred.(*Token); !ok {
		t.Fatalf("expected *Token, got %T", cred)
	}
}

func TestResolve_AmbientEnvToken(t *testing.T) {
	t.Setenv(TokenEnvVar, "env-token")

	cred, err := Resolve("", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := newRequest(t)
	if err := cred.Apply(req); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer env-token" {
		t.Errorf("expected ambient env token, got %q", got)
	}
}

func TestResolve_NoCredential(t *testing.T) {
	t.Setenv(TokenEnvVar, "")

	if _, err := Resolve("", nil); !errors.Is(err, ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}
}
