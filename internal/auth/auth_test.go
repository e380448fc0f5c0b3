package auth

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zalando/go-keyring"

	"github.com/linearops/linear-mcp-server/internal/linear"
	"github.com/linearops/linear-mcp-server/internal/session"
)

func newTestHandler(t *testing.T, response string, env map[string]string) *Handler {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sess := session.NewProvider(
		session.WithLogger(logger),
		session.WithEnvLookup(func(name string) (string, bool) {
			v, ok := env[name]
			return v, ok
		}),
		session.WithClientOptions(linear.WithEndpoint(server.URL), linear.WithLogger(logger)),
	)
	return NewHandler(sess, logger)
}

const viewerResponse = `{"data":{"viewer":{
	"id":"usr-1","name":"Ada","displayName":"ada","email":"ada@acme.dev","active":true}}}`

func TestAuthStatusAuthenticated(t *testing.T) {
	keyring.MockInit()
	h := newTestHandler(t, viewerResponse, map[string]string{session.EnvAPIKey: "lin_api_test"})

	result, err := h.AuthStatus(context.Background(), AuthStatusArgs{})
	if err != nil {
		t.Fatalf("AuthStatus failed: %v", err)
	}
	if !result.Authenticated {
		t.Fatal("Authenticated = false")
	}
	for _, want := range []string{"Ada", "ada@acme.dev", "environment"} {
		if !strings.Contains(result.Text(), want) {
			t.Errorf("Text() = %q, missing %q", result.Text(), want)
		}
	}
}

func TestAuthStatusNoCredential(t *testing.T) {
	keyring.MockInit()
	h := newTestHandler(t, `{}`, nil)

	result, err := h.AuthStatus(context.Background(), AuthStatusArgs{})
	if err != nil {
		t.Fatalf("AuthStatus should report, not fail: %v", err)
	}
	if result.Authenticated {
		t.Error("Authenticated = true without a credential")
	}
	if !strings.Contains(result.Text(), "Not authenticated") {
		t.Errorf("Text() = %q", result.Text())
	}
}

func TestAuthStatusRejectedCredential(t *testing.T) {
	keyring.MockInit()
	h := newTestHandler(t, `{"errors":[{"message":"authentication failed"}]}`,
		map[string]string{session.EnvAPIKey: "lin_api_revoked"})

	result, err := h.AuthStatus(context.Background(), AuthStatusArgs{})
	if err != nil {
		t.Fatalf("AuthStatus should report, not fail: %v", err)
	}
	if result.Authenticated {
		t.Error("a rejected credential must not read as authenticated")
	}
	if !strings.Contains(result.Text(), "rejected") {
		t.Errorf("Text() = %q", result.Text())
	}
}

func TestLogoutClearsKeyring(t *testing.T) {
	keyring.MockInit()
	h := newTestHandler(t, `{}`, nil)
	if err := keyring.Set("linear-mcp-server", "api-key", "lin_api_stored"); err != nil {
		t.Fatal(err)
	}

	result, err := h.Logout(context.Background(), LogoutArgs{})
	if err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if result.Text() != "Logged out of Linear." {
		t.Errorf("Text() = %q", result.Text())
	}
	if _, err := keyring.Get("linear-mcp-server", "api-key"); err == nil {
		t.Error("stored credential should be gone")
	}
}

func TestLogoutWarnsAboutEnvCredential(t *testing.T) {
	keyring.MockInit()
	h := newTestHandler(t, `{}`, map[string]string{session.EnvAPIKey: "lin_api_env"})

	result, err := h.Logout(context.Background(), LogoutArgs{})
	if err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if !strings.Contains(result.Text(), "LINEAR_API_KEY") {
		t.Errorf("Text() = %q, should mention the environment credential", result.Text())
	}
}
