package session

import (
	"io"
	"log/slog"
	"testing"

	"github.com/zalando/go-keyring"

	apierrors "github.com/linearops/linear-mcp-server/internal/errors"
)

func noEnv(string) (string, bool) { return "", false }

func envWith(key string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		if name == EnvAPIKey {
			return key, true
		}
		return "", false
	}
}

func newTestProvider(t *testing.T, opts ...Option) *Provider {
	t.Helper()
	keyring.MockInit()
	base := []Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithEnvLookup(noEnv),
	}
	return NewProvider(append(base, opts...)...)
}

func TestClientWithoutCredentialIsAuthError(t *testing.T) {
	p := newTestProvider(t)

	_, err := p.Client()
	if err == nil {
		t.Fatal("expected AuthError")
	}
	if !apierrors.IsAuth(err) {
		t.Errorf("error %v should be an AuthError", err)
	}
}

func TestClientFromEnvironment(t *testing.T) {
	p := newTestProvider(t, WithEnvLookup(envWith("lin_api_env")))

	client, err := p.Client()
	if err != nil {
		t.Fatalf("Client failed: %v", err)
	}
	if client == nil {
		t.Fatal("client is nil")
	}

	ok, source := p.Status()
	if !ok || source != SourceEnv {
		t.Errorf("Status = (%v, %q), want (true, environment)", ok, source)
	}
}

func TestClientIsCached(t *testing.T) {
	p := newTestProvider(t, WithEnvLookup(envWith("lin_api_env")))

	first, err := p.Client()
	if err != nil {
		t.Fatalf("Client failed: %v", err)
	}
	second, err := p.Client()
	if err != nil {
		t.Fatalf("Client failed: %v", err)
	}
	if first != second {
		t.Error("provider should reuse the cached client")
	}
}

func TestSaveAPIKeyAndClientFromKeyring(t *testing.T) {
	p := newTestProvider(t)

	if err := p.SaveAPIKey("lin_api_stored"); err != nil {
		t.Fatalf("SaveAPIKey failed: %v", err)
	}

	client, err := p.Client()
	if err != nil {
		t.Fatalf("Client failed: %v", err)
	}
	if client == nil {
		t.Fatal("client is nil")
	}

	ok, source := p.Status()
	if !ok || source != SourceKeyring {
		t.Errorf("Status = (%v, %q), want (true, keyring)", ok, source)
	}
}

func TestSaveAPIKeyRejectsEmpty(t *testing.T) {
	p := newTestProvider(t)

	err := p.SaveAPIKey("   ")
	if err == nil {
		t.Fatal("expected ValidationError")
	}
	if !apierrors.IsValidation(err) {
		t.Errorf("error %v should be a ValidationError", err)
	}
}

func TestLogoutClearsKeyringSession(t *testing.T) {
	p := newTestProvider(t)

	if err := p.SaveAPIKey("lin_api_stored"); err != nil {
		t.Fatalf("SaveAPIKey failed: %v", err)
	}
	if _, err := p.Client(); err != nil {
		t.Fatalf("Client failed: %v", err)
	}

	envStillSet, err := p.Logout()
	if err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if envStillSet {
		t.Error("envStillSet = true with no environment credential")
	}

	if _, err := p.Client(); !apierrors.IsAuth(err) {
		t.Errorf("after logout, Client error = %v, want AuthError", err)
	}
}

func TestLogoutWarnsAboutEnvCredential(t *testing.T) {
	p := newTestProvider(t, WithEnvLookup(envWith("lin_api_env")))

	envStillSet, err := p.Logout()
	if err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if !envStillSet {
		t.Error("envStillSet = false, but LINEAR_API_KEY is set")
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	p := newTestProvider(t)

	if _, err := p.Logout(); err != nil {
		t.Fatalf("first Logout failed: %v", err)
	}
	if _, err := p.Logout(); err != nil {
		t.Fatalf("second Logout failed: %v", err)
	}
}
