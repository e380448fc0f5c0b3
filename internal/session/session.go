// Package session owns the process-wide Linear authentication state. It
// resolves an API key from the environment or the OS keyring, hands out a
// ready gateway client, and is the only place the auth tool family writes
// through. Handlers receive the provider explicitly so tests can point it at
// a fake gateway.
package session

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/zalando/go-keyring"

	apierrors "github.com/linearops/linear-mcp-server/internal/errors"
	"github.com/linearops/linear-mcp-server/internal/linear"
)

const (
	// EnvAPIKey is the environment variable holding a Linear API key. It
	// takes precedence over the keyring.
	EnvAPIKey = "LINEAR_API_KEY"

	keyringService = "linear-mcp-server"
	keyringAccount = "api-key"
)

// Source identifies where the current credential came from.
type Source string

const (
	SourceNone    Source = ""
	SourceEnv     Source = "environment"
	SourceKeyring Source = "keyring"
)

// Provider resolves the current session and constructs gateway clients.
type Provider struct {
	mu         sync.Mutex
	logger     *slog.Logger
	clientOpts []linear.ClientOption
	lookupEnv  func(string) (string, bool)

	client *linear.Client
	source Source
}

// Option configures the Provider.
type Option func(*Provider)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) { p.logger = l }
}

// WithClientOptions passes options through to every gateway client the
// provider constructs. Tests use this to redirect the endpoint.
func WithClientOptions(opts ...linear.ClientOption) Option {
	return func(p *Provider) { p.clientOpts = opts }
}

// WithEnvLookup replaces environment resolution, for tests.
func WithEnvLookup(fn func(string) (string, bool)) Option {
	return func(p *Provider) { p.lookupEnv = fn }
}

// NewProvider creates a session provider.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Client returns a gateway client for the current session, or an AuthError
// when no credential is available. The client is cached until the session
// changes.
func (p *Provider) Client() (*linear.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}

	key, source := p.resolveKey()
	if key == "" {
		return nil, apierrors.NewAuthError("")
	}

	p.client = linear.NewClient(key, p.clientOpts...)
	p.source = source
	p.logger.Debug("Linear session established", "source", string(source))
	return p.client, nil
}

// Status reports whether a credential is available and where it came from,
// without constructing a client.
func (p *Provider) Status() (bool, Source) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return true, p.source
	}
	key, source := p.resolveKey()
	return key != "", source
}

// SaveAPIKey stores an API key in the OS keyring and resets the cached
// session so the next call uses it.
func (p *Provider) SaveAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return apierrors.NewValidationError("apiKey", "apiKey must be a non-empty Linear API key")
	}

	if err := keyring.Set(keyringService, keyringAccount, key); err != nil {
		return apierrors.NewUpstreamError("keyring.Set", err)
	}

	p.mu.Lock()
	p.client = nil
	p.source = SourceNone
	p.mu.Unlock()

	p.logger.Info("Stored Linear API key in system keyring")
	return nil
}

// Logout removes the stored keyring credential and drops the cached client.
// An environment credential cannot be cleared from here; the caller is told
// when one is still active.
func (p *Provider) Logout() (envStillSet bool, err error) {
	if err := keyring.Delete(keyringService, keyringAccount); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return false, apierrors.NewUpstreamError("keyring.Delete", err)
	}

	p.mu.Lock()
	p.client = nil
	p.source = SourceNone
	p.mu.Unlock()

	if env, ok := p.getenv(EnvAPIKey); ok && env != "" {
		return true, nil
	}
	p.logger.Info("Cleared Linear session")
	return false, nil
}

func (p *Provider) resolveKey() (string, Source) {
	if env, ok := p.getenv(EnvAPIKey); ok && strings.TrimSpace(env) != "" {
		return strings.TrimSpace(env), SourceEnv
	}

	stored, err := keyring.Get(keyringService, keyringAccount)
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			p.logger.Warn("Keyring lookup failed", "error", err)
		}
		return "", SourceNone
	}
	if strings.TrimSpace(stored) == "" {
		return "", SourceNone
	}
	return strings.TrimSpace(stored), SourceKeyring
}

func (p *Provider) getenv(name string) (string, bool) {
	if p.lookupEnv != nil {
		return p.lookupEnv(name)
	}
	return os.LookupEnv(name)
}
