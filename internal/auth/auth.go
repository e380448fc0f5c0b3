// Package auth implements the session tool family: reporting the current
// authentication state and clearing a stored credential. All state changes go
// through the session provider.
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linearops/linear-mcp-server/internal/session"
)

// AuthStatusArgs is intentionally empty.
type AuthStatusArgs struct{}

// AuthStatusResult reports whether a session exists and, when it does, which
// user the credential authenticates as.
type AuthStatusResult struct {
	Authenticated bool   `json:"authenticated"`
	Source        string `json:"source,omitempty"`
	UserName      string `json:"userName,omitempty"`
	UserEmail     string `json:"userEmail,omitempty"`
	Message       string `json:"message"`
}

// Text renders the status line.
func (r AuthStatusResult) Text() string { return r.Message }

// LogoutArgs is intentionally empty.
type LogoutArgs struct{}

// LogoutResult confirms the credential was cleared.
type LogoutResult struct {
	Message string `json:"message"`
}

// Text renders the confirmation.
func (r LogoutResult) Text() string { return r.Message }

// Handler serves the auth tool family.
type Handler struct {
	session *session.Provider
	logger  *slog.Logger
}

// NewHandler creates an auth handler bound to a session provider.
func NewHandler(sess *session.Provider, logger *slog.Logger) *Handler {
	return &Handler{session: sess, logger: logger}
}

// AuthStatus reports the current session. When a credential exists it is
// verified against the viewer endpoint so a revoked key reads as
// unauthenticated rather than as a stale "logged in".
func (h *Handler) AuthStatus(ctx context.Context, _ AuthStatusArgs) (AuthStatusResult, error) {
	ok, source := h.session.Status()
	if !ok {
		return AuthStatusResult{
			Message: "Not authenticated with Linear. Set LINEAR_API_KEY or store a credential first.",
		}, nil
	}

	client, err := h.session.Client()
	if err != nil {
		return AuthStatusResult{}, err
	}
	viewer, err := client.GetUser(ctx)
	if err != nil {
		h.logger.Warn("Credential present but viewer lookup failed", "source", string(source), "error", err)
		return AuthStatusResult{
			Source:  string(source),
			Message: fmt.Sprintf("A credential is configured (%s) but Linear rejected it: %v", source, err),
		}, nil
	}

	return AuthStatusResult{
		Authenticated: true,
		Source:        string(source),
		UserName:      viewer.Name,
		UserEmail:     viewer.Email,
		Message:       fmt.Sprintf("Authenticated with Linear as %s (%s) via %s", viewer.Name, viewer.Email, source),
	}, nil
}

// Logout clears the stored keyring credential. An environment credential
// cannot be removed from inside the process, so its presence is called out.
func (h *Handler) Logout(_ context.Context, _ LogoutArgs) (LogoutResult, error) {
	envStillSet, err := h.session.Logout()
	if err != nil {
		return LogoutResult{}, err
	}
	if envStillSet {
		return LogoutResult{
			Message: "Cleared the stored credential, but LINEAR_API_KEY is still set in the environment and remains active.",
		}, nil
	}
	return LogoutResult{Message: "Logged out of Linear."}, nil
}
