// Package users implements the viewer lookup tool: the user the current
// credential authenticates as.
package users

import (
	"context"
	"log/slog"

	"github.com/linearops/linear-mcp-server/internal/linear"
	"github.com/linearops/linear-mcp-server/internal/session"
)

// GetUserArgs is intentionally empty: the tool always returns the viewer.
type GetUserArgs struct{}

// GetUserResult is the result of a viewer lookup.
type GetUserResult struct {
	User *linear.User `json:"user"`
}

// Handler serves the user tool family.
type Handler struct {
	session *session.Provider
	logger  *slog.Logger
}

// NewHandler creates a user handler bound to a session provider.
func NewHandler(sess *session.Provider, logger *slog.Logger) *Handler {
	return &Handler{session: sess, logger: logger}
}

// GetUser returns the authenticated user.
func (h *Handler) GetUser(ctx context.Context, _ GetUserArgs) (GetUserResult, error) {
	client, err := h.session.Client()
	if err != nil {
		return GetUserResult{}, err
	}

	viewer, err := client.GetUser(ctx)
	if err != nil {
		return GetUserResult{}, err
	}
	return GetUserResult{User: viewer}, nil
}
