package teams

import (
	"context"
	"log/slog"

	"github.com/linearops/linear-mcp-server/internal/linear"
	"github.com/linearops/linear-mcp-server/internal/session"
)

// Handler serves the team tool family.
type Handler struct {
	session *session.Provider
	logger  *slog.Logger
}

// NewHandler creates a team handler bound to a session provider.
func NewHandler(sess *session.Provider, logger *slog.Logger) *Handler {
	return &Handler{session: sess, logger: logger}
}

// GetTeams lists every team visible to the authenticated user.
func (h *Handler) GetTeams(ctx context.Context, _ GetTeamsArgs) (GetTeamsResult, error) {
	client, err := h.session.Client()
	if err != nil {
		return GetTeamsResult{}, err
	}

	found, err := client.GetTeams(ctx)
	if err != nil {
		return GetTeamsResult{}, err
	}
	if found == nil {
		found = []linear.Team{}
	}
	return GetTeamsResult{Teams: found, TotalResults: len(found)}, nil
}

// GetTeamStates lists a team's workflow states. An unknown team surfaces as a
// classified not-found error.
func (h *Handler) GetTeamStates(ctx context.Context, args GetTeamStatesArgs) (GetTeamStatesResult, error) {
	client, err := h.session.Client()
	if err != nil {
		return GetTeamStatesResult{}, err
	}
	if err := ValidateGetTeamStates(args); err != nil {
		return GetTeamStatesResult{}, err
	}

	states, err := client.GetTeamStates(ctx, args.TeamID)
	if err != nil {
		return GetTeamStatesResult{}, err
	}
	return GetTeamStatesResult{TeamID: args.TeamID, States: states}, nil
}

// GetTeamLabels lists a team's labels.
func (h *Handler) GetTeamLabels(ctx context.Context, args GetTeamLabelsArgs) (GetTeamLabelsResult, error) {
	client, err := h.session.Client()
	if err != nil {
		return GetTeamLabelsResult{}, err
	}
	if err := ValidateGetTeamLabels(args); err != nil {
		return GetTeamLabelsResult{}, err
	}

	labels, err := client.GetTeamLabels(ctx, args.TeamID)
	if err != nil {
		return GetTeamLabelsResult{}, err
	}
	return GetTeamLabelsResult{TeamID: args.TeamID, Labels: labels}, nil
}
