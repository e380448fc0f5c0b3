// Package teams implements the read-only team tool family: team listing and
// per-team workflow state and label lookups.
package teams

import "github.com/linearops/linear-mcp-server/internal/linear"

// GetTeamsArgs is intentionally empty: the tool lists every team the
// authenticated user can see.
type GetTeamsArgs struct{}

// GetTeamsResult is the result of listing teams.
type GetTeamsResult struct {
	Teams        []linear.Team `json:"teams"`
	TotalResults int           `json:"total_results"`
}

// GetTeamStatesArgs contains parameters for listing a team's workflow states.
type GetTeamStatesArgs struct {
	TeamID string `json:"teamId" jsonschema:"required" jsonschema_description:"Team ID whose workflow states to list"`
}

// GetTeamStatesResult is the result of listing a team's workflow states.
type GetTeamStatesResult struct {
	TeamID string                 `json:"teamId"`
	States []linear.WorkflowState `json:"states"`
}

// GetTeamLabelsArgs contains parameters for listing a team's labels.
type GetTeamLabelsArgs struct {
	TeamID string `json:"teamId" jsonschema:"required" jsonschema_description:"Team ID whose labels to list"`
}

// GetTeamLabelsResult is the result of listing a team's labels.
type GetTeamLabelsResult struct {
	TeamID string         `json:"teamId"`
	Labels []linear.Label `json:"labels"`
}
