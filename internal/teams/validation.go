package teams

import apierrors "github.com/linearops/linear-mcp-server/internal/errors"

// ValidateGetTeamStates checks arguments for a team state lookup.
func ValidateGetTeamStates(args GetTeamStatesArgs) error {
	if args.TeamID == "" {
		return apierrors.NewValidationError("teamId", "teamId is required")
	}
	return nil
}

// ValidateGetTeamLabels checks arguments for a team label lookup.
func ValidateGetTeamLabels(args GetTeamLabelsArgs) error {
	if args.TeamID == "" {
		return apierrors.NewValidationError("teamId", "teamId is required")
	}
	return nil
}
