package projects

import (
	apierrors "github.com/linearops/linear-mcp-server/internal/errors"
	"github.com/linearops/linear-mcp-server/internal/issues"
)

// ValidateCreateProjectWithIssues checks the combined protocol's arguments.
// The issue list may be empty (project-only creation), but present items are
// validated individually.
func ValidateCreateProjectWithIssues(args CreateProjectWithIssuesArgs) error {
	if args.Project.Name == "" {
		return apierrors.NewValidationError("project.name", "project.name is required")
	}
	if len(args.Project.TeamIDs) == 0 {
		return apierrors.NewValidationError("project.teamIds",
			`project.teamIds must be a non-empty array of team IDs, e.g. {"project": {"name": "Q1 Planning", "teamIds": ["team-id"]}}`)
	}
	if len(args.Issues) > 0 {
		return issues.ValidateIssueInputs("issues", args.Issues)
	}
	return nil
}

// ValidateSearchProjects requires at least one of name or teamId so an
// unbounded workspace scan is never issued by accident.
func ValidateSearchProjects(args SearchProjectsArgs) error {
	if args.Name == "" && args.TeamID == "" {
		return apierrors.NewValidationError("",
			`provide at least one of name or teamId, e.g. {"name": "Q1"} or {"teamId": "team-id"}`)
	}
	return nil
}

// ValidateGetProject checks arguments for a single project lookup.
func ValidateGetProject(args GetProjectArgs) error {
	if args.ID == "" {
		return apierrors.NewValidationError("id", "id is required")
	}
	return nil
}
