package projects

import (
	"fmt"
	"strings"

	"github.com/linearops/linear-mcp-server/internal/issues"
	"github.com/linearops/linear-mcp-server/internal/linear"
)

// ProjectInput describes the project to create in the combined
// create-project-with-issues protocol.
type ProjectInput struct {
	Name        string   `json:"name" jsonschema:"required" jsonschema_description:"Project name"`
	Description string   `json:"description,omitempty" jsonschema_description:"Project description"`
	TeamIDs     []string `json:"teamIds" jsonschema:"required" jsonschema_description:"Teams the project belongs to; must be non-empty"`
}

// CreateProjectWithIssuesArgs contains parameters for creating a project and
// batch-creating issues scoped to it.
type CreateProjectWithIssuesArgs struct {
	Project ProjectInput        `json:"project" jsonschema:"required" jsonschema_description:"Project to create"`
	Issues  []issues.IssueInput `json:"issues,omitempty" jsonschema_description:"Issues to create inside the new project"`
}

// CreateProjectWithIssuesResult is the result of the combined protocol.
type CreateProjectWithIssuesResult struct {
	Project *linear.Project `json:"project"`
	Issues  []linear.Issue  `json:"issues,omitempty"`
}

// Text renders the combined confirmation: project name and URL, the issue
// count, and one line per created issue.
func (r CreateProjectWithIssuesResult) Text() string {
	if r.Project == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Created project %q: %s", r.Project.Name, r.Project.URL)
	fmt.Fprintf(&b, "\nIssues created: %d", len(r.Issues))
	for _, issue := range r.Issues {
		fmt.Fprintf(&b, "\n- %s: %s (%s)", issue.Identifier, issue.Title, issue.URL)
	}
	return b.String()
}

// SearchProjectsArgs contains filters for a project search. At least one of
// name or teamId must be provided.
type SearchProjectsArgs struct {
	Name            string `json:"name,omitempty" jsonschema_description:"Text to match against project names"`
	TeamID          string `json:"teamId,omitempty" jsonschema_description:"Restrict to projects of one team"`
	Limit           int    `json:"limit,omitempty" jsonschema_description:"Maximum results (default 10)"`
	IncludeArchived bool   `json:"includeArchived,omitempty" jsonschema_description:"Include completed/canceled projects (default false)"`
}

// SearchProjectsResult is the result of a project search.
type SearchProjectsResult struct {
	Projects     []linear.Project `json:"projects"`
	TotalResults int              `json:"total_results"`
	Message      string           `json:"message,omitempty"`
}

// Text reports "no matches" descriptively; non-empty results pass through as
// structured data only.
func (r SearchProjectsResult) Text() string {
	if r.TotalResults == 0 {
		return r.Message
	}
	return ""
}

// GetProjectArgs contains parameters for fetching one project.
type GetProjectArgs struct {
	ID            string `json:"id" jsonschema:"required" jsonschema_description:"Project ID"`
	IncludeIssues bool   `json:"includeIssues,omitempty" jsonschema_description:"Also fetch the project's issues (default false)"`
}

// GetProjectResult is the result of fetching one project. A missing ID is a
// normal caller mistake and is reported as text, not raised.
type GetProjectResult struct {
	Project *linear.Project `json:"project,omitempty"`
	Found   bool            `json:"found"`
	Message string          `json:"message,omitempty"`
}

// Text reports the not-found case.
func (r GetProjectResult) Text() string {
	if !r.Found {
		return r.Message
	}
	return ""
}
