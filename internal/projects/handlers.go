// Package projects implements the project tool family, including the
// combined create-project-with-issues protocol: the project is created
// first, and only then are issues batch-created inside it. The two steps are
// not atomic; a failed issue batch leaves the project in place and the
// response names it so the caller can resume.
package projects

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	apierrors "github.com/linearops/linear-mcp-server/internal/errors"
	"github.com/linearops/linear-mcp-server/internal/issues"
	"github.com/linearops/linear-mcp-server/internal/linear"
	"github.com/linearops/linear-mcp-server/internal/session"
	"github.com/linearops/linear-mcp-server/metrics"
)

// archivedProjectStates are terminal project states excluded from search
// results unless the caller opts in.
var archivedProjectStates = map[string]struct{}{
	"completed": {},
	"canceled":  {},
	"cancelled": {},
	"archived":  {},
}

// issuesPageSize bounds the secondary issue fetch of get-project.
const issuesPageSize = 100

// Handler orchestrates the project tool family.
type Handler struct {
	session *session.Provider
	logger  *slog.Logger
}

// NewHandler creates a project handler bound to a session provider.
func NewHandler(sess *session.Provider, logger *slog.Logger) *Handler {
	return &Handler{session: sess, logger: logger}
}

// CreateProjectWithIssues creates a project and then batch-creates its
// issues. If project creation fails, no issue call is made. If the issue
// batch fails after the project exists, the error names the project's id and
// URL; the orphaned project is left for the caller, never rolled back.
func (h *Handler) CreateProjectWithIssues(ctx context.Context, args CreateProjectWithIssuesArgs) (CreateProjectWithIssuesResult, error) {
	client, err := h.session.Client()
	if err != nil {
		return CreateProjectWithIssuesResult{}, err
	}
	if err := ValidateCreateProjectWithIssues(args); err != nil {
		return CreateProjectWithIssuesResult{}, err
	}
	h.warnForeignTeams(args)

	projectPayload, err := client.CreateProject(ctx, linear.ProjectCreateInput{
		Name:        args.Project.Name,
		Description: args.Project.Description,
		TeamIDs:     args.Project.TeamIDs,
	})
	if err != nil {
		return CreateProjectWithIssuesResult{}, err
	}
	if !projectPayload.Success || projectPayload.Project == nil {
		return CreateProjectWithIssuesResult{}, apierrors.NewUpstreamError("projectCreate", errors.New("gateway reported failure"))
	}
	project := projectPayload.Project

	if len(args.Issues) == 0 {
		return CreateProjectWithIssuesResult{Project: project}, nil
	}

	batch, err := client.CreateIssues(ctx, issues.ToCreateInputs(args.Issues, project.ID))
	if err == nil && !batch.Success {
		err = apierrors.NewUpstreamError("issueBatchCreate", errors.New("gateway reported failure"))
	}
	if err != nil {
		metrics.BatchPartialFailures.WithLabelValues("linear_create_project_with_issues").Inc()
		h.logger.Warn("Issue batch failed after project creation",
			"project_id", project.ID,
			"project_url", project.URL,
			"error", err,
		)
		return CreateProjectWithIssuesResult{}, &apierrors.PartialFailureError{
			FailedStep:  "issueBatchCreate",
			CreatedIDs:  []string{project.ID},
			CreatedURLs: []string{project.URL},
			Err:         fmt.Errorf("project %q was created but its issues were not: %w", project.Name, err),
		}
	}

	return CreateProjectWithIssuesResult{Project: project, Issues: batch.Issues}, nil
}

// SearchProjects returns projects matching the given filters. Terminal
// project states are excluded unless the caller opts in.
func (h *Handler) SearchProjects(ctx context.Context, args SearchProjectsArgs) (SearchProjectsResult, error) {
	client, err := h.session.Client()
	if err != nil {
		return SearchProjectsResult{}, err
	}
	if err := ValidateSearchProjects(args); err != nil {
		return SearchProjectsResult{}, err
	}

	limit := args.Limit
	if limit <= 0 {
		limit = issues.DefaultSearchLimit
	}

	found, err := client.SearchProjects(ctx, linear.ProjectFilter{
		Name:   args.Name,
		TeamID: args.TeamID,
		Limit:  limit,
	})
	if err != nil {
		return SearchProjectsResult{}, err
	}

	if !args.IncludeArchived {
		kept := make([]linear.Project, 0, len(found))
		for _, p := range found {
			if _, archived := archivedProjectStates[strings.ToLower(p.State)]; archived {
				continue
			}
			kept = append(kept, p)
		}
		found = kept
	}

	if len(found) == 0 {
		return SearchProjectsResult{
			Projects: []linear.Project{},
			Message:  "No projects found matching the given filters.",
		}, nil
	}
	return SearchProjectsResult{Projects: found, TotalResults: len(found)}, nil
}

// GetProject fetches one project, optionally attaching its issues via a
// secondary call. A nonexistent ID is reported as text, not raised.
func (h *Handler) GetProject(ctx context.Context, args GetProjectArgs) (GetProjectResult, error) {
	client, err := h.session.Client()
	if err != nil {
		return GetProjectResult{}, err
	}
	if err := ValidateGetProject(args); err != nil {
		return GetProjectResult{}, err
	}

	project, err := client.GetProject(ctx, args.ID)
	if err != nil {
		if apierrors.Classify(err) == apierrors.KindNotFound {
			return GetProjectResult{
				Found:   false,
				Message: fmt.Sprintf("Project with ID %q does not exist", args.ID),
			}, nil
		}
		return GetProjectResult{}, err
	}

	if args.IncludeIssues {
		projectIssues, err := client.SearchIssues(ctx, linear.IssueFilter{
			ProjectID: args.ID,
			Limit:     issuesPageSize,
		})
		if err != nil {
			return GetProjectResult{}, err
		}
		project.Issues = projectIssues
	}

	return GetProjectResult{Project: project, Found: true}, nil
}

// warnForeignTeams logs when a batch issue references a team outside the
// project's team list. Advisory only: Linear accepts cross-team issues, so
// the mismatch is surfaced without failing the call.
func (h *Handler) warnForeignTeams(args CreateProjectWithIssuesArgs) {
	teams := make(map[string]struct{}, len(args.Project.TeamIDs))
	for _, id := range args.Project.TeamIDs {
		teams[id] = struct{}{}
	}
	for i, issue := range args.Issues {
		if _, ok := teams[issue.TeamID]; !ok {
			h.logger.Warn("Issue team is not among the project's teams",
				"index", i,
				"issue_team_id", issue.TeamID,
				"project_team_ids", args.Project.TeamIDs,
			)
		}
	}
}
