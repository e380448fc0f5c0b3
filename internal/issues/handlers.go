// Package issues implements the issue tool family: create, bulk create,
// bulk update, bulk delete, search, and lookup. Each handler acquires a
// session client, validates its arguments, performs the gateway calls, and
// shapes the response; failures surface through the shared error taxonomy.
package issues

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	apierrors "github.com/linearops/linear-mcp-server/internal/errors"
	"github.com/linearops/linear-mcp-server/internal/linear"
	"github.com/linearops/linear-mcp-server/internal/session"
)

// DefaultSearchLimit applies when the caller omits a limit.
const DefaultSearchLimit = 10

// archivedStateNames are terminal workflow state labels excluded from search
// results unless the caller opts in with includeArchived.
var archivedStateNames = map[string]struct{}{
	"done":      {},
	"completed": {},
	"canceled":  {},
	"cancelled": {},
	"archived":  {},
	"duplicate": {},
}

// Handler orchestrates the issue tool family.
type Handler struct {
	session *session.Provider
	logger  *slog.Logger
}

// NewHandler creates an issue handler bound to a session provider.
func NewHandler(sess *session.Provider, logger *slog.Logger) *Handler {
	return &Handler{session: sess, logger: logger}
}

// CreateIssue creates a single issue.
func (h *Handler) CreateIssue(ctx context.Context, args CreateIssueArgs) (CreateIssueResult, error) {
	client, err := h.session.Client()
	if err != nil {
		return CreateIssueResult{}, err
	}
	if err := ValidateCreateIssue(args); err != nil {
		return CreateIssueResult{}, err
	}

	payload, err := client.CreateIssue(ctx, linear.IssueCreateInput{
		Title:       args.Title,
		Description: args.Description,
		TeamID:      args.TeamID,
		ProjectID:   args.ProjectID,
		StateID:     args.StateID,
		AssigneeID:  args.AssigneeID,
		LabelIDs:    args.LabelIDs,
		Priority:    args.Priority,
	})
	if err != nil {
		return CreateIssueResult{}, err
	}
	if !payload.Success {
		return CreateIssueResult{}, apierrors.NewUpstreamError("issueCreate", errors.New("gateway reported failure"))
	}
	return CreateIssueResult{Issue: payload.Issue}, nil
}

// CreateIssues creates several issues in one batched call.
func (h *Handler) CreateIssues(ctx context.Context, args CreateIssuesArgs) (CreateIssuesResult, error) {
	client, err := h.session.Client()
	if err != nil {
		return CreateIssuesResult{}, err
	}
	if err := ValidateIssueInputs("issues", args.Issues); err != nil {
		return CreateIssuesResult{}, err
	}

	payload, err := client.CreateIssues(ctx, ToCreateInputs(args.Issues, ""))
	if err != nil {
		return CreateIssuesResult{}, err
	}
	if !payload.Success {
		return CreateIssuesResult{}, apierrors.NewUpstreamError("issueBatchCreate", errors.New("gateway reported failure"))
	}
	return CreateIssuesResult{Issues: payload.Issues, Count: len(payload.Issues)}, nil
}

// UpdateIssues applies one uniform update to every issue in the list. The
// gateway applies the batch as a whole; when it fails there is no per-issue
// outcome to surface, so the whole call fails.
func (h *Handler) UpdateIssues(ctx context.Context, args UpdateIssuesArgs) (UpdateIssuesResult, error) {
	client, err := h.session.Client()
	if err != nil {
		return UpdateIssuesResult{}, err
	}
	if err := ValidateUpdateIssues(args); err != nil {
		return UpdateIssuesResult{}, err
	}

	payload, err := client.UpdateIssues(ctx, args.IDs, linear.IssueUpdateInput{
		Title:       args.Update.Title,
		Description: args.Update.Description,
		StateID:     args.Update.StateID,
		AssigneeID:  args.Update.AssigneeID,
		Priority:    args.Update.Priority,
		LabelIDs:    args.Update.LabelIDs,
	})
	if err != nil {
		return UpdateIssuesResult{}, err
	}
	if !payload.Success {
		return UpdateIssuesResult{}, apierrors.NewUpstreamError("issueBatchUpdate",
			fmt.Errorf("gateway rejected the update for ids %s", strings.Join(args.IDs, ", ")))
	}

	count := len(payload.Issues)
	if count == 0 {
		count = len(args.IDs)
	}
	return UpdateIssuesResult{Issues: payload.Issues, Count: count}, nil
}

// DeleteIssues deletes the listed issues. Deletion is irreversible and any
// confirmation belongs to the calling protocol, not this layer. Sub-deletes
// fail independently; a partly-applied batch is reported, never hidden.
func (h *Handler) DeleteIssues(ctx context.Context, args DeleteIssuesArgs) (DeleteIssuesResult, error) {
	client, err := h.session.Client()
	if err != nil {
		return DeleteIssuesResult{}, err
	}
	if err := ValidateIDs("ids", args.IDs); err != nil {
		return DeleteIssuesResult{}, err
	}

	payload, err := client.DeleteIssues(ctx, args.IDs)
	if err != nil {
		return DeleteIssuesResult{}, err
	}

	failed := payload.Failed()
	if len(failed) == 0 {
		return DeleteIssuesResult{Deleted: args.IDs}, nil
	}
	if len(failed) == len(args.IDs) {
		return DeleteIssuesResult{}, apierrors.NewUpstreamError("issueDelete",
			fmt.Errorf("no issues were deleted; failed ids: %s", strings.Join(failed, ", ")))
	}

	var deleted []string
	for _, r := range payload.Results {
		if r.Success {
			deleted = append(deleted, r.ID)
		}
	}
	return DeleteIssuesResult{}, &apierrors.PartialFailureError{
		FailedStep: "issueDelete",
		CreatedIDs: deleted,
		Err:        fmt.Errorf("deleted %d of %d issues; failed ids: %s", len(deleted), len(args.IDs), strings.Join(failed, ", ")),
	}
}

// SearchIssues returns issues matching the given filters. Archived and
// terminal states are excluded unless the caller opts in.
func (h *Handler) SearchIssues(ctx context.Context, args SearchIssuesArgs) (SearchIssuesResult, error) {
	client, err := h.session.Client()
	if err != nil {
		return SearchIssuesResult{}, err
	}

	limit := args.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	found, err := client.SearchIssues(ctx, linear.IssueFilter{
		Query:     args.Query,
		TeamID:    args.TeamID,
		ProjectID: args.ProjectID,
		Limit:     limit,
	})
	if err != nil {
		return SearchIssuesResult{}, err
	}

	if !args.IncludeArchived {
		found = excludeArchived(found)
	}
	if len(found) == 0 {
		return SearchIssuesResult{
			Issues:  []linear.Issue{},
			Message: "No issues found matching the given filters.",
		}, nil
	}
	return SearchIssuesResult{Issues: found, TotalResults: len(found)}, nil
}

// GetIssue fetches one issue. A nonexistent ID is an expected caller
// mistake, reported as text rather than raised.
func (h *Handler) GetIssue(ctx context.Context, args GetIssueArgs) (GetIssueResult, error) {
	client, err := h.session.Client()
	if err != nil {
		return GetIssueResult{}, err
	}
	if err := ValidateGetIssue(args); err != nil {
		return GetIssueResult{}, err
	}

	issue, err := client.GetIssue(ctx, args.ID)
	if err != nil {
		if apierrors.Classify(err) == apierrors.KindNotFound {
			return GetIssueResult{
				Found:   false,
				Message: fmt.Sprintf("Issue with ID %q does not exist", args.ID),
			}, nil
		}
		return GetIssueResult{}, err
	}
	return GetIssueResult{Issue: issue, Found: true}, nil
}

// ToCreateInputs converts batch items to gateway inputs, scoping every issue
// to projectID when one is given. The project family reuses it for the
// combined create-project-with-issues protocol.
func ToCreateInputs(items []IssueInput, projectID string) []linear.IssueCreateInput {
	inputs := make([]linear.IssueCreateInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, linear.IssueCreateInput{
			Title:       item.Title,
			Description: item.Description,
			TeamID:      item.TeamID,
			ProjectID:   projectID,
			StateID:     item.StateID,
			AssigneeID:  item.AssigneeID,
			LabelIDs:    item.LabelIDs,
			Priority:    item.Priority,
		})
	}
	return inputs
}

// excludeArchived drops issues whose workflow state is terminal or archived.
func excludeArchived(list []linear.Issue) []linear.Issue {
	kept := make([]linear.Issue, 0, len(list))
	for _, issue := range list {
		if IsArchivedState(issue.State) {
			continue
		}
		kept = append(kept, issue)
	}
	return kept
}

// IsArchivedState reports whether a workflow state counts as archived or
// terminal for search filtering.
func IsArchivedState(state *linear.WorkflowState) bool {
	if state == nil {
		return false
	}
	if state.Type == "completed" || state.Type == "canceled" {
		return true
	}
	_, archived := archivedStateNames[strings.ToLower(state.Name)]
	return archived
}
