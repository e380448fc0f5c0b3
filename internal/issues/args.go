package issues

import (
	"fmt"
	"strings"

	"github.com/linearops/linear-mcp-server/internal/linear"
)

// CreateIssueArgs contains parameters for creating a single issue.
type CreateIssueArgs struct {
	Title       string   `json:"title" jsonschema:"required" jsonschema_description:"Issue title"`
	Description string   `json:"description,omitempty" jsonschema_description:"Issue description (markdown)"`
	TeamID      string   `json:"teamId" jsonschema:"required" jsonschema_description:"ID of the team the issue belongs to"`
	ProjectID   string   `json:"projectId,omitempty" jsonschema_description:"Project to scope the issue to"`
	StateID     string   `json:"stateId,omitempty" jsonschema_description:"Workflow state ID"`
	AssigneeID  string   `json:"assigneeId,omitempty" jsonschema_description:"User ID to assign the issue to"`
	LabelIDs    []string `json:"labelIds,omitempty" jsonschema_description:"Label IDs to attach"`
	Priority    *int     `json:"priority,omitempty" jsonschema_description:"Priority 0 (none) to 4 (low)"`
}

// CreateIssueResult is the result of creating a single issue.
type CreateIssueResult struct {
	Issue *linear.Issue `json:"issue"`
}

// Text renders the creation confirmation.
func (r CreateIssueResult) Text() string {
	if r.Issue == nil {
		return ""
	}
	return fmt.Sprintf("Created issue %s: %s\n%s", r.Issue.Identifier, r.Issue.Title, r.Issue.URL)
}

// IssueInput is one item of a batched issue creation. Title is the only
// required field besides teamId; description is independently optional per
// item.
type IssueInput struct {
	Title       string   `json:"title" jsonschema:"required" jsonschema_description:"Issue title"`
	Description string   `json:"description,omitempty" jsonschema_description:"Issue description (markdown)"`
	TeamID      string   `json:"teamId" jsonschema:"required" jsonschema_description:"ID of the team the issue belongs to"`
	StateID     string   `json:"stateId,omitempty" jsonschema_description:"Workflow state ID"`
	AssigneeID  string   `json:"assigneeId,omitempty" jsonschema_description:"User ID to assign the issue to"`
	LabelIDs    []string `json:"labelIds,omitempty" jsonschema_description:"Label IDs to attach"`
	Priority    *int     `json:"priority,omitempty" jsonschema_description:"Priority 0 (none) to 4 (low)"`
}

// CreateIssuesArgs contains parameters for batched issue creation.
type CreateIssuesArgs struct {
	Issues []IssueInput `json:"issues" jsonschema:"required" jsonschema_description:"Issues to create; must be non-empty"`
}

// CreateIssuesResult is the result of a batched issue creation.
type CreateIssuesResult struct {
	Issues []linear.Issue `json:"issues"`
	Count  int            `json:"count"`
}

// Text renders one line per created issue.
func (r CreateIssuesResult) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Issues created: %d", r.Count)
	for _, issue := range r.Issues {
		fmt.Fprintf(&b, "\n- %s: %s (%s)", issue.Identifier, issue.Title, issue.URL)
	}
	return b.String()
}

// UpdateFields is the uniform update applied to every issue in a bulk
// update. There is no per-issue override.
type UpdateFields struct {
	Title       *string  `json:"title,omitempty" jsonschema_description:"New title"`
	Description *string  `json:"description,omitempty" jsonschema_description:"New description"`
	StateID     *string  `json:"stateId,omitempty" jsonschema_description:"New workflow state ID"`
	AssigneeID  *string  `json:"assigneeId,omitempty" jsonschema_description:"New assignee user ID"`
	Priority    *int     `json:"priority,omitempty" jsonschema_description:"New priority 0-4"`
	LabelIDs    []string `json:"labelIds,omitempty" jsonschema_description:"Replacement label IDs"`
}

// UpdateIssuesArgs contains parameters for a bulk issue update.
type UpdateIssuesArgs struct {
	IDs    []string     `json:"ids" jsonschema:"required" jsonschema_description:"Issue IDs to update; must be non-empty"`
	Update UpdateFields `json:"update" jsonschema:"required" jsonschema_description:"Fields applied uniformly to every issue"`
}

// UpdateIssuesResult is the result of a bulk issue update. The upstream call
// applies as a whole; no per-issue outcome exists.
type UpdateIssuesResult struct {
	Issues []linear.Issue `json:"issues,omitempty"`
	Count  int            `json:"count"`
}

// Text renders the update confirmation.
func (r UpdateIssuesResult) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Issues updated: %d", r.Count)
	for _, issue := range r.Issues {
		fmt.Fprintf(&b, "\n- %s: %s (%s)", issue.Identifier, issue.Title, issue.URL)
	}
	return b.String()
}

// DeleteIssuesArgs contains parameters for a bulk issue deletion.
type DeleteIssuesArgs struct {
	IDs []string `json:"ids" jsonschema:"required" jsonschema_description:"Issue IDs to delete; must be non-empty. Deletion is irreversible"`
}

// DeleteIssuesResult is the result of a bulk issue deletion.
type DeleteIssuesResult struct {
	Deleted []string `json:"deleted"`
}

// Text renders the deletion confirmation.
func (r DeleteIssuesResult) Text() string {
	return fmt.Sprintf("Issues deleted: %d\n- %s", len(r.Deleted), strings.Join(r.Deleted, "\n- "))
}

// SearchIssuesArgs contains filters for an issue search. Only non-empty
// filters are sent upstream.
type SearchIssuesArgs struct {
	Query           string `json:"query,omitempty" jsonschema_description:"Text to match against issue titles"`
	TeamID          string `json:"teamId,omitempty" jsonschema_description:"Restrict to one team"`
	ProjectID       string `json:"projectId,omitempty" jsonschema_description:"Restrict to one project"`
	Limit           int    `json:"limit,omitempty" jsonschema_description:"Maximum results (default 10)"`
	IncludeArchived bool   `json:"includeArchived,omitempty" jsonschema_description:"Include issues in archived/completed/canceled states (default false)"`
}

// SearchIssuesResult is the result of an issue search.
type SearchIssuesResult struct {
	Issues       []linear.Issue `json:"issues"`
	TotalResults int            `json:"total_results"`
	Message      string         `json:"message,omitempty"`
}

// Text reports "no matches" descriptively; non-empty results pass through as
// structured data only.
func (r SearchIssuesResult) Text() string {
	if r.TotalResults == 0 {
		return r.Message
	}
	return ""
}

// GetIssueArgs contains parameters for fetching one issue.
type GetIssueArgs struct {
	ID string `json:"id" jsonschema:"required" jsonschema_description:"Issue ID or identifier (e.g. ENG-42)"`
}

// GetIssueResult is the result of fetching one issue. A missing ID is a
// normal caller mistake and is reported as text, not raised.
type GetIssueResult struct {
	Issue   *linear.Issue `json:"issue,omitempty"`
	Found   bool          `json:"found"`
	Message string        `json:"message,omitempty"`
}

// Text reports the not-found case.
func (r GetIssueResult) Text() string {
	if !r.Found {
		return r.Message
	}
	return ""
}
