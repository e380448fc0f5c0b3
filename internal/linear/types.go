package linear

import "encoding/json"

// Entity types mirror the slice of the Linear GraphQL schema this server
// consumes. Nested objects are pointers so absent relations stay null in
// structured responses.

// Issue is a Linear issue.
type Issue struct {
	ID          string         `json:"id"`
	Identifier  string         `json:"identifier"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Priority    int            `json:"priority"`
	URL         string         `json:"url"`
	State       *WorkflowState `json:"state,omitempty"`
	Team        *Team          `json:"team,omitempty"`
	Project     *ProjectRef    `json:"project,omitempty"`
	Assignee    *User          `json:"assignee,omitempty"`
	Labels      LabelList      `json:"labels,omitempty"`
}

// LabelList decodes either a bare label array or the GraphQL connection
// shape {"nodes": [...]} the Linear API returns, and always marshals as a
// bare array for callers.
type LabelList []Label

func (l *LabelList) UnmarshalJSON(data []byte) error {
	var plain []Label
	if err := json.Unmarshal(data, &plain); err == nil {
		*l = plain
		return nil
	}
	var conn struct {
		Nodes []Label `json:"nodes"`
	}
	if err := json.Unmarshal(data, &conn); err != nil {
		return err
	}
	*l = conn.Nodes
	return nil
}

// Project is a Linear project.
type Project struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	State       string  `json:"state"`
	Progress    float64 `json:"progress"`
	TargetDate  string  `json:"targetDate,omitempty"`
	URL         string  `json:"url"`
	Teams       []Team  `json:"teams,omitempty"`
	Issues      []Issue `json:"issues,omitempty"`
}

// ProjectRef is the compact project reference embedded in issues.
type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Team is a Linear team.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Key  string `json:"key"`
}

// WorkflowState is a state in a team's issue workflow.
// Type is one of: backlog, unstarted, started, completed, canceled.
type WorkflowState struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Color    string  `json:"color,omitempty"`
	Type     string  `json:"type"`
	Position float64 `json:"position"`
}

// Label is an issue label.
type Label struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// User is a Linear user.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
	Active      bool   `json:"active"`
}

// IssueCreateInput is the input for creating a single issue.
type IssueCreateInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	TeamID      string   `json:"teamId"`
	ProjectID   string   `json:"projectId,omitempty"`
	StateID     string   `json:"stateId,omitempty"`
	AssigneeID  string   `json:"assigneeId,omitempty"`
	LabelIDs    []string `json:"labelIds,omitempty"`
	Priority    *int     `json:"priority,omitempty"`
}

// IssueUpdateInput is the uniform update applied to every issue in a bulk
// update. All fields are optional; nil fields are left untouched upstream.
type IssueUpdateInput struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	StateID     *string  `json:"stateId,omitempty"`
	AssigneeID  *string  `json:"assigneeId,omitempty"`
	Priority    *int     `json:"priority,omitempty"`
	LabelIDs    []string `json:"labelIds,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
func (in IssueUpdateInput) IsEmpty() bool {
	return in.Title == nil && in.Description == nil && in.StateID == nil &&
		in.AssigneeID == nil && in.Priority == nil && in.LabelIDs == nil
}

// ProjectCreateInput is the input for creating a project.
type ProjectCreateInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	TeamIDs     []string `json:"teamIds"`
}

// IssueFilter selects issues for a search. Zero-valued fields are omitted
// from the upstream filter.
type IssueFilter struct {
	Query     string
	TeamID    string
	ProjectID string
	Limit     int
}

// ProjectFilter selects projects for a search.
type ProjectFilter struct {
	Name   string
	TeamID string
	Limit  int
}

// IssuePayload is the success wrapper returned by issue mutations.
type IssuePayload struct {
	Success bool   `json:"success"`
	Issue   *Issue `json:"issue,omitempty"`
}

// IssueBatchPayload is the success wrapper returned by batched issue mutations.
type IssueBatchPayload struct {
	Success bool    `json:"success"`
	Issues  []Issue `json:"issues,omitempty"`
}

// ProjectPayload is the success wrapper returned by project mutations.
type ProjectPayload struct {
	Success bool     `json:"success"`
	Project *Project `json:"project,omitempty"`
}

// DeleteResult is the per-issue outcome of a batched delete.
type DeleteResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}

// DeleteIssuesPayload aggregates per-issue delete outcomes. Each sub-delete
// succeeds or fails independently; partial completion is a terminal state
// the caller sees, never a hidden one.
type DeleteIssuesPayload struct {
	Results []DeleteResult `json:"results"`
}

// Failed returns the ids whose deletion the gateway rejected.
func (p *DeleteIssuesPayload) Failed() []string {
	var failed []string
	for _, r := range p.Results {
		if !r.Success {
			failed = append(failed, r.ID)
		}
	}
	return failed
}
