package linear

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	apierrors "github.com/linearops/linear-mcp-server/internal/errors"
)

// defaultSearchLimit bounds list queries when the caller supplied none.
const defaultSearchLimit = 50

const issueFields = `
id
identifier
title
description
priority
url
state { id name color type position }
team { id name key }
project { id name url }
assignee { id name displayName email active }
labels { nodes { id name color } }`

const projectFields = `
id
name
description
state
progress
targetDate
url
teams { nodes { id name key } }`

// CreateIssue creates a single issue.
func (c *Client) CreateIssue(ctx context.Context, input IssueCreateInput) (*IssuePayload, error) {
	query := fmt.Sprintf(`mutation IssueCreate($input: IssueCreateInput!) {
  issueCreate(input: $input) { success issue { %s } }
}`, issueFields)

	var resp struct {
		IssueCreate IssuePayload `json:"issueCreate"`
	}
	if err := c.do(ctx, "issueCreate", query, map[string]any{"input": input}, &resp); err != nil {
		return nil, err
	}
	return &resp.IssueCreate, nil
}

// CreateIssues creates several issues in one batched call. The batch either
// applies as a whole or reports success=false; there is no per-issue result.
func (c *Client) CreateIssues(ctx context.Context, inputs []IssueCreateInput) (*IssueBatchPayload, error) {
	query := fmt.Sprintf(`mutation IssueBatchCreate($input: IssueBatchCreateInput!) {
  issueBatchCreate(input: $input) { success issues { %s } }
}`, issueFields)

	variables := map[string]any{
		"input": map[string]any{"issues": inputs},
	}
	var resp struct {
		IssueBatchCreate IssueBatchPayload `json:"issueBatchCreate"`
	}
	if err := c.do(ctx, "issueBatchCreate", query, variables, &resp); err != nil {
		return nil, err
	}
	return &resp.IssueBatchCreate, nil
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, input ProjectCreateInput) (*ProjectPayload, error) {
	query := fmt.Sprintf(`mutation ProjectCreate($input: ProjectCreateInput!) {
  projectCreate(input: $input) { success project { %s } }
}`, projectFields)

	var resp struct {
		ProjectCreate ProjectPayload `json:"projectCreate"`
	}
	if err := c.do(ctx, "projectCreate", query, map[string]any{"input": input}, &resp); err != nil {
		return nil, err
	}
	return &resp.ProjectCreate, nil
}

// UpdateIssues applies one uniform update to every issue in ids. The upstream
// call fails or succeeds as a whole; Linear exposes no per-issue outcome for
// batched updates, so none is fabricated here.
func (c *Client) UpdateIssues(ctx context.Context, ids []string, input IssueUpdateInput) (*IssueBatchPayload, error) {
	query := `mutation IssueBatchUpdate($ids: [UUID!]!, $input: IssueUpdateInput!) {
  issueBatchUpdate(ids: $ids, input: $input) { success issues { id identifier title url } }
}`

	variables := map[string]any{"ids": ids, "input": input}
	var resp struct {
		IssueBatchUpdate IssueBatchPayload `json:"issueBatchUpdate"`
	}
	if err := c.do(ctx, "issueBatchUpdate", query, variables, &resp); err != nil {
		return nil, err
	}
	return &resp.IssueBatchUpdate, nil
}

// DeleteIssues deletes the given issues in one aliased mutation document.
// Deletion is irreversible. Each aliased sub-delete succeeds or fails
// independently; the payload reports every outcome.
func (c *Client) DeleteIssues(ctx context.Context, ids []string) (*DeleteIssuesPayload, error) {
	var b strings.Builder
	b.WriteString("mutation IssueBatchDelete {")
	for i, id := range ids {
		fmt.Fprintf(&b, "\n  d%d: issueDelete(id: %s) { success }", i, strconv.Quote(id))
	}
	b.WriteString("\n}")

	aliased := make(map[string]struct {
		Success bool `json:"success"`
	})
	if err := c.do(ctx, "issueDelete", b.String(), nil, &aliased); err != nil {
		return nil, err
	}

	payload := &DeleteIssuesPayload{Results: make([]DeleteResult, len(ids))}
	for i, id := range ids {
		result, ok := aliased[fmt.Sprintf("d%d", i)]
		payload.Results[i] = DeleteResult{ID: id, Success: ok && result.Success}
	}
	return payload, nil
}

// SearchIssues returns issues matching the filter. Only non-zero filter
// fields are sent upstream.
func (c *Client) SearchIssues(ctx context.Context, filter IssueFilter) ([]Issue, error) {
	query := fmt.Sprintf(`query Issues($filter: IssueFilter, $first: Int!) {
  issues(filter: $filter, first: $first) { nodes { %s } }
}`, issueFields)

	upstream := map[string]any{}
	if filter.Query != "" {
		upstream["title"] = map[string]any{"containsIgnoreCase": filter.Query}
	}
	if filter.TeamID != "" {
		upstream["team"] = map[string]any{"id": map[string]any{"eq": filter.TeamID}}
	}
	if filter.ProjectID != "" {
		upstream["project"] = map[string]any{"id": map[string]any{"eq": filter.ProjectID}}
	}

	variables := map[string]any{"first": limitOrDefault(filter.Limit)}
	if len(upstream) > 0 {
		variables["filter"] = upstream
	}

	var resp struct {
		Issues struct {
			Nodes []Issue `json:"nodes"`
		} `json:"issues"`
	}
	if err := c.do(ctx, "issues", query, variables, &resp); err != nil {
		return nil, err
	}
	return resp.Issues.Nodes, nil
}

// SearchProjects returns projects matching the filter.
func (c *Client) SearchProjects(ctx context.Context, filter ProjectFilter) ([]Project, error) {
	query := fmt.Sprintf(`query Projects($filter: ProjectFilter, $first: Int!) {
  projects(filter: $filter, first: $first) { nodes { %s } }
}`, projectFields)

	upstream := map[string]any{}
	if filter.Name != "" {
		upstream["name"] = map[string]any{"containsIgnoreCase": filter.Name}
	}
	if filter.TeamID != "" {
		upstream["accessibleTeams"] = map[string]any{"some": map[string]any{"id": map[string]any{"eq": filter.TeamID}}}
	}

	variables := map[string]any{"first": limitOrDefault(filter.Limit)}
	if len(upstream) > 0 {
		variables["filter"] = upstream
	}

	var resp struct {
		Projects struct {
			Nodes []Project `json:"nodes"`
		} `json:"projects"`
	}
	if err := c.do(ctx, "projects", query, variables, &resp); err != nil {
		return nil, err
	}
	return resp.Projects.Nodes, nil
}

// GetIssue fetches one issue by id.
func (c *Client) GetIssue(ctx context.Context, id string) (*Issue, error) {
	query := fmt.Sprintf(`query Issue($id: String!) {
  issue(id: $id) { %s }
}`, issueFields)

	var resp struct {
		Issue *Issue `json:"issue"`
	}
	if err := c.do(ctx, "issue", query, map[string]any{"id": id}, &resp); err != nil {
		return nil, err
	}
	if resp.Issue == nil {
		return nil, apierrors.NewNotFoundError("issue", id)
	}
	return resp.Issue, nil
}

// GetProject fetches one project by id.
func (c *Client) GetProject(ctx context.Context, id string) (*Project, error) {
	query := fmt.Sprintf(`query Project($id: String!) {
  project(id: $id) { %s }
}`, projectFields)

	var resp struct {
		Project *Project `json:"project"`
	}
	if err := c.do(ctx, "project", query, map[string]any{"id": id}, &resp); err != nil {
		return nil, err
	}
	if resp.Project == nil {
		return nil, apierrors.NewNotFoundError("project", id)
	}
	return resp.Project, nil
}

// GetTeams lists the workspace teams.
func (c *Client) GetTeams(ctx context.Context) ([]Team, error) {
	query := `query Teams {
  teams { nodes { id name key } }
}`

	var resp struct {
		Teams struct {
			Nodes []Team `json:"nodes"`
		} `json:"teams"`
	}
	if err := c.do(ctx, "teams", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Teams.Nodes, nil
}

// GetTeamStates lists the workflow states of one team.
func (c *Client) GetTeamStates(ctx context.Context, teamID string) ([]WorkflowState, error) {
	query := `query TeamStates($id: String!) {
  team(id: $id) { states { nodes { id name color type position } } }
}`

	var resp struct {
		Team *struct {
			States struct {
				Nodes []WorkflowState `json:"nodes"`
			} `json:"states"`
		} `json:"team"`
	}
	if err := c.do(ctx, "team.states", query, map[string]any{"id": teamID}, &resp); err != nil {
		return nil, err
	}
	if resp.Team == nil {
		return nil, apierrors.NewNotFoundError("team", teamID)
	}
	return resp.Team.States.Nodes, nil
}

// GetTeamLabels lists the labels of one team.
func (c *Client) GetTeamLabels(ctx context.Context, teamID string) ([]Label, error) {
	query := `query TeamLabels($id: String!) {
  team(id: $id) { labels { nodes { id name color } } }
}`

	var resp struct {
		Team *struct {
			Labels struct {
				Nodes []Label `json:"nodes"`
			} `json:"labels"`
		} `json:"team"`
	}
	if err := c.do(ctx, "team.labels", query, map[string]any{"id": teamID}, &resp); err != nil {
		return nil, err
	}
	if resp.Team == nil {
		return nil, apierrors.NewNotFoundError("team", teamID)
	}
	return resp.Team.Labels.Nodes, nil
}

// GetUser fetches the authenticated user.
func (c *Client) GetUser(ctx context.Context) (*User, error) {
	query := `query Viewer {
  viewer { id name displayName email active }
}`

	var resp struct {
		Viewer *User `json:"viewer"`
	}
	if err := c.do(ctx, "viewer", query, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Viewer == nil {
		return nil, apierrors.NewNotFoundError("user", "viewer")
	}
	return resp.Viewer, nil
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return defaultSearchLimit
	}
	return limit
}
