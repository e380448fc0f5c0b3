package tools

// AllTools contains all tool specifications for the Linear MCP server.
// Tools are organized by family for easier maintenance.
// Tool descriptions follow a structured format for optimal LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	// ==========================================================================
	// ISSUE TOOLS
	// ==========================================================================
	{
		Name:   "linear_create_issue",
		Method: "CreateIssue",
		Title:  "Create Issue",
		Family: "issues",
		Description: `Create a SINGLE Linear issue.

USE WHEN: User asks "create an issue", "file a bug", "add a task" for one item.

NOT FOR: Creating several issues at once (use linear_create_issues), or creating a project together with its issues (use linear_create_project_with_issues).

PARAMETERS:
- title: Issue title (required)
- teamId: Team the issue belongs to (required)
- description: Markdown body (optional)
- priority: 0 (none) to 4 (low) (optional)
- projectId, stateId, labelIds, assigneeId (optional)

RETURNS: Confirmation with the new issue's identifier and URL.`,
		OpenWorld: true,
	},
	{
		Name:   "linear_create_issues",
		Method: "CreateIssues",
		Title:  "Create Issues",
		Family: "issues",
		Description: `Create MULTIPLE Linear issues in one batched call.

USE WHEN: User lists several tasks to file, e.g. "create these three issues".

NOT FOR: A single issue (use linear_create_issue), or issues inside a brand-new project (use linear_create_project_with_issues).

PARAMETERS:
- issues: Array of {title, teamId, description?, priority?, ...} (required, non-empty; every item needs title and teamId)

RETURNS: Count of created issues plus one line per issue with identifier and URL.`,
		OpenWorld: true,
	},
	{
		Name:   "linear_update_issues",
		Method: "UpdateIssues",
		Title:  "Update Issues",
		Family: "issues",
		Description: `Apply ONE set of field changes to one or more existing issues.

USE WHEN: User says "move these to Done", "assign all of them to X", "set priority on ISS-1 and ISS-2".

NOT FOR: Different changes per issue (call once per change set).

PARAMETERS:
- ids: Issue IDs to update (required, non-empty)
- update: Fields to change; at least one of title, description, priority, stateId, projectId, assigneeId, labelIds (required)

RETURNS: Confirmation with the number of issues updated.`,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "linear_delete_issues",
		Method: "DeleteIssues",
		Title:  "Delete Issues",
		Family: "issues",
		Description: `Permanently delete one or more Linear issues. This cannot be undone.

USE WHEN: User explicitly asks to delete or remove issues.

NOT FOR: Closing or archiving issues (use linear_update_issues with a completed stateId).

PARAMETERS:
- ids: Issue IDs to delete (required, non-empty)

RETURNS: Confirmation listing the deleted issue IDs. If some deletions fail, the response names exactly which succeeded and which did not.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
	{
		Name:   "linear_search_issues",
		Method: "SearchIssues",
		Title:  "Search Issues",
		Family: "issues",
		Description: `Search Linear issues by text, team, or project.

USE WHEN: User asks "find issues about X", "what's open in project Y", "list the team's issues".

NOT FOR: Fetching one issue by known ID (use linear_get_issue).

PARAMETERS:
- query: Text matched against titles (optional)
- teamId, projectId: Scope filters (optional)
- limit: Max results (default 10)
- includeArchived: Include done/canceled issues (default false)

RETURNS: Matching issues with identifier, title, state, and URL.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "linear_get_issue",
		Method: "GetIssue",
		Title:  "Get Issue",
		Family: "issues",
		Description: `Fetch ONE Linear issue by its ID.

USE WHEN: User references a specific issue ID and wants its details.

NOT FOR: Finding issues by text (use linear_search_issues).

PARAMETERS:
- id: Issue ID (required)

RETURNS: Full issue details, or a message when no issue has that ID.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// PROJECT TOOLS
	// ==========================================================================
	{
		Name:   "linear_create_project_with_issues",
		Method: "CreateProjectWithIssues",
		Title:  "Create Project with Issues",
		Family: "projects",
		Description: `Create a Linear project and, in a second step, batch-create issues inside it.

USE WHEN: User wants a new project seeded with tasks, e.g. "set up a Q1 Planning project with these issues".

NOT FOR: Adding issues to an existing project (use linear_create_issues with projectId).

PARAMETERS:
- project: {name (required), teamIds (required, non-empty), description?}
- issues: Array of issues to create inside the project (optional; items need title and teamId)

RETURNS: The project's name and URL plus one line per created issue. If the issue step fails after the project exists, the response names the created project so the issues can be retried against it.`,
		OpenWorld: true,
	},
	{
		Name:   "linear_search_projects",
		Method: "SearchProjects",
		Title:  "Search Projects",
		Family: "projects",
		Description: `Search Linear projects by name or team.

USE WHEN: User asks "find the X project", "list projects for team Y".

NOT FOR: Fetching one project by known ID (use linear_get_project).

PARAMETERS:
- name: Text matched against project names (at least one of name/teamId required)
- teamId: Restrict to one team's projects
- limit: Max results (default 10)
- includeArchived: Include completed/canceled projects (default false)

RETURNS: Matching projects with name, state, and URL.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "linear_get_project",
		Method: "GetProject",
		Title:  "Get Project",
		Family: "projects",
		Description: `Fetch ONE Linear project by its ID, optionally with its issues.

USE WHEN: User references a specific project ID and wants its details or contents.

NOT FOR: Finding projects by name (use linear_search_projects).

PARAMETERS:
- id: Project ID (required)
- includeIssues: Also fetch the project's issues (default false)

RETURNS: Project details (and issues when requested), or a message when no project has that ID.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// TEAM TOOLS
	// ==========================================================================
	{
		Name:   "linear_get_teams",
		Method: "GetTeams",
		Title:  "Get Teams",
		Family: "teams",
		Description: `List every Linear team visible to the authenticated user.

USE WHEN: User asks "what teams are there", or a team ID is needed for another tool.

PARAMETERS: none.

RETURNS: Teams with ID, name, and key.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "linear_get_team_states",
		Method: "GetTeamStates",
		Title:  "Get Team Workflow States",
		Family: "teams",
		Description: `List a team's workflow states (Backlog, In Progress, Done, ...).

USE WHEN: A stateId is needed to create or update issues in a team.

PARAMETERS:
- teamId: Team ID (required)

RETURNS: Workflow states with ID, name, and type.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "linear_get_team_labels",
		Method: "GetTeamLabels",
		Title:  "Get Team Labels",
		Family: "teams",
		Description: `List a team's issue labels.

USE WHEN: Label IDs are needed to create or update issues in a team.

PARAMETERS:
- teamId: Team ID (required)

RETURNS: Labels with ID, name, and color.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// USER AND AUTH TOOLS
	// ==========================================================================
	{
		Name:   "linear_get_user",
		Method: "GetUser",
		Title:  "Get Current User",
		Family: "users",
		Description: `Fetch the Linear user the current credential authenticates as.

USE WHEN: User asks "who am I logged in as", or their user ID is needed for assignments.

PARAMETERS: none.

RETURNS: The viewer's ID, name, and email.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "linear_auth_status",
		Method: "AuthStatus",
		Title:  "Authentication Status",
		Family: "auth",
		Description: `Report whether a Linear session exists and which user it belongs to.

USE WHEN: User asks "am I logged in", or another tool failed with an authentication error.

PARAMETERS: none.

RETURNS: A status line naming the authenticated user and credential source, or instructions for authenticating.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "linear_logout",
		Method: "Logout",
		Title:  "Log Out",
		Family: "auth",
		Description: `Clear the Linear credential stored in the OS keyring.

USE WHEN: User asks to log out or switch accounts.

NOT FOR: Removing a LINEAR_API_KEY environment variable; that must be unset outside this server and the response says so when one is active.

PARAMETERS: none.

RETURNS: A confirmation message.`,
		Idempotent: true,
	},
}
