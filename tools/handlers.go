package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/linearops/linear-mcp-server/internal/auth"
	"github.com/linearops/linear-mcp-server/internal/issues"
	"github.com/linearops/linear-mcp-server/internal/projects"
	"github.com/linearops/linear-mcp-server/internal/teams"
	"github.com/linearops/linear-mcp-server/internal/users"
	"github.com/linearops/linear-mcp-server/metrics"
	"github.com/linearops/linear-mcp-server/tracing"
)

// TextResult is implemented by results that render as a text content block.
// An empty string means the result is returned as structured JSON only.
type TextResult interface {
	Text() string
}

// HandlerRegistry provides type-safe tool registration by mapping
// tool names to their concrete handler implementations.
type HandlerRegistry struct {
	issues   *issues.Handler
	projects *projects.Handler
	teams    *teams.Handler
	users    *users.Handler
	auth     *auth.Handler
	logger   *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(
	issuesHandler *issues.Handler,
	projectsHandler *projects.Handler,
	teamsHandler *teams.Handler,
	usersHandler *users.Handler,
	authHandler *auth.Handler,
	logger *slog.Logger,
) *HandlerRegistry {
	return &HandlerRegistry{
		issues:   issuesHandler,
		projects: projectsHandler,
		teams:    teamsHandler,
		users:    usersHandler,
		auth:     authHandler,
		logger:   logger,
	}
}

// RegisterAll registers all tools with the MCP server.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) {
	for _, spec := range AllTools {
		h.registerByName(server, spec)
	}
	h.logger.Info("Registered all tools", "count", len(AllTools))
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, spec ToolSpec) {
	tool := h.buildTool(spec)

	switch spec.Method {
	// Issue tools
	case "CreateIssue":
		register(h, server, tool, spec, h.issues.CreateIssue)
	case "CreateIssues":
		register(h, server, tool, spec, h.issues.CreateIssues)
	case "UpdateIssues":
		register(h, server, tool, spec, h.issues.UpdateIssues)
	case "DeleteIssues":
		register(h, server, tool, spec, h.issues.DeleteIssues)
	case "SearchIssues":
		register(h, server, tool, spec, h.issues.SearchIssues)
	case "GetIssue":
		register(h, server, tool, spec, h.issues.GetIssue)

	// Project tools
	case "CreateProjectWithIssues":
		register(h, server, tool, spec, h.projects.CreateProjectWithIssues)
	case "SearchProjects":
		register(h, server, tool, spec, h.projects.SearchProjects)
	case "GetProject":
		register(h, server, tool, spec, h.projects.GetProject)

	// Team tools
	case "GetTeams":
		register(h, server, tool, spec, h.teams.GetTeams)
	case "GetTeamStates":
		register(h, server, tool, spec, h.teams.GetTeamStates)
	case "GetTeamLabels":
		register(h, server, tool, spec, h.teams.GetTeamLabels)

	// User and auth tools
	case "GetUser":
		register(h, server, tool, spec, h.users.GetUser)
	case "AuthStatus":
		register(h, server, tool, spec, h.auth.AuthStatus)
	case "Logout":
		register(h, server, tool, spec, h.auth.Logout)

	default:
		h.logger.Error("Unknown method, tool not registered", "method", spec.Method, "tool", spec.Name)
	}
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.Destructive {
		annotations.DestructiveHint = ptr(true)
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// register is a generic helper that registers a tool with the MCP server.
// It wraps the handler method with panic recovery, metrics, tracing, and
// logging, and renders results implementing TextResult as a text block.
func register[Args, Result any](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) {
	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args Args) (*mcp.CallToolResult, Result, error) {
		defer h.recoverPanic(spec.Name)

		ctx, span := tracing.StartSpan(ctx, "mcp.tool."+spec.Name)
		defer span.End()

		span.SetAttributes(
			attribute.String("mcp.tool.name", spec.Name),
			attribute.String("mcp.tool.family", spec.Family),
			attribute.Bool("mcp.tool.readonly", spec.ReadOnly),
		)

		metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

		start := time.Now()
		result, err := method(ctx, args)
		duration := time.Since(start).Seconds()

		span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			metrics.RecordRequest(spec.Name, duration, false)
			var zero Result
			return nil, zero, fmt.Errorf("%s failed: %w", spec.Name, err)
		}

		span.SetStatus(codes.Ok, "")
		metrics.RecordRequest(spec.Name, duration, true)
		h.logExecution(spec, args, result)

		if tr, ok := any(result).(TextResult); ok {
			if text := tr.Text(); text != "" {
				return &mcp.CallToolResult{
					Content: []mcp.Content{&mcp.TextContent{Text: text}},
				}, result, nil
			}
		}
		return nil, result, nil
	})
}

// recoverPanic recovers from panics in tool handlers.
func (h *HandlerRegistry) recoverPanic(toolName string) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		h.logger.Error("Panic recovered",
			"tool", toolName,
			"panic", rec,
			"stack", string(debug.Stack()))
	}
}

// logExecution logs tool execution details.
func (h *HandlerRegistry) logExecution(spec ToolSpec, args, result any) {
	attrs := []any{"tool", spec.Name, "family", spec.Family}

	switch a := args.(type) {
	case issues.CreateIssueArgs:
		attrs = append(attrs, "team_id", a.TeamID)
	case issues.CreateIssuesArgs:
		attrs = append(attrs, "requested", len(a.Issues))
	case issues.UpdateIssuesArgs:
		attrs = append(attrs, "ids", len(a.IDs))
	case issues.DeleteIssuesArgs:
		attrs = append(attrs, "ids", len(a.IDs))
	case issues.SearchIssuesArgs:
		attrs = append(attrs, "query", a.Query)
	case issues.GetIssueArgs:
		attrs = append(attrs, "id", a.ID)
	case projects.CreateProjectWithIssuesArgs:
		attrs = append(attrs, "project", a.Project.Name, "requested_issues", len(a.Issues))
	case projects.SearchProjectsArgs:
		attrs = append(attrs, "name", a.Name)
	case projects.GetProjectArgs:
		attrs = append(attrs, "id", a.ID, "include_issues", a.IncludeIssues)
	case teams.GetTeamStatesArgs:
		attrs = append(attrs, "team_id", a.TeamID)
	case teams.GetTeamLabelsArgs:
		attrs = append(attrs, "team_id", a.TeamID)
	}

	switch r := result.(type) {
	case issues.CreateIssuesResult:
		attrs = append(attrs, "created", r.Count)
	case issues.UpdateIssuesResult:
		attrs = append(attrs, "updated", r.Count)
	case issues.DeleteIssuesResult:
		attrs = append(attrs, "deleted", len(r.Deleted))
	case issues.SearchIssuesResult:
		attrs = append(attrs, "results_count", len(r.Issues), "total_results", r.TotalResults)
	case issues.GetIssueResult:
		attrs = append(attrs, "found", r.Found)
	case projects.CreateProjectWithIssuesResult:
		attrs = append(attrs, "issues_created", len(r.Issues))
	case projects.SearchProjectsResult:
		attrs = append(attrs, "results_count", len(r.Projects), "total_results", r.TotalResults)
	case projects.GetProjectResult:
		attrs = append(attrs, "found", r.Found)
	case teams.GetTeamsResult:
		attrs = append(attrs, "teams", r.TotalResults)
	case teams.GetTeamStatesResult:
		attrs = append(attrs, "states", len(r.States))
	case teams.GetTeamLabelsResult:
		attrs = append(attrs, "labels", len(r.Labels))
	case auth.AuthStatusResult:
		attrs = append(attrs, "authenticated", r.Authenticated)
	}

	h.logger.Info("Tool executed", attrs...)
}
