// Linear MCP Server - A Model Context Protocol server for Linear project
// tracking. Exposes issues, projects, teams, and session management as
// schema-validated tools.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/linearops/linear-mcp-server/internal/auth"
	"github.com/linearops/linear-mcp-server/internal/config"
	"github.com/linearops/linear-mcp-server/internal/issues"
	"github.com/linearops/linear-mcp-server/internal/linear"
	"github.com/linearops/linear-mcp-server/internal/projects"
	"github.com/linearops/linear-mcp-server/internal/session"
	"github.com/linearops/linear-mcp-server/internal/teams"
	"github.com/linearops/linear-mcp-server/internal/users"
	"github.com/linearops/linear-mcp-server/tools"
	"github.com/linearops/linear-mcp-server/tracing"
)

const (
	ServerName    = "linear-mcp-server"
	ServerVersion = "1.0.0"
)

func main() {
	// Configure logging to stderr (stdout is used for MCP protocol)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	shutdownTracing, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		logger.Warn("Tracing setup failed, continuing without it", "error", err)
	} else {
		defer shutdownTracing(ctx)
	}

	clientOpts := []linear.ClientOption{
		linear.WithLogger(logger),
		linear.WithHTTPClient(&http.Client{Timeout: cfg.Timeout()}),
	}
	if cfg.Gateway.Endpoint != "" {
		clientOpts = append(clientOpts, linear.WithEndpoint(cfg.Gateway.Endpoint))
	}

	sess := session.NewProvider(
		session.WithLogger(logger),
		session.WithClientOptions(clientOpts...),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger: logger,
		Instructions: `Linear MCP Server provides tools for working with a Linear workspace.

Available tools:
- linear_create_issue: Create a single issue
- linear_create_issues: Create multiple issues in one call
- linear_update_issues: Apply one set of changes to several issues
- linear_delete_issues: Permanently delete issues (irreversible)
- linear_search_issues: Search issues by text, team, or project
- linear_get_issue: Fetch one issue by ID
- linear_create_project_with_issues: Create a project and seed it with issues
- linear_search_projects: Search projects by name or team
- linear_get_project: Fetch one project, optionally with its issues
- linear_get_teams: List teams
- linear_get_team_states: List a team's workflow states
- linear_get_team_labels: List a team's labels
- linear_get_user: Fetch the authenticated user
- linear_auth_status: Report the current session
- linear_logout: Clear the stored credential

Authenticate by setting the LINEAR_API_KEY environment variable.`,
	})

	registry := tools.NewHandlerRegistry(
		issues.NewHandler(sess, logger),
		projects.NewHandler(sess, logger),
		teams.NewHandler(sess, logger),
		users.NewHandler(sess, logger),
		auth.NewHandler(sess, logger),
		logger,
	)
	registry.RegisterAll(server)

	if addr := cfg.Metrics.ListenAddr; addr != "" {
		go serveMetrics(addr, logger)
	}

	logger.Info("Starting Linear MCP Server",
		"name", ServerName,
		"version", ServerVersion,
	)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// serveMetrics exposes Prometheus metrics on a side listener. The MCP
// transport stays on stdio regardless.
func serveMetrics(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logger.Info("Serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("Metrics listener failed", "error", err)
	}
}
