// Package mcp exposes the workout catalog, session history, and progress
// statistics to AI assistants over the Model Context Protocol.
package mcp

import (
	"log/slog"

	"github.com/claude/formcoach/internal/catalog"
	"github.com/claude/formcoach/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(cat *catalog.Catalog, st *store.Store, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("FormCoach", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("FormCoach fitness coaching server. Browse the workout catalog, review completed workout sessions, and query daily/weekly progress statistics."),
	)

	h := &handlers{catalog: cat, store: st, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolListWorkouts, Handler: h.listWorkouts},
		server.ServerTool{Tool: toolGetWorkout, Handler: h.getWorkout},
		server.ServerTool{Tool: toolGetWorkoutHistory, Handler: h.getWorkoutHistory},
		server.ServerTool{Tool: toolGetDailyProgress, Handler: h.getDailyProgress},
		server.ServerTool{Tool: toolGetWeeklySummary, Handler: h.getWeeklySummary},
	)

	s.AddResources(
		server.ServerResource{Resource: resProgressOverview, Handler: h.progressOverview},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	catalog *catalog.Catalog
	store   *store.Store
	log     *slog.Logger
}

// --- Resource definitions ---

var resProgressOverview = mcp.NewResource(
	"formcoach://progress_overview",
	"Progress Overview",
	mcp.WithResourceDescription("Current weekly summary, weekly goals, and the most recent workout sessions"),
	mcp.WithMIMEType("application/json"),
)
