package mcp

import (
	"log/slog"

	"github.com/claude/fitscribe/internal/exercises"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, lookup exercises.Lookup, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("fitscribe", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("fitscribe workout converter. Parse OCR'd workout text into structured documents, browse stored workouts, and export Garmin FIT files."),
	)

	h := &handlers{ds: ds, lookup: lookup, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolParseWorkout, Handler: h.parseWorkout},
		server.ServerTool{Tool: toolExportWorkoutFIT, Handler: h.exportWorkoutFIT},
		server.ServerTool{Tool: toolListWorkouts, Handler: h.listWorkouts},
		server.ServerTool{Tool: toolLookupExercise, Handler: h.lookupExercise},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds     DataSource
	lookup exercises.Lookup
	log    *slog.Logger
}

// --- Resource definitions ---

var resRecentWorkouts = mcp.NewResource(
	"fitscribe://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("The 20 most recently ingested workouts with their parsed documents"),
	mcp.WithMIMEType("application/json"),
)
