package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("CoachPlan", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("CoachPlan workout program server. Query training programs, weekly schedules, progress, and history; mark sessions complete and log rest days. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListPrograms, Handler: h.listPrograms},
		server.ServerTool{Tool: toolGetWeekSchedule, Handler: h.getWeekSchedule},
		server.ServerTool{Tool: toolGetCurrentSession, Handler: h.getCurrentSession},
		server.ServerTool{Tool: toolGetProgress, Handler: h.getProgress},
		server.ServerTool{Tool: toolGetCalendar, Handler: h.getCalendar},
		server.ServerTool{Tool: toolGetHistory, Handler: h.getHistory},
		server.ServerTool{Tool: toolCompleteSession, Handler: h.completeSession},
		server.ServerTool{Tool: toolLogRestDay, Handler: h.logRestDay},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resCurrentSessions, Handler: h.currentSessions},
		server.ServerResource{Resource: resProgramProgress, Handler: h.programProgress},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resCurrentSessions = mcp.NewResource(
	"coachplan://current_sessions",
	"Current Sessions",
	mcp.WithResourceDescription("The next scheduled workout for every program, with exercises and planned dates"),
	mcp.WithMIMEType("application/json"),
)

var resProgramProgress = mcp.NewResource(
	"coachplan://program_progress",
	"Program Progress",
	mcp.WithResourceDescription("Completion percentage, cursor position, and status for every program"),
	mcp.WithMIMEType("application/json"),
)
