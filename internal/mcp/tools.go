package mcp

import (
	"context"
	"time"

	"github.com/claude/coachplan/internal/models"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultDateRange returns from/to calendar dates defaulting to the next 28
// days from today.
func defaultDateRange(startStr, endStr string) (models.Date, models.Date, error) {
	var from, to models.Date
	var err error

	if startStr != "" {
		from, err = models.ParseDate(startStr)
		if err != nil {
			return models.Date{}, models.Date{}, err
		}
	} else {
		from = models.DateOf(time.Now())
	}

	if endStr != "" {
		to, err = models.ParseDate(endStr)
		if err != nil {
			return models.Date{}, models.Date{}, err
		}
	} else {
		to = from.AddDays(28)
	}

	return from, to, nil
}

func programIDArg(req mcp.CallToolRequest) (uuid.UUID, *mcp.CallToolResult) {
	idStr, err := req.RequireString("program_id")
	if err != nil {
		return uuid.Nil, mcp.NewToolResultError("program_id parameter is required")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, mcp.NewToolResultError("program_id is not a valid UUID")
	}
	return id, nil
}

// --- Tool definitions ---

var toolListPrograms = mcp.NewTool("list_programs",
	mcp.WithDescription("List all workout programs with title, duration, and start date. Use the returned program IDs with the other tools."),
)

var toolGetWeekSchedule = mcp.NewTool("get_week_schedule",
	mcp.WithDescription("Get the full session list for one week of a program: day numbers, workout names, exercises, rest days, and which sessions are already completed."),
	mcp.WithString("program_id", mcp.Required(), mcp.Description("Program UUID")),
	mcp.WithNumber("week", mcp.Required(), mcp.Description("Week number (1-based)")),
)

var toolGetCurrentSession = mcp.NewTool("get_current_session",
	mcp.WithDescription("Get the next scheduled workout for a program, including its planned calendar date and exercise list. Returns nothing once the program is completed."),
	mcp.WithString("program_id", mcp.Required(), mcp.Description("Program UUID")),
)

var toolGetProgress = mcp.NewTool("get_progress",
	mcp.WithDescription("Get program completion state: percentage, completed session count, cursor position, and status."),
	mcp.WithString("program_id", mcp.Required(), mcp.Description("Program UUID")),
)

var toolGetCalendar = mcp.NewTool("get_calendar",
	mcp.WithDescription("List sessions scheduled in a calendar window with their planned dates."),
	mcp.WithString("program_id", mcp.Required(), mcp.Description("Program UUID")),
	mcp.WithString("start", mcp.Description("Window start (YYYY-MM-DD). Defaults to today.")),
	mcp.WithString("end", mcp.Description("Window end (YYYY-MM-DD). Defaults to 28 days after start.")),
)

var toolGetHistory = mcp.NewTool("get_history",
	mcp.WithDescription("List completed workout sessions, newest first, with the exercise snapshot recorded at completion time."),
	mcp.WithString("program_id", mcp.Required(), mcp.Description("Program UUID")),
	mcp.WithNumber("limit", mcp.Description("Maximum entries to return. Defaults to 50.")),
)

var toolCompleteSession = mcp.NewTool("complete_session",
	mcp.WithDescription("Mark a session complete. Records a history entry with the current exercise snapshot, advances the program cursor, and updates the completion percentage. Completing a session twice adds a history entry but does not change progress."),
	mcp.WithString("program_id", mcp.Required(), mcp.Description("Program UUID")),
	mcp.WithNumber("week", mcp.Required(), mcp.Description("Week of the completed session")),
	mcp.WithNumber("day", mcp.Required(), mcp.Description("Day of the completed session")),
	mcp.WithNumber("duration_seconds", mcp.Description("Actual workout duration in seconds")),
)

var toolLogRestDay = mcp.NewTool("log_rest_day",
	mcp.WithDescription("Record how a rest day went: feeling, recovery activities, and a free-form note. Logging the same rest day again overwrites the earlier entry."),
	mcp.WithString("program_id", mcp.Required(), mcp.Description("Program UUID")),
	mcp.WithNumber("week", mcp.Required(), mcp.Description("Week of the rest day")),
	mcp.WithNumber("day", mcp.Required(), mcp.Description("Day of the rest day")),
	mcp.WithString("feeling", mcp.Description("How the rest day felt (e.g. 'recovered', 'sore', 'tired')")),
	mcp.WithArray("activities", mcp.Description("Recovery activities (e.g. 'stretching', 'walking')"), mcp.Items(map[string]any{"type": "string"})),
	mcp.WithString("note", mcp.Description("Free-form note")),
)

// --- Tool handlers ---

func (h *handlers) listPrograms(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	programs, err := h.ds.ListPrograms(ctx, uid)
	if err != nil {
		h.log.Error("mcp list_programs", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(programs)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWeekSchedule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	programID, errResult := programIDArg(req)
	if errResult != nil {
		return errResult, nil
	}
	week, err := req.RequireInt("week")
	if err != nil {
		return mcp.NewToolResultError("week parameter is required"), nil
	}

	views, err := h.ds.WeekSchedule(ctx, programID, week)
	if err != nil {
		h.log.Error("mcp get_week_schedule", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(views)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getCurrentSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	programID, errResult := programIDArg(req)
	if errResult != nil {
		return errResult, nil
	}

	view, err := h.ds.CurrentSession(ctx, programID)
	if err != nil {
		h.log.Error("mcp get_current_session", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if view == nil {
		return mcp.NewToolResultText("program is completed; no upcoming session"), nil
	}

	result, err := mcp.NewToolResultJSON(view)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	programID, errResult := programIDArg(req)
	if errResult != nil {
		return errResult, nil
	}

	state, err := h.ds.GetCompletionState(ctx, programID)
	if err != nil {
		h.log.Error("mcp get_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(state)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getCalendar(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	programID, errResult := programIDArg(req)
	if errResult != nil {
		return errResult, nil
	}

	from, to, err := defaultDateRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	views, err := h.ds.Calendar(ctx, programID, from, to)
	if err != nil {
		h.log.Error("mcp get_calendar", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(views)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	programID, errResult := programIDArg(req)
	if errResult != nil {
		return errResult, nil
	}
	limit := req.GetInt("limit", 50)

	entries, err := h.ds.History(ctx, programID, limit)
	if err != nil {
		h.log.Error("mcp get_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(entries)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) completeSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	programID, errResult := programIDArg(req)
	if errResult != nil {
		return errResult, nil
	}
	week, err := req.RequireInt("week")
	if err != nil {
		return mcp.NewToolResultError("week parameter is required"), nil
	}
	day, err := req.RequireInt("day")
	if err != nil {
		return mcp.NewToolResultError("day parameter is required"), nil
	}
	durationSeconds := req.GetInt("duration_seconds", 0)

	historyID, err := h.ds.CompleteSession(ctx, programID, week, day, durationSeconds)
	if err != nil {
		h.log.Error("mcp complete_session", "error", err)
		return mcp.NewToolResultError("completion failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]string{"history_id": historyID.String()})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) logRestDay(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	programID, errResult := programIDArg(req)
	if errResult != nil {
		return errResult, nil
	}
	week, err := req.RequireInt("week")
	if err != nil {
		return mcp.NewToolResultError("week parameter is required"), nil
	}
	day, err := req.RequireInt("day")
	if err != nil {
		return mcp.NewToolResultError("day parameter is required"), nil
	}

	feeling := req.GetString("feeling", "")
	activities := req.GetStringSlice("activities", nil)
	note := req.GetString("note", "")

	logID, err := h.ds.LogRestDay(ctx, programID, week, day, feeling, activities, note)
	if err != nil {
		h.log.Error("mcp log_rest_day", "error", err)
		return mcp.NewToolResultError("logging failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]string{"log_id": logID.String()})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
