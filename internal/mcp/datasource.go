package mcp

import (
	"context"

	"github.com/claude/coachplan/internal/models"
	"github.com/claude/coachplan/internal/schedule"
	"github.com/claude/coachplan/internal/storage"
	"github.com/google/uuid"
)

// DataSource abstracts the program data layer for MCP tools. Local (engine +
// database) and HTTPClient (remote via REST API) both satisfy this interface.
type DataSource interface {
	ListPrograms(ctx context.Context, userID int) ([]models.Program, error)
	WeekSchedule(ctx context.Context, programID uuid.UUID, week int) ([]schedule.SessionView, error)
	CurrentSession(ctx context.Context, programID uuid.UUID) (*schedule.ScheduledWorkoutView, error)
	GetCompletionState(ctx context.Context, programID uuid.UUID) (*schedule.CompletionState, error)
	Calendar(ctx context.Context, programID uuid.UUID, from, to models.Date) ([]schedule.ScheduledWorkoutView, error)
	History(ctx context.Context, programID uuid.UUID, limit int) ([]models.WorkoutHistoryEntry, error)
	CompleteSession(ctx context.Context, programID uuid.UUID, week, day, durationSeconds int) (uuid.UUID, error)
	LogRestDay(ctx context.Context, programID uuid.UUID, week, day int, feeling string, activities []string, note string) (uuid.UUID, error)
	RestDayLogs(ctx context.Context, programID uuid.UUID) ([]models.RestDayLog, error)
}

// Local implements DataSource against the in-process engine and database.
type Local struct {
	*schedule.Engine
	db *storage.DB
}

// NewLocal wraps the engine and database into a DataSource.
func NewLocal(engine *schedule.Engine, db *storage.DB) *Local {
	return &Local{Engine: engine, db: db}
}

func (l *Local) ListPrograms(ctx context.Context, userID int) ([]models.Program, error) {
	return l.db.ListPrograms(ctx, userID)
}

// Compile-time check: *Local satisfies DataSource.
var _ DataSource = (*Local)(nil)
