package mcp

import (
	"context"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/claude/coachplan/internal/models"
	"github.com/claude/coachplan/internal/schedule"
	"github.com/google/uuid"
	mcplib "github.com/mark3labs/mcp-go/mcp"
)

// stubSource is a DataSource fake that records the arguments of the last
// mutation call.
type stubSource struct {
	lastFeeling    string
	lastActivities []string
	lastNote       string
}

func (s *stubSource) ListPrograms(ctx context.Context, userID int) ([]models.Program, error) {
	return nil, nil
}

func (s *stubSource) WeekSchedule(ctx context.Context, programID uuid.UUID, week int) ([]schedule.SessionView, error) {
	return nil, nil
}

func (s *stubSource) CurrentSession(ctx context.Context, programID uuid.UUID) (*schedule.ScheduledWorkoutView, error) {
	return nil, nil
}

func (s *stubSource) GetCompletionState(ctx context.Context, programID uuid.UUID) (*schedule.CompletionState, error) {
	return nil, nil
}

func (s *stubSource) Calendar(ctx context.Context, programID uuid.UUID, from, to models.Date) ([]schedule.ScheduledWorkoutView, error) {
	return nil, nil
}

func (s *stubSource) History(ctx context.Context, programID uuid.UUID, limit int) ([]models.WorkoutHistoryEntry, error) {
	return nil, nil
}

func (s *stubSource) CompleteSession(ctx context.Context, programID uuid.UUID, week, day, durationSeconds int) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (s *stubSource) LogRestDay(ctx context.Context, programID uuid.UUID, week, day int, feeling string, activities []string, note string) (uuid.UUID, error) {
	s.lastFeeling = feeling
	s.lastActivities = activities
	s.lastNote = note
	return uuid.New(), nil
}

func (s *stubSource) RestDayLogs(ctx context.Context, programID uuid.UUID) ([]models.RestDayLog, error) {
	return nil, nil
}

var _ DataSource = (*stubSource)(nil)

func callRequest(args map[string]any) mcplib.CallToolRequest {
	req := mcplib.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// TestLogRestDayToolActivities verifies the activities array reaches the data
// source instead of being dropped.
func TestLogRestDayToolActivities(t *testing.T) {
	src := &stubSource{}
	h := &handlers{ds: src, log: slog.New(slog.NewTextHandler(io.Discard, nil))}

	req := callRequest(map[string]any{
		"program_id": uuid.New().String(),
		"week":       1,
		"day":        3,
		"feeling":    "recovered",
		"activities": []any{"stretching", "walking"},
		"note":       "easy day",
	})
	result, err := h.logRestDay(context.Background(), req)
	if err != nil {
		t.Fatalf("logRestDay: %v", err)
	}
	if result.IsError {
		t.Fatalf("logRestDay returned tool error: %v", result.Content)
	}

	want := []string{"stretching", "walking"}
	if !reflect.DeepEqual(src.lastActivities, want) {
		t.Errorf("activities = %v, want %v", src.lastActivities, want)
	}
	if src.lastFeeling != "recovered" {
		t.Errorf("feeling = %q, want %q", src.lastFeeling, "recovered")
	}
	if src.lastNote != "easy day" {
		t.Errorf("note = %q, want %q", src.lastNote, "easy day")
	}
}

// TestLogRestDayToolNoActivities verifies the parameter stays optional.
func TestLogRestDayToolNoActivities(t *testing.T) {
	src := &stubSource{}
	h := &handlers{ds: src, log: slog.New(slog.NewTextHandler(io.Discard, nil))}

	req := callRequest(map[string]any{
		"program_id": uuid.New().String(),
		"week":       2,
		"day":        7,
	})
	result, err := h.logRestDay(context.Background(), req)
	if err != nil {
		t.Fatalf("logRestDay: %v", err)
	}
	if result.IsError {
		t.Fatalf("logRestDay returned tool error: %v", result.Content)
	}
	if len(src.lastActivities) != 0 {
		t.Errorf("activities = %v, want empty", src.lastActivities)
	}
}
