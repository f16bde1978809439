package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/claude/coachplan/internal/models"
	"github.com/claude/coachplan/internal/storage"
	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when the requested day number is not present
// in the program's template.
var ErrSessionNotFound = errors.New("session not found")

// Store is the persistence surface the engine needs. *storage.DB satisfies it;
// tests substitute an in-memory fake.
type Store interface {
	GetTemplateByProgram(ctx context.Context, programID uuid.UUID) (*models.WorkoutTemplate, []models.WorkoutDay, error)
	GetSchedule(ctx context.Context, programID uuid.UUID) (*models.ProgramSchedule, error)
	UpdateDay(ctx context.Context, day *models.WorkoutDay) error
	RecordCompletion(ctx context.Context, entry models.WorkoutHistoryEntry, sched *models.ProgramSchedule) error
	QueryHistory(ctx context.Context, programID uuid.UUID, limit int) ([]models.WorkoutHistoryEntry, error)
	UpsertRestDayLog(ctx context.Context, log models.RestDayLog) error
	QueryRestDayLogs(ctx context.Context, programID uuid.UUID) ([]models.RestDayLog, error)
}

// Compile-time check: *storage.DB satisfies Store.
var _ Store = (*storage.DB)(nil)

// Engine is the scheduling engine and progress recorder. All operations are
// short synchronous read/compute/write sequences; the only blocking points
// are the store calls, which take the caller's context.
type Engine struct {
	store Store
	log   *slog.Logger
}

// New creates an Engine backed by the given store.
func New(store Store, log *slog.Logger) *Engine {
	return &Engine{store: store, log: log}
}

// WeekSchedule returns the session views for one week of the program.
// Weeks past the declared duration are served normally; callers that want to
// forbid navigating past the end compare against the schedule's duration.
func (e *Engine) WeekSchedule(ctx context.Context, programID uuid.UUID, week int) ([]SessionView, error) {
	if week < 1 {
		return nil, fmt.Errorf("week %d out of range: %w", week, ErrSessionNotFound)
	}
	sched, err := e.store.GetSchedule(ctx, programID)
	if err != nil {
		return nil, err
	}
	_, days, err := e.store.GetTemplateByProgram(ctx, programID)
	if err != nil {
		return nil, err
	}
	return MapTemplateToWeek(days, week, sched.Completed), nil
}

// Calendar returns dated session views whose scheduled dates fall within
// [from, to] inclusive.
func (e *Engine) Calendar(ctx context.Context, programID uuid.UUID, from, to models.Date) ([]ScheduledWorkoutView, error) {
	sched, err := e.store.GetSchedule(ctx, programID)
	if err != nil {
		return nil, err
	}
	_, days, err := e.store.GetTemplateByProgram(ctx, programID)
	if err != nil {
		return nil, err
	}
	return ScheduledRange(days, sched, from, to), nil
}

// CurrentSession resolves the session at the schedule's cursor, with its
// scheduled date. Used to resume a program.
func (e *Engine) CurrentSession(ctx context.Context, programID uuid.UUID) (*ScheduledWorkoutView, error) {
	sched, err := e.store.GetSchedule(ctx, programID)
	if err != nil {
		return nil, err
	}
	_, days, err := e.store.GetTemplateByProgram(ctx, programID)
	if err != nil {
		return nil, err
	}
	for _, view := range MapTemplateToWeek(days, sched.CurrentWeek, sched.Completed) {
		if view.DayNumber == sched.CurrentDay {
			return &ScheduledWorkoutView{
				SessionView: view,
				Date:        ScheduledDate(sched.StartDate, sched.CurrentWeek, sched.CurrentDay),
			}, nil
		}
	}
	return nil, fmt.Errorf("cursor day %d not in template: %w", sched.CurrentDay, ErrSessionNotFound)
}

// CompleteSession records session (week, day) as done: appends a history
// entry with a frozen snapshot of the day's exercises, adds the completed
// key (idempotently), recomputes the percentage, advances the cursor and
// persists the history insert and schedule update as one atomic write.
// Returns the new history entry's id.
//
// Completing the same slot twice appends two history entries but the
// completed-key set and percentage are unaffected by the replay.
func (e *Engine) CompleteSession(ctx context.Context, programID uuid.UUID, week, day, durationSeconds int) (uuid.UUID, error) {
	if week < 1 {
		return uuid.Nil, fmt.Errorf("week %d out of range: %w", week, ErrSessionNotFound)
	}
	sched, err := e.store.GetSchedule(ctx, programID)
	if err != nil {
		return uuid.Nil, err
	}
	tmpl, days, err := e.store.GetTemplateByProgram(ctx, programID)
	if err != nil {
		return uuid.Nil, err
	}

	var session *SessionView
	for _, view := range MapTemplateToWeek(days, week, sched.Completed) {
		if view.DayNumber == day {
			v := view
			session = &v
			break
		}
	}
	if session == nil {
		return uuid.Nil, fmt.Errorf("day %d not in template: %w", day, ErrSessionNotFound)
	}

	now := time.Now().UTC()
	entry := models.WorkoutHistoryEntry{
		ID:              uuid.New(),
		ProgramID:       programID,
		SessionKey:      models.SessionKey(week, day),
		SessionName:     session.Name,
		CompletedAt:     now,
		DurationMinutes: durationSeconds / 60,
		Exercises:       session.Exercises,
	}

	if sched.Completed == nil {
		sched.Completed = models.NewKeySet()
	}
	sched.Completed.Add(entry.SessionKey)
	sched.CompletionPct = Percentage(sched.Completed, sched.DurationWeeks, len(days))

	nextWeek, nextDay, done := AdvanceCursor(sched.DurationWeeks, tmpl.DaysPerWeek, week, day)
	if done {
		sched.Status = models.StatusCompleted
	} else {
		sched.CurrentWeek = nextWeek
		sched.CurrentDay = nextDay
		if sched.Status != models.StatusCompleted {
			sched.Status = models.StatusInProgress
		}
	}
	sched.UpdatedAt = now

	if err := e.store.RecordCompletion(ctx, entry, sched); err != nil {
		return uuid.Nil, fmt.Errorf("recording completion: %w", err)
	}

	e.log.Info("session completed",
		"program_id", programID,
		"session", entry.SessionKey,
		"pct", sched.CompletionPct,
		"status", sched.Status,
	)
	return entry.ID, nil
}

// CompletionState is the read-only progress projection for a program.
type CompletionState struct {
	CompletedKeys models.KeySet         `json:"completed_keys"`
	Percentage    float64               `json:"percentage"`
	Status        models.ScheduleStatus `json:"status"`
}

// GetCompletionState returns the schedule's completion state without
// mutating anything.
func (e *Engine) GetCompletionState(ctx context.Context, programID uuid.UUID) (*CompletionState, error) {
	sched, err := e.store.GetSchedule(ctx, programID)
	if err != nil {
		return nil, err
	}
	return &CompletionState{
		CompletedKeys: sched.Completed,
		Percentage:    sched.CompletionPct,
		Status:        sched.Status,
	}, nil
}

// History returns the most recent history entries for a program.
func (e *Engine) History(ctx context.Context, programID uuid.UUID, limit int) ([]models.WorkoutHistoryEntry, error) {
	return e.store.QueryHistory(ctx, programID, limit)
}

// LogRestDay upserts the qualitative rest-day entry for (week, day). It is
// independent of completion tracking and never touches the schedule.
func (e *Engine) LogRestDay(ctx context.Context, programID uuid.UUID, week, day int, feeling string, activities []string, note string) (uuid.UUID, error) {
	if _, err := e.store.GetSchedule(ctx, programID); err != nil {
		return uuid.Nil, err
	}
	entry := models.RestDayLog{
		ID:         uuid.New(),
		ProgramID:  programID,
		Week:       week,
		Day:        day,
		Feeling:    feeling,
		Activities: activities,
		Note:       note,
		LoggedAt:   time.Now().UTC(),
	}
	if err := e.store.UpsertRestDayLog(ctx, entry); err != nil {
		return uuid.Nil, fmt.Errorf("logging rest day: %w", err)
	}
	return entry.ID, nil
}

// RestDayLogs lists the program's rest-day entries.
func (e *Engine) RestDayLogs(ctx context.Context, programID uuid.UUID) ([]models.RestDayLog, error) {
	return e.store.QueryRestDayLogs(ctx, programID)
}
