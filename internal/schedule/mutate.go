package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/coachplan/internal/models"
	"github.com/google/uuid"
)

// ErrIndexOutOfRange is returned by index-based exercise edits when the index
// does not address an existing exercise.
var ErrIndexOutOfRange = errors.New("exercise index out of range")

// Template edits change every future occurrence of the edited day across all
// weeks, because the template is the single source of truth for recurring
// content. None of the operations here touch the schedule's completed keys or
// percentage: history entries hold their own frozen snapshots, so editing
// future content never rewrites past completions.

// AddExercise appends an exercise to the day's list and recomputes the day's
// estimated duration. An empty exercise id is assigned a fresh one.
func (e *Engine) AddExercise(ctx context.Context, programID uuid.UUID, dayNumber int, ex models.Exercise) error {
	day, err := e.loadDay(ctx, programID, dayNumber)
	if err != nil {
		return err
	}
	if day.IsRestDay {
		return fmt.Errorf("day %d is a rest day", dayNumber)
	}
	if ex.ID == "" {
		ex.ID = uuid.NewString()
	}
	day.Exercises = append(day.Exercises, ex)
	day.EstimatedMinutes = EstimateDuration(day.Exercises)
	return e.store.UpdateDay(ctx, day)
}

// UpdateExercise replaces the exercise at index. The existing exercise id is
// preserved when the replacement does not carry one.
func (e *Engine) UpdateExercise(ctx context.Context, programID uuid.UUID, dayNumber, index int, ex models.Exercise) error {
	day, err := e.loadDay(ctx, programID, dayNumber)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(day.Exercises) {
		return fmt.Errorf("index %d with %d exercises: %w", index, len(day.Exercises), ErrIndexOutOfRange)
	}
	if ex.ID == "" {
		ex.ID = day.Exercises[index].ID
	}
	day.Exercises[index] = ex
	day.EstimatedMinutes = EstimateDuration(day.Exercises)
	return e.store.UpdateDay(ctx, day)
}

// RemoveExercise deletes the exercise at index.
func (e *Engine) RemoveExercise(ctx context.Context, programID uuid.UUID, dayNumber, index int) error {
	day, err := e.loadDay(ctx, programID, dayNumber)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(day.Exercises) {
		return fmt.Errorf("index %d with %d exercises: %w", index, len(day.Exercises), ErrIndexOutOfRange)
	}
	day.Exercises = append(day.Exercises[:index], day.Exercises[index+1:]...)
	day.EstimatedMinutes = EstimateDuration(day.Exercises)
	return e.store.UpdateDay(ctx, day)
}

// RenameDay changes the day's workout-type label.
func (e *Engine) RenameDay(ctx context.Context, programID uuid.UUID, dayNumber int, workoutType string) error {
	day, err := e.loadDay(ctx, programID, dayNumber)
	if err != nil {
		return err
	}
	day.WorkoutType = workoutType
	return e.store.UpdateDay(ctx, day)
}

// SetRestDay swaps a day between workout and rest. Turning a workout day into
// a rest day clears its exercises and duration (a rest day's list is empty by
// invariant); turning a rest day back into a workout day leaves the empty
// list ready for editing.
func (e *Engine) SetRestDay(ctx context.Context, programID uuid.UUID, dayNumber int, rest bool) error {
	day, err := e.loadDay(ctx, programID, dayNumber)
	if err != nil {
		return err
	}
	day.IsRestDay = rest
	if rest {
		day.Exercises = nil
		day.EstimatedMinutes = 0
	}
	return e.store.UpdateDay(ctx, day)
}

// UpdateDayInfo applies a partial edit of the day's workout type and rest flag
// in a single write, so a patch carrying both fields cannot half-apply. Nil
// fields are left unchanged. Rest-flag semantics match SetRestDay.
func (e *Engine) UpdateDayInfo(ctx context.Context, programID uuid.UUID, dayNumber int, workoutType *string, rest *bool) error {
	day, err := e.loadDay(ctx, programID, dayNumber)
	if err != nil {
		return err
	}
	if rest != nil {
		day.IsRestDay = *rest
		if *rest {
			day.Exercises = nil
			day.EstimatedMinutes = 0
		}
	}
	if workoutType != nil {
		day.WorkoutType = *workoutType
	}
	return e.store.UpdateDay(ctx, day)
}

// loadDay resolves one template day of a program. All reads needed by a
// mutation happen here, before any write, so a failed lookup aborts cleanly.
func (e *Engine) loadDay(ctx context.Context, programID uuid.UUID, dayNumber int) (*models.WorkoutDay, error) {
	_, days, err := e.store.GetTemplateByProgram(ctx, programID)
	if err != nil {
		return nil, err
	}
	for i := range days {
		if days[i].DayNumber == dayNumber {
			return &days[i], nil
		}
	}
	return nil, fmt.Errorf("day %d not in template: %w", dayNumber, ErrSessionNotFound)
}
