package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/claude/coachplan/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrScheduleNotFound is returned when no schedule exists for the given
// program id.
var ErrScheduleNotFound = errors.New("program schedule not found")

// GetSchedule retrieves a program's schedule record.
func (db *DB) GetSchedule(ctx context.Context, programID uuid.UUID) (*models.ProgramSchedule, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, program_id, template_id, title, description, icon, start_date,
		        duration_weeks, current_week, current_day, completed_keys, status, completion_pct,
		        created_at, updated_at
		 FROM program_schedules WHERE program_id = $1`, programID)

	var s models.ProgramSchedule
	var startDate time.Time
	var keys []byte
	var status string
	err := row.Scan(&s.ID, &s.UserID, &s.ProgramID, &s.TemplateID,
		&s.Title, &s.Description, &s.Icon, &startDate,
		&s.DurationWeeks, &s.CurrentWeek, &s.CurrentDay, &keys, &status, &s.CompletionPct,
		&s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying schedule: %w", err)
	}

	s.StartDate = models.DateOf(startDate)
	s.Status = models.ScheduleStatus(status)
	s.Completed = models.NewKeySet()
	if len(keys) > 0 {
		if err := json.Unmarshal(keys, &s.Completed); err != nil {
			return nil, fmt.Errorf("unmarshaling completed keys: %w", err)
		}
	}
	return &s, nil
}

// updateScheduleProgress writes the schedule's mutable progress fields.
// Runs inside the caller's transaction so it can pair atomically with a
// history insert.
func updateScheduleProgress(ctx context.Context, tx pgx.Tx, s *models.ProgramSchedule) error {
	keys, err := json.Marshal(s.Completed)
	if err != nil {
		return fmt.Errorf("marshaling completed keys: %w", err)
	}
	tag, err := tx.Exec(ctx,
		`UPDATE program_schedules
		 SET current_week = $2, current_day = $3, completed_keys = $4,
		     status = $5, completion_pct = $6, updated_at = $7
		 WHERE id = $1`,
		s.ID, s.CurrentWeek, s.CurrentDay, keys, s.Status, s.CompletionPct, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("updating schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrScheduleNotFound
	}
	return nil
}
