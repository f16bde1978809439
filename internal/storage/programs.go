package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/claude/coachplan/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrProgramNotFound is returned when no program exists for the given id.
var ErrProgramNotFound = errors.New("program not found")

// CreateProgram inserts a program together with its template, day records and
// schedule in a single transaction. A program always has exactly one template
// and one schedule, so they are born together.
func (db *DB) CreateProgram(ctx context.Context, prog models.Program, tmpl models.WorkoutTemplate, days []models.WorkoutDay, sched models.ProgramSchedule) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO programs (id, user_id, title, description, icon, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		prog.ID, prog.UserID, prog.Title, prog.Description, prog.Icon, prog.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting program: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO workout_templates (id, program_id, name, days_per_week, description, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		tmpl.ID, tmpl.ProgramID, tmpl.Name, tmpl.DaysPerWeek, tmpl.Description, tmpl.CreatedAt, tmpl.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting template: %w", err)
	}

	for _, day := range days {
		exercises, err := json.Marshal(day.Exercises)
		if err != nil {
			return fmt.Errorf("marshaling exercises for day %d: %w", day.DayNumber, err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO workout_days (id, template_id, day_number, workout_type, exercises, is_rest_day, estimated_minutes)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			day.ID, day.TemplateID, day.DayNumber, day.WorkoutType, exercises, day.IsRestDay, day.EstimatedMinutes)
		if err != nil {
			return fmt.Errorf("inserting day %d: %w", day.DayNumber, err)
		}
	}

	keys, err := json.Marshal(sched.Completed)
	if err != nil {
		return fmt.Errorf("marshaling completed keys: %w", err)
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO program_schedules
		 (id, user_id, program_id, template_id, title, description, icon, start_date,
		  duration_weeks, current_week, current_day, completed_keys, status, completion_pct,
		  created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		sched.ID, sched.UserID, sched.ProgramID, sched.TemplateID,
		sched.Title, sched.Description, sched.Icon, sched.StartDate.Time(),
		sched.DurationWeeks, sched.CurrentWeek, sched.CurrentDay, keys,
		sched.Status, sched.CompletionPct, sched.CreatedAt, sched.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting schedule: %w", err)
	}

	return tx.Commit(ctx)
}

// GetProgram retrieves a program by id.
func (db *DB) GetProgram(ctx context.Context, id uuid.UUID) (*models.Program, error) {
	var p models.Program
	err := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, title, description, icon, created_at
		 FROM programs WHERE id = $1`, id).
		Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.Icon, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProgramNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying program: %w", err)
	}
	return &p, nil
}

// ListPrograms returns a user's programs, newest first.
func (db *DB) ListPrograms(ctx context.Context, userID int) ([]models.Program, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, title, description, icon, created_at
		 FROM programs WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying programs: %w", err)
	}
	defer rows.Close()

	var result []models.Program
	for rows.Next() {
		var p models.Program
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.Icon, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning program: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// DeleteProgram removes a program. The template, days, schedule, history and
// rest-day logs cascade through foreign keys.
func (db *DB) DeleteProgram(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM programs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProgramNotFound
	}
	return nil
}
