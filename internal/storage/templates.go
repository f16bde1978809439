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

// ErrTemplateNotFound is returned when a program has no workout template.
// Since templates are created with their program, hitting this for an
// existing program indicates store corruption; it propagates as a normal
// error rather than crashing.
var ErrTemplateNotFound = errors.New("workout template not found")

// GetTemplateByProgram retrieves a program's template together with its day
// records, ordered by day number.
func (db *DB) GetTemplateByProgram(ctx context.Context, programID uuid.UUID) (*models.WorkoutTemplate, []models.WorkoutDay, error) {
	var t models.WorkoutTemplate
	err := db.Pool.QueryRow(ctx,
		`SELECT id, program_id, name, days_per_week, description, created_at, updated_at
		 FROM workout_templates WHERE program_id = $1`, programID).
		Scan(&t.ID, &t.ProgramID, &t.Name, &t.DaysPerWeek, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("querying template: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT id, template_id, day_number, workout_type, exercises, is_rest_day, estimated_minutes
		 FROM workout_days WHERE template_id = $1 ORDER BY day_number ASC`, t.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("querying days: %w", err)
	}
	defer rows.Close()

	var days []models.WorkoutDay
	for rows.Next() {
		day, err := scanDay(rows)
		if err != nil {
			return nil, nil, err
		}
		days = append(days, *day)
	}
	return &t, days, rows.Err()
}

// UpdateDay persists a day's content: label, exercise list, rest flag and
// estimated duration. Exercises serialize to JSON here, at the storage edge.
func (db *DB) UpdateDay(ctx context.Context, day *models.WorkoutDay) error {
	exercises, err := json.Marshal(day.Exercises)
	if err != nil {
		return fmt.Errorf("marshaling exercises: %w", err)
	}
	tag, err := db.Pool.Exec(ctx,
		`UPDATE workout_days
		 SET workout_type = $2, exercises = $3, is_rest_day = $4, estimated_minutes = $5
		 WHERE id = $1`,
		day.ID, day.WorkoutType, exercises, day.IsRestDay, day.EstimatedMinutes)
	if err != nil {
		return fmt.Errorf("updating day: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func scanDay(rows pgx.Rows) (*models.WorkoutDay, error) {
	var day models.WorkoutDay
	var exercises []byte
	if err := rows.Scan(&day.ID, &day.TemplateID, &day.DayNumber, &day.WorkoutType,
		&exercises, &day.IsRestDay, &day.EstimatedMinutes); err != nil {
		return nil, fmt.Errorf("scanning day: %w", err)
	}
	if len(exercises) > 0 {
		if err := json.Unmarshal(exercises, &day.Exercises); err != nil {
			return nil, fmt.Errorf("unmarshaling exercises: %w", err)
		}
	}
	return &day, nil
}
