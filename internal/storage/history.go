package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/claude/coachplan/internal/models"
	"github.com/google/uuid"
)

// RecordCompletion appends a history entry and writes the schedule's updated
// progress in one transaction. Either both land or neither does.
func (db *DB) RecordCompletion(ctx context.Context, entry models.WorkoutHistoryEntry, sched *models.ProgramSchedule) error {
	exercises, err := json.Marshal(entry.Exercises)
	if err != nil {
		return fmt.Errorf("marshaling exercise snapshot: %w", err)
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO workout_history
		 (id, program_id, session_key, session_name, completed_at, duration_minutes, exercises, notes)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		entry.ID, entry.ProgramID, entry.SessionKey, entry.SessionName,
		entry.CompletedAt, entry.DurationMinutes, exercises, entry.Notes)
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}

	if err := updateScheduleProgress(ctx, tx, sched); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// QueryHistory returns the most recent history entries for a program.
func (db *DB) QueryHistory(ctx context.Context, programID uuid.UUID, limit int) ([]models.WorkoutHistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT id, program_id, session_key, session_name, completed_at, duration_minutes, exercises, notes
		 FROM workout_history
		 WHERE program_id = $1
		 ORDER BY completed_at DESC
		 LIMIT $2`, programID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutHistoryEntry
	for rows.Next() {
		var h models.WorkoutHistoryEntry
		var exercises []byte
		if err := rows.Scan(&h.ID, &h.ProgramID, &h.SessionKey, &h.SessionName,
			&h.CompletedAt, &h.DurationMinutes, &exercises, &h.Notes); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		if len(exercises) > 0 {
			if err := json.Unmarshal(exercises, &h.Exercises); err != nil {
				return nil, fmt.Errorf("unmarshaling exercise snapshot: %w", err)
			}
		}
		result = append(result, h)
	}
	return result, rows.Err()
}
