package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/claude/coachplan/internal/models"
	"github.com/google/uuid"
)

// UpsertRestDayLog inserts or replaces the qualitative rest-day entry for
// (program, week, day). One entry per slot; a second log overwrites the first.
func (db *DB) UpsertRestDayLog(ctx context.Context, log models.RestDayLog) error {
	activities, err := json.Marshal(log.Activities)
	if err != nil {
		return fmt.Errorf("marshaling activities: %w", err)
	}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO rest_day_logs (id, program_id, week, day, feeling, activities, note, logged_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 ON CONFLICT (program_id, week, day) DO UPDATE
		   SET feeling = EXCLUDED.feeling, activities = EXCLUDED.activities,
		       note = EXCLUDED.note, logged_at = EXCLUDED.logged_at`,
		log.ID, log.ProgramID, log.Week, log.Day, log.Feeling, activities, log.Note, log.LoggedAt)
	if err != nil {
		return fmt.Errorf("upserting rest day log: %w", err)
	}
	return nil
}

// QueryRestDayLogs lists a program's rest-day entries in session order.
func (db *DB) QueryRestDayLogs(ctx context.Context, programID uuid.UUID) ([]models.RestDayLog, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, program_id, week, day, feeling, activities, note, logged_at
		 FROM rest_day_logs
		 WHERE program_id = $1
		 ORDER BY week ASC, day ASC`, programID)
	if err != nil {
		return nil, fmt.Errorf("querying rest day logs: %w", err)
	}
	defer rows.Close()

	var result []models.RestDayLog
	for rows.Next() {
		var l models.RestDayLog
		var activities []byte
		if err := rows.Scan(&l.ID, &l.ProgramID, &l.Week, &l.Day,
			&l.Feeling, &activities, &l.Note, &l.LoggedAt); err != nil {
			return nil, fmt.Errorf("scanning rest day log: %w", err)
		}
		if len(activities) > 0 {
			if err := json.Unmarshal(activities, &l.Activities); err != nil {
				return nil, fmt.Errorf("unmarshaling activities: %w", err)
			}
		}
		result = append(result, l)
	}
	return result, rows.Err()
}
