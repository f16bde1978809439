// Package offline queues session completions and rest day logs on disk so
// workouts can be recorded without reaching the server, then replays them
// against the REST API once it is reachable.
package offline

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry kinds stored in the queue.
const (
	KindCompletion = "completion"
	KindRestDay    = "rest_day"
)

// Entry is one pending record waiting to be synced.
type Entry struct {
	ID              int64
	Kind            string
	ProgramID       string
	Week            int
	Day             int
	DurationSeconds int
	Feeling         string
	Note            string
	CreatedAt       time.Time
}

// Queue is the SQLite-backed pending queue at dir/queue.db.
type Queue struct {
	db *sql.DB
}

// Open opens (or creates) the queue database.
func Open(dir string) (*Queue, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating queue dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "queue.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening queue db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS pending_entries (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		kind             TEXT NOT NULL,
		program_id       TEXT NOT NULL,
		week             INTEGER NOT NULL,
		day              INTEGER NOT NULL,
		duration_seconds INTEGER NOT NULL DEFAULT 0,
		feeling          TEXT NOT NULL DEFAULT '',
		note             TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating queue table: %w", err)
	}

	return &Queue{db: db}, nil
}

// Enqueue appends an entry and returns its assigned ID.
func (q *Queue) Enqueue(e Entry) (int64, error) {
	res, err := q.db.Exec(
		`INSERT INTO pending_entries (kind, program_id, week, day, duration_seconds, feeling, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Kind, e.ProgramID, e.Week, e.Day, e.DurationSeconds, e.Feeling, e.Note,
	)
	if err != nil {
		return 0, fmt.Errorf("enqueue: %w", err)
	}
	return res.LastInsertId()
}

// Pending returns all queued entries in insertion order.
func (q *Queue) Pending() ([]Entry, error) {
	rows, err := q.db.Query(
		`SELECT id, kind, program_id, week, day, duration_seconds, feeling, note, created_at
		 FROM pending_entries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing pending entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Kind, &e.ProgramID, &e.Week, &e.Day,
			&e.DurationSeconds, &e.Feeling, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning pending entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Remove deletes a synced entry.
func (q *Queue) Remove(id int64) error {
	_, err := q.db.Exec(`DELETE FROM pending_entries WHERE id = ?`, id)
	return err
}

// Close closes the queue database.
func (q *Queue) Close() error {
	return q.db.Close()
}
