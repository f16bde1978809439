package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutHistoryEntry is one completed session. Append-only: the exercise
// snapshot is frozen at completion time and stays valid even if the template
// is edited afterwards. A replayed session appends another entry.
type WorkoutHistoryEntry struct {
	ID              uuid.UUID  `json:"id"`
	ProgramID       uuid.UUID  `json:"program_id"`
	SessionKey      string     `json:"session_key"`
	SessionName     string     `json:"session_name"`
	CompletedAt     time.Time  `json:"completed_at"`
	DurationMinutes int        `json:"duration_minutes"`
	Exercises       []Exercise `json:"exercises"`
	Notes           string     `json:"notes,omitempty"`
}

// RestDayLog is an optional qualitative entry for a rest day. Purely
// informational; independent of completion tracking.
type RestDayLog struct {
	ID         uuid.UUID `json:"id"`
	ProgramID  uuid.UUID `json:"program_id"`
	Week       int       `json:"week"`
	Day        int       `json:"day"`
	Feeling    string    `json:"feeling,omitempty"`
	Activities []string  `json:"activities,omitempty"`
	Note       string    `json:"note,omitempty"`
	LoggedAt   time.Time `json:"logged_at"`
}
