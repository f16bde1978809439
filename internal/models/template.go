package models

import (
	"time"

	"github.com/google/uuid"
)

// Program is the cascade root a template and schedule hang off.
type Program struct {
	ID          uuid.UUID `json:"id"`
	UserID      int       `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// WorkoutTemplate is the single recurring week-long workout pattern for a
// program. Day content lives in WorkoutDay rows; the template itself only
// carries metadata. Exactly one template exists per program.
type WorkoutTemplate struct {
	ID          uuid.UUID `json:"id"`
	ProgramID   uuid.UUID `json:"program_id"`
	Name        string    `json:"name"`
	DaysPerWeek int       `json:"days_per_week"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WorkoutDay is one day slot (1–7) of a template. The same day repeats in
// every week of the program, so editing a day changes all future occurrences.
type WorkoutDay struct {
	ID               uuid.UUID  `json:"id"`
	TemplateID       uuid.UUID  `json:"template_id"`
	DayNumber        int        `json:"day_number"`
	WorkoutType      string     `json:"workout_type"`
	Exercises        []Exercise `json:"exercises"`
	IsRestDay        bool       `json:"is_rest_day"`
	EstimatedMinutes int        `json:"estimated_minutes"`
}

// Exercise is one entry of a day's ordered exercise list. Stored as JSON on
// the workout_days row, and frozen into workout_history on completion.
// Completed is session-scoped state and never persisted at the template level.
type Exercise struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Sets        int      `json:"sets"`
	Reps        int      `json:"reps"`
	WeightKg    *float64 `json:"weight_kg,omitempty"`
	RestSeconds int      `json:"rest_seconds"`
	Notes       string   `json:"notes,omitempty"`
	Completed   bool     `json:"completed,omitempty"`
}
