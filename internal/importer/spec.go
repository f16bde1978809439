// Package importer turns program definitions (YAML files from the import
// CLI, JSON bodies from the create endpoint) into a validated program,
// template, day records and schedule ready for storage.
package importer

import (
	"fmt"
	"time"

	"github.com/claude/coachplan/internal/models"
	"github.com/claude/coachplan/internal/schedule"
	"github.com/google/uuid"
)

// ProgramSpec is the external definition of a program.
type ProgramSpec struct {
	Title         string       `yaml:"title" json:"title"`
	Description   string       `yaml:"description" json:"description,omitempty"`
	Icon          string       `yaml:"icon" json:"icon,omitempty"`
	DurationWeeks int          `yaml:"duration_weeks" json:"duration_weeks"`
	StartDate     string       `yaml:"start_date" json:"start_date,omitempty"` // YYYY-MM-DD, defaults to today
	Template      TemplateSpec `yaml:"template" json:"template"`
}

// TemplateSpec is the recurring week definition inside a ProgramSpec.
type TemplateSpec struct {
	Name        string    `yaml:"name" json:"name,omitempty"`
	Description string    `yaml:"description" json:"description,omitempty"`
	Days        []DaySpec `yaml:"days" json:"days"`
}

// DaySpec is one day slot of the template definition.
type DaySpec struct {
	DayNumber   int            `yaml:"day" json:"day_number"`
	WorkoutType string         `yaml:"workout_type" json:"workout_type,omitempty"`
	IsRestDay   bool           `yaml:"rest" json:"is_rest_day,omitempty"`
	Exercises   []ExerciseSpec `yaml:"exercises" json:"exercises,omitempty"`
}

// ExerciseSpec is one exercise of a day definition.
type ExerciseSpec struct {
	Name        string   `yaml:"name" json:"name"`
	Sets        int      `yaml:"sets" json:"sets"`
	Reps        int      `yaml:"reps" json:"reps"`
	WeightKg    *float64 `yaml:"weight_kg" json:"weight_kg,omitempty"`
	RestSeconds int      `yaml:"rest_seconds" json:"rest_seconds"`
	Notes       string   `yaml:"notes" json:"notes,omitempty"`
}

// Validate checks the structural invariants of the definition: a title, a
// positive duration, at most 7 days numbered contiguously from 1, and empty
// exercise lists on rest days. Contiguity matters: the schedule cursor starts
// at day 1 and cycles 1..daysPerWeek, so a gap in the numbering would leave
// slots no session can ever occupy.
func (p *ProgramSpec) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("title is required")
	}
	if p.DurationWeeks < 1 {
		return fmt.Errorf("duration_weeks must be at least 1, got %d", p.DurationWeeks)
	}
	if p.StartDate != "" {
		if _, err := models.ParseDate(p.StartDate); err != nil {
			return err
		}
	}
	if len(p.Template.Days) == 0 {
		return fmt.Errorf("template needs at least one day")
	}
	if len(p.Template.Days) > 7 {
		return fmt.Errorf("template has %d days, maximum is 7", len(p.Template.Days))
	}

	// Unique numbers within 1..len(days) force contiguity from 1.
	seen := make(map[int]bool, len(p.Template.Days))
	for _, day := range p.Template.Days {
		if day.DayNumber < 1 || day.DayNumber > len(p.Template.Days) {
			return fmt.Errorf("day number %d: days must be numbered contiguously from 1 to %d", day.DayNumber, len(p.Template.Days))
		}
		if seen[day.DayNumber] {
			return fmt.Errorf("duplicate day number %d", day.DayNumber)
		}
		seen[day.DayNumber] = true

		if day.IsRestDay && len(day.Exercises) > 0 {
			return fmt.Errorf("day %d is a rest day but has %d exercises", day.DayNumber, len(day.Exercises))
		}
		if !day.IsRestDay && day.WorkoutType == "" {
			return fmt.Errorf("day %d needs a workout_type", day.DayNumber)
		}
		for i, ex := range day.Exercises {
			if ex.Name == "" {
				return fmt.Errorf("day %d exercise %d needs a name", day.DayNumber, i)
			}
			if ex.Sets < 1 || ex.Reps < 1 {
				return fmt.Errorf("day %d exercise %q needs positive sets and reps", day.DayNumber, ex.Name)
			}
		}
	}
	return nil
}

// Materialize builds the storable records for the definition: program,
// template, day rows with computed durations, and a fresh ACTIVE schedule
// with its cursor at (1, 1). The start date is truncated to a calendar date
// here, once; everything downstream works in civil dates.
func (p *ProgramSpec) Materialize(userID int) (models.Program, models.WorkoutTemplate, []models.WorkoutDay, models.ProgramSchedule, error) {
	if err := p.Validate(); err != nil {
		return models.Program{}, models.WorkoutTemplate{}, nil, models.ProgramSchedule{}, err
	}

	now := time.Now().UTC()
	startDate := models.DateOf(time.Now())
	if p.StartDate != "" {
		startDate, _ = models.ParseDate(p.StartDate)
	}

	prog := models.Program{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       p.Title,
		Description: p.Description,
		Icon:        p.Icon,
		CreatedAt:   now,
	}

	templateName := p.Template.Name
	if templateName == "" {
		templateName = p.Title
	}
	tmpl := models.WorkoutTemplate{
		ID:          uuid.New(),
		ProgramID:   prog.ID,
		Name:        templateName,
		DaysPerWeek: len(p.Template.Days),
		Description: p.Template.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	days := make([]models.WorkoutDay, 0, len(p.Template.Days))
	for _, spec := range p.Template.Days {
		exercises := make([]models.Exercise, 0, len(spec.Exercises))
		for _, ex := range spec.Exercises {
			exercises = append(exercises, models.Exercise{
				ID:          uuid.NewString(),
				Name:        ex.Name,
				Sets:        ex.Sets,
				Reps:        ex.Reps,
				WeightKg:    ex.WeightKg,
				RestSeconds: ex.RestSeconds,
				Notes:       ex.Notes,
			})
		}
		day := models.WorkoutDay{
			ID:          uuid.New(),
			TemplateID:  tmpl.ID,
			DayNumber:   spec.DayNumber,
			WorkoutType: spec.WorkoutType,
			IsRestDay:   spec.IsRestDay,
		}
		if !spec.IsRestDay {
			day.Exercises = exercises
			day.EstimatedMinutes = schedule.EstimateDuration(exercises)
		}
		days = append(days, day)
	}

	sched := models.ProgramSchedule{
		ID:            uuid.New(),
		UserID:        userID,
		ProgramID:     prog.ID,
		TemplateID:    tmpl.ID,
		Title:         p.Title,
		Description:   p.Description,
		Icon:          p.Icon,
		StartDate:     startDate,
		DurationWeeks: p.DurationWeeks,
		CurrentWeek:   1,
		CurrentDay:    1,
		Completed:     models.NewKeySet(),
		Status:        models.StatusActive,
		CompletionPct: 0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	return prog, tmpl, days, sched, nil
}
