// Package schedule implements the recurring-template scheduling engine:
// mapping a week-long workout template onto any week of a program, calendar
// date derivation, the completion cursor, and progress accounting.
//
// The load-bearing idea is that one template repeats for every week of the
// program. Weeks are never materialized as rows; they are derived on demand
// by pure functions over the template, so storage stays proportional to the
// template size rather than the program length.
package schedule

import (
	"sort"

	"github.com/claude/coachplan/internal/models"
)

// RestDayName is the synthesized display name for rest-day sessions.
const RestDayName = "Rest"

// SessionView is the presentation shape of one session: a single (week, day)
// occurrence of a template day.
type SessionView struct {
	Week             int              `json:"week"`
	DayNumber        int              `json:"day_number"`
	Name             string           `json:"name"`
	Exercises        []models.Exercise `json:"exercises"`
	IsRestDay        bool             `json:"is_rest_day"`
	IsCompleted      bool             `json:"is_completed"`
	EstimatedMinutes int              `json:"estimated_minutes"`
}

// MapTemplateToWeek projects the template's days onto the given week. The
// template is week-invariant, so only the week tag and the completion flags
// differ between weeks. Pure: identical inputs always yield identical output,
// and the input slices are never mutated.
//
// The week number is not bounded above here. Asking for a week past the
// program's declared duration is legal and returns a normal view; rejecting
// navigation past the end is the caller's decision.
func MapTemplateToWeek(days []models.WorkoutDay, week int, completed models.KeySet) []SessionView {
	ordered := make([]models.WorkoutDay, len(days))
	copy(ordered, days)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].DayNumber < ordered[j].DayNumber
	})

	views := make([]SessionView, 0, len(ordered))
	for _, day := range ordered {
		name := day.WorkoutType
		if day.IsRestDay {
			name = RestDayName
		}
		views = append(views, SessionView{
			Week:             week,
			DayNumber:        day.DayNumber,
			Name:             name,
			Exercises:        copyExercises(day.Exercises),
			IsRestDay:        day.IsRestDay,
			IsCompleted:      completed.Contains(models.SessionKey(week, day.DayNumber)),
			EstimatedMinutes: day.EstimatedMinutes,
		})
	}
	return views
}

func copyExercises(exercises []models.Exercise) []models.Exercise {
	out := make([]models.Exercise, len(exercises))
	copy(out, exercises)
	return out
}
