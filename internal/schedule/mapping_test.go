package schedule

import (
	"reflect"
	"testing"

	"github.com/claude/coachplan/internal/models"
)

func testDays() []models.WorkoutDay {
	weight := 60.0
	return []models.WorkoutDay{
		{DayNumber: 1, WorkoutType: "Push", EstimatedMinutes: 45, Exercises: []models.Exercise{
			{ID: "e1", Name: "Bench Press", Sets: 4, Reps: 8, WeightKg: &weight, RestSeconds: 120},
			{ID: "e2", Name: "Overhead Press", Sets: 3, Reps: 10, RestSeconds: 90},
		}},
		{DayNumber: 2, WorkoutType: "Pull", EstimatedMinutes: 40, Exercises: []models.Exercise{
			{ID: "e3", Name: "Deadlift", Sets: 3, Reps: 5, RestSeconds: 180},
		}},
		{DayNumber: 3, IsRestDay: true},
		{DayNumber: 4, WorkoutType: "Legs", EstimatedMinutes: 50, Exercises: []models.Exercise{
			{ID: "e4", Name: "Squat", Sets: 5, Reps: 5, RestSeconds: 150},
		}},
		{DayNumber: 5, IsRestDay: true},
		{DayNumber: 6, WorkoutType: "Full Body", EstimatedMinutes: 35, Exercises: []models.Exercise{
			{ID: "e5", Name: "Clean and Press", Sets: 4, Reps: 6, RestSeconds: 120},
		}},
		{DayNumber: 7, IsRestDay: true},
	}
}

// TestMapTemplateToWeek verifies the week projection: day order, rest-day
// naming, week tagging and completion annotation.
func TestMapTemplateToWeek(t *testing.T) {
	completed := models.NewKeySet("2-1", "2-3")
	views := MapTemplateToWeek(testDays(), 2, completed)

	if len(views) != 7 {
		t.Fatalf("len(views) = %d, want 7", len(views))
	}
	for i, v := range views {
		if v.DayNumber != i+1 {
			t.Errorf("views[%d].DayNumber = %d, want %d", i, v.DayNumber, i+1)
		}
		if v.Week != 2 {
			t.Errorf("views[%d].Week = %d, want 2", i, v.Week)
		}
	}
	if views[0].Name != "Push" {
		t.Errorf("day 1 name = %q, want %q", views[0].Name, "Push")
	}
	if views[2].Name != RestDayName {
		t.Errorf("rest day name = %q, want %q", views[2].Name, RestDayName)
	}
	if !views[0].IsCompleted {
		t.Error("day 1 should be completed (key 2-1)")
	}
	if !views[2].IsCompleted {
		t.Error("day 3 should be completed (key 2-3)")
	}
	if views[1].IsCompleted {
		t.Error("day 2 should not be completed")
	}
}

// TestMapTemplateToWeekDeterministic verifies the pure-function guarantee:
// identical inputs yield structurally identical output.
func TestMapTemplateToWeekDeterministic(t *testing.T) {
	days := testDays()
	completed := models.NewKeySet("1-1")

	first := MapTemplateToWeek(days, 1, completed)
	second := MapTemplateToWeek(days, 1, completed)

	if !reflect.DeepEqual(first, second) {
		t.Error("two identical calls returned different output")
	}
}

// TestMapTemplateToWeekUnordered verifies that unsorted input days come back
// in day-number order without mutating the input slice.
func TestMapTemplateToWeekUnordered(t *testing.T) {
	days := []models.WorkoutDay{
		{DayNumber: 3, WorkoutType: "C"},
		{DayNumber: 1, WorkoutType: "A"},
		{DayNumber: 2, WorkoutType: "B"},
	}
	views := MapTemplateToWeek(days, 1, models.NewKeySet())

	for i, want := range []string{"A", "B", "C"} {
		if views[i].Name != want {
			t.Errorf("views[%d].Name = %q, want %q", i, views[i].Name, want)
		}
	}
	if days[0].DayNumber != 3 {
		t.Error("input slice was reordered")
	}
}

// TestMapTemplateToWeekBeyondDuration verifies that weeks past the program's
// declared duration are still served; bounding is the caller's concern.
func TestMapTemplateToWeekBeyondDuration(t *testing.T) {
	views := MapTemplateToWeek(testDays(), 99, models.NewKeySet())
	if len(views) != 7 {
		t.Fatalf("len(views) = %d, want 7", len(views))
	}
	if views[0].Week != 99 {
		t.Errorf("Week = %d, want 99", views[0].Week)
	}
}
