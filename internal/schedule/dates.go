package schedule

import "github.com/claude/coachplan/internal/models"

// ScheduledDate resolves the calendar date of session (week, day):
// start + (week-1)*7 + (day-1) days. Both inputs are 1-based. Day 1 maps to
// the program's start date by linear offset only; the engine makes no
// assumption about which weekday that is.
//
// All arithmetic is on civil dates rather than instants, so schedules that
// span a daylight-saving transition stay aligned to calendar days.
func ScheduledDate(start models.Date, week, day int) models.Date {
	return start.AddDays((week-1)*7 + (day - 1))
}

// ScheduledWorkoutView is a SessionView with its resolved calendar date,
// used for calendar and agenda rendering.
type ScheduledWorkoutView struct {
	SessionView
	Date models.Date `json:"date"`
}

// ScheduledRange composes ScheduledDate and MapTemplateToWeek across the
// program's declared duration and returns the sessions whose dates fall in
// [from, to] inclusive, in date order.
func ScheduledRange(days []models.WorkoutDay, sched *models.ProgramSchedule, from, to models.Date) []ScheduledWorkoutView {
	var out []ScheduledWorkoutView
	for week := 1; week <= sched.DurationWeeks; week++ {
		// The whole week starts after the range ends; nothing further can match.
		if ScheduledDate(sched.StartDate, week, 1).After(to) {
			break
		}
		for _, view := range MapTemplateToWeek(days, week, sched.Completed) {
			date := ScheduledDate(sched.StartDate, week, view.DayNumber)
			if date.Before(from) || date.After(to) {
				continue
			}
			out = append(out, ScheduledWorkoutView{SessionView: view, Date: date})
		}
	}
	return out
}
