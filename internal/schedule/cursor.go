package schedule

import "github.com/claude/coachplan/internal/models"

// AdvanceCursor computes the cursor position after completing session
// (completedWeek, completedDay). done=true means the completed session was
// the last slot of the last week: the cursor stays put and the schedule
// should transition to COMPLETED.
//
// The result is derived only from the declared completion and the program
// shape, never from a tracked "next" value, so replays and out-of-order
// completions still land on a well-defined position.
func AdvanceCursor(durationWeeks, daysPerWeek, completedWeek, completedDay int) (nextWeek, nextDay int, done bool) {
	switch {
	case completedDay == daysPerWeek && completedWeek < durationWeeks:
		return completedWeek + 1, 1, false
	case completedDay < daysPerWeek:
		return completedWeek, completedDay + 1, false
	default:
		return completedWeek, completedDay, true
	}
}

// Percentage returns |completed| / (durationWeeks × min(daysInTemplate, 7)),
// clamped to [0, 1]. Rest-day slots count toward the denominator exactly like
// workout days: the total is defined over all template day-slots.
func Percentage(completed models.KeySet, durationWeeks, daysInTemplate int) float64 {
	days := daysInTemplate
	if days > 7 {
		days = 7
	}
	totalSlots := durationWeeks * days
	if totalSlots <= 0 {
		return 0
	}
	pct := float64(completed.Len()) / float64(totalSlots)
	if pct > 1 {
		return 1
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// EstimateDuration computes a day's estimated duration in minutes from its
// exercise list: 3 seconds per rep of time under tension plus the configured
// rest, summed over all sets.
func EstimateDuration(exercises []models.Exercise) int {
	totalSeconds := 0
	for _, ex := range exercises {
		totalSeconds += ex.Sets*ex.Reps*3 + ex.RestSeconds
	}
	return totalSeconds / 60
}
