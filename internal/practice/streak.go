package practice

import (
	"time"

	"github.com/ecetin/vocabmaster/internal/models"
)

// DateLayout is the calendar-day form stored in DailyPractice.
const DateLayout = "2006-01-02"

// Day truncates a time to its calendar day string.
func Day(t time.Time) string {
	return t.Format(DateLayout)
}

// Advance applies one completed session on the given day to the practice
// state. Pure function of (state, day):
//   - same day: practiced count grows, streak untouched
//   - consecutive day: streak grows, practiced count restarts
//   - gap or first ever: streak restarts at 1
func Advance(state models.DailyPractice, completedAt time.Time) models.DailyPractice {
	today := Day(completedAt)
	if state.LastPracticeDate == today {
		state.PracticedToday++
		return state
	}

	yesterday := Day(completedAt.AddDate(0, 0, -1))
	if state.LastPracticeDate == yesterday {
		state.Streak++
	} else {
		state.Streak = 1
	}
	state.PracticedToday = 1
	state.LastPracticeDate = today
	return state
}
