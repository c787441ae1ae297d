// ABOUTME: Month calendar projection across all habits.
// ABOUTME: Classifies each day as none/partial/full and detects neglect.
package tracker

import (
	"time"

	"github.com/harperreed/habits/internal/models"
)

const (
	// neverCompletedDays stands in for "days since last completion" when a
	// habit has never been completed.
	neverCompletedDays = 999
	// neglectThreshold is how many idle days make the tracker "neglected".
	neglectThreshold = 2
)

// DayStatus is the combined completion state of one calendar day.
type DayStatus int

const (
	StatusNone DayStatus = iota
	StatusPartial
	StatusFull
)

func (s DayStatus) String() string {
	switch s {
	case StatusPartial:
		return "partial"
	case StatusFull:
		return "full"
	default:
		return "none"
	}
}

// MarshalText renders the status by name in JSON and YAML.
func (s DayStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CalendarDay is one cell of a month calendar.
type CalendarDay struct {
	Day       int        `json:"day"`
	Date      models.Day `json:"date"`
	Status    DayStatus  `json:"status"`
	Completed int        `json:"completed"`
	Today     bool       `json:"today,omitempty"`
	Missed    bool       `json:"missed,omitempty"`
}

// Calendar is a month projection. LeadingBlanks is the number of empty
// cells before day 1 in a Monday-first week.
type Calendar struct {
	Year                    int           `json:"year"`
	Month                   time.Month    `json:"month"`
	LeadingBlanks           int           `json:"leading_blanks"`
	Days                    []CalendarDay `json:"days"`
	Habits                  int           `json:"habits"`
	DaysSinceLastCompletion int           `json:"days_since_last_completion"`
	Neglected               bool          `json:"neglected"`
}

// Project builds the calendar for year/month. Day boundaries and "today"
// follow now's location.
func Project(habits []*models.Habit, year int, month time.Month, now time.Time) Calendar {
	loc := now.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	today := models.DayOf(now)
	since := DaysSinceLastCompletion(habits, now)

	cal := Calendar{
		Year:                    year,
		Month:                   month,
		LeadingBlanks:           (int(first.Weekday()) + 6) % 7,
		Days:                    make([]CalendarDay, 0, daysInMonth),
		Habits:                  len(habits),
		DaysSinceLastCompletion: since,
		Neglected:               since >= neglectThreshold,
	}

	for d := 1; d <= daysInMonth; d++ {
		date := models.DayOf(time.Date(year, month, d, 0, 0, 0, 0, loc))
		completed := 0
		for _, h := range habits {
			if h.HasDay(date) {
				completed++
			}
		}
		cell := CalendarDay{
			Day:       d,
			Date:      date,
			Status:    classifyDay(completed, len(habits)),
			Completed: completed,
			Today:     date == today,
		}
		cell.Missed = cell.Today && cal.Neglected
		cal.Days = append(cal.Days, cell)
	}

	return cal
}

// classifyDay maps a completion count to a status. Zero completions is
// always none, so an empty collection never reports full.
func classifyDay(completed, total int) DayStatus {
	switch {
	case completed == 0:
		return StatusNone
	case completed == total:
		return StatusFull
	default:
		return StatusPartial
	}
}

// DaysSinceLastCompletion returns the largest number of whole days any
// habit has gone without a completion. Never-completed habits count as
// neverCompletedDays; an empty collection yields 0.
func DaysSinceLastCompletion(habits []*models.Habit, now time.Time) int {
	today := models.DayOf(now)
	maxDays := 0
	for _, h := range habits {
		days := neverCompletedDays
		if h.LastCompleted != nil {
			days = models.DaysBetween(*h.LastCompleted, today)
		}
		if days > maxDays {
			maxDays = days
		}
	}
	return maxDays
}

// IsNeglected reports whether some habit has gone two or more days without
// a completion.
func IsNeglected(habits []*models.Habit, now time.Time) bool {
	return DaysSinceLastCompletion(habits, now) >= neglectThreshold
}
