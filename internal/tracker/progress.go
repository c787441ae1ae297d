// ABOUTME: Completion percentage since a habit was created.
// ABOUTME: The creation day counts as day 1; the result is clamped to 100.
package tracker

import (
	"math"
	"time"

	"github.com/harperreed/habits/internal/models"
)

// DaysSinceStart returns how many days the habit has existed, counting the
// creation day. It is never less than 1.
func DaysSinceStart(h *models.Habit, now time.Time) int {
	days := int(math.Floor(now.Sub(h.CreatedAt).Hours()/24)) + 1
	if days < 1 {
		return 1
	}
	return days
}

// Progress returns the percentage (0-100) of days since creation on which
// the habit was completed.
func Progress(h *models.Habit, now time.Time) float64 {
	if len(h.CompletedDays) == 0 {
		return 0
	}
	pct := 100 * float64(len(h.CompletedDays)) / float64(DaysSinceStart(h, now))
	return math.Min(100, pct)
}
