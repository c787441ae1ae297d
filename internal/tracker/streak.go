// ABOUTME: Current-streak computation over a habit's completion days.
// ABOUTME: Counts consecutive days ending today, or yesterday if today is still open.
package tracker

import (
	"sort"
	"time"

	"github.com/harperreed/habits/internal/models"
)

// Streak returns the number of consecutive completed days ending at the most
// recent completion, provided that completion is today or yesterday.
// Anything older, or a completion dated in the future, yields 0.
func Streak(days []models.Day, now time.Time) int {
	sorted := sortedUnique(days)
	if len(sorted) == 0 {
		return 0
	}

	latest := sorted[len(sorted)-1]
	if gap := models.DaysBetween(latest, models.DayOf(now)); gap < 0 || gap > 1 {
		return 0
	}

	// Walk backwards; the entry k steps back must sit exactly k days before latest.
	streak := 0
	for i := len(sorted) - 1; i >= 0; i-- {
		if models.DaysBetween(sorted[i], latest) != streak {
			break
		}
		streak++
	}
	return streak
}

// sortedUnique returns days in ascending order without duplicates.
// ISO dates sort chronologically as strings.
func sortedUnique(days []models.Day) []models.Day {
	if len(days) == 0 {
		return nil
	}
	sorted := append([]models.Day(nil), days...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	out := sorted[:1]
	for _, d := range sorted[1:] {
		if d != out[len(out)-1] {
			out = append(out, d)
		}
	}
	return out
}
