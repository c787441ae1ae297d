// ABOUTME: Day marker type for habit completions.
// ABOUTME: A calendar date with no time-of-day, stored as YYYY-MM-DD.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DayLayout is the canonical text form of a Day.
const DayLayout = "2006-01-02"

// legacyDayLayout matches JavaScript's Date.toDateString(), which older
// browser exports used for completion markers.
const legacyDayLayout = "Mon Jan 02 2006"

// Day identifies a single calendar day.
type Day string

// DayOf returns the calendar day of t in t's location.
func DayOf(t time.Time) Day {
	return Day(t.Format(DayLayout))
}

// ParseDay parses a day in canonical, legacy, or RFC3339 form.
func ParseDay(s string) (Day, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DayLayout, legacyDayLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return DayOf(t), nil
		}
	}
	return "", fmt.Errorf("invalid day: %q", s)
}

// Time returns midnight of the day in loc.
func (d Day) Time(loc *time.Location) time.Time {
	t, err := time.ParseInLocation(DayLayout, string(d), loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the day n days after d (n may be negative).
func (d Day) AddDays(n int) Day {
	return DayOf(d.Time(time.UTC).AddDate(0, 0, n))
}

func (d Day) String() string {
	return string(d)
}

// DaysBetween returns the number of whole calendar days from `from` to `to`.
// The result is negative when `to` is before `from`.
func DaysBetween(from, to Day) int {
	// UTC midnights are exactly 24h apart, so DST never shortens a day.
	a := from.Time(time.UTC)
	b := to.Time(time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// UnmarshalJSON accepts any form ParseDay understands and normalizes it.
func (d *Day) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("day must be a string: %w", err)
	}
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
