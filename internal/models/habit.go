// ABOUTME: Habit model tracking daily completions.
// ABOUTME: JSON shape matches the persisted "habits" blob and export files.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// HabitID uniquely identifies a habit for its lifetime.
type HabitID string

// NewHabitID generates a random identifier.
func NewHabitID() HabitID {
	return HabitID(uuid.New().String())
}

func (id HabitID) String() string {
	return string(id)
}

// Short returns the 8-character prefix shown in listings.
func (id HabitID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// UnmarshalJSON accepts a string or a number. Browser-era records used
// millisecond timestamps as ids.
func (id *HabitID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = HabitID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("habit id must be a string or number: %w", err)
	}
	*id = HabitID(n.String())
	return nil
}

// Habit is a tracked habit and the days it was completed.
type Habit struct {
	ID            HabitID   `json:"id" yaml:"id"`
	Name          string    `json:"name" yaml:"name"`
	CreatedAt     time.Time `json:"createdAt" yaml:"created_at"`
	CompletedDays []Day     `json:"completedDays" yaml:"completed_days"`
	Streak        int       `json:"streak" yaml:"streak"`
	LastCompleted *Day      `json:"lastCompleted" yaml:"last_completed,omitempty"`
}

// NewHabit creates a habit with a generated ID and no completions.
func NewHabit(name string, now time.Time) *Habit {
	return &Habit{
		ID:            NewHabitID(),
		Name:          name,
		CreatedAt:     now,
		CompletedDays: []Day{},
	}
}

// HasDay reports whether the habit was completed on d.
func (h *Habit) HasDay(d Day) bool {
	return h.dayIndex(d) >= 0
}

// AddDay marks d complete and records it as the last completion.
// Returns false if d was already marked.
func (h *Habit) AddDay(d Day) bool {
	if h.HasDay(d) {
		return false
	}
	h.CompletedDays = append(h.CompletedDays, d)
	h.LastCompleted = &d
	return true
}

// RemoveDay unmarks d. LastCompleted is left untouched.
// Returns false if d was not marked.
func (h *Habit) RemoveDay(d Day) bool {
	i := h.dayIndex(d)
	if i < 0 {
		return false
	}
	h.CompletedDays = append(h.CompletedDays[:i], h.CompletedDays[i+1:]...)
	return true
}

func (h *Habit) dayIndex(d Day) int {
	for i, day := range h.CompletedDays {
		if day == d {
			return i
		}
	}
	return -1
}

// DedupeDays drops repeated markers, keeping first occurrences in order.
func (h *Habit) DedupeDays() {
	seen := make(map[Day]bool, len(h.CompletedDays))
	days := make([]Day, 0, len(h.CompletedDays))
	for _, d := range h.CompletedDays {
		if seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}
	h.CompletedDays = days
}

// Clone returns a deep copy.
func (h *Habit) Clone() *Habit {
	c := *h
	c.CompletedDays = append([]Day{}, h.CompletedDays...)
	if h.LastCompleted != nil {
		last := *h.LastCompleted
		c.LastCompleted = &last
	}
	return &c
}
