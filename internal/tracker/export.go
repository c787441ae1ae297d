// ABOUTME: Export and import of the habit collection.
// ABOUTME: JSON is the backup format; YAML and Markdown are for reading.
package tracker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/habits/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is written into every export.
const ExportVersion = "1.0"

// ExportData is the export file format.
type ExportData struct {
	Habits     []*models.Habit `json:"habits" yaml:"habits"`
	ExportDate time.Time       `json:"exportDate" yaml:"export_date"`
	Version    string          `json:"version" yaml:"version"`
}

// ExportFileName is the suggested file name for a JSON export taken at now.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("habits-export-%s.json", now.Format("2006-01-02"))
}

// Export snapshots the collection.
func (s *Store) Export() *ExportData {
	return &ExportData{
		Habits:     s.All(),
		ExportDate: s.clock.Now().UTC(),
		Version:    ExportVersion,
	}
}

// ExportJSON exports all habits as indented JSON.
func (s *Store) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(s.Export(), "", "  ")
}

// ExportYAML exports all habits as YAML.
func (s *Store) ExportYAML() ([]byte, error) {
	return yaml.Marshal(s.Export())
}

// ExportMarkdown renders a summary table of every habit.
func (s *Store) ExportMarkdown() string {
	data := s.Export()
	now := s.clock.Now()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Habits Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", data.ExportDate.Format(time.RFC3339)))

	if len(data.Habits) == 0 {
		sb.WriteString("No habits tracked.\n")
		return sb.String()
	}

	sb.WriteString("| Habit | Streak | Progress | Completed | Last Completed |\n")
	sb.WriteString("|-------|--------|----------|-----------|----------------|\n")
	for _, h := range data.Habits {
		last := "-"
		if h.LastCompleted != nil {
			last = h.LastCompleted.String()
		}
		sb.WriteString(fmt.Sprintf("| %s | %d | %.0f%% | %d | %s |\n",
			escapeCell(h.Name), h.Streak, Progress(h, now), len(h.CompletedDays), last))
	}

	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// ParseImport decodes an export file. The payload must be a JSON object
// whose "habits" field is an array of habit records.
func ParseImport(data []byte) ([]*models.Habit, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: not a JSON object: %v", ErrValidation, err)
	}

	raw, ok := envelope["habits"]
	if !ok {
		return nil, fmt.Errorf("%w: missing habits field", ErrValidation)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("%w: habits is not an array", ErrValidation)
	}

	var habits []*models.Habit
	if err := json.Unmarshal(raw, &habits); err != nil {
		return nil, fmt.Errorf("%w: malformed habit record: %v", ErrValidation, err)
	}
	return habits, nil
}

// ImportJSON replaces the whole collection with the habits in an export
// file. On any validation failure the collection is left unchanged.
func (s *Store) ImportJSON(data []byte) (int, error) {
	habits, err := ParseImport(data)
	if err != nil {
		return 0, err
	}
	if err := s.ReplaceAll(habits); err != nil {
		return 0, err
	}
	return len(habits), nil
}
