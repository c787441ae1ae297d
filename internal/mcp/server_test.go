// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/habits/internal/storage"
	"github.com/harperreed/habits/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var testNow = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

// setupTestServer creates a server over an in-memory store with a fixed clock.
func setupTestServer(t *testing.T) (*Server, *tracker.FakeClock) {
	t.Helper()

	clock := tracker.NewFakeClock(testNow)
	store := tracker.NewStore(storage.NewMemoryStore(), tracker.WithClock(clock))
	server, err := NewServer(store)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server, clock
}

func addHabit(t *testing.T, s *Server, name string) habitOutput {
	t.Helper()
	_, out, err := s.handleAddHabit(context.Background(), &mcp.CallToolRequest{}, addHabitInput{Name: name})
	if err != nil {
		t.Fatalf("handleAddHabit(%q) failed: %v", name, err)
	}
	return out
}

func TestNewServer(t *testing.T) {
	server, _ := setupTestServer(t)
	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.store == nil {
		t.Error("Expected non-nil store")
	}

	if _, err := NewServer(nil); err == nil {
		t.Error("Expected error for nil store")
	}
}

func TestHandleAddHabit(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"simple name", "Read", "Read", false},
		{"trimmed name", "  Walk  ", "Walk", false},
		{"empty name", "", "", true},
		{"blank name", "   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := server.handleAddHabit(ctx, &mcp.CallToolRequest{}, addHabitInput{Name: tt.input})
			if tt.wantErr {
				if !errors.Is(err, tracker.ErrEmptyName) {
					t.Errorf("error = %v, want ErrEmptyName", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Name != tt.want {
				t.Errorf("Name = %q, want %q", out.Name, tt.want)
			}
			if out.ID == "" || out.Streak != 0 || out.DoneToday {
				t.Errorf("unexpected new habit output: %+v", out)
			}
			if !strings.Contains(out.Message, "Added habit") {
				t.Errorf("Message = %q", out.Message)
			}
		})
	}
}

func TestHandleToggleHabit(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()
	h := addHabit(t, server, "Read")

	_, out, err := server.handleToggleHabit(ctx, &mcp.CallToolRequest{}, idInput{ID: h.ID[:8]})
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !out.DoneToday || out.Streak != 1 || out.Progress != 100 {
		t.Errorf("after first toggle: %+v", out)
	}
	if out.LastCompleted != "2026-10-15" {
		t.Errorf("LastCompleted = %q", out.LastCompleted)
	}

	_, out, err = server.handleToggleHabit(ctx, &mcp.CallToolRequest{}, idInput{ID: h.ID})
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if out.DoneToday || out.Streak != 0 {
		t.Errorf("after undo: %+v", out)
	}
	if !strings.Contains(out.Message, "Undid") {
		t.Errorf("Message = %q", out.Message)
	}

	_, _, err = server.handleToggleHabit(ctx, &mcp.CallToolRequest{}, idInput{ID: "nope"})
	if !errors.Is(err, tracker.ErrNotFound) {
		t.Errorf("unknown id error = %v, want ErrNotFound", err)
	}
}

func TestHandleRenameHabit(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()
	h := addHabit(t, server, "Reed")

	_, out, err := server.handleRenameHabit(ctx, &mcp.CallToolRequest{}, renameHabitInput{ID: h.ID, Name: "Read"})
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if out.Name != "Read" || out.ID != h.ID {
		t.Errorf("rename output = %+v", out)
	}

	_, _, err = server.handleRenameHabit(ctx, &mcp.CallToolRequest{}, renameHabitInput{ID: h.ID, Name: ""})
	if !errors.Is(err, tracker.ErrValidation) {
		t.Errorf("empty rename error = %v, want ErrValidation", err)
	}
}

func TestHandleDeleteHabit(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()
	h := addHabit(t, server, "Read")

	_, out, err := server.handleDeleteHabit(ctx, &mcp.CallToolRequest{}, idInput{ID: h.ID})
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !strings.Contains(out.Message, "Deleted habit") {
		t.Errorf("Message = %q", out.Message)
	}
	if server.store.Len() != 0 {
		t.Errorf("store still holds %d habits", server.store.Len())
	}

	_, _, err = server.handleDeleteHabit(ctx, &mcp.CallToolRequest{}, idInput{ID: h.ID})
	if !errors.Is(err, tracker.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestHandleListHabits(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	_, out, err := server.handleListHabits(ctx, &mcp.CallToolRequest{}, listHabitsInput{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if m, ok := out.(map[string]any); !ok || m["message"] != "No habits tracked." {
		t.Errorf("empty list output = %#v", out)
	}

	addHabit(t, server, "Read")
	addHabit(t, server, "Walk")

	_, out, err = server.handleListHabits(ctx, &mcp.CallToolRequest{}, listHabitsInput{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	m := out.(map[string]any)
	habits, ok := m["habits"].([]habitOutput)
	if !ok || len(habits) != 2 {
		t.Fatalf("habits = %#v", m["habits"])
	}
	if habits[0].Name != "Read" || habits[1].Name != "Walk" {
		t.Errorf("unexpected order: %+v", habits)
	}
	if m["neglected"] != true {
		t.Errorf("never-completed habits should be neglected")
	}
}

func TestHandleGetCalendar(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()
	h := addHabit(t, server, "Read")
	if _, _, err := server.handleToggleHabit(ctx, &mcp.CallToolRequest{}, idInput{ID: h.ID}); err != nil {
		t.Fatal(err)
	}

	_, out, err := server.handleGetCalendar(ctx, &mcp.CallToolRequest{}, calendarInput{})
	if err != nil {
		t.Fatalf("get_calendar failed: %v", err)
	}
	cal := out.(tracker.Calendar)
	if cal.Month != time.October || cal.Year != 2026 {
		t.Errorf("calendar for %s %d, want October 2026", cal.Month, cal.Year)
	}
	if cal.Days[14].Status != tracker.StatusFull || !cal.Days[14].Today {
		t.Errorf("today cell = %+v", cal.Days[14])
	}

	_, out, err = server.handleGetCalendar(ctx, &mcp.CallToolRequest{}, calendarInput{Month: "2026-02"})
	if err != nil {
		t.Fatalf("get_calendar(2026-02) failed: %v", err)
	}
	if got := len(out.(tracker.Calendar).Days); got != 28 {
		t.Errorf("February has %d days", got)
	}

	if _, _, err := server.handleGetCalendar(ctx, &mcp.CallToolRequest{}, calendarInput{Month: "October"}); err == nil {
		t.Error("expected error for malformed month")
	}
}

func TestTodayResource(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()
	h := addHabit(t, server, "Read")
	addHabit(t, server, "Walk")
	if _, _, err := server.handleToggleHabit(ctx, &mcp.CallToolRequest{}, idInput{ID: h.ID}); err != nil {
		t.Fatal(err)
	}

	res, err := server.handleTodayResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("today resource failed: %v", err)
	}
	if len(res.Contents) != 1 || res.Contents[0].URI != todayURI {
		t.Fatalf("unexpected contents: %+v", res.Contents)
	}

	var body struct {
		Date   string         `json:"date"`
		Counts map[string]int `json:"counts"`
	}
	if err := json.Unmarshal([]byte(res.Contents[0].Text), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Date != "2026-10-15" {
		t.Errorf("date = %q", body.Date)
	}
	if body.Counts["total"] != 2 || body.Counts["done"] != 1 {
		t.Errorf("counts = %v", body.Counts)
	}
}

func TestCalendarResource(t *testing.T) {
	server, clock := setupTestServer(t)
	ctx := context.Background()
	h := addHabit(t, server, "Read")
	if _, _, err := server.handleToggleHabit(ctx, &mcp.CallToolRequest{}, idInput{ID: h.ID}); err != nil {
		t.Fatal(err)
	}
	clock.AdvanceDays(2)

	res, err := server.handleCalendarResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("calendar resource failed: %v", err)
	}
	text := res.Contents[0].Text
	if !strings.Contains(text, `"neglected": true`) {
		t.Errorf("expected neglected calendar, got %s", text)
	}
	if !strings.Contains(text, `"status": "full"`) {
		t.Errorf("expected a full day, got %s", text)
	}
}
