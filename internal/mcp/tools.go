// ABOUTME: MCP tool implementations for habits.
// ABOUTME: Add, toggle, rename, delete, list, and month calendar.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/habits/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_habit",
		Description: "Start tracking a new habit",
	}, s.handleAddHabit)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "toggle_habit",
		Description: "Mark a habit done for today, or undo today's completion",
	}, s.handleToggleHabit)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "rename_habit",
		Description: "Change a habit's name",
	}, s.handleRenameHabit)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_habit",
		Description: "Stop tracking a habit and discard its history",
	}, s.handleDeleteHabit)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_habits",
		Description: "List all habits with streak, progress, and today's status",
	}, s.handleListHabits)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_calendar",
		Description: "Get the completion calendar for a month",
	}, s.handleGetCalendar)
}

// Tool input/output types

type addHabitInput struct {
	Name string `json:"name" jsonschema:"Name of the habit"`
}

type idInput struct {
	ID string `json:"id" jsonschema:"Habit ID or unique ID prefix"`
}

type renameHabitInput struct {
	ID   string `json:"id" jsonschema:"Habit ID or unique ID prefix"`
	Name string `json:"name" jsonschema:"New habit name"`
}

type listHabitsInput struct{}

type calendarInput struct {
	Month string `json:"month,omitempty" jsonschema:"Month as YYYY-MM, defaults to the current month"`
}

type habitOutput struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Streak        int     `json:"streak"`
	Progress      float64 `json:"progress"`
	DoneToday     bool    `json:"done_today"`
	LastCompleted string  `json:"last_completed,omitempty"`
	Message       string  `json:"message,omitempty"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

func (s *Server) summarize(h *models.Habit) habitOutput {
	out := habitOutput{
		ID:        h.ID.String(),
		Name:      h.Name,
		Streak:    h.Streak,
		Progress:  s.store.Progress(h),
		DoneToday: h.HasDay(s.store.Today()),
	}
	if h.LastCompleted != nil {
		out.LastCompleted = h.LastCompleted.String()
	}
	return out
}

// Tool handlers

func (s *Server) handleAddHabit(ctx context.Context, req *mcp.CallToolRequest, input addHabitInput) (*mcp.CallToolResult, habitOutput, error) {
	h, err := s.store.Add(input.Name)
	if err != nil {
		return nil, habitOutput{}, fmt.Errorf("failed to add habit: %w", err)
	}

	out := s.summarize(h)
	out.Message = fmt.Sprintf("Added habit %q (ID: %s)", h.Name, h.ID.Short())
	return nil, out, nil
}

func (s *Server) handleToggleHabit(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, habitOutput, error) {
	h, err := s.store.ToggleToday(input.ID)
	if err != nil {
		return nil, habitOutput{}, fmt.Errorf("failed to toggle habit: %w", err)
	}

	out := s.summarize(h)
	if out.DoneToday {
		out.Message = fmt.Sprintf("Marked %q done for today (streak %d)", h.Name, h.Streak)
	} else {
		out.Message = fmt.Sprintf("Undid today's completion of %q", h.Name)
	}
	return nil, out, nil
}

func (s *Server) handleRenameHabit(ctx context.Context, req *mcp.CallToolRequest, input renameHabitInput) (*mcp.CallToolResult, habitOutput, error) {
	h, err := s.store.Rename(input.ID, input.Name)
	if err != nil {
		return nil, habitOutput{}, fmt.Errorf("failed to rename habit: %w", err)
	}

	out := s.summarize(h)
	out.Message = fmt.Sprintf("Renamed habit to %q", h.Name)
	return nil, out, nil
}

func (s *Server) handleDeleteHabit(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	h, err := s.store.Remove(input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete habit: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted habit %q (ID: %s)", h.Name, h.ID.Short()),
	}, nil
}

func (s *Server) handleListHabits(ctx context.Context, req *mcp.CallToolRequest, input listHabitsInput) (*mcp.CallToolResult, any, error) {
	habits := s.store.All()
	if len(habits) == 0 {
		return nil, map[string]any{"message": "No habits tracked."}, nil
	}

	out := make([]habitOutput, 0, len(habits))
	for _, h := range habits {
		out = append(out, s.summarize(h))
	}
	return nil, map[string]any{
		"habits":    out,
		"neglected": s.store.Neglected(),
	}, nil
}

func (s *Server) handleGetCalendar(ctx context.Context, req *mcp.CallToolRequest, input calendarInput) (*mcp.CallToolResult, any, error) {
	if input.Month == "" {
		return nil, s.store.CurrentCalendar(), nil
	}

	t, err := time.Parse("2006-01", input.Month)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid month %q, want YYYY-MM", input.Month)
	}
	return nil, s.store.Calendar(t.Year(), t.Month()), nil
}
