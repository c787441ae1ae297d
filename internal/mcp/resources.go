// ABOUTME: MCP resource implementations for habits.
// ABOUTME: Provides habits://today and habits://calendar resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	todayURI    = "habits://today"
	calendarURI = "habits://calendar"
)

func (s *Server) registerResources() {
	// habits://today - every habit with today's completion status
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Habits",
		Description: "Every habit with streak, progress, and whether it is done today",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// habits://calendar - this month's completion grid
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         calendarURI,
		Name:        "Habit Calendar",
		Description: "Completion status of each day in the current month",
		MIMEType:    "application/json",
	}, s.handleCalendarResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	habits := s.store.All()
	out := make([]habitOutput, 0, len(habits))
	done := 0
	for _, h := range habits {
		sum := s.summarize(h)
		if sum.DoneToday {
			done++
		}
		out = append(out, sum)
	}

	result := map[string]any{
		"date":      s.store.Today().String(),
		"habits":    out,
		"neglected": s.store.Neglected(),
		"counts": map[string]int{
			"total": len(habits),
			"done":  done,
		},
	}
	return jsonResource(todayURI, result)
}

func (s *Server) handleCalendarResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(calendarURI, s.store.CurrentCalendar())
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
