// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server over the habit store.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/habits/internal/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server",
		Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout.

CONFIGURATION:

  {
    "mcpServers": {
      "habits": {
        "command": "habits",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_habit      Start tracking a habit
  toggle_habit   Mark done today, or undo
  rename_habit   Change a habit's name
  delete_habit   Stop tracking a habit
  list_habits    Every habit with streak and progress
  get_calendar   Month completion grid

AVAILABLE RESOURCES:

  habits://today      Today's status for every habit
  habits://calendar   This month's calendar`,
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := mcp.NewServer(a.store)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return server.Serve(ctx)
		},
	}
}
