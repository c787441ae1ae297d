// ABOUTME: CLI command rendering the month completion calendar.
// ABOUTME: Colors each day by how many habits were completed.
package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/prefs"
	"github.com/harperreed/habits/internal/tracker"
	"github.com/spf13/cobra"
)

type palette struct {
	full    *color.Color
	partial *color.Color
	none    *color.Color
	missed  *color.Color
}

// palette picks colors readable on the preferred background.
func (a *app) palette() palette {
	if a.prefs.Theme == prefs.ThemeDark {
		return palette{
			full:    color.New(color.FgHiGreen, color.Bold),
			partial: color.New(color.FgHiYellow),
			none:    color.New(color.FgHiBlack),
			missed:  color.New(color.FgHiRed, color.Bold),
		}
	}
	return palette{
		full:    color.New(color.FgGreen, color.Bold),
		partial: color.New(color.FgYellow),
		none:    color.New(color.Faint),
		missed:  color.New(color.FgRed, color.Bold),
	}
}

func newCalendarCmd(a *app) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show the month's completion calendar",
		Long: `Show a Monday-first calendar of the month.

  green   every habit was completed that day
  yellow  some habits were completed
  grey    nothing was completed
  [dd]    today; shown in red when a habit has gone two or more days idle

Examples:
  habits calendar
  habits calendar --month 2026-02`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cal := a.store.CurrentCalendar()
			if month != "" {
				t, err := time.Parse("2006-01", month)
				if err != nil {
					return fmt.Errorf("invalid month %q (use YYYY-MM)", month)
				}
				cal = a.store.Calendar(t.Year(), t.Month())
			}
			a.renderCalendar(cmd.OutOrStdout(), cal)
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to show (YYYY-MM)")
	return cmd
}

func (a *app) renderCalendar(w io.Writer, cal tracker.Calendar) {
	p := a.palette()

	color.New(color.Bold).Fprintf(w, "%s: %s %d\n", a.t("progress-calendar"), cal.Month, cal.Year)
	for _, name := range prefs.Weekdays(a.prefs.Language) {
		fmt.Fprintf(w, "%-5s", name)
	}
	fmt.Fprintln(w)

	col := 0
	for ; col < cal.LeadingBlanks; col++ {
		fmt.Fprint(w, "     ")
	}
	for _, d := range cal.Days {
		var c *color.Color
		switch d.Status {
		case tracker.StatusFull:
			c = p.full
		case tracker.StatusPartial:
			c = p.partial
		default:
			c = p.none
		}
		if d.Missed {
			c = p.missed
		}

		cell := fmt.Sprintf(" %2d  ", d.Day)
		if d.Today {
			cell = fmt.Sprintf("[%2d] ", d.Day)
		}
		c.Fprint(w, cell)

		col++
		if col == 7 {
			fmt.Fprintln(w)
			col = 0
		}
	}
	if col != 0 {
		fmt.Fprintln(w)
	}

	if cal.Neglected {
		fmt.Fprintln(w)
		p.missed.Fprintln(w, a.t("motivation-text"))
	}
}
