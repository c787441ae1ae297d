// ABOUTME: CLI command for listing habits.
// ABOUTME: Shows today's status, streak, and progress for every habit.
package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List habits",
		Long: `List every habit with today's status.

OUTPUT FORMAT:

  Each line shows: ID  STATUS  NAME  STREAK  PROGRESS

  The ID is an 8-character prefix you can use with done, rename, and delete.
  Progress is completed days over days since the habit was created.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			habits := a.store.All()

			color.New(color.Bold).Fprintln(out, a.t("my-habits"))
			if len(habits) == 0 {
				fmt.Fprintln(out, a.t("no-habits"))
				return nil
			}

			today := a.store.Today()
			faint := color.New(color.Faint)
			done := a.palette().full
			for _, h := range habits {
				mark := faint.Sprint("○")
				if h.HasDay(today) {
					mark = done.Sprint("✓")
				}
				fmt.Fprintf(out, "%s %s %s %3d %s  %s %3.0f%%\n",
					faint.Sprint(h.ID.Short()),
					mark,
					padRight(h.Name, 24),
					h.Streak,
					a.t("days"),
					a.t("progress"),
					a.store.Progress(h))
			}

			if a.store.Neglected() {
				fmt.Fprintln(out)
				a.palette().missed.Fprintln(out, a.t("motivation-text"))
			}
			return nil
		},
	}
}

func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
