// ABOUTME: CLI commands that change one habit: add, done, rename, delete.
// ABOUTME: Toggle, edit, and delete go through the typed action dispatcher.
package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/tracker"
	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "add <name>",
		Aliases: []string{"a"},
		Short:   "Start tracking a habit",
		Long: `Start tracking a new habit. Multiple words are joined with spaces.

Examples:
  habits add Meditate
  habits add "Read 20 pages"
  habits add Drink more water`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.store.Add(strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			color.New(color.FgGreen).Fprintf(out, "✓ %s: %s\n", a.t("added"), h.Name)
			fmt.Fprintf(out, "  %s\n", color.New(color.Faint).Sprint(h.ID.Short()))
			return nil
		},
	}
}

// dispatch runs an action and prints what happened to the habit.
func (a *app) dispatch(cmd *cobra.Command, action tracker.Action, id, arg string) error {
	out := cmd.OutOrStdout()
	d := tracker.StoreDispatcher(a.store, func(act tracker.Action, r *tracker.HabitResult) {
		faint := color.New(color.Faint)
		switch act {
		case tracker.ActionToggle:
			if r.DoneToday {
				color.New(color.FgGreen).Fprintf(out, "✓ %s: %s\n", a.t("completed"), r.Habit.Name)
			} else {
				color.New(color.FgYellow).Fprintf(out, "○ %s: %s\n", a.t("not-completed"), r.Habit.Name)
			}
			fmt.Fprintf(out, "  %s %d %s\n", faint.Sprint(r.Habit.ID.Short()), r.Habit.Streak, a.t("days"))
		case tracker.ActionEdit:
			color.New(color.FgGreen).Fprintf(out, "✓ %s: %s\n", a.t("renamed"), r.Habit.Name)
		case tracker.ActionDelete:
			color.New(color.FgYellow).Fprintf(out, "✗ %s: %s\n", a.t("deleted"), r.Habit.Name)
			fmt.Fprintf(out, "  %s\n", faint.Sprint(r.Habit.ID.Short()))
		}
	})
	return d.Dispatch(action, id, arg)
}

func newDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"toggle", "d"},
		Short:   "Mark a habit done today, or undo it",
		Long: `Toggle today's completion for a habit.

The first run marks the habit done for today. Running it again the same day
undoes that. The ID may be any unique prefix shown by 'habits list'.

Examples:
  habits done 1a2b3c4d
  habits done 1a2b`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.dispatch(cmd, tracker.ActionToggle, args[0], "")
		},
	}
}

func newRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rename <id> <name>",
		Aliases: []string{"edit", "mv"},
		Short:   "Rename a habit",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.dispatch(cmd, tracker.ActionEdit, args[0], strings.Join(args[1:], " "))
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"del", "rm"},
		Short:   "Stop tracking a habit",
		Long: `Delete a habit and its whole completion history.

You are asked to confirm unless --yes is given. There is no undo.

Examples:
  habits delete 1a2b3c4d
  habits rm 1a2b --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.store.Get(args[0])
			if err != nil {
				return err
			}

			if !yes {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) [y/N] ", a.t("confirm-delete"), h.Name)
				ok, err := confirm(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read response: %w", err)
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), a.t("cancelled"))
					return nil
				}
			}

			return a.dispatch(cmd, tracker.ActionDelete, string(h.ID), "")
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

// confirm reads one line and reports whether it was a yes.
func confirm(r io.Reader) (bool, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "д", "да":
		return true, nil
	}
	return false, nil
}
