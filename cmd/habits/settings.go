// ABOUTME: CLI command for viewing and changing preferences.
// ABOUTME: Theme (light/dark) and language (ru/en).
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/prefs"
	"github.com/spf13/cobra"
)

func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change preferences",
		Long: `Show the current theme and language, or change them.

Examples:
  habits settings
  habits settings theme dark
  habits settings theme toggle
  habits settings language en`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			color.New(color.Bold).Fprintln(out, a.t("settings"))

			theme := a.t("light-theme")
			if a.prefs.Theme == prefs.ThemeDark {
				theme = a.t("dark-theme")
			}
			fmt.Fprintf(out, "  %s: %s (%s)\n", a.t("theme-settings"), theme, a.prefs.Theme)
			fmt.Fprintf(out, "  %s: %s\n", a.t("language-settings"), a.prefs.Language)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "theme <light|dark|toggle>",
		Short:     "Set the color theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var theme prefs.Theme
			var err error
			if args[0] == "toggle" {
				theme, err = prefs.ToggleTheme(a.blob)
			} else {
				theme, err = prefs.SetTheme(a.blob, args[0])
			}
			if err != nil {
				return err
			}
			a.prefs.Theme = theme
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ %s: %s\n", a.t("theme-settings"), theme)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "language <ru|en>",
		Aliases:   []string{"lang"},
		Short:     "Set the display language",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"ru", "en"},
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := prefs.SetLanguage(a.blob, args[0])
			if err != nil {
				return err
			}
			a.prefs.Language = lang
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ %s: %s\n", a.t("language-settings"), lang)
			return nil
		},
	})

	return cmd
}
