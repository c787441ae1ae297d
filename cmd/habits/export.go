// ABOUTME: CLI commands for exporting and importing habit data.
// ABOUTME: JSON round-trips through import; YAML and Markdown are read-only views.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/logger"
	"github.com/harperreed/habits/internal/tracker"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var output string
	var save bool

	cmd := &cobra.Command{
		Use:   "export [format]",
		Short: "Export habit data",
		Long: `Export habit data in various formats.

FORMATS:

  json       Full JSON export (default; can be restored with 'habits import')
  yaml       YAML export (human-readable)
  markdown   Markdown table of streaks and progress

OPTIONS:

  --output, -o   Write to file instead of stdout
  --save         Write to habits-export-YYYY-MM-DD.json in the current directory

EXAMPLES:

  habits export                     # JSON to stdout
  habits export json --save         # Dated backup file
  habits export yaml -o habits.yaml
  habits export markdown`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"json", "yaml", "markdown"},
		RunE: func(cmd *cobra.Command, args []string) error {
			format := "json"
			if len(args) == 1 {
				format = args[0]
			}

			var data []byte
			var err error
			switch format {
			case "json":
				data, err = a.store.ExportJSON()
				if save && output == "" {
					output = tracker.ExportFileName(a.store.Now())
				}
			case "yaml":
				data, err = a.store.ExportYAML()
			case "markdown", "md":
				data = []byte(a.store.ExportMarkdown())
			default:
				return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
			}
			if err != nil {
				return fmt.Errorf("failed to export: %w", err)
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}

			if err := os.WriteFile(output, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ %s: %s\n", a.t("export"), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	cmd.Flags().BoolVar(&save, "save", false, "write JSON to a dated file in the current directory")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all habits with a JSON export",
		Long: `Import a JSON export, replacing every habit currently tracked.

The file must be a JSON object with a "habits" array, as written by
'habits export json'. Files from the browser version of the tracker are
accepted too. If the file is invalid nothing is changed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				logger.Warn("import read failed", "file", args[0], "error", err)
				return fmt.Errorf("%s: %w", a.t("import-error"), err)
			}

			n, err := a.store.ImportJSON(data)
			if err != nil {
				if errors.Is(err, tracker.ErrValidation) {
					return fmt.Errorf("%s: %w", a.t("import-invalid"), err)
				}
				return err
			}

			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ %s (%d)\n", a.t("import-success"), n)
			return nil
		},
	}
}
