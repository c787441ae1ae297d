// ABOUTME: Install Claude Code skill for habits
// ABOUTME: Embeds and installs the skill definition to ~/.claude/skills/

package main

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

func newInstallSkillCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "install-skill",
		Short: "Install Claude Code skill",
		Long: `Install the habits skill for Claude Code.

This copies the skill definition to ~/.claude/skills/habits/
so Claude Code can use habits commands contextually.`,
		Annotations: map[string]string{noStore: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get home directory: %w", err)
			}
			return installSkill(cmd.OutOrStdout(), cmd.InOrStdin(), home, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

// installSkill writes the embedded SKILL.md under home.
func installSkill(w io.Writer, r io.Reader, home string, yes bool) error {
	skillDir := filepath.Join(home, ".claude", "skills", "habits")
	skillPath := filepath.Join(skillDir, "SKILL.md")

	fmt.Fprintln(w, "This will install the habits skill, enabling Claude Code to:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  • Add habits and mark them done")
	fmt.Fprintln(w, "  • Check streaks, progress, and the month calendar")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Destination:")
	fmt.Fprintf(w, "  %s\n\n", skillPath)

	if _, err := os.Stat(skillPath); err == nil {
		fmt.Fprintln(w, "Note: A skill file already exists and will be overwritten.")
		fmt.Fprintln(w)
	}

	if !yes {
		fmt.Fprint(w, "Install the habits skill? [y/N] ")
		ok, err := confirm(r)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
		if !ok {
			fmt.Fprintln(w, "Installation canceled.")
			return nil
		}
		fmt.Fprintln(w)
	}

	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		return fmt.Errorf("failed to read embedded skill: %w", err)
	}
	if err := os.MkdirAll(skillDir, 0750); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}
	if err := os.WriteFile(skillPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write skill file: %w", err)
	}

	color.New(color.FgGreen).Fprintln(w, "✓ Installed habits skill successfully!")
	return nil
}
