// ABOUTME: CLI commands for Charm-based sync of the charm backend.
// ABOUTME: Supports link, unlink, status, now, repair, reset, and wipe.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/storage"
	"github.com/harperreed/habits/internal/tracker"
	"github.com/spf13/cobra"
)

func newSyncCmd(a *app) *cobra.Command {
	syncCmd := &cobra.Command{
		Use:     "sync",
		Aliases: []string{"s"},
		Short:   "Sync habits across devices",
		Long: `Sync habits across devices using Charm Cloud (charm backend).

Your data is E2E encrypted with your SSH key before upload.

GETTING STARTED:

  1. Select the charm backend:  export HABITS_BACKEND=charm
  2. Link your device:          habits sync link
  3. Check sync status:         habits sync status

Data syncs automatically after each change when the charm backend is active.`,
		Annotations: map[string]string{noStore: "true"},
	}

	syncCmd.AddCommand(
		&cobra.Command{
			Use:         "link",
			Short:       "Link this device to Charm",
			Annotations: map[string]string{noStore: "true"},
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := runCharm("link"); err != nil {
					return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
				}
				color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "\n✓ Device linked to Charm")
				return nil
			},
		},
		&cobra.Command{
			Use:         "unlink",
			Short:       "Disconnect from Charm",
			Annotations: map[string]string{noStore: "true"},
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := runCharm("unlink"); err != nil {
					return fmt.Errorf("failed to unlink: %w", err)
				}
				color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "✓ Device unlinked from Charm")
				fmt.Fprintln(cmd.OutOrStdout(), "Your local habit data is preserved.")
				return nil
			},
		},
		&cobra.Command{
			Use:         "status",
			Short:       "Show sync status",
			Annotations: map[string]string{noStore: "true"},
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withCharm(func(cs *storage.CharmStore) error {
					out := cmd.OutOrStdout()
					id, err := cs.ID()
					if err != nil {
						color.New(color.FgYellow).Fprintln(out, "Not linked to Charm")
						fmt.Fprintln(out, "\nRun 'habits sync link' to connect to Charm.")
						return nil
					}

					fmt.Fprintln(out, "Charm ID:", id)
					if cs.IsReadOnly() {
						color.New(color.FgYellow).Fprintln(out, "⚠ Read-only: another process holds the database")
					}
					color.New(color.FgGreen).Fprintln(out, "✓ Connected to Charm")
					fmt.Fprintf(out, "  Habits: %d\n", tracker.NewStore(cs).Len())
					return nil
				})
			},
		},
		&cobra.Command{
			Use:         "now",
			Short:       "Sync immediately",
			Annotations: map[string]string{noStore: "true"},
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withCharm(func(cs *storage.CharmStore) error {
					if err := cs.Sync(); err != nil {
						return fmt.Errorf("sync failed: %w", err)
					}
					color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "✓ Sync complete")
					return nil
				})
			},
		},
		newSyncRepairCmd(),
		&cobra.Command{
			Use:         "reset",
			Short:       "Reset local data and restore from cloud",
			Annotations: map[string]string{noStore: "true"},
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprint(cmd.OutOrStdout(), "This will DELETE all local habit data and restore from cloud. Continue? [y/N]: ")
				ok, err := confirm(cmd.InOrStdin())
				if err != nil || !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Canceled.")
					return err
				}
				if err := kv.Reset(storage.CharmDBName); err != nil {
					return fmt.Errorf("reset failed: %w", err)
				}
				color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "✓ Local data reset and restored from cloud")
				return nil
			},
		},
		&cobra.Command{
			Use:         "wipe",
			Short:       "Delete all cloud and local data",
			Annotations: map[string]string{noStore: "true"},
			RunE: func(cmd *cobra.Command, args []string) error {
				out := cmd.OutOrStdout()
				fmt.Fprint(out, "This will PERMANENTLY DELETE all cloud backups and local habit data.\nType 'wipe' to confirm: ")
				var line string
				_, _ = fmt.Fscanln(cmd.InOrStdin(), &line)
				if strings.TrimSpace(line) != "wipe" {
					fmt.Fprintln(out, "Canceled.")
					return nil
				}

				result, err := kv.Wipe(storage.CharmDBName)
				if err != nil {
					return fmt.Errorf("wipe failed: %w", err)
				}
				color.New(color.FgGreen).Fprintln(out, "✓ Data wiped successfully")
				fmt.Fprintf(out, "  Cloud backups deleted: %d\n", result.CloudBackupsDeleted)
				fmt.Fprintf(out, "  Local files deleted: %d\n", result.LocalFilesDeleted)
				return nil
			},
		},
	)

	return syncCmd
}

func newSyncRepairCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Repair database corruption",
		Long: `Repair the local Charm database by checkpointing WAL, removing SHM files,
checking integrity, and vacuuming. Use --force to attempt recovery even if
integrity checks fail.`,
		Annotations: map[string]string{noStore: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			green := color.New(color.FgGreen)

			fmt.Fprintln(out, "Repairing habits database...")
			result, err := kv.Repair(storage.CharmDBName, force)
			if result.WalCheckpointed {
				green.Fprintln(out, "  ✓ WAL checkpointed")
			}
			if result.ShmRemoved {
				green.Fprintln(out, "  ✓ SHM file removed")
			}
			if result.IntegrityOK {
				green.Fprintln(out, "  ✓ Integrity check passed")
			} else {
				color.New(color.FgRed).Fprintln(out, "  ✗ Integrity check failed")
			}
			if result.Vacuumed {
				green.Fprintln(out, "  ✓ Database vacuumed")
			}

			if err != nil {
				if !force {
					color.New(color.FgYellow).Fprintln(out, "\nRun with --force to attempt recovery.")
				}
				return fmt.Errorf("repair failed: %w", err)
			}
			green.Fprintln(out, "\n✓ Repair complete")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "attempt recovery even if integrity checks fail")
	return cmd
}

// withCharm opens the Charm store for the duration of fn.
func (a *app) withCharm(fn func(*storage.CharmStore) error) error {
	if err := a.loadConfig(); err != nil {
		return err
	}
	cs, err := storage.OpenCharm(a.cfg.CharmHost)
	if err != nil {
		return err
	}
	defer cs.Close()
	return fn(cs)
}

func runCharm(args ...string) error {
	c := exec.Command("charm", args...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}
