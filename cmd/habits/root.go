// ABOUTME: Root Cobra command for the habits CLI.
// ABOUTME: Opens the configured blob store and habit Store around each command.
package main

import (
	"fmt"

	"github.com/harperreed/habits/internal/config"
	"github.com/harperreed/habits/internal/logger"
	"github.com/harperreed/habits/internal/prefs"
	"github.com/harperreed/habits/internal/storage"
	"github.com/harperreed/habits/internal/tracker"
	"github.com/spf13/cobra"
)

// noStore marks commands that must not open the data store.
const noStore = "no-store"

// app carries the state shared by every command in one invocation.
type app struct {
	cfg   *config.Config
	blob  storage.BlobStore
	store *tracker.Store
	clock tracker.Clock
	prefs prefs.Prefs

	// ownsBlob is false when the blob was injected and must outlive the command.
	ownsBlob bool

	backend string
	dataDir string
	debug   bool
}

func (a *app) t(key string) string {
	return prefs.T(a.prefs.Language, key)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "habits",
		Short: "Daily habit tracker",
		Long: `Habits tracks things you want to do every day.

Mark a habit done once per day, keep a streak going, and watch the month
fill in on the calendar.

QUICK START:

  $ habits add "Read 20 pages"     # Start tracking a habit
  $ habits list                    # Today's status, streaks, and progress
  $ habits done 1a2b3c4d           # Mark done today (run again to undo)
  $ habits calendar                # This month at a glance

DATA:

  $ habits export json --save      # Back up to habits-export-YYYY-MM-DD.json
  $ habits import backup.json      # Replace everything with a backup

STORAGE:

  Backends: sqlite (default), badger, charm (synced via Charm Cloud), memory.
  Choose with --backend, HABITS_BACKEND, or "backend" in
  ~/.config/habits/config.json.

MCP INTEGRATION:

  Run 'habits mcp' to serve your habits to MCP-compatible AI assistants.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipStore(cmd) {
				return nil
			}
			return a.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.backend, "backend", "", "storage backend (sqlite, badger, charm, memory)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "data directory for local backends")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "log debug output to stderr")

	root.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newDoneCmd(a),
		newDeleteCmd(a),
		newRenameCmd(a),
		newCalendarCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newSettingsCmd(a),
		newMCPCmd(a),
		newSyncCmd(a),
		newInstallSkillCmd(a),
	)

	return root
}

func skipStore(cmd *cobra.Command) bool {
	if cmd.Annotations[noStore] != "" || cmd.Name() == "help" {
		return true
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "completion" {
			return true
		}
	}
	return false
}

// loadConfig reads the config file once and applies command-line flags.
func (a *app) loadConfig() error {
	if a.cfg == nil {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		a.cfg = cfg
	}
	if a.backend != "" {
		a.cfg.Backend = a.backend
	}
	if a.dataDir != "" {
		a.cfg.DataDir = a.dataDir
	}
	a.cfg.Debug = a.cfg.Debug || a.debug

	if err := logger.Init(logger.Config{Debug: a.cfg.Debug, Dir: a.cfg.LogDir()}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// open loads configuration and the store unless a test injected them.
func (a *app) open() error {
	if err := a.loadConfig(); err != nil {
		return err
	}

	if a.blob == nil {
		blob, err := a.cfg.OpenBlobStore()
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", a.cfg.GetBackend(), err)
		}
		a.blob = blob
		a.ownsBlob = true
	}
	logger.Debug("opened storage", "backend", a.cfg.GetBackend())

	var opts []tracker.Option
	if a.clock != nil {
		opts = append(opts, tracker.WithClock(a.clock))
	}
	a.store = tracker.NewStore(a.blob, opts...)
	a.prefs = prefs.Load(a.blob)
	return nil
}

func (a *app) close() error {
	if a.blob == nil || !a.ownsBlob {
		return nil
	}
	err := a.blob.Close()
	a.blob = nil
	return err
}
