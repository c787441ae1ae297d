// ABOUTME: Tests for CLI commands run against an in-memory store.
// ABOUTME: Executes the real cobra tree with injected storage and a fixed clock.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/config"
	"github.com/harperreed/habits/internal/prefs"
	"github.com/harperreed/habits/internal/storage"
	"github.com/harperreed/habits/internal/tracker"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

var testNow = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	app   *app
	blob  *storage.MemoryStore
	clock *tracker.FakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	blob := storage.NewMemoryStore()
	if err := blob.Set(prefs.LanguageKey, []byte("en")); err != nil {
		t.Fatal(err)
	}
	clock := tracker.NewFakeClock(testNow)
	return &testEnv{
		app: &app{
			cfg:   &config.Config{DataDir: t.TempDir()},
			blob:  blob,
			clock: clock,
		},
		blob:  blob,
		clock: clock,
	}
}

// run executes one CLI invocation and returns combined output.
func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(e.app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, "", args...)
	if err != nil {
		t.Fatalf("habits %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func (e *testEnv) onlyHabit(t *testing.T) string {
	t.Helper()
	all := e.app.store.All()
	if len(all) != 1 {
		t.Fatalf("expected one habit, have %d", len(all))
	}
	return string(all[0].ID)
}

func TestAddAndList(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "add", "Read", "20", "pages")
	if !strings.Contains(out, "Habit added: Read 20 pages") {
		t.Errorf("add output = %q", out)
	}

	out = env.mustRun(t, "list")
	if !strings.Contains(out, "My Habits") || !strings.Contains(out, "Read 20 pages") {
		t.Errorf("list output = %q", out)
	}
	if !strings.Contains(out, "○") {
		t.Errorf("expected not-done marker in %q", out)
	}
}

func TestListEmpty(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "list")
	if !strings.Contains(out, "No habits yet") {
		t.Errorf("list output = %q", out)
	}
}

func TestAddRejectsBlankName(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "", "add", "   ")
	if !errors.Is(err, tracker.ErrEmptyName) {
		t.Errorf("error = %v, want ErrEmptyName", err)
	}
	if _, err := env.blob.Get(tracker.HabitsKey); !errors.Is(err, storage.ErrNotFound) {
		t.Error("blank add must not write the habits blob")
	}
}

func TestDoneToggles(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "Walk")
	id := env.onlyHabit(t)

	out := env.mustRun(t, "done", id[:6])
	if !strings.Contains(out, "Completed: Walk") || !strings.Contains(out, "1 days") {
		t.Errorf("first done output = %q", out)
	}

	out = env.mustRun(t, "list")
	if !strings.Contains(out, "✓") {
		t.Errorf("expected done marker in %q", out)
	}

	out = env.mustRun(t, "done", id)
	if !strings.Contains(out, "Not completed: Walk") {
		t.Errorf("second done output = %q", out)
	}
}

func TestDoneUnknownID(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "Walk")

	_, err := env.run(t, "", "done", "zzzz")
	if !errors.Is(err, tracker.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestRename(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "Reed")
	id := env.onlyHabit(t)

	out := env.mustRun(t, "rename", id, "Read", "books")
	if !strings.Contains(out, "Habit renamed: Read books") {
		t.Errorf("rename output = %q", out)
	}
}

func TestDeleteConfirmation(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		deleted bool
	}{
		{"declined", "n\n", nil, false},
		{"empty answer", "", nil, false},
		{"accepted", "y\n", nil, true},
		{"russian yes", "да\n", nil, true},
		{"skip prompt", "", []string{"--yes"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.mustRun(t, "add", "Walk")
			id := env.onlyHabit(t)

			args := append([]string{"delete", id}, tt.args...)
			out, err := env.run(t, tt.stdin, args...)
			if err != nil {
				t.Fatalf("delete failed: %v", err)
			}

			remaining := env.app.store.Len()
			if tt.deleted {
				if remaining != 0 || !strings.Contains(out, "Habit deleted: Walk") {
					t.Errorf("expected deletion, remaining=%d output=%q", remaining, out)
				}
			} else {
				if remaining != 1 || !strings.Contains(out, "Cancelled") {
					t.Errorf("expected cancel, remaining=%d output=%q", remaining, out)
				}
			}
		})
	}
}

func TestCalendar(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "Walk")
	env.mustRun(t, "done", env.onlyHabit(t))

	out := env.mustRun(t, "calendar")
	for _, want := range []string{"Progress Calendar: October 2026", "Mon", "Sun", "[15]"} {
		if !strings.Contains(out, want) {
			t.Errorf("calendar missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Don't give up") {
		t.Errorf("unexpected motivation text:\n%s", out)
	}

	out = env.mustRun(t, "calendar", "--month", "2026-02")
	if !strings.Contains(out, "February 2026") || strings.Contains(out, "[") {
		t.Errorf("february calendar:\n%s", out)
	}

	if _, err := env.run(t, "", "calendar", "--month", "Feb"); err == nil {
		t.Error("expected error for malformed month")
	}
}

func TestNeglectShowsMotivation(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "Walk")
	env.mustRun(t, "done", env.onlyHabit(t))

	env.clock.AdvanceDays(2)
	for _, args := range [][]string{{"list"}, {"calendar"}} {
		out := env.mustRun(t, args...)
		if !strings.Contains(out, "Don't give up! Every day is a new opportunity!") {
			t.Errorf("%s output lacks motivation text:\n%s", args[0], out)
		}
	}
}

func TestExportFormats(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "Walk")
	env.mustRun(t, "done", env.onlyHabit(t))

	out := env.mustRun(t, "export")
	var data tracker.ExportData
	if err := json.Unmarshal([]byte(out), &data); err != nil {
		t.Fatalf("export json is invalid: %v\n%s", err, out)
	}
	if data.Version != "1.0" || len(data.Habits) != 1 || data.Habits[0].Name != "Walk" {
		t.Errorf("unexpected export: %+v", data)
	}

	out = env.mustRun(t, "export", "yaml")
	if !strings.Contains(out, "completed_days:") || !strings.Contains(out, "version: \"1.0\"") {
		t.Errorf("yaml export:\n%s", out)
	}

	out = env.mustRun(t, "export", "markdown")
	if !strings.Contains(out, "| Walk | 1 | 100% | 1 | 2026-10-15 |") {
		t.Errorf("markdown export:\n%s", out)
	}

	if _, err := env.run(t, "", "export", "csv"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestExportToFileAndImport(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "Walk")
	env.mustRun(t, "add", "Read")

	path := filepath.Join(t.TempDir(), "backup.json")
	out := env.mustRun(t, "export", "json", "-o", path)
	if !strings.Contains(out, "Export Data: "+path) {
		t.Errorf("export output = %q", out)
	}

	other := newTestEnv(t)
	out = other.mustRun(t, "import", path)
	if !strings.Contains(out, "Data imported successfully! (2)") {
		t.Errorf("import output = %q", out)
	}
	if other.app.store.Len() != 2 {
		t.Errorf("imported %d habits, want 2", other.app.store.Len())
	}
}

func TestImportFailuresLeaveDataAlone(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "Walk")

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`{"habits":"nope"}`), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := env.run(t, "", "import", bad)
	if !errors.Is(err, tracker.ErrValidation) || !strings.Contains(err.Error(), "Invalid file format!") {
		t.Errorf("invalid import error = %v", err)
	}

	_, err = env.run(t, "", "import", filepath.Join(t.TempDir(), "missing.json"))
	if err == nil || !strings.Contains(err.Error(), "Error reading file!") {
		t.Errorf("missing file error = %v", err)
	}

	if env.app.store.Len() != 1 {
		t.Errorf("failed imports changed the collection")
	}
}

func TestSettings(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "settings")
	if !strings.Contains(out, "Light Theme (light)") || !strings.Contains(out, "Language: en") {
		t.Errorf("settings output = %q", out)
	}

	env.mustRun(t, "settings", "theme", "toggle")
	if got := prefs.Load(env.blob).Theme; got != prefs.ThemeDark {
		t.Errorf("theme after toggle = %q", got)
	}

	if _, err := env.run(t, "", "settings", "theme", "sepia"); !errors.Is(err, prefs.ErrInvalidPreference) {
		t.Errorf("invalid theme error = %v", err)
	}

	out = env.mustRun(t, "settings", "language", "ru")
	if !strings.Contains(out, "Язык: ru") {
		t.Errorf("language output = %q", out)
	}

	out = env.mustRun(t, "list")
	if !strings.Contains(out, "Мои привычки") {
		t.Errorf("list should be in Russian: %q", out)
	}
}

func TestDefaultLanguageIsRussian(t *testing.T) {
	env := newTestEnv(t)
	if err := env.blob.Delete(prefs.LanguageKey); err != nil {
		t.Fatal(err)
	}
	out := env.mustRun(t, "calendar")
	if !strings.Contains(out, "Пн") || !strings.Contains(out, "Календарь прогресса") {
		t.Errorf("calendar should default to Russian:\n%s", out)
	}
}

func TestWriteFailureSurfacesStorageError(t *testing.T) {
	env := newTestEnv(t)
	env.blob.FailWrites(errors.New("disk full"))

	_, err := env.run(t, "", "add", "Walk")
	var storageErr *tracker.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("error = %v, want StorageError", err)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"да", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	}
	for _, tt := range tests {
		got, err := confirm(strings.NewReader(tt.in))
		if err != nil {
			t.Fatalf("confirm(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("confirm(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSkipStore(t *testing.T) {
	env := newTestEnv(t)
	root := newRootCmd(env.app)

	for _, path := range [][]string{{"install-skill"}, {"sync", "status"}, {"sync", "wipe"}} {
		cmd, _, err := root.Find(path)
		if err != nil {
			t.Fatalf("find %v: %v", path, err)
		}
		if !skipStore(cmd) {
			t.Errorf("%v should not open the store", path)
		}
	}
	for _, path := range [][]string{{"list"}, {"done"}, {"mcp"}} {
		cmd, _, err := root.Find(path)
		if err != nil {
			t.Fatalf("find %v: %v", path, err)
		}
		if skipStore(cmd) {
			t.Errorf("%v should open the store", path)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("Чтение", 8); got != "Чтение  " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("toolong", 3); got != "toolong" {
		t.Errorf("padRight = %q", got)
	}
}
