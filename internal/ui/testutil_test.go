package ui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"everyday/internal/config"
	"everyday/internal/habit"
	"everyday/internal/state"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
)

// setupTest prepares the test environment for deterministic rendering.
// It disables colors to ensure consistent golden file output across environments.
func setupTest(t *testing.T) {
	t.Helper()
	// Use ASCII profile to disable all color codes in output
	lipgloss.SetColorProfile(termenv.Ascii)
}

// testNow is the frozen clock used by rendering tests: a Monday at noon so
// the trailing week always reads Tue..Mon.
var testNow = time.Date(2025, time.December, 15, 12, 0, 0, 0, time.UTC)

// frozenNow returns the fixed test clock.
func frozenNow() time.Time {
	return testNow
}

// createTestStore creates an empty habit store with a silent logger.
func createTestStore(t *testing.T) *state.Store {
	t.Helper()
	return state.New(zerolog.Nop())
}

// createTestStyles creates a default Styles instance for testing.
func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{})
}

// addTestHabit adds a habit with the given name and returns it.
func addTestHabit(t *testing.T, store *state.Store, name string) habit.Habit {
	t.Helper()
	h := habit.New(name, testNow)
	store.AddHabit(h)
	return h
}

// execCmd executes a command and returns the resulting message, or nil for
// a nil command.
func execCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	return cmd()
}

// runCmds executes commands and feeds resulting messages back into the app
// until the queue drains. Tick commands are not executed, they would block
// the test for a second.
func runCmds(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		switch msg := msg.(type) {
		case nil:
			continue
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tickMsg:
			continue
		default:
			_, followup := app.Update(msg)
			queue = append(queue, followup)
		}
	}
}

// goldenPath returns the path to a golden file in the testdata directory.
func goldenPath(name string) string {
	return filepath.Join("testdata", name+".golden")
}

// updateGolden checks if the -update flag is set for updating golden files.
var updateGolden = os.Getenv("UPDATE_GOLDEN") == "1"

// assertGolden compares output against a golden file.
// If UPDATE_GOLDEN=1 is set, it updates the golden file instead.
func assertGolden(t *testing.T, name string, actual string) {
	t.Helper()

	path := goldenPath(name)

	if updateGolden {
		// Create testdata directory if it doesn't exist
		if err := os.MkdirAll("testdata", 0755); err != nil {
			t.Fatalf("failed to create testdata directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(actual), 0644); err != nil {
			t.Fatalf("failed to update golden file: %v", err)
		}
		t.Logf("Updated golden file: %s", path)
		return
	}

	expected, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v\nRun with UPDATE_GOLDEN=1 to create it", path, err)
	}

	if actual != string(expected) {
		t.Errorf("output mismatch for %s\n\nGot:\n%s\n\nWant:\n%s", name, actual, string(expected))
	}
}
