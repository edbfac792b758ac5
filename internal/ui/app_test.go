// Package ui provides the terminal user interface for the everyday app.
// This file contains tests for the main App model, including overlay routing.
package ui

import (
	"strings"
	"testing"
	"time"

	"everyday/internal/config"
	"everyday/internal/dates"
	"everyday/internal/habit"
	"everyday/internal/state"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestApp(t *testing.T, store *state.Store, cfg *AppConfig) *App {
	t.Helper()
	if cfg == nil {
		cfg = &AppConfig{
			Keys:             &config.KeysConfig{},
			ConfirmDeletions: true,
			ShowStreaks:      true,
		}
	}
	if cfg.Now == nil {
		cfg.Now = frozenNow
	}
	app := NewApp(store, createTestStyles(), cfg)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return app
}

// pressKey sends a key press and settles every command it triggers.
func pressKey(t *testing.T, app *App, msg tea.KeyMsg) {
	t.Helper()
	_, cmd := app.Update(msg)
	runCmds(t, app, cmd)
}

// TestApp_ViewSwitch verifies tab flips between the week and grid views.
func TestApp_ViewSwitch(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	addTestHabit(t, store, "Exercise")

	app := newTestApp(t, store, nil)

	if app.st.ViewMode == state.ViewGrid {
		t.Fatal("app should start in the weekly view")
	}

	pressKey(t, app, tea.KeyMsg{Type: tea.KeyTab})
	if app.st.ViewMode != state.ViewGrid {
		t.Fatal("view mode should be grid after tab")
	}
	if !app.gridPane.IsFocused() || app.weeklyPane.IsFocused() {
		t.Error("focus should follow the active view")
	}
	if !strings.Contains(app.View(), "[Grid]") {
		t.Error("grid tab should be highlighted")
	}

	pressKey(t, app, tea.KeyMsg{Type: tea.KeyTab})
	if app.st.ViewMode == state.ViewGrid {
		t.Error("view mode should be weekly after second tab")
	}
}

// TestApp_DeleteConfirmFlow verifies the x -> y path deletes the habit.
func TestApp_DeleteConfirmFlow(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	addTestHabit(t, store, "Exercise")

	app := newTestApp(t, store, nil)

	pressKey(t, app, keyRunes("x"))
	if app.st.HabitToDelete == state.TargetNone {
		t.Fatal("delete target should be set after x")
	}
	if !strings.Contains(app.View(), "Delete habit?") {
		t.Error("confirmation overlay should be visible")
	}

	pressKey(t, app, keyRunes("y"))
	if app.st.HabitToDelete != state.TargetNone {
		t.Error("delete target should be cleared after confirm")
	}
	if len(store.State().Habits) != 0 {
		t.Error("habit should be deleted after confirm")
	}
}

// TestApp_DeleteCancelFlow verifies the x -> n path keeps the habit.
func TestApp_DeleteCancelFlow(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	addTestHabit(t, store, "Exercise")

	app := newTestApp(t, store, nil)

	pressKey(t, app, keyRunes("x"))
	pressKey(t, app, keyRunes("n"))

	if app.st.HabitToDelete != state.TargetNone {
		t.Error("delete target should be cleared after cancel")
	}
	if len(store.State().Habits) != 1 {
		t.Error("habit should survive a canceled delete")
	}
	if app.status != "Canceled" {
		t.Errorf("status = %q, want %q", app.status, "Canceled")
	}
}

// TestApp_DeleteWithoutConfirmation verifies confirm_deletions=false deletes
// immediately.
func TestApp_DeleteWithoutConfirmation(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	addTestHabit(t, store, "Exercise")

	app := newTestApp(t, store, &AppConfig{
		Keys:             &config.KeysConfig{},
		ConfirmDeletions: false,
	})

	pressKey(t, app, keyRunes("x"))
	if app.st.HabitToDelete != state.TargetNone {
		t.Error("no confirmation overlay should open")
	}
	if len(store.State().Habits) != 0 {
		t.Error("habit should be deleted immediately")
	}
}

// TestApp_BulkDelete verifies select mode, checking habits and deleting the
// selection in one confirmation.
func TestApp_BulkDelete(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	addTestHabit(t, store, "One")
	addTestHabit(t, store, "Two")
	addTestHabit(t, store, "Three")

	app := newTestApp(t, store, nil)

	pressKey(t, app, keyRunes("v"))
	if !app.st.SelectMode {
		t.Fatal("select mode should be on after v")
	}

	// Check the first and second habits
	pressKey(t, app, tea.KeyMsg{Type: tea.KeySpace})
	pressKey(t, app, keyRunes("j"))
	pressKey(t, app, tea.KeyMsg{Type: tea.KeySpace})
	if app.st.SelectedHabitIDs.Size() != 2 {
		t.Fatalf("selected = %d, want 2", app.st.SelectedHabitIDs.Size())
	}

	pressKey(t, app, keyRunes("x"))
	if app.st.HabitToDelete != state.TargetBulk {
		t.Fatal("delete target should be bulk")
	}
	if !strings.Contains(app.View(), "Delete selected habits?") {
		t.Error("bulk confirmation overlay should be visible")
	}

	pressKey(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	st := store.State()
	if len(st.Habits) != 1 {
		t.Fatalf("habit count = %d, want 1", len(st.Habits))
	}
	if st.Habits[0].Name != "Three" {
		t.Errorf("remaining habit = %q, want %q", st.Habits[0].Name, "Three")
	}
}

// TestApp_ColorPickerFlow verifies picking a color through the overlay.
func TestApp_ColorPickerFlow(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	h := addTestHabit(t, store, "Exercise")

	app := newTestApp(t, store, nil)

	pressKey(t, app, keyRunes("c"))
	if app.st.HabitToColor == state.TargetNone {
		t.Fatal("color target should be set after c")
	}
	if !strings.Contains(app.View(), "Pick a color") {
		t.Error("color picker overlay should be visible")
	}
	if app.colorCursor != 0 {
		t.Errorf("picker should start on the current color, got %d", app.colorCursor)
	}

	pressKey(t, app, keyRunes("l"))
	pressKey(t, app, tea.KeyMsg{Type: tea.KeyEnter})

	if app.st.HabitToColor != state.TargetNone {
		t.Error("color target should be cleared after apply")
	}
	got, _ := store.State().Habit(h.ID)
	if want := habit.Colors()[1]; got.Color != want {
		t.Errorf("color = %q, want %q", got.Color, want)
	}
}

// TestApp_ColorPickerCancel verifies esc keeps the old color.
func TestApp_ColorPickerCancel(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	h := addTestHabit(t, store, "Exercise")

	app := newTestApp(t, store, nil)

	pressKey(t, app, keyRunes("c"))
	pressKey(t, app, keyRunes("l"))
	pressKey(t, app, tea.KeyMsg{Type: tea.KeyEsc})

	if app.st.HabitToColor != state.TargetNone {
		t.Error("color target should be cleared after cancel")
	}
	got, _ := store.State().Habit(h.ID)
	if got.Color != habit.DefaultColor {
		t.Errorf("color = %q, want default %q", got.Color, habit.DefaultColor)
	}
}

// TestApp_NoteFlow verifies editing and saving a note through the modal.
func TestApp_NoteFlow(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	h := addTestHabit(t, store, "Exercise")

	app := newTestApp(t, store, nil)

	pressKey(t, app, keyRunes("n"))
	if !app.noteModal.IsOpen() {
		t.Fatal("note modal should open after n")
	}

	pressKey(t, app, keyRunes("after lunch"))
	pressKey(t, app, tea.KeyMsg{Type: tea.KeyCtrlS})

	if app.noteModal.IsOpen() {
		t.Error("note modal should close after save")
	}
	if note, ok := store.GetNote(h.ID); !ok || note != "after lunch" {
		t.Errorf("note = %q, %v, want %q, true", note, ok, "after lunch")
	}
}

// TestApp_NoteCancel verifies esc discards the edit.
func TestApp_NoteCancel(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	h := addTestHabit(t, store, "Exercise")

	app := newTestApp(t, store, nil)

	pressKey(t, app, keyRunes("n"))
	pressKey(t, app, keyRunes("draft"))
	pressKey(t, app, tea.KeyMsg{Type: tea.KeyEsc})

	if app.noteModal.IsOpen() {
		t.Error("note modal should close after cancel")
	}
	if note, _ := store.GetNote(h.ID); note != "" {
		t.Errorf("canceled edit saved note %q", note)
	}
}

// TestApp_NotePreloadsExisting verifies the modal opens with the saved note.
func TestApp_NotePreloadsExisting(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	h := addTestHabit(t, store, "Exercise")
	store.AddNote(h.ID, "old note")

	app := newTestApp(t, store, nil)
	runCmds(t, app, func() tea.Msg { return snapshot(store) })

	pressKey(t, app, keyRunes("n"))
	if app.noteModal.Value() != "old note" {
		t.Errorf("modal preset = %q, want %q", app.noteModal.Value(), "old note")
	}
}

// TestApp_HelpToggle verifies the help overlay opens and closes.
func TestApp_HelpToggle(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)

	app := newTestApp(t, store, nil)

	pressKey(t, app, keyRunes("?"))
	if !app.showHelp {
		t.Fatal("help should be shown after ?")
	}
	if !strings.Contains(app.View(), "Keyboard Shortcuts") {
		t.Error("help overlay should be visible")
	}

	pressKey(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	if app.showHelp {
		t.Error("help should close on esc")
	}
}

// TestApp_StatusExpiry verifies status messages clear after their TTL.
func TestApp_StatusExpiry(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)

	app := newTestApp(t, store, nil)

	app.SetStatus("saved", false)
	if !strings.Contains(app.renderHelpBar(), "saved") {
		t.Fatal("status should render in the help bar")
	}

	// Expire it and tick
	app.statusUntil = time.Now().Add(-time.Second)
	app.Update(tickMsg(time.Now()))

	if app.status != "" {
		t.Error("status should clear after its TTL")
	}
	if strings.Contains(app.renderHelpBar(), "saved") {
		t.Error("expired status should not render")
	}
}

// TestApp_AllDoneCelebration verifies the notification fires exactly when
// the last habit of the day is completed.
func TestApp_AllDoneCelebration(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	addTestHabit(t, store, "One")
	addTestHabit(t, store, "Two")

	n := &testNotifier{}
	app := newTestApp(t, store, &AppConfig{
		Keys:             &config.KeysConfig{},
		ConfirmDeletions: true,
		ShowStreaks:      true,
		Notifier:         n,
	})

	// First habit done: no celebration yet
	pressKey(t, app, keyRunes("d"))
	if n.sent != 0 {
		t.Fatal("notification should not fire before all habits are done")
	}

	// Second habit done: celebrate
	pressKey(t, app, keyRunes("j"))
	pressKey(t, app, keyRunes("d"))
	if n.sent != 1 {
		t.Errorf("notifications sent = %d, want 1", n.sent)
	}
	if !strings.Contains(app.status, "All habits done") {
		t.Errorf("status = %q, want an all-done message", app.status)
	}

	// Untoggling and redoing fires again
	pressKey(t, app, keyRunes("d"))
	pressKey(t, app, keyRunes("d"))
	if n.sent != 2 {
		t.Errorf("notifications sent = %d, want 2", n.sent)
	}
}

// TestApp_EmptyListGuards verifies modal openers complain without a habit.
func TestApp_EmptyListGuards(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)

	app := newTestApp(t, store, nil)

	for _, k := range []string{"x", "c", "n"} {
		pressKey(t, app, keyRunes(k))
		if app.status != "No habit selected" {
			t.Errorf("status after %q = %q, want %q", k, app.status, "No habit selected")
		}
		app.status = ""
	}
	if app.st.HabitToDelete != state.TargetNone || app.st.HabitToColor != state.TargetNone {
		t.Error("no modal should open on an empty list")
	}
}

// TestApp_QuitShowsGoodbye verifies q quits with a farewell screen.
func TestApp_QuitShowsGoodbye(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	h := addTestHabit(t, store, "Exercise")
	store.ToggleDateForHabit(h.ID, dates.Key(testNow))

	app := newTestApp(t, store, nil)
	runCmds(t, app, func() tea.Msg { return snapshot(store) })

	_, cmd := app.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit should return tea.Quit")
	}

	view := app.View()
	if !strings.Contains(view, "See you tomorrow!") {
		t.Error("goodbye screen should render")
	}
	if !strings.Contains(view, "1/1") {
		t.Error("goodbye screen should show today's progress")
	}
}

// TestApp_TitleBar verifies the title bar carries tabs, stats and the date.
func TestApp_TitleBar(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	addTestHabit(t, store, "Exercise")

	app := newTestApp(t, store, nil)
	runCmds(t, app, func() tea.Msg { return snapshot(store) })

	bar := app.renderTitleBar()
	for _, want := range []string{"everyday", "[Week]", "Today: 0/1", "Mon Dec 15"} {
		if !strings.Contains(bar, want) {
			t.Errorf("title bar missing %q:\n%s", want, bar)
		}
	}

	pressKey(t, app, keyRunes("v"))
	if !strings.Contains(app.renderTitleBar(), "SELECT") {
		t.Error("title bar should show the select badge in select mode")
	}
}

// TestAppView_Weekly is a golden of the full weekly screen.
func TestAppView_Weekly(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	h := addTestHabit(t, store, "Exercise")
	addTestHabit(t, store, "Reading")
	store.ToggleDateForHabit(h.ID, dates.Key(testNow))

	app := newTestApp(t, store, nil)
	runCmds(t, app, func() tea.Msg { return snapshot(store) })

	assertGolden(t, "app_weekly", app.View())
}

// TestAppView_ConfirmDelete is a golden of the delete confirmation overlay.
func TestAppView_ConfirmDelete(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	addTestHabit(t, store, "Exercise")

	app := newTestApp(t, store, nil)
	pressKey(t, app, keyRunes("x"))

	assertGolden(t, "app_confirm_delete", app.View())
}

// TestAppView_ColorPicker is a golden of the color picker overlay.
func TestAppView_ColorPicker(t *testing.T) {
	setupTest(t)
	store := createTestStore(t)
	addTestHabit(t, store, "Exercise")

	app := newTestApp(t, store, nil)
	pressKey(t, app, keyRunes("c"))

	assertGolden(t, "app_color_picker", app.View())
}
