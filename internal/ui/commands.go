// Package ui provides the terminal user interface for the everyday app.
// This file contains tea.Cmd factories that wrap store actions. Each command
// dispatches one action (or one user-visible compound of actions), then
// returns the settled snapshot as a stateChangedMsg defined in messages.go.
package ui

import (
	"fmt"
	"time"

	"everyday/internal/habit"
	"everyday/internal/notify"
	"everyday/internal/state"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// Helpers
// =============================================================================

// snapshot wraps the store's settled state for the event loop.
func snapshot(store *state.Store) tea.Msg {
	return stateChangedMsg{st: store.State()}
}

// resolveTarget expands a modal target into concrete habit ids. A bulk
// target resolves to the selected habits in list order, so bulk operations
// apply in the same order the user sees.
func resolveTarget(st state.State, target state.ModalTarget) []string {
	if id, ok := target.HabitID(); ok {
		return []string{id}
	}
	if target != state.TargetBulk {
		return nil
	}
	ids := make([]string, 0, st.SelectedHabitIDs.Size())
	for _, h := range st.Habits {
		if st.SelectedHabitIDs.Contains(h.ID) {
			ids = append(ids, h.ID)
		}
	}
	return ids
}

// =============================================================================
// Habit Commands
// =============================================================================

// addHabitCmd returns a command that appends a new habit. The name is stored
// verbatim; an empty name is legal and renders as the untitled placeholder.
func addHabitCmd(store *state.Store, name string, now time.Time) tea.Cmd {
	return func() tea.Msg {
		store.AddHabit(habit.New(name, now))
		return snapshot(store)
	}
}

// renameHabitCmd returns a command that replaces a habit's stored name.
func renameHabitCmd(store *state.Store, id, name string) tea.Cmd {
	return func() tea.Msg {
		store.UpdateHabit(id, state.HabitPatch{Name: &name})
		return snapshot(store)
	}
}

// toggleDateCmd returns a command that flips completion of one date-key.
func toggleDateCmd(store *state.Store, id, dateKey string) tea.Cmd {
	return func() tea.Msg {
		store.ToggleDateForHabit(id, dateKey)
		return snapshot(store)
	}
}

// reorderCmd returns a command that resequences the habit list.
func reorderCmd(store *state.Store, ids []string) tea.Cmd {
	return func() tea.Msg {
		store.ReorderHabits(ids)
		return snapshot(store)
	}
}

// deleteHabitsCmd returns a command that deletes the given habits without
// confirmation. Used when confirm_deletions is off.
func deleteHabitsCmd(store *state.Store, ids []string) tea.Cmd {
	return func() tea.Msg {
		for _, id := range ids {
			store.DeleteHabit(id)
		}
		return snapshot(store)
	}
}

// =============================================================================
// View and Selection Commands
// =============================================================================

// setViewCmd returns a command that switches the active view.
func setViewCmd(store *state.Store, mode state.ViewMode) tea.Cmd {
	return func() tea.Msg {
		store.SetViewMode(mode)
		return snapshot(store)
	}
}

// toggleSelectModeCmd returns a command that enters or leaves select mode.
// Leaving clears the selection.
func toggleSelectModeCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		store.ToggleSelectMode()
		return snapshot(store)
	}
}

// toggleSelectedCmd returns a command that checks or unchecks one habit.
func toggleSelectedCmd(store *state.Store, id string) tea.Cmd {
	return func() tea.Msg {
		if store.State().SelectedHabitIDs.Contains(id) {
			store.RemoveSelectedHabit(id)
		} else {
			store.AddSelectedHabit(id)
		}
		return snapshot(store)
	}
}

// selectAllCmd returns a command that selects every habit.
func selectAllCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		store.SelectAllHabits()
		return snapshot(store)
	}
}

// =============================================================================
// Modal Commands
// =============================================================================

// setDeleteTargetCmd returns a command that opens or closes the delete
// confirmation, routed through the store so observers see the modal state.
func setDeleteTargetCmd(store *state.Store, target state.ModalTarget) tea.Cmd {
	return func() tea.Msg {
		store.SetHabitToDelete(target)
		return snapshot(store)
	}
}

// confirmDeleteCmd returns a command that deletes everything the open
// delete target resolves to, then closes the modal.
func confirmDeleteCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		st := store.State()
		for _, id := range resolveTarget(st, st.HabitToDelete) {
			store.DeleteHabit(id)
		}
		store.SetHabitToDelete(state.TargetNone)
		return snapshot(store)
	}
}

// setColorTargetCmd returns a command that opens or closes the color picker.
func setColorTargetCmd(store *state.Store, target state.ModalTarget) tea.Cmd {
	return func() tea.Msg {
		store.SetHabitToColor(target)
		return snapshot(store)
	}
}

// applyColorCmd returns a command that recolors everything the open color
// target resolves to, then closes the picker.
func applyColorCmd(store *state.Store, color habit.Color) tea.Cmd {
	return func() tea.Msg {
		st := store.State()
		for _, id := range resolveTarget(st, st.HabitToColor) {
			store.UpdateHabit(id, state.HabitPatch{Color: &color})
		}
		store.SetHabitToColor(state.TargetNone)
		return snapshot(store)
	}
}

// setNoteTargetCmd returns a command that opens or closes the note editor.
func setNoteTargetCmd(store *state.Store, target state.ModalTarget) tea.Cmd {
	return func() tea.Msg {
		store.SetNoteModalHabitID(target)
		return snapshot(store)
	}
}

// saveNoteCmd returns a command that stores the note text verbatim (an
// empty string clears the note) and closes the editor.
func saveNoteCmd(store *state.Store, id, text string) tea.Cmd {
	return func() tea.Msg {
		store.AddNote(id, text)
		store.SetNoteModalHabitID(state.TargetNone)
		return snapshot(store)
	}
}

// =============================================================================
// Notification Commands
// =============================================================================

// notifyCmd returns a command that sends the all-habits-done notification.
// Returns nil if the notifier is nil (notifications disabled).
func notifyCmd(n notify.Notifier, sound bool, total int) tea.Cmd {
	if n == nil {
		return nil
	}
	return func() tea.Msg {
		body := fmt.Sprintf("All %d habits done for today. Keep the streak going!", total)
		if total == 1 {
			body = "Habit done for today. Keep the streak going!"
		}
		var err error
		if sound {
			err = n.SendWithSound("everyday", body)
		} else {
			err = n.Send("everyday", body)
		}
		return notifiedMsg{err: err}
	}
}
