// Package state holds the single authoritative application state and the
// action set that mutates it.
//
// A Store is constructed once at startup and handed by reference to every
// consumer; its action methods are the only legal write path. Each action
// is an atomic read-modify-write over the whole state, and subscribers are
// notified synchronously after the transition settles, in subscription
// order, with a deep snapshot. Notification order therefore always matches
// action order. Subscribers run inside the action and must not call back
// into the Store.
package state

import (
	"strings"
	"sync"

	"github.com/juju/collections/set"
	"github.com/rs/zerolog"

	"everyday/internal/habit"
)

// ViewMode selects which habit view is rendered.
type ViewMode string

const (
	// ViewWeekly shows the last seven days per habit.
	ViewWeekly ViewMode = "weekly"
	// ViewGrid shows the eighteen-week completion grid.
	ViewGrid ViewMode = "grid-overview"
)

// ModalTarget routes a modal: a habit id, TargetBulk for "apply to the
// whole selection", or TargetNone for "no modal open".
type ModalTarget string

const (
	// TargetNone means the modal is closed.
	TargetNone ModalTarget = ""
	// TargetBulk applies the modal's operation to all selected habits.
	TargetBulk ModalTarget = "bulk"
)

// HabitID returns the specific habit id a target points at, or false when
// the target is none or bulk.
func (t ModalTarget) HabitID() (string, bool) {
	if t == TargetNone || t == TargetBulk {
		return "", false
	}
	return string(t), true
}

// State is the full application state. Actions replace fields wholesale;
// consumers only ever see deep copies.
type State struct {
	// Habits is the ordered habit list. Slice order is the only ordering
	// authority for rendering, persistence and export.
	Habits []habit.Habit
	// SelectedHabitIDs holds the ids checked while select mode is on.
	// Every id in the set refers to a habit currently present in Habits.
	SelectedHabitIDs set.Strings
	// ViewMode is the active view.
	ViewMode ViewMode
	// SelectMode reports whether bulk selection is active. Whenever it is
	// off the selection set is empty.
	SelectMode bool

	// Modal routing. The three channels are independent; the UI opens one
	// modal at a time but the store does not enforce that.
	HabitToDelete    ModalTarget
	HabitToColor     ModalTarget
	NoteModalHabitID ModalTarget
}

func (s State) clone() State {
	c := s
	c.Habits = habit.CloneAll(s.Habits)
	c.SelectedHabitIDs = set.NewStrings(s.SelectedHabitIDs.Values()...)
	return c
}

// Habit returns the habit with the given id from this snapshot.
func (s State) Habit(id string) (habit.Habit, bool) {
	for _, h := range s.Habits {
		if h.ID == id {
			return h, true
		}
	}
	return habit.Habit{}, false
}

// Subscriber receives the settled state after every action. The snapshot
// is the subscriber's to read, but sibling subscribers see the same copy,
// so treat it as read-only.
type Subscriber func(State)

type subscription struct {
	id int
	fn Subscriber
}

// Store is the state container. Construct with New; the zero value has no
// selection set and will panic on first use.
type Store struct {
	mu   sync.Mutex
	st   State
	subs []subscription
	next int
	log  zerolog.Logger
}

// New creates a store with an empty habit list, the weekly view and
// nothing selected. Diagnostics go to log; pass zerolog.Nop() to discard
// them.
func New(log zerolog.Logger) *Store {
	return &Store{
		st: State{
			SelectedHabitIDs: set.NewStrings(),
			ViewMode:         ViewWeekly,
		},
		log: log,
	}
}

// Subscribe registers fn to run after every action, in registration order.
// The returned cancel removes the registration; calling it twice is fine.
func (s *Store) Subscribe(fn Subscriber) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// State returns a deep snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.clone()
}

// notifyLocked delivers the settled state to subscribers. The caller holds
// mu, so delivery cannot interleave with another action.
func (s *Store) notifyLocked() {
	if len(s.subs) == 0 {
		return
	}
	snap := s.st.clone()
	for _, sub := range s.subs {
		sub.fn(snap)
	}
}

func (s *Store) indexLocked(id string) int {
	for i := range s.st.Habits {
		if s.st.Habits[i].ID == id {
			return i
		}
	}
	return -1
}

// missLocked records a mutating action that referenced an id not in the
// list. Stale ids degrade to no-ops on purpose; the log line makes a UI
// bug visible without breaking the UI.
func (s *Store) missLocked(action, id string) {
	s.log.Debug().Str("action", action).Str("habit_id", id).Msg("action on unknown habit id")
}

// pruneSelectionLocked drops selection entries whose habit is gone.
func (s *Store) pruneSelectionLocked() {
	keep := set.NewStrings()
	for _, h := range s.st.Habits {
		if s.st.SelectedHabitIDs.Contains(h.ID) {
			keep.Add(h.ID)
		}
	}
	s.st.SelectedHabitIDs = keep
}

// SetHabits replaces the habit list wholesale. Import and restore use it;
// the caller is responsible for id uniqueness. Selection entries whose
// habit is not in the new list are dropped in the same step.
func (s *Store) SetHabits(habits []habit.Habit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.Habits = habit.CloneAll(habits)
	s.pruneSelectionLocked()
	s.notifyLocked()
}

// AddHabit appends h to the end of the list. The caller supplies a fresh
// unique id, normally via habit.New.
func (s *Store) AddHabit(h habit.Habit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.Habits = append(s.st.Habits, h.Clone())
	s.notifyLocked()
}

// HabitPatch is a partial habit update. Nil fields are left unchanged.
// Ids, completion dates and creation times are not patchable; they have
// their own actions or are immutable.
type HabitPatch struct {
	Name  *string
	Color *habit.Color
	Notes *string
}

// UpdateHabit merges patch into the habit with the given id. An unknown id
// leaves the state unchanged.
func (s *Store) UpdateHabit(id string, patch HabitPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i < 0 {
		s.missLocked("updateHabit", id)
	} else {
		h := &s.st.Habits[i]
		if patch.Name != nil {
			h.Name = *patch.Name
		}
		if patch.Color != nil {
			h.Color = *patch.Color
		}
		if patch.Notes != nil {
			h.Notes = *patch.Notes
		}
	}
	s.notifyLocked()
}

// DeleteHabit removes the habit and its selection entry in one atomic
// step, so no observer ever sees a selected id without a habit behind it.
func (s *Store) DeleteHabit(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i < 0 {
		s.missLocked("deleteHabit", id)
	} else {
		s.st.Habits = append(s.st.Habits[:i], s.st.Habits[i+1:]...)
		s.st.SelectedHabitIDs.Remove(id)
	}
	s.notifyLocked()
}

// ReorderHabits resequences the list to follow ids. Unknown ids in the
// argument are skipped, repeated ids are applied once, and current habits
// missing from the argument are dropped (their selection entries go with
// them). Callers are expected to pass a permutation of the current ids, in
// which case nothing is gained or lost.
func (s *Store) ReorderHabits(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byID := make(map[string]habit.Habit, len(s.st.Habits))
	for _, h := range s.st.Habits {
		byID[h.ID] = h
	}
	next := make([]habit.Habit, 0, len(s.st.Habits))
	for _, id := range ids {
		h, ok := byID[id]
		if !ok {
			continue
		}
		next = append(next, h)
		delete(byID, id)
	}
	for id := range byID {
		s.st.SelectedHabitIDs.Remove(id)
	}
	s.st.Habits = next
	s.notifyLocked()
}

// ToggleDateForHabit flips completion of dateKey for the habit: absent is
// added, present is removed. An unknown id leaves the state unchanged.
func (s *Store) ToggleDateForHabit(id, dateKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i < 0 {
		s.missLocked("toggleDateForHabit", id)
	} else {
		dates := s.st.Habits[i].CompletedDates
		if dates.Contains(dateKey) {
			dates.Remove(dateKey)
		} else {
			dates.Add(dateKey)
		}
	}
	s.notifyLocked()
}

// SetViewMode switches between the weekly and grid views.
func (s *Store) SetViewMode(mode ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.ViewMode = mode
	s.notifyLocked()
}

// ToggleSelectMode flips select mode. Leaving select mode clears the
// selection, so SelectMode false always implies an empty selection.
func (s *Store) ToggleSelectMode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.SelectMode = !s.st.SelectMode
	if !s.st.SelectMode {
		s.st.SelectedHabitIDs = set.NewStrings()
	}
	s.notifyLocked()
}

// AddSelectedHabit checks the habit. Unknown ids are ignored, which keeps
// the selection inside the habit list at all times.
func (s *Store) AddSelectedHabit(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexLocked(id) < 0 {
		s.missLocked("addSelectedHabit", id)
	} else {
		s.st.SelectedHabitIDs.Add(id)
	}
	s.notifyLocked()
}

// RemoveSelectedHabit unchecks the habit.
func (s *Store) RemoveSelectedHabit(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.SelectedHabitIDs.Remove(id)
	s.notifyLocked()
}

// ClearSelectedHabits empties the selection.
func (s *Store) ClearSelectedHabits() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.SelectedHabitIDs = set.NewStrings()
	s.notifyLocked()
}

// SelectAllHabits selects exactly the current habit list.
func (s *Store) SelectAllHabits() {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := set.NewStrings()
	for _, h := range s.st.Habits {
		all.Add(h.ID)
	}
	s.st.SelectedHabitIDs = all
	s.notifyLocked()
}

// SetHabitToDelete routes the delete confirmation modal.
func (s *Store) SetHabitToDelete(target ModalTarget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.HabitToDelete = target
	s.notifyLocked()
}

// SetHabitToColor routes the color picker modal.
func (s *Store) SetHabitToColor(target ModalTarget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.HabitToColor = target
	s.notifyLocked()
}

// SetNoteModalHabitID routes the note editor modal.
func (s *Store) SetNoteModalHabitID(target ModalTarget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.NoteModalHabitID = target
	s.notifyLocked()
}

// AddNote sets the habit's note to text verbatim. Writing an empty string
// is how a note is cleared. An unknown id leaves the state unchanged.
func (s *Store) AddNote(id, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i < 0 {
		s.missLocked("addNote", id)
	} else {
		s.st.Habits[i].Notes = text
	}
	s.notifyLocked()
}

// GetNote returns the stored note for the habit, reporting whether the
// habit exists. Queries never notify subscribers.
func (s *Store) GetNote(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return "", false
	}
	return s.st.Habits[i].Notes, true
}

// HasNote reports whether the habit holds a note that is non-empty after
// trimming.
func (s *Store) HasNote(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	return strings.TrimSpace(s.st.Habits[i].Notes) != ""
}
