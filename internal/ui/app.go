// Package ui provides the terminal user interface for the everyday app.
// This file contains the main App model which coordinates the two views and
// routes messages using the Bubble Tea architecture.
package ui

import (
	"fmt"
	"strings"
	"time"

	"everyday/internal/config"
	"everyday/internal/dates"
	"everyday/internal/habit"
	"everyday/internal/notify"
	"everyday/internal/state"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AppConfig holds user configuration for the app behavior.
type AppConfig struct {
	Keys             *config.KeysConfig
	ConfirmDeletions bool
	ShowStreaks      bool
	Notifier         notify.Notifier
	NotifySound      bool
	Now              func() time.Time
}

// App is the main application model. It owns the last settled snapshot and
// derives every overlay from the store's modal fields, so anything that
// mutates the store moves the UI with it.
type App struct {
	store       *state.Store
	styles      *Styles
	config      *AppConfig
	weeklyPane  *WeeklyPane
	gridPane    *GridPane
	noteModal   *NoteModal
	helpOverlay *HelpOverlay
	st          state.State
	colorCursor int
	showHelp    bool
	width       int
	height      int
	status      string
	statusErr   bool
	statusUntil time.Time
	quitting    bool
	now         func() time.Time

	// Key bindings
	keys       GlobalKeyMap
	habitKeys  HabitKeyMap
	selectKeys SelectKeyMap
	helpKeys   HelpKeyMap

	contentTop int // Y coordinate where pane content starts
}

// colorsPerRow is how many swatches the color picker lays per row.
const colorsPerRow = 5

// NewApp creates a new application bound to the given store.
func NewApp(store *state.Store, styles *Styles, cfg *AppConfig) *App {
	// Use default config if nil
	if cfg == nil {
		cfg = &AppConfig{
			Keys:             &config.KeysConfig{},
			ConfirmDeletions: true,
			ShowStreaks:      true,
		}
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	// Create panes with config-aware key bindings
	weeklyPane := NewWeeklyPaneWithKeys(store, styles, cfg.Keys)
	gridPane := NewGridPaneWithKeys(store, styles, cfg.Keys)
	weeklyPane.SetShowStreaks(cfg.ShowStreaks)
	gridPane.SetShowStreaks(cfg.ShowStreaks)
	weeklyPane.SetNowFunc(cfg.Now)
	gridPane.SetNowFunc(cfg.Now)

	st := store.State()
	app := &App{
		store:       store,
		styles:      styles,
		config:      cfg,
		weeklyPane:  weeklyPane,
		gridPane:    gridPane,
		noteModal:   NewNoteModal(styles),
		helpOverlay: NewHelpOverlay(styles),
		st:          st,
		now:         cfg.Now,
		keys:        NewGlobalKeyMap(cfg.Keys),
		habitKeys:   NewHabitKeyMap(cfg.Keys),
		selectKeys:  NewSelectKeyMap(cfg.Keys),
		helpKeys:    DefaultHelpKeyMap(),
	}

	// Set initial focus from the stored view
	weeklyPane.SetFocused(st.ViewMode != state.ViewGrid)
	gridPane.SetFocused(st.ViewMode == state.ViewGrid)

	return app
}

// tickMsg is sent periodically for time updates.
type tickMsg time.Time

// tickCmd returns a command that sends a tick every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the clock.
func (a *App) Init() tea.Cmd {
	return tickCmd()
}

// applyState installs a settled snapshot, pushes it into both panes and
// derives the overlay transitions from the store's modal fields.
func (a *App) applyState(next state.State) tea.Cmd {
	prev := a.st
	a.st = next
	a.weeklyPane.setState(next)
	a.gridPane.setState(next)
	a.weeklyPane.SetFocused(next.ViewMode != state.ViewGrid)
	a.gridPane.SetFocused(next.ViewMode == state.ViewGrid)

	var cmds []tea.Cmd

	// The note editor follows the store's note target.
	if id, ok := next.NoteModalHabitID.HabitID(); ok {
		if !a.noteModal.IsOpen() || a.noteModal.HabitID() != id {
			if h, found := next.Habit(id); found {
				cmds = append(cmds, a.noteModal.Open(h.ID, h.DisplayName(), h.Notes))
			} else {
				// Dangling target, clear it
				cmds = append(cmds, setNoteTargetCmd(a.store, state.TargetNone))
			}
		}
	} else if a.noteModal.IsOpen() {
		a.noteModal.Close()
	}

	// Start the picker on the habit's current color when it opens.
	if next.HabitToColor != state.TargetNone && prev.HabitToColor == state.TargetNone {
		a.colorCursor = a.pickerStartIndex(next)
	}

	// Celebrate when the last unfinished habit of today gets done.
	if len(next.Habits) > 0 && !a.allDoneToday(prev) && a.allDoneToday(next) {
		a.SetStatus("All habits done for today 🎉", false)
		if cmd := notifyCmd(a.config.Notifier, a.config.NotifySound, len(next.Habits)); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return tea.Batch(cmds...)
}

// allDoneToday reports whether every habit in the snapshot is completed
// today. False for an empty list.
func (a *App) allDoneToday(st state.State) bool {
	if len(st.Habits) == 0 {
		return false
	}
	todayKey := dates.Key(a.now())
	for _, h := range st.Habits {
		if !h.CompletedOn(todayKey) {
			return false
		}
	}
	return true
}

// pickerStartIndex returns the palette index of the target habit's current
// color, or the default color for bulk targets.
func (a *App) pickerStartIndex(st state.State) int {
	current := habit.DefaultColor
	if id, ok := st.HabitToColor.HabitID(); ok {
		if h, found := st.Habit(id); found {
			current = h.Color
		}
	}
	for i, c := range habit.Colors() {
		if c == current {
			return i
		}
	}
	return 0
}

// cursorHabit returns the habit under the active view's cursor.
func (a *App) cursorHabit() (habit.Habit, bool) {
	if a.st.ViewMode == state.ViewGrid {
		return a.gridPane.CursorHabit()
	}
	return a.weeklyPane.CursorHabit()
}

// actionTarget resolves what delete/color act on: the whole selection when
// select mode has habits checked, otherwise the habit under the cursor.
func (a *App) actionTarget() (state.ModalTarget, bool) {
	if a.st.SelectMode && !a.st.SelectedHabitIDs.IsEmpty() {
		return state.TargetBulk, true
	}
	if h, ok := a.cursorHabit(); ok {
		return state.ModalTarget(h.ID), true
	}
	return state.TargetNone, false
}

// updateActivePane forwards a message to the view the store says is active.
func (a *App) updateActivePane(msg tea.Msg) tea.Cmd {
	if a.st.ViewMode == state.ViewGrid {
		return a.gridPane.Update(msg)
	}
	return a.weeklyPane.Update(msg)
}

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateChangedMsg:
		return a, a.applyState(msg.st)

	case notifiedMsg:
		if msg.err != nil {
			a.SetStatus("Notify: "+msg.err.Error(), true)
		}
		return a, nil

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tickMsg:
		if a.status != "" && !a.statusUntil.IsZero() && time.Now().After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
			a.statusUntil = time.Time{}
		}
		return a, tickCmd()

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Everything else (input blinks and friends) goes to whatever is
	// reading text right now.
	if a.noteModal.IsOpen() {
		return a, a.noteModal.Update(msg)
	}
	return a, a.updateActivePane(msg)
}

// handleKey routes key presses. Overlays take priority in reverse stacking
// order, then modal openers, then global keys, then the active pane.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Note editor takes priority
	if a.noteModal.IsOpen() {
		switch msg.String() {
		case "ctrl+s":
			return a, saveNoteCmd(a.store, a.noteModal.HabitID(), a.noteModal.Value())
		case "esc":
			return a, setNoteTargetCmd(a.store, state.TargetNone)
		}
		return a, a.noteModal.Update(msg)
	}

	// Delete confirmation
	if a.st.HabitToDelete != state.TargetNone {
		switch msg.String() {
		case "y", "Y", "enter":
			a.SetStatus("Deleted", false)
			return a, confirmDeleteCmd(a.store)
		case "n", "N", "esc":
			a.SetStatus("Canceled", false)
			return a, setDeleteTargetCmd(a.store, state.TargetNone)
		default:
			return a, nil
		}
	}

	// Color picker
	if a.st.HabitToColor != state.TargetNone {
		colors := habit.Colors()
		switch {
		case key.Matches(msg, a.habitKeys.Left):
			a.colorCursor = max(a.colorCursor-1, 0)
		case key.Matches(msg, a.habitKeys.Right):
			a.colorCursor = min(a.colorCursor+1, len(colors)-1)
		case key.Matches(msg, a.habitKeys.Up):
			a.colorCursor = max(a.colorCursor-colorsPerRow, 0)
		case key.Matches(msg, a.habitKeys.Down):
			a.colorCursor = min(a.colorCursor+colorsPerRow, len(colors)-1)
		case msg.String() == "enter":
			return a, applyColorCmd(a.store, colors[a.colorCursor])
		case msg.String() == "esc":
			return a, setColorTargetCmd(a.store, state.TargetNone)
		}
		return a, nil
	}

	// Help overlay takes priority
	if a.showHelp {
		if key.Matches(msg, a.helpKeys.Close) {
			a.showHelp = false
		}
		return a, nil
	}

	// While a name input is open the pane owns every key
	if a.weeklyPane.IsEditing() {
		return a, a.weeklyPane.Update(msg)
	}

	// Modal openers work in both views
	switch {
	case key.Matches(msg, a.habitKeys.Delete):
		target, ok := a.actionTarget()
		if !ok {
			a.SetStatus("No habit selected", true)
			return a, nil
		}
		if !a.config.ConfirmDeletions {
			a.SetStatus("Deleted", false)
			return a, deleteHabitsCmd(a.store, resolveTarget(a.st, target))
		}
		return a, setDeleteTargetCmd(a.store, target)

	case key.Matches(msg, a.habitKeys.Color):
		target, ok := a.actionTarget()
		if !ok {
			a.SetStatus("No habit selected", true)
			return a, nil
		}
		return a, setColorTargetCmd(a.store, target)

	case key.Matches(msg, a.habitKeys.Note):
		// Notes are per habit, so this always targets the cursor habit
		h, ok := a.cursorHabit()
		if !ok {
			a.SetStatus("No habit selected", true)
			return a, nil
		}
		return a, setNoteTargetCmd(a.store, state.ModalTarget(h.ID))
	}

	// Global keys
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return a, nil

	case key.Matches(msg, a.keys.SwitchView):
		next := state.ViewGrid
		if a.st.ViewMode == state.ViewGrid {
			next = state.ViewWeekly
		}
		return a, setViewCmd(a.store, next)
	}

	// Selection keys
	switch {
	case key.Matches(msg, a.selectKeys.Mode):
		return a, toggleSelectModeCmd(a.store)

	case a.st.SelectMode && key.Matches(msg, a.selectKeys.Toggle):
		if h, ok := a.cursorHabit(); ok {
			return a, toggleSelectedCmd(a.store, h.ID)
		}
		return a, nil

	case a.st.SelectMode && key.Matches(msg, a.selectKeys.All):
		return a, selectAllCmd(a.store)
	}

	// Forward to active pane
	return a, a.updateActivePane(msg)
}

// handleMouse routes mouse events. Overlays swallow clicks; a press while
// a confirmation or picker is open cancels it.
func (a *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.noteModal.IsOpen() {
		return a, nil
	}

	if a.st.HabitToDelete != state.TargetNone {
		if msg.Action == tea.MouseActionPress {
			a.SetStatus("Canceled", false)
			return a, setDeleteTargetCmd(a.store, state.TargetNone)
		}
		return a, nil
	}

	if a.st.HabitToColor != state.TargetNone {
		if msg.Action == tea.MouseActionPress {
			return a, setColorTargetCmd(a.store, state.TargetNone)
		}
		return a, nil
	}

	if a.showHelp {
		// Any click closes help
		if msg.Action == tea.MouseActionPress {
			a.showHelp = false
		}
		return a, nil
	}

	// Forward with content-local coordinates
	localMsg := msg
	localMsg.Y = msg.Y - a.contentTop
	return a, a.updateActivePane(localMsg)
}

// updateLayout recalculates pane sizes based on terminal dimensions.
func (a *App) updateLayout() {
	// Leave room for title bar and help bar
	contentHeight := a.height - 3
	if contentHeight < 10 {
		contentHeight = 10
	}

	// Content starts after the title bar
	a.contentTop = 1

	paneWidth := a.width - 2
	if paneWidth < 20 {
		paneWidth = 20
	}

	a.weeklyPane.SetSize(paneWidth, contentHeight)
	a.gridPane.SetSize(paneWidth, contentHeight)
	a.helpOverlay.SetSize(a.width, a.height)
	a.noteModal.SetSize(a.width, a.height)
}

// View renders the entire app.
func (a *App) View() string {
	if a.quitting {
		return a.renderGoodbye()
	}

	if a.noteModal.IsOpen() {
		return a.noteModal.View()
	}

	if a.st.HabitToDelete != state.TargetNone {
		return a.renderConfirmDelete()
	}

	if a.st.HabitToColor != state.TargetNone {
		return a.renderColorPicker()
	}

	// Show help overlay if active
	if a.showHelp {
		return a.helpOverlay.View()
	}

	var b strings.Builder

	// Title bar
	b.WriteString(a.renderTitleBar())
	b.WriteString("\n")

	// Active view
	if a.st.ViewMode == state.ViewGrid {
		b.WriteString(a.gridPane.View())
	} else {
		b.WriteString(a.weeklyPane.View())
	}
	b.WriteString("\n")

	// Help bar
	b.WriteString(a.renderHelpBar())

	return b.String()
}

func (a *App) renderConfirmDelete() string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorDanger).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorDanger).
		MarginBottom(1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	hintStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	title := "Delete habit?"
	body := ""
	if id, ok := a.st.HabitToDelete.HabitID(); ok {
		if h, found := a.st.Habit(id); found {
			body = truncateText(h.DisplayName(), 60)
		}
	} else {
		n := len(resolveTarget(a.st, a.st.HabitToDelete))
		title = "Delete selected habits?"
		body = fmt.Sprintf("%d habits and their full history", n)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render(body))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("[y/enter] delete    [n/esc] cancel"))

	content := overlayStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

func (a *App) renderColorPicker() string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(24, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorPrimary).
		MarginBottom(1)

	hintStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Pick a color"))
	b.WriteString("\n\n")

	colors := habit.Colors()
	var row []string
	for i, c := range colors {
		swatch := lipgloss.NewStyle().Foreground(a.styles.HabitColor(c)).Render("●")
		cell := fmt.Sprintf(" %s %-8s ", swatch, string(c))
		if i == a.colorCursor {
			cell = fmt.Sprintf("[%s %-8s]", swatch, string(c))
		}
		row = append(row, cell)
		if len(row) == colorsPerRow {
			b.WriteString(strings.Join(row, ""))
			b.WriteString("\n")
			row = nil
		}
	}
	if len(row) > 0 {
		b.WriteString(strings.Join(row, ""))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("[h/j/k/l] move    [enter] apply    [esc] cancel"))

	content := overlayStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

// renderGoodbye shows a short exit message with today's progress.
func (a *App) renderGoodbye() string {
	done, total := a.weeklyPane.Stats()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  See you tomorrow!\n")
	b.WriteString("\n")

	if total > 0 {
		pct := (done * 100) / total
		b.WriteString(fmt.Sprintf("  Today: %d/%d habits (%d%%)\n", done, total, pct))
		b.WriteString("\n")
	}

	return b.String()
}

// renderTitleBar creates the top title bar with view tabs and stats.
func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" everyday ")

	// View tabs
	activeTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorPrimary).
		Bold(true)
	inactiveTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	weekTab := inactiveTabStyle.Render(" Week ")
	gridTab := inactiveTabStyle.Render(" Grid ")
	if a.st.ViewMode == state.ViewGrid {
		gridTab = activeTabStyle.Render("[Grid]")
	} else {
		weekTab = activeTabStyle.Render("[Week]")
	}
	tabs := weekTab + " " + gridTab

	// Stats summary
	done, total := a.weeklyPane.Stats()
	var statsItems []string
	if total > 0 {
		statsItems = append(statsItems, fmt.Sprintf("Today: %d/%d", done, total))
	}
	if a.st.SelectMode {
		statsItems = append(statsItems, fmt.Sprintf("SELECT (%d)", a.st.SelectedHabitIDs.Size()))
	}
	stats := a.styles.StatLabelStyle.Render(strings.Join(statsItems, "  "))

	// Current date/time
	dateStr := a.now().Format("Mon Jan 2 · 15:04")
	date := a.styles.DateStyle.Render(dateStr)

	// Calculate spacing
	titleWidth := lipgloss.Width(title)
	tabsWidth := lipgloss.Width(tabs)
	statsWidth := lipgloss.Width(stats)
	dateWidth := lipgloss.Width(date)

	usedWidth := titleWidth + tabsWidth + statsWidth + dateWidth
	spacerWidth := a.width - usedWidth - 6
	if spacerWidth < 2 {
		spacerWidth = 2
	}

	var parts []string
	parts = append(parts, title)
	parts = append(parts, "  "+tabs)
	if stats != "" {
		parts = append(parts, "  "+stats)
	}
	parts = append(parts, strings.Repeat(" ", spacerWidth))
	parts = append(parts, date)

	return strings.Join(parts, "")
}

// renderHelpBar creates the bottom help bar with context-sensitive hints.
func (a *App) renderHelpBar() string {
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}

	// Input mode help
	if a.weeklyPane.IsEditing() {
		return a.styles.RenderHelp(
			"enter", "save",
			"esc", "cancel",
		)
	}

	if a.st.SelectMode {
		return a.styles.RenderHelp(
			"space", "check",
			"ctrl+a", "all",
			"x", "delete",
			"c", "color",
			"v", "done",
		)
	}

	// Normal mode help based on active view
	if a.st.ViewMode == state.ViewGrid {
		return a.styles.RenderHelp(
			"d", "toggle today",
			"j/k", "nav",
			"v", "select",
			"tab", "view",
			"?", "help",
		)
	}
	return a.styles.RenderHelp(
		"a", "add",
		"d", "toggle",
		"h/l", "day",
		"j/k", "nav",
		"tab", "view",
		"?", "help",
	)
}

// SetStatus sets a status message to display to the user.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 5 * time.Second
	if isErr {
		ttl = 8 * time.Second
	}
	a.statusUntil = time.Now().Add(ttl)
}

// Run starts the Bubble Tea program against the given store.
func Run(store *state.Store, styles *Styles, cfg *AppConfig) error {
	app := NewApp(store, styles, cfg)
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Enable mouse support
	)
	_, err := p.Run()
	return err
}
