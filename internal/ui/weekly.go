// Package ui provides the terminal user interface for the everyday app.
package ui

import (
	"fmt"
	"strings"
	"time"

	"everyday/internal/config"
	"everyday/internal/dates"
	"everyday/internal/habit"
	"everyday/internal/state"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// editState tracks which text-input flow the weekly pane is in.
type editState int

const (
	editNone editState = iota
	editAdd
	editRename
)

// dayCellWidth is the rendered width of one day cell, " ● " or "[●]".
const dayCellWidth = 3

// WeeklyPane shows every habit as a row with the trailing week as toggleable
// day cells. It is the main editing surface: adding, renaming, reordering and
// toggling all happen here.
type WeeklyPane struct {
	store     *state.Store
	st        state.State
	cursor    int
	dayCursor int
	focused   bool
	width     int
	height    int
	editing   editState
	renameID  string
	input     textinput.Model
	styles    *Styles

	showStreaks bool
	now         func() time.Time

	// Key bindings
	keys      HabitKeyMap
	inputKeys InputKeyMap
}

// NewWeeklyPane creates a new weekly pane.
func NewWeeklyPane(store *state.Store, styles *Styles) *WeeklyPane {
	return NewWeeklyPaneWithKeys(store, styles, &config.KeysConfig{})
}

// NewWeeklyPaneWithKeys creates a new weekly pane with custom key bindings.
func NewWeeklyPaneWithKeys(store *state.Store, styles *Styles, keyCfg *config.KeysConfig) *WeeklyPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	ti := textinput.New()
	ti.Placeholder = "Habit name (e.g., Exercise)"
	ti.CharLimit = 60
	ti.Width = 30

	return &WeeklyPane{
		store:       store,
		st:          store.State(),
		cursor:      0,
		dayCursor:   dates.WeekSpan - 1, // today
		focused:     true,
		input:       ti,
		styles:      styles,
		showStreaks: true,
		now:         time.Now,
		keys:        NewHabitKeyMap(keyCfg),
		inputKeys:   NewInputKeyMap(keyCfg),
	}
}

// SetNowFunc overrides the clock. Pass nil to restore the real clock.
func (p *WeeklyPane) SetNowFunc(fn func() time.Time) {
	if fn == nil {
		fn = time.Now
	}
	p.now = fn
}

// SetShowStreaks controls whether streak badges render.
func (p *WeeklyPane) SetShowStreaks(show bool) {
	p.showStreaks = show
}

// setState replaces the rendered snapshot and adjusts cursor bounds.
func (p *WeeklyPane) setState(st state.State) {
	p.st = st
	if p.cursor >= len(p.st.Habits) {
		p.cursor = max(0, len(p.st.Habits)-1)
	}
}

// SetSize sets the pane dimensions.
func (p *WeeklyPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(10, width-6)
}

// SetFocused sets whether this pane is focused.
func (p *WeeklyPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane is focused.
func (p *WeeklyPane) IsFocused() bool {
	return p.focused
}

// IsEditing returns whether a name input is open.
func (p *WeeklyPane) IsEditing() bool {
	return p.editing != editNone
}

// CursorHabit returns the habit under the cursor.
func (p *WeeklyPane) CursorHabit() (habit.Habit, bool) {
	if p.cursor < 0 || p.cursor >= len(p.st.Habits) {
		return habit.Habit{}, false
	}
	return p.st.Habits[p.cursor], true
}

// Update handles messages for the weekly pane.
func (p *WeeklyPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	// If a name input is open, handle it first
	if p.editing != editNone {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch {
			case key.Matches(msg, p.inputKeys.Confirm):
				// The value is stored as typed; an empty name is legal
				// and renders as the untitled placeholder.
				name := p.input.Value()
				mode := p.editing
				renameID := p.renameID
				p.resetEditMode()
				if mode == editAdd {
					return addHabitCmd(p.store, name, p.now())
				}
				return renameHabitCmd(p.store, renameID, name)

			case key.Matches(msg, p.inputKeys.Cancel):
				p.resetEditMode()
				return nil
			}
		}

		p.input, cmd = p.input.Update(msg)
		return cmd
	}

	// Normal mode
	if !p.focused {
		return nil
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return p.handleMouse(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Down):
			if len(p.st.Habits) > 0 {
				p.cursor = min(p.cursor+1, len(p.st.Habits)-1)
			}

		case key.Matches(msg, p.keys.Up):
			if len(p.st.Habits) > 0 {
				p.cursor = max(p.cursor-1, 0)
			}

		case key.Matches(msg, p.keys.Left):
			p.dayCursor = max(p.dayCursor-1, 0)

		case key.Matches(msg, p.keys.Right):
			p.dayCursor = min(p.dayCursor+1, dates.WeekSpan-1)

		case key.Matches(msg, p.keys.Add):
			p.editing = editAdd
			p.input.Placeholder = "Habit name (e.g., Exercise)"
			p.input.Focus()
			return textinput.Blink

		case key.Matches(msg, p.keys.Rename):
			if h, ok := p.CursorHabit(); ok {
				p.editing = editRename
				p.renameID = h.ID
				p.input.Placeholder = "New name"
				p.input.SetValue(h.Name)
				p.input.CursorEnd()
				p.input.Focus()
				return textinput.Blink
			}

		case key.Matches(msg, p.keys.Toggle):
			if h, ok := p.CursorHabit(); ok {
				day := p.week()[p.dayCursor]
				return toggleDateCmd(p.store, h.ID, dates.Key(day))
			}

		case key.Matches(msg, p.keys.MoveUp):
			if p.cursor > 0 {
				ids := p.habitIDs()
				ids[p.cursor], ids[p.cursor-1] = ids[p.cursor-1], ids[p.cursor]
				p.cursor--
				return reorderCmd(p.store, ids)
			}

		case key.Matches(msg, p.keys.MoveDown):
			if len(p.st.Habits) > 0 && p.cursor < len(p.st.Habits)-1 {
				ids := p.habitIDs()
				ids[p.cursor], ids[p.cursor+1] = ids[p.cursor+1], ids[p.cursor]
				p.cursor++
				return reorderCmd(p.store, ids)
			}
		}
	}

	return nil
}

// resetEditMode resets the name input state.
func (p *WeeklyPane) resetEditMode() {
	p.editing = editNone
	p.renameID = ""
	p.input.Reset()
	p.input.Placeholder = "Habit name (e.g., Exercise)"
}

// week returns the trailing week, oldest first, ending today.
func (p *WeeklyPane) week() []time.Time {
	return dates.Range(p.now(), dates.WeekSpan)
}

// habitIDs returns the habit ids in list order.
func (p *WeeklyPane) habitIDs() []string {
	ids := make([]string, len(p.st.Habits))
	for i, h := range p.st.Habits {
		ids[i] = h.ID
	}
	return ids
}

// prefixWidth returns the rendered width of everything left of the name
// column: leading space, cursor marker, optional select checkbox, color dot.
func (p *WeeklyPane) prefixWidth() int {
	w := 1 + 2 + 2
	if p.st.SelectMode {
		w += 4
	}
	return w
}

// nameColWidth returns the width of the name column. The day region keeps a
// fixed width so the cells line up under the day header.
func (p *WeeklyPane) nameColWidth() int {
	dayRegion := dates.WeekSpan * dayCellWidth
	w := p.width - 4 - p.prefixWidth() - 2 - dayRegion - 6
	if w < 8 {
		w = 8
	}
	return w
}

// maxRows returns how many habit rows fit in the pane.
func (p *WeeklyPane) maxRows() int {
	rows := p.height - 7 // Account for title, separator, day header, stats, input
	if rows < 3 {
		rows = 5
	}
	return rows
}

// handleMouse processes mouse events for the weekly pane.
func (p *WeeklyPane) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if len(p.st.Habits) == 0 {
		return nil
	}

	// Content starts after title (1) + separator (1) + day header (1)
	const headerRows = 3

	// Mirror the view windowing logic so clicks map to the visible slice.
	maxRows := p.maxRows()
	startIdx := 0
	if p.cursor >= maxRows {
		startIdx = p.cursor - maxRows + 1
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		p.cursor = max(p.cursor-1, 0)
		return nil

	case tea.MouseButtonWheelDown:
		p.cursor = min(p.cursor+1, len(p.st.Habits)-1)
		return nil

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}

		// Calculate which habit was clicked
		habitRow := msg.Y - headerRows
		if habitRow < 0 || habitRow >= maxRows {
			return nil
		}

		habitIdx := startIdx + habitRow
		if habitIdx < 0 || habitIdx >= len(p.st.Habits) {
			return nil
		}

		// Move cursor to clicked habit
		p.cursor = habitIdx
		h := p.st.Habits[habitIdx]

		// Click on a day cell toggles that day
		dayStartX := p.prefixWidth() + p.nameColWidth() + 2
		if msg.X >= dayStartX {
			dayIdx := (msg.X - dayStartX) / dayCellWidth
			if dayIdx >= 0 && dayIdx < dates.WeekSpan {
				p.dayCursor = dayIdx
				day := p.week()[dayIdx]
				return toggleDateCmd(p.store, h.ID, dates.Key(day))
			}
			return nil
		}

		// Click on the leading checkbox/dot area
		if msg.X < p.prefixWidth() {
			if p.st.SelectMode {
				return toggleSelectedCmd(p.store, h.ID)
			}
			return toggleDateCmd(p.store, h.ID, dates.Key(p.now()))
		}
	}

	return nil
}

// View renders the weekly pane.
func (p *WeeklyPane) View() string {
	var b strings.Builder

	// Title
	title := p.styles.PaneTitleStyle.Render("📅 THIS WEEK")
	b.WriteString(title)
	b.WriteString("\n")

	// Separator
	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(p.styleMutedText(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	// Day header, aligned over the day cells
	b.WriteString(p.renderDayHeader())
	b.WriteString("\n")

	// Habit rows
	if len(p.st.Habits) == 0 && p.editing == editNone {
		b.WriteString("\n")
		b.WriteString(p.styleMutedText("  No habits yet."))
		b.WriteString("\n")
		b.WriteString(p.styleMutedText("  Press 'a' to add one."))
		b.WriteString("\n")
	} else {
		maxRows := p.maxRows()
		startIdx := 0
		if p.cursor >= maxRows {
			startIdx = p.cursor - maxRows + 1
		}

		todayKey := dates.Key(p.now())
		week := p.week()

		for i, h := range p.st.Habits {
			if i < startIdx || i >= startIdx+maxRows {
				continue
			}
			b.WriteString(p.renderRow(i, h, week, todayKey))
			b.WriteString("\n")
		}

		// Stats
		done, total := p.Stats()
		b.WriteString("\n")
		stats := fmt.Sprintf("%d/%d done today", done, total)
		if p.st.SelectMode {
			stats += fmt.Sprintf(" · %d selected", p.st.SelectedHabitIDs.Size())
		}
		b.WriteString("  " + p.styles.StatLabelStyle.Render(stats))
		b.WriteString("\n")
	}

	// Input field when adding or renaming
	if p.editing != editNone {
		b.WriteString("\n")
		prompt := p.styles.InputPromptStyle.Render("Name: ")
		b.WriteString("  " + prompt + p.input.View())
		b.WriteString("\n")
	}

	// Apply pane style
	content := b.String()
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}

	return style.Width(p.width).Height(p.height).Render(content)
}

// renderDayHeader renders two-letter day labels over the day cells, with
// today highlighted.
func (p *WeeklyPane) renderDayHeader() string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", p.prefixWidth()+p.nameColWidth()+2))
	week := p.week()
	for i, day := range week {
		label := fmt.Sprintf("%-*s", dayCellWidth, day.Format("Mon")[:2])
		if i == len(week)-1 {
			b.WriteString(p.styles.StatValueStyle.Render(label))
		} else {
			b.WriteString(p.styles.StatLabelStyle.Render(label))
		}
	}
	return b.String()
}

// renderRow renders one habit row: marker, checkbox, dot, name, badges and
// the seven day cells.
func (p *WeeklyPane) renderRow(i int, h habit.Habit, week []time.Time, todayKey string) string {
	onCursor := i == p.cursor && p.focused && p.editing == editNone

	// Selection indicator
	prefix := "  "
	if onCursor {
		prefix = "▶ "
	}

	// Select mode checkbox
	checkbox := ""
	if p.st.SelectMode {
		if p.st.SelectedHabitIDs.Contains(h.ID) {
			checkbox = p.styles.SelectCheckboxOn + " "
		} else {
			checkbox = p.styles.SelectCheckboxOff + " "
		}
	}

	// Color dot shows today's completion at a glance
	dot := p.styles.HabitDot(h.Color, h.CompletedOn(todayKey))

	// Name column: truncate, style, pad so the day cells line up
	nameW := p.nameColWidth()
	badgeW := 0
	if h.Notes != "" {
		badgeW += 2
	}
	name := runewidth.Truncate(h.DisplayName(), nameW-badgeW, "..")
	pad := nameW - runewidth.StringWidth(name) - badgeW
	if pad < 0 {
		pad = 0
	}

	var styledName string
	switch {
	case strings.TrimSpace(h.Name) == "":
		styledName = p.styles.HabitUntitledStyle.Render(name)
	case onCursor:
		styledName = p.styles.HabitSelectedStyle.Render(name)
	default:
		styledName = p.styles.HabitNameStyle.Render(name)
	}
	if h.Notes != "" {
		styledName += " " + p.styles.NoteMarker
	}
	styledName += strings.Repeat(" ", pad)

	// Day cells
	var cells strings.Builder
	weekCount := 0
	for d, day := range week {
		done := h.CompletedOn(dates.Key(day))
		if done {
			weekCount++
		}
		cell := p.styles.HabitDot(h.Color, done)
		if onCursor && d == p.dayCursor {
			cells.WriteString("[" + cell + "]")
		} else {
			cells.WriteString(" " + cell + " ")
		}
	}

	line := fmt.Sprintf(" %s%s%s %s  %s %s", prefix, checkbox, dot, styledName, cells.String(), p.styles.StatLabelStyle.Render(fmt.Sprintf("%d/7", weekCount)))

	// Streak (if > 1)
	if p.showStreaks {
		if streak := h.StreakAt(p.now()); streak > 1 {
			line += " " + p.styles.HabitStreakStyle.Render(fmt.Sprintf("🔥%d", streak))
		}
	}

	return line
}

// styleMutedText applies muted style to text.
func (p *WeeklyPane) styleMutedText(s string) string {
	return p.styles.StatLabelStyle.Render(s)
}

// Stats returns how many habits are done today.
func (p *WeeklyPane) Stats() (done, total int) {
	todayKey := dates.Key(p.now())
	for _, h := range p.st.Habits {
		if h.CompletedOn(todayKey) {
			done++
		}
	}
	return done, len(p.st.Habits)
}

// truncateText truncates text to maxLen, appending ".." when cut.
func truncateText(text string, maxLen int) string {
	return runewidth.Truncate(text, maxLen, "..")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
