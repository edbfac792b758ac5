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
	tea "github.com/charmbracelet/bubbletea"
)

// gridBlockHeight is the rendered height of one habit block: name line,
// seven weekday rows, trailing blank.
const gridBlockHeight = 9

// GridPane shows each habit as an 18-week completion chart. Columns are
// trailing weeks (oldest left), each column runs top to bottom in date
// order and the bottom-right cell is today. The grid is a review surface:
// only navigation and toggling today happen here.
type GridPane struct {
	store   *state.Store
	st      state.State
	cursor  int
	focused bool
	width   int
	height  int
	styles  *Styles

	showStreaks bool
	now         func() time.Time

	// Key bindings
	keys HabitKeyMap
}

// NewGridPane creates a new grid pane.
func NewGridPane(store *state.Store, styles *Styles) *GridPane {
	return NewGridPaneWithKeys(store, styles, &config.KeysConfig{})
}

// NewGridPaneWithKeys creates a new grid pane with custom key bindings.
func NewGridPaneWithKeys(store *state.Store, styles *Styles, keyCfg *config.KeysConfig) *GridPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	return &GridPane{
		store:       store,
		st:          store.State(),
		cursor:      0,
		focused:     false,
		styles:      styles,
		showStreaks: true,
		now:         time.Now,
		keys:        NewHabitKeyMap(keyCfg),
	}
}

// SetNowFunc overrides the clock. Pass nil to restore the real clock.
func (p *GridPane) SetNowFunc(fn func() time.Time) {
	if fn == nil {
		fn = time.Now
	}
	p.now = fn
}

// SetShowStreaks controls whether streak badges render.
func (p *GridPane) SetShowStreaks(show bool) {
	p.showStreaks = show
}

// setState replaces the rendered snapshot and adjusts cursor bounds.
func (p *GridPane) setState(st state.State) {
	p.st = st
	if p.cursor >= len(p.st.Habits) {
		p.cursor = max(0, len(p.st.Habits)-1)
	}
}

// SetSize sets the pane dimensions.
func (p *GridPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets whether this pane is focused.
func (p *GridPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane is focused.
func (p *GridPane) IsFocused() bool {
	return p.focused
}

// CursorHabit returns the habit under the cursor.
func (p *GridPane) CursorHabit() (habit.Habit, bool) {
	if p.cursor < 0 || p.cursor >= len(p.st.Habits) {
		return habit.Habit{}, false
	}
	return p.st.Habits[p.cursor], true
}

// maxBlocks returns how many habit blocks fit in the pane.
func (p *GridPane) maxBlocks() int {
	blocks := (p.height - 5) / gridBlockHeight
	if blocks < 1 {
		blocks = 1
	}
	return blocks
}

// Update handles messages for the grid pane.
func (p *GridPane) Update(msg tea.Msg) tea.Cmd {
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

		case key.Matches(msg, p.keys.Toggle):
			if h, ok := p.CursorHabit(); ok {
				return toggleDateCmd(p.store, h.ID, dates.Key(p.now()))
			}
		}
	}

	return nil
}

// handleMouse processes mouse events for the grid pane.
func (p *GridPane) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if len(p.st.Habits) == 0 {
		return nil
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

		// Content starts after title (1) + separator (1)
		const headerRows = 2

		// Mirror the view windowing logic so clicks map to visible blocks.
		maxBlocks := p.maxBlocks()
		startIdx := 0
		if p.cursor >= maxBlocks {
			startIdx = p.cursor - maxBlocks + 1
		}

		blockRow := (msg.Y - headerRows) / gridBlockHeight
		if blockRow < 0 || blockRow >= maxBlocks {
			return nil
		}

		habitIdx := startIdx + blockRow
		if habitIdx < 0 || habitIdx >= len(p.st.Habits) {
			return nil
		}

		p.cursor = habitIdx
	}

	return nil
}

// View renders the grid pane.
func (p *GridPane) View() string {
	var b strings.Builder

	// Title
	title := p.styles.PaneTitleStyle.Render("🗓️ OVERVIEW")
	b.WriteString(title)
	b.WriteString("\n")

	// Separator
	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(p.styles.StatLabelStyle.Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	if len(p.st.Habits) == 0 {
		b.WriteString("\n")
		b.WriteString(p.styles.StatLabelStyle.Render("  No habits yet."))
		b.WriteString("\n")
		b.WriteString(p.styles.StatLabelStyle.Render("  Switch to the week view and press 'a' to add one."))
		b.WriteString("\n")
	} else {
		maxBlocks := p.maxBlocks()
		startIdx := 0
		if p.cursor >= maxBlocks {
			startIdx = p.cursor - maxBlocks + 1
		}

		days := dates.Range(p.now(), dates.GridSpan)
		todayKey := dates.Key(p.now())

		for i, h := range p.st.Habits {
			if i < startIdx || i >= startIdx+maxBlocks {
				continue
			}
			b.WriteString(p.renderBlock(i, h, days, todayKey))
		}

		// Stats
		done, total := p.Stats()
		b.WriteString("  " + p.styles.StatLabelStyle.Render(fmt.Sprintf("%d/%d done today", done, total)))
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

// renderBlock renders one habit: a name line and the 18x7 cell chart.
func (p *GridPane) renderBlock(i int, h habit.Habit, days []time.Time, todayKey string) string {
	var b strings.Builder

	onCursor := i == p.cursor && p.focused

	// Selection indicator
	prefix := "  "
	if onCursor {
		prefix = "▶ "
	}

	dot := p.styles.HabitDot(h.Color, h.CompletedOn(todayKey))

	name := truncateText(h.DisplayName(), max(8, p.width-20))
	var styledName string
	switch {
	case strings.TrimSpace(h.Name) == "":
		styledName = p.styles.HabitUntitledStyle.Render(name)
	case onCursor:
		styledName = p.styles.HabitSelectedStyle.Render(name)
	default:
		styledName = p.styles.HabitNameStyle.Render(name)
	}

	line := fmt.Sprintf(" %s%s %s", prefix, dot, styledName)
	if h.Notes != "" {
		line += " " + p.styles.NoteMarker
	}
	if p.showStreaks {
		if streak := h.StreakAt(p.now()); streak > 1 {
			line += " " + p.styles.HabitStreakStyle.Render(fmt.Sprintf("🔥%d", streak))
		}
	}
	b.WriteString(line)
	b.WriteString("\n")

	// One row per weekday, one column per trailing week. Cell (r, w) maps
	// to days[w*7+r], so the bottom-right cell is today.
	for r := 0; r < dates.WeekSpan; r++ {
		b.WriteString("   ")
		for w := 0; w < dates.GridWeeks; w++ {
			day := days[w*dates.WeekSpan+r]
			b.WriteString(p.styles.GridCell(h.Color, h.CompletedOn(dates.Key(day))))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	return b.String()
}

// Stats returns how many habits are done today.
func (p *GridPane) Stats() (done, total int) {
	todayKey := dates.Key(p.now())
	for _, h := range p.st.Habits {
		if h.CompletedOn(todayKey) {
			done++
		}
	}
	return done, len(p.st.Habits)
}
