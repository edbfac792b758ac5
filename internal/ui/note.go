// Package ui provides the terminal user interface for the everyday app.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// NoteModal is the note editor overlay. It opens when the store's note
// target points at a habit and closes when the target clears, so visibility
// always follows the store.
type NoteModal struct {
	ta        textarea.Model
	habitID   string
	habitName string
	open      bool
	width     int
	height    int
	styles    *Styles
}

// NewNoteModal creates a closed note editor.
func NewNoteModal(styles *Styles) *NoteModal {
	ta := textarea.New()
	ta.Placeholder = "Write a note..."
	ta.CharLimit = 500
	ta.ShowLineNumbers = false
	ta.SetWidth(50)
	ta.SetHeight(6)

	return &NoteModal{
		ta:     ta,
		styles: styles,
	}
}

// Open loads the habit's current note into the editor and focuses it.
func (m *NoteModal) Open(id, name, value string) tea.Cmd {
	m.habitID = id
	m.habitName = name
	m.open = true
	m.ta.SetValue(value)
	m.ta.Focus()
	return textarea.Blink
}

// Close clears and hides the editor.
func (m *NoteModal) Close() {
	m.open = false
	m.habitID = ""
	m.habitName = ""
	m.ta.Reset()
	m.ta.Blur()
}

// IsOpen returns whether the editor is visible.
func (m *NoteModal) IsOpen() bool {
	return m.open
}

// HabitID returns the habit the editor is bound to.
func (m *NoteModal) HabitID() string {
	return m.habitID
}

// Value returns the current editor text.
func (m *NoteModal) Value() string {
	return m.ta.Value()
}

// SetSize sets the available screen area for centering.
func (m *NoteModal) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ta.SetWidth(min(56, max(20, width-12)))
}

// Update forwards messages to the textarea. Save and cancel keys are
// handled by the app before messages reach here.
func (m *NoteModal) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return cmd
}

// View renders the editor centered on screen.
func (m *NoteModal) View() string {
	overlayWidth := 60
	if m.width > 0 {
		overlayWidth = min(60, max(24, m.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.styles.ColorPrimary).
		MarginBottom(1)

	hintStyle := lipgloss.NewStyle().
		Foreground(m.styles.ColorTextMuted)

	name := m.habitName
	if name == "" {
		name = "Habit"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("✎ Note · " + truncateText(name, 40)))
	b.WriteString("\n\n")
	b.WriteString(m.ta.View())
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("[ctrl+s] save    [esc] cancel"))

	content := overlayStyle.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
