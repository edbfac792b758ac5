package ui

import (
	"everyday/internal/config"
	"everyday/internal/habit"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds all application styles, initialized with theme configuration.
type Styles struct {
	// Colors
	ColorPrimary   lipgloss.Color
	ColorAccent    lipgloss.Color
	ColorMuted     lipgloss.Color
	ColorDanger    lipgloss.Color
	ColorWarning   lipgloss.Color
	ColorSuccess   lipgloss.Color
	ColorBg        lipgloss.Color
	ColorBgLight   lipgloss.Color
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color

	// Component styles
	TitleStyle       lipgloss.Style
	DateStyle        lipgloss.Style
	PaneStyle        lipgloss.Style
	PaneFocusedStyle lipgloss.Style
	PaneTitleStyle   lipgloss.Style

	HabitNameStyle     lipgloss.Style
	HabitUntitledStyle lipgloss.Style
	HabitSelectedStyle lipgloss.Style
	HabitStreakStyle   lipgloss.Style
	NoteMarker         string

	SelectCheckboxOn  string
	SelectCheckboxOff string

	HelpStyle    lipgloss.Style
	HelpKeyStyle lipgloss.Style

	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style

	InputPromptStyle lipgloss.Style
	InputTextStyle   lipgloss.Style

	StatLabelStyle lipgloss.Style
	StatValueStyle lipgloss.Style

	// habitPalette maps the ten habit color keys to terminal colors. The
	// key set is closed; only the hex values are themeable.
	habitPalette map[habit.Color]lipgloss.Color
}

// defaultHabitPalette holds the built-in hex value for each habit color key.
var defaultHabitPalette = map[habit.Color]string{
	habit.ColorSky:      "#7DD3FC",
	habit.ColorMint:     "#6EE7B7",
	habit.ColorLemon:    "#FDE047",
	habit.ColorPeach:    "#FDBA74",
	habit.ColorLavender: "#C4B5FD",
	habit.ColorRose:     "#F9A8D4",
	habit.ColorCoral:    "#FCA5A5",
	habit.ColorTeal:     "#5EEAD4",
	habit.ColorIndigo:   "#A5B4FC",
	habit.ColorSlate:    "#94A3B8",
}

// NewStyles creates a new Styles instance from the given config.
// If a theme color is empty, it uses the appropriate default.
func NewStyles(cfg *config.Config) *Styles {
	return NewStylesFromTheme(&cfg.Theme)
}

// NewStylesFromTheme creates a new Styles instance from a ThemeConfig.
// If a theme color is empty, it uses the appropriate default.
func NewStylesFromTheme(theme *config.ThemeConfig) *Styles {
	s := &Styles{}

	// Initialize colors from config with fallbacks to defaults
	s.ColorPrimary = colorOrDefault(theme.Primary, "#8B5CF6")
	s.ColorAccent = colorOrDefault(theme.Accent, "#34D399")
	s.ColorMuted = colorOrDefault(theme.Muted, "#6B7280")

	// Fixed semantic colors (not configurable from theme)
	s.ColorDanger = lipgloss.Color("#EF4444")
	s.ColorWarning = lipgloss.Color("#F59E0B")
	s.ColorSuccess = lipgloss.Color("#10B981")

	// Background and text colors
	s.ColorBg = colorOrDefault(theme.Background, "#1F2937")
	s.ColorBgLight = lipgloss.Color("#374151")
	s.ColorText = colorOrDefault(theme.Text, "#F9FAFB")
	s.ColorTextMuted = lipgloss.Color("#9CA3AF")

	// Habit palette: built-in hex per key, overridable entry-wise. Unknown
	// override keys are dropped so the key set stays closed.
	s.habitPalette = make(map[habit.Color]lipgloss.Color, len(defaultHabitPalette))
	for key, hex := range defaultHabitPalette {
		s.habitPalette[key] = lipgloss.Color(hex)
	}
	for raw, hex := range theme.HabitColors {
		if hex == "" {
			continue
		}
		if key, ok := habit.ParseColor(raw); ok {
			s.habitPalette[key] = lipgloss.Color(hex)
		}
	}

	// Initialize all component styles
	s.initComponentStyles()

	return s
}

// colorOrDefault returns the lipgloss.Color from hex string, or default if empty.
func colorOrDefault(hex, defaultHex string) lipgloss.Color {
	if hex != "" {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(defaultHex)
}

// HabitColor returns the terminal color for a habit color key. Keys outside
// the closed set fall back to the default key's color.
func (s *Styles) HabitColor(key habit.Color) lipgloss.Color {
	if c, ok := s.habitPalette[key]; ok {
		return c
	}
	return s.habitPalette[habit.DefaultColor]
}

// HabitDot renders the completion dot for one day: a filled dot in the
// habit's color when done, a muted open circle otherwise.
func (s *Styles) HabitDot(key habit.Color, done bool) string {
	if done {
		return lipgloss.NewStyle().Foreground(s.HabitColor(key)).Render("●")
	}
	return lipgloss.NewStyle().Foreground(s.ColorMuted).Render("○")
}

// GridCell renders one day cell of the grid overview.
func (s *Styles) GridCell(key habit.Color, done bool) string {
	if done {
		return lipgloss.NewStyle().Foreground(s.HabitColor(key)).Render("■")
	}
	return lipgloss.NewStyle().Foreground(s.ColorBgLight).Render("·")
}

// initComponentStyles initializes all component styles based on the color palette.
func (s *Styles) initComponentStyles() {
	// Title bar
	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorText).
		Background(s.ColorPrimary).
		Padding(0, 1)

	// Date in title bar
	s.DateStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	// Pane styles
	s.PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorMuted).
		Padding(0, 1)

	s.PaneFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorPrimary).
		Padding(0, 1)

	s.PaneTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorPrimary).
		MarginBottom(1)

	// Habit rows
	s.HabitNameStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	s.HabitUntitledStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted).
		Italic(true)

	s.HabitSelectedStyle = lipgloss.NewStyle().
		Background(s.ColorBgLight).
		Foreground(s.ColorText).
		Bold(true)

	s.HabitStreakStyle = lipgloss.NewStyle().
		Foreground(s.ColorWarning).
		Bold(true)

	s.NoteMarker = lipgloss.NewStyle().Foreground(s.ColorTextMuted).Render("✎")

	// Selection checkboxes
	s.SelectCheckboxOn = lipgloss.NewStyle().Foreground(s.ColorAccent).Render("[x]")
	s.SelectCheckboxOff = lipgloss.NewStyle().Foreground(s.ColorMuted).Render("[ ]")

	// Help bar
	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.HelpKeyStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	// Status messages
	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.ColorSuccess).
		Italic(true)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger).
		Bold(true)

	// Input
	s.InputPromptStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true)

	s.InputTextStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	// Summary stats
	s.StatLabelStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.StatValueStyle = lipgloss.NewStyle().
		Foreground(s.ColorText).
		Bold(true)
}

// RenderHelp renders help text with key bindings using the given styles.
func (s *Styles) RenderHelp(keys ...string) string {
	var result string
	for i := 0; i < len(keys); i += 2 {
		if i > 0 {
			result += "  "
		}
		key := keys[i]
		desc := keys[i+1]
		result += s.HelpKeyStyle.Render("["+key+"]") + " " + s.HelpStyle.Render(desc)
	}
	return result
}
