// Package config handles configuration loading and defaults for the everyday app.
// Configuration is loaded from XDG-compliant paths (typically ~/.config/everyday/config.yaml).
package config

import (
	"os"
	"path/filepath"
	"strings"

	"everyday/internal/fsutil"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// DataDir overrides the default data directory (~/.everyday)
	DataDir string `yaml:"data_dir,omitempty"`

	// Log configures the diagnostic log
	Log LogConfig `yaml:"log,omitempty"`

	// Theme customizes the visual appearance
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// Keys customizes keyboard shortcuts
	Keys KeysConfig `yaml:"keys,omitempty"`

	// UX customizes user experience settings
	UX UXConfig `yaml:"ux,omitempty"`

	// Notifications configures desktop notifications
	Notifications NotificationConfig `yaml:"notifications,omitempty"`
}

// LogConfig defines diagnostic log settings.
type LogConfig struct {
	// Level is the minimum level written to the log file
	// (trace, debug, info, warn, error)
	Level string `yaml:"level,omitempty"`
}

// NotificationConfig defines desktop notification settings.
type NotificationConfig struct {
	// Enabled enables/disables notifications
	Enabled bool `yaml:"enabled,omitempty"`

	// Reminder is the time for the daily habit reminder (HH:MM format)
	Reminder string `yaml:"reminder,omitempty"`

	// Sound enables notification sounds
	Sound bool `yaml:"sound,omitempty"`
}

// ThemeConfig defines color and style settings.
type ThemeConfig struct {
	// Primary color for focused elements (hex, e.g., "#FF5733")
	Primary string `yaml:"primary,omitempty"`

	// Accent color for highlights (hex)
	Accent string `yaml:"accent,omitempty"`

	// Muted color for secondary text (hex)
	Muted string `yaml:"muted,omitempty"`

	// Background color (hex)
	Background string `yaml:"background,omitempty"`

	// Text color (hex)
	Text string `yaml:"text,omitempty"`

	// HabitColors overrides the hex value rendered for a habit color key
	// (e.g. sky: "#38BDF8"). Unknown keys are ignored.
	HabitColors map[string]string `yaml:"habit_colors,omitempty"`
}

// KeysConfig defines customizable keyboard shortcuts.
// Each field accepts a comma-separated list of key bindings.
// Examples: "q,ctrl+c", "tab", "j,down"
type KeysConfig struct {
	// Global keys
	Quit       string `yaml:"quit,omitempty"`        // default: "q,ctrl+c"
	Help       string `yaml:"help,omitempty"`        // default: "?"
	SwitchView string `yaml:"switch_view,omitempty"` // default: "tab"

	// Navigation keys
	Up    string `yaml:"up,omitempty"`    // default: "k,up"
	Down  string `yaml:"down,omitempty"`  // default: "j,down"
	Left  string `yaml:"left,omitempty"`  // default: "h,left"
	Right string `yaml:"right,omitempty"` // default: "l,right"

	// Habit keys
	AddHabit    string `yaml:"add_habit,omitempty"`    // default: "a"
	RenameHabit string `yaml:"rename_habit,omitempty"` // default: "r"
	ToggleDone  string `yaml:"toggle_done,omitempty"`  // default: "d,enter,space"
	DeleteHabit string `yaml:"delete_habit,omitempty"` // default: "x"
	PickColor   string `yaml:"pick_color,omitempty"`   // default: "c"
	EditNote    string `yaml:"edit_note,omitempty"`    // default: "n"
	MoveUp      string `yaml:"move_up,omitempty"`      // default: "K,shift+up"
	MoveDown    string `yaml:"move_down,omitempty"`    // default: "J,shift+down"

	// Selection keys
	SelectMode   string `yaml:"select_mode,omitempty"`   // default: "v"
	ToggleSelect string `yaml:"toggle_select,omitempty"` // default: "space"
	SelectAll    string `yaml:"select_all,omitempty"`    // default: "ctrl+a"

	// Input keys
	Confirm string `yaml:"confirm,omitempty"` // default: "enter"
	Cancel  string `yaml:"cancel,omitempty"`  // default: "esc"
}

// UXConfig defines user experience settings.
type UXConfig struct {
	// ConfirmDeletions shows confirmation dialogs before deleting habits
	ConfirmDeletions bool `yaml:"confirm_deletions,omitempty"` // default: true

	// ShowStreaks renders streak counters next to habit names
	ShowStreaks bool `yaml:"show_streaks,omitempty"` // default: true
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Log: LogConfig{
			Level: "info",
		},
		Theme: ThemeConfig{
			Primary:    "#8B5CF6", // Violet
			Accent:     "#34D399", // Emerald
			Muted:      "#6B7280", // Gray
			Background: "",        // Terminal default
			Text:       "",        // Terminal default
		},
		Keys: KeysConfig{
			// Defaults are empty strings, which means use built-in defaults
		},
		UX: UXConfig{
			ConfirmDeletions: true,
			ShowStreaks:      true,
		},
		Notifications: NotificationConfig{
			Enabled:  false, // Disabled by default
			Reminder: "",    // No reminder by default
			Sound:    false, // No sound by default
		},
	}
}

// defaultDataDir returns the default data directory path.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".everyday"
	}
	return filepath.Join(home, ".everyday")
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "everyday")
	}

	// Fall back to ~/.config/everyday
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "everyday")
}

// configPath returns the path to the config file.
func configPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from disk, merging with defaults.
// If no config file exists, returns default configuration.
func Load() (*Config, error) {
	cfg := Default()

	path := configPath()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file, use defaults
			return cfg, nil
		}
		return nil, err
	}

	// Parse YAML and merge with defaults
	var userCfg Config
	if err := yaml.Unmarshal(data, &userCfg); err != nil {
		return nil, err
	}

	var doc yaml.Node
	_ = yaml.Unmarshal(data, &doc) // best-effort; fall back to conservative merge if this fails

	// Merge user config with defaults (presence-aware for booleans)
	cfg.mergeFromYAML(&userCfg, &doc)

	return cfg, nil
}

// mergeNonEmpty applies non-empty values from other to c.
// It intentionally does not touch booleans (those require presence-aware merging).
func (c *Config) mergeNonEmpty(other *Config) {
	if other.DataDir != "" {
		c.DataDir = other.DataDir
	}

	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}

	// Theme merging
	if other.Theme.Primary != "" {
		c.Theme.Primary = other.Theme.Primary
	}
	if other.Theme.Accent != "" {
		c.Theme.Accent = other.Theme.Accent
	}
	if other.Theme.Muted != "" {
		c.Theme.Muted = other.Theme.Muted
	}
	if other.Theme.Background != "" {
		c.Theme.Background = other.Theme.Background
	}
	if other.Theme.Text != "" {
		c.Theme.Text = other.Theme.Text
	}
	for key, hex := range other.Theme.HabitColors {
		if hex == "" {
			continue
		}
		if c.Theme.HabitColors == nil {
			c.Theme.HabitColors = make(map[string]string)
		}
		c.Theme.HabitColors[key] = hex
	}

	// Keys merging
	if other.Keys.Quit != "" {
		c.Keys.Quit = other.Keys.Quit
	}
	if other.Keys.Help != "" {
		c.Keys.Help = other.Keys.Help
	}
	if other.Keys.SwitchView != "" {
		c.Keys.SwitchView = other.Keys.SwitchView
	}
	if other.Keys.Up != "" {
		c.Keys.Up = other.Keys.Up
	}
	if other.Keys.Down != "" {
		c.Keys.Down = other.Keys.Down
	}
	if other.Keys.Left != "" {
		c.Keys.Left = other.Keys.Left
	}
	if other.Keys.Right != "" {
		c.Keys.Right = other.Keys.Right
	}
	if other.Keys.AddHabit != "" {
		c.Keys.AddHabit = other.Keys.AddHabit
	}
	if other.Keys.RenameHabit != "" {
		c.Keys.RenameHabit = other.Keys.RenameHabit
	}
	if other.Keys.ToggleDone != "" {
		c.Keys.ToggleDone = other.Keys.ToggleDone
	}
	if other.Keys.DeleteHabit != "" {
		c.Keys.DeleteHabit = other.Keys.DeleteHabit
	}
	if other.Keys.PickColor != "" {
		c.Keys.PickColor = other.Keys.PickColor
	}
	if other.Keys.EditNote != "" {
		c.Keys.EditNote = other.Keys.EditNote
	}
	if other.Keys.MoveUp != "" {
		c.Keys.MoveUp = other.Keys.MoveUp
	}
	if other.Keys.MoveDown != "" {
		c.Keys.MoveDown = other.Keys.MoveDown
	}
	if other.Keys.SelectMode != "" {
		c.Keys.SelectMode = other.Keys.SelectMode
	}
	if other.Keys.ToggleSelect != "" {
		c.Keys.ToggleSelect = other.Keys.ToggleSelect
	}
	if other.Keys.SelectAll != "" {
		c.Keys.SelectAll = other.Keys.SelectAll
	}
	if other.Keys.Confirm != "" {
		c.Keys.Confirm = other.Keys.Confirm
	}
	if other.Keys.Cancel != "" {
		c.Keys.Cancel = other.Keys.Cancel
	}

	// Notifications strings (presence-aware in mergeFromYAML)
	if other.Notifications.Reminder != "" {
		c.Notifications.Reminder = other.Notifications.Reminder
	}
}

func (c *Config) mergeFromYAML(other *Config, doc *yaml.Node) {
	// Fall back to conservative behavior if we can't inspect presence.
	if doc == nil || len(doc.Content) == 0 {
		// Avoid clobbering defaults with zero-values: only apply non-empty strings.
		c.mergeNonEmpty(other)
		return
	}

	// First apply all non-empty string-ish merges.
	c.mergeNonEmpty(other)

	// Now re-apply booleans only when present in YAML.
	if yamlHasPath(doc, "ux", "confirm_deletions") {
		c.UX.ConfirmDeletions = other.UX.ConfirmDeletions
	}
	if yamlHasPath(doc, "ux", "show_streaks") {
		c.UX.ShowStreaks = other.UX.ShowStreaks
	}

	if yamlHasPath(doc, "notifications", "enabled") {
		c.Notifications.Enabled = other.Notifications.Enabled
	}
	if yamlHasPath(doc, "notifications", "sound") {
		c.Notifications.Sound = other.Notifications.Sound
	}
	if yamlHasPath(doc, "notifications", "reminder") {
		c.Notifications.Reminder = other.Notifications.Reminder
	}
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	// Document -> root mapping.
	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			v := n.Content[i+1]
			if k.Kind == yaml.ScalarNode && k.Value == key {
				next = v
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path := configPath()
	if path == "" {
		return nil
	}

	// Create config directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return fsutil.WriteFileAtomic(path, data, 0600)
}

// GetDataDir returns the resolved data directory path.
func (c *Config) GetDataDir() string {
	if c.DataDir != "" {
		// Expand ~ if present
		if c.DataDir == "~" {
			home, err := os.UserHomeDir()
			if err == nil {
				return home
			}
			return c.DataDir
		}

		if strings.HasPrefix(c.DataDir, "~/") || strings.HasPrefix(c.DataDir, `~\`) {
			home, err := os.UserHomeDir()
			if err == nil {
				trimmed := strings.TrimPrefix(c.DataDir, "~/")
				trimmed = strings.TrimPrefix(trimmed, `~\`)
				trimmed = strings.TrimPrefix(trimmed, `\`)
				return filepath.Join(home, trimmed)
			}
		}
		return c.DataDir
	}
	return defaultDataDir()
}
