// Package ui provides the terminal user interface for the everyday app.
// This file defines key bindings using the Bubble Tea key package for
// type-safe key matching, help text generation, and user customization.
package ui

import (
	"strings"

	"everyday/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// Helpers
// =============================================================================

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// =============================================================================
// Global Keys (available in all contexts)
// =============================================================================

// GlobalKeyMap defines keys available throughout the application.
type GlobalKeyMap struct {
	Quit       key.Binding
	Help       key.Binding
	SwitchView key.Binding
}

// DefaultGlobalKeyMap returns the default global key bindings.
func DefaultGlobalKeyMap() GlobalKeyMap {
	return NewGlobalKeyMap(&config.KeysConfig{})
}

// NewGlobalKeyMap creates global key bindings from config.
func NewGlobalKeyMap(cfg *config.KeysConfig) GlobalKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return GlobalKeyMap{
		Quit: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Quit, "q", "ctrl+c")...),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Help, "?")...),
			key.WithHelp("?", "help"),
		),
		SwitchView: key.NewBinding(
			key.WithKeys(parseKeys(cfg.SwitchView, "tab")...),
			key.WithHelp("tab", "switch view"),
		),
	}
}

// =============================================================================
// Navigation Keys (shared by the weekly and grid views)
// =============================================================================

// NavigationKeyMap defines keys for moving the habit and day cursors.
type NavigationKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
}

// DefaultNavigationKeyMap returns the default navigation key bindings.
func DefaultNavigationKeyMap() NavigationKeyMap {
	return NewNavigationKeyMap(&config.KeysConfig{})
}

// NewNavigationKeyMap creates navigation key bindings from config.
func NewNavigationKeyMap(cfg *config.KeysConfig) NavigationKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return NavigationKeyMap{
		Up: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Up, "k", "up")...),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Down, "j", "down")...),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Left, "h", "left")...),
			key.WithHelp("h/←", "previous day"),
		),
		Right: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Right, "l", "right")...),
			key.WithHelp("l/→", "next day"),
		),
	}
}

// =============================================================================
// Input Keys (shared by text input fields)
// =============================================================================

// InputKeyMap defines keys for text input mode.
type InputKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultInputKeyMap returns the default input key bindings.
func DefaultInputKeyMap() InputKeyMap {
	return NewInputKeyMap(&config.KeysConfig{})
}

// NewInputKeyMap creates input key bindings from config.
func NewInputKeyMap(cfg *config.KeysConfig) InputKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return InputKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Confirm, "enter")...),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Cancel, "esc")...),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// =============================================================================
// Habit Keys
// =============================================================================

// HabitKeyMap defines keys for acting on the habit under the cursor.
type HabitKeyMap struct {
	Add      key.Binding
	Rename   key.Binding
	Toggle   key.Binding
	Delete   key.Binding
	Color    key.Binding
	Note     key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	NavigationKeyMap
}

// DefaultHabitKeyMap returns the default habit key bindings.
func DefaultHabitKeyMap() HabitKeyMap {
	return NewHabitKeyMap(&config.KeysConfig{})
}

// NewHabitKeyMap creates habit key bindings from config.
func NewHabitKeyMap(cfg *config.KeysConfig) HabitKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return HabitKeyMap{
		Add: key.NewBinding(
			key.WithKeys(parseKeys(cfg.AddHabit, "a")...),
			key.WithHelp("a", "add habit"),
		),
		Rename: key.NewBinding(
			key.WithKeys(parseKeys(cfg.RenameHabit, "r")...),
			key.WithHelp("r", "rename"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(parseKeys(cfg.ToggleDone, "d", "enter", " ")...),
			key.WithHelp("d/space", "toggle"),
		),
		Delete: key.NewBinding(
			key.WithKeys(parseKeys(cfg.DeleteHabit, "x")...),
			key.WithHelp("x", "delete"),
		),
		Color: key.NewBinding(
			key.WithKeys(parseKeys(cfg.PickColor, "c")...),
			key.WithHelp("c", "color"),
		),
		Note: key.NewBinding(
			key.WithKeys(parseKeys(cfg.EditNote, "n")...),
			key.WithHelp("n", "note"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys(parseKeys(cfg.MoveUp, "K", "shift+up")...),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys(parseKeys(cfg.MoveDown, "J", "shift+down")...),
			key.WithHelp("J", "move down"),
		),
		NavigationKeyMap: NewNavigationKeyMap(cfg),
	}
}

// ShortHelp returns the short help for habit actions (implements help.KeyMap).
func (k HabitKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.Down}
}

// FullHelp returns the full help for habit actions (implements help.KeyMap).
func (k HabitKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Rename, k.Toggle, k.Delete},
		{k.Color, k.Note, k.MoveUp, k.MoveDown},
		{k.Up, k.Down, k.Left, k.Right},
	}
}

// =============================================================================
// Selection Keys
// =============================================================================

// SelectKeyMap defines keys for bulk selection mode.
type SelectKeyMap struct {
	Mode   key.Binding
	Toggle key.Binding
	All    key.Binding
}

// DefaultSelectKeyMap returns the default selection key bindings.
func DefaultSelectKeyMap() SelectKeyMap {
	return NewSelectKeyMap(&config.KeysConfig{})
}

// NewSelectKeyMap creates selection key bindings from config.
func NewSelectKeyMap(cfg *config.KeysConfig) SelectKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return SelectKeyMap{
		Mode: key.NewBinding(
			key.WithKeys(parseKeys(cfg.SelectMode, "v")...),
			key.WithHelp("v", "select mode"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(parseKeys(cfg.ToggleSelect, " ")...),
			key.WithHelp("space", "check"),
		),
		All: key.NewBinding(
			key.WithKeys(parseKeys(cfg.SelectAll, "ctrl+a")...),
			key.WithHelp("ctrl+a", "select all"),
		),
	}
}

// ShortHelp returns the short help for selection mode (implements help.KeyMap).
func (k SelectKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.All, k.Mode}
}

// FullHelp returns the full help for selection mode (implements help.KeyMap).
func (k SelectKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Mode, k.Toggle, k.All},
	}
}

// =============================================================================
// Help Overlay Keys
// =============================================================================

// HelpKeyMap defines keys for the help overlay.
type HelpKeyMap struct {
	Close key.Binding
}

// DefaultHelpKeyMap returns the default help overlay key bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Close: key.NewBinding(
			key.WithKeys("?", "esc", "q", "enter", " "),
			key.WithHelp("any key", "close"),
		),
	}
}
