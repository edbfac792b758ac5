// Package habit defines the habit domain model shared by the state store,
// the persistence layer and import/export.
package habit

import (
	"strings"
	"time"

	"github.com/juju/collections/set"
	"github.com/rs/xid"

	"everyday/internal/dates"
)

// Color is a habit theme color key. The set of keys is closed; anything
// arriving from outside the process goes through ParseColor.
type Color string

// The ten habit colors, in picker order.
const (
	ColorSky      Color = "sky"
	ColorMint     Color = "mint"
	ColorLemon    Color = "lemon"
	ColorPeach    Color = "peach"
	ColorLavender Color = "lavender"
	ColorRose     Color = "rose"
	ColorCoral    Color = "coral"
	ColorTeal     Color = "teal"
	ColorIndigo   Color = "indigo"
	ColorSlate    Color = "slate"
)

// DefaultColor is used for new and seed habits, and as the fallback for
// unknown keys read from stored or imported data.
const DefaultColor = ColorSky

// Colors returns all color keys in picker order.
func Colors() []Color {
	return []Color{
		ColorSky, ColorMint, ColorLemon, ColorPeach, ColorLavender,
		ColorRose, ColorCoral, ColorTeal, ColorIndigo, ColorSlate,
	}
}

// ParseColor maps a raw key to a Color, reporting whether the key is one of
// the known ten. Unknown keys map to DefaultColor.
func ParseColor(raw string) (Color, bool) {
	for _, known := range Colors() {
		if Color(raw) == known {
			return known, true
		}
	}
	return DefaultColor, false
}

// SeedName is the name of the habit synthesized on first run.
const SeedName = "Membaca Buku"

// Untitled is what nameless habits are called at presentation boundaries.
// The stored name itself is never rewritten.
const Untitled = "Untitled"

// Habit is one tracked activity.
type Habit struct {
	// ID is the join key between the habit list and the selection set.
	// Opaque and immutable after creation.
	ID string
	// Name may be empty or whitespace; DisplayName substitutes the
	// placeholder when rendering.
	Name string
	// Color is one of the ten theme keys.
	Color Color
	// CompletedDates holds the date-keys of completed days. The set is
	// unordered; display order always comes from dates.Range, never from
	// iteration over this set.
	CompletedDates set.Strings
	// Notes is free text attached to the habit. Empty means no note.
	Notes string
	// CreatedAt is the creation time in epoch milliseconds, set once.
	CreatedAt int64
}

// NewID returns a fresh opaque habit id. Ids are time-derived and unique
// well beyond the lifetime of a single data set.
func NewID() string {
	return xid.New().String()
}

// New creates a habit with the given name, a fresh id, the default color
// and no completions.
func New(name string, now time.Time) Habit {
	return Habit{
		ID:             NewID(),
		Name:           name,
		Color:          DefaultColor,
		CompletedDates: set.NewStrings(),
		CreatedAt:      now.UnixMilli(),
	}
}

// Seed returns the single habit created when no stored data exists. It
// arrives completed yesterday and today, so the first thing a new user
// sees is a streak in progress.
func Seed(now time.Time) Habit {
	h := New(SeedName, now)
	h.CompletedDates.Add(dates.Key(now.AddDate(0, 0, -1)))
	h.CompletedDates.Add(dates.Key(now))
	return h
}

// DisplayName returns the stored name, or the Untitled placeholder when
// the stored name is empty or whitespace only.
func (h Habit) DisplayName() string {
	if strings.TrimSpace(h.Name) == "" {
		return Untitled
	}
	return h.Name
}

// CompletedOn reports whether the habit was completed on the given
// date-key.
func (h Habit) CompletedOn(key string) bool {
	return h.CompletedDates.Contains(key)
}

// StreakAt returns the number of consecutive completed days ending at the
// day of now. Missing today does not break the streak until tomorrow, so a
// run through yesterday still counts in full.
func (h Habit) StreakAt(now time.Time) int {
	day := now
	if !h.CompletedOn(dates.Key(day)) {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for h.CompletedOn(dates.Key(day)) {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// BestStreak returns the length of the longest run of consecutive completed
// days on record. Date-keys that do not parse are skipped.
func (h Habit) BestStreak() int {
	best, run := 0, 0
	var prev time.Time
	for _, key := range h.CompletedDates.SortedValues() {
		day, err := dates.Parse(key)
		if err != nil {
			continue
		}
		if run > 0 && prev.AddDate(0, 0, 1).Equal(day) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
		prev = day
	}
	return best
}

// Clone returns a copy sharing no mutable state with h. A nil date set is
// normalized to an empty one.
func (h Habit) Clone() Habit {
	c := h
	c.CompletedDates = set.NewStrings(h.CompletedDates.Values()...)
	return c
}

// CloneAll deep-copies a habit list.
func CloneAll(habits []Habit) []Habit {
	if habits == nil {
		return nil
	}
	out := make([]Habit, len(habits))
	for i, h := range habits {
		out[i] = h.Clone()
	}
	return out
}
