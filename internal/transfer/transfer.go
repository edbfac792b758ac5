// Package transfer produces and consumes the portable backup document.
//
// The document is independent of the durable storage envelope: it carries
// its own semver-style version string and its own timestamp field. Import
// is a pure validating transform; it never touches the store. The caller
// applies a successful result with SetHabits, all or nothing.
package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/juju/collections/set"

	"everyday/internal/dates"
	"everyday/internal/habit"
	"everyday/internal/storage"
)

// Version is the semver-style tag written to export documents. It is not
// the durable envelope's integer version; the two boundaries are versioned
// independently and stay that way.
const Version = "1.0.0"

// Document is the portable backup file shape.
type Document struct {
	Version    string                `json:"version"`
	ExportedAt string                `json:"exportedAt"`
	Habits     []storage.HabitRecord `json:"habits"`
}

// ParseError reports input that is not valid JSON at all.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("not a valid backup file: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports valid JSON that does not have the backup document
// shape.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "unrecognized backup format: " + e.Reason
}

// ErrEmptyImport is returned when a well-formed document holds no habits.
var ErrEmptyImport = errors.New("backup contains no habits")

// ErrCanceled is returned when the user declines the version-mismatch
// confirmation. It is a cancel, not a failure.
var ErrCanceled = errors.New("import canceled")

// ErrNothingToExport is returned when exporting an empty habit list; no
// file should be produced.
var ErrNothingToExport = errors.New("no habits to export")

// ConfirmFunc answers whether an import whose version does not start with
// "1." may proceed. It runs synchronously from Import's point of view but
// is free to wait on an asynchronous answer (a prompt, a modal) before
// returning.
type ConfirmFunc func(version string) bool

// Export renders the habit list as an indented backup document. An empty
// list yields ErrNothingToExport.
func Export(habits []habit.Habit, now time.Time) ([]byte, error) {
	if len(habits) == 0 {
		return nil, ErrNothingToExport
	}
	doc := Document{
		Version:    Version,
		ExportedAt: now.Format(time.RFC3339),
		Habits:     storage.Serialize(habits),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup document: %w", err)
	}
	return append(data, '\n'), nil
}

// Filename returns the suggested name for an export written on the given
// day, e.g. "everyday-backup-2025-11-23.json".
func Filename(now time.Time) string {
	return fmt.Sprintf("everyday-backup-%s.json", dates.Key(now))
}

// importRecord mirrors storage.HabitRecord with optional fields, so a
// missing field can be told apart from a present empty one.
type importRecord struct {
	ID             *string  `json:"id"`
	Name           *string  `json:"name"`
	Color          *string  `json:"color"`
	CompletedDates []string `json:"completedDates"`
	Notes          *string  `json:"notes"`
	CreatedAt      *int64   `json:"createdAt"`
}

// Import validates raw backup bytes and returns the habit list they hold.
//
// Failure modes, in checking order: *ParseError for broken JSON,
// *SchemaError for JSON without the document shape (including wrongly
// typed fields), ErrCanceled when confirm declines a version outside the
// "1." family (a nil confirm declines everything), and ErrEmptyImport for
// a valid document with zero habits. Missing element fields get defaults:
// the Untitled name, the default color, an empty date set, empty notes,
// now as the creation time and a fresh id.
func Import(raw []byte, confirm ConfirmFunc, now time.Time) ([]habit.Habit, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &SchemaError{Reason: "top level is not an object"}
		}
		return nil, &ParseError{Err: err}
	}
	if top == nil { // JSON null
		return nil, &SchemaError{Reason: "top level is not an object"}
	}

	if rawVersion, ok := top["version"]; ok {
		var version string
		if err := json.Unmarshal(rawVersion, &version); err != nil {
			return nil, &SchemaError{Reason: "version is not a string"}
		}
		if !strings.HasPrefix(version, "1.") {
			if confirm == nil || !confirm(version) {
				return nil, ErrCanceled
			}
		}
	}

	rawHabits, ok := top["habits"]
	if !ok {
		return nil, &SchemaError{Reason: "missing habits array"}
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(rawHabits, &elements); err != nil || elements == nil {
		return nil, &SchemaError{Reason: "habits is not an array"}
	}

	habits := make([]habit.Habit, 0, len(elements))
	for i, el := range elements {
		var rec importRecord
		if err := json.Unmarshal(el, &rec); err != nil {
			return nil, &SchemaError{Reason: fmt.Sprintf("habit %d is malformed", i+1)}
		}
		if string(el) == "null" {
			return nil, &SchemaError{Reason: fmt.Sprintf("habit %d is malformed", i+1)}
		}
		habits = append(habits, fillDefaults(rec, now))
	}
	if len(habits) == 0 {
		return nil, ErrEmptyImport
	}
	return habits, nil
}

// fillDefaults turns one sparse import record into a complete habit.
func fillDefaults(rec importRecord, now time.Time) habit.Habit {
	h := habit.Habit{
		ID:             habit.NewID(),
		Name:           habit.Untitled,
		Color:          habit.DefaultColor,
		CompletedDates: set.NewStrings(),
		CreatedAt:      now.UnixMilli(),
	}
	if rec.ID != nil && *rec.ID != "" {
		h.ID = *rec.ID
	}
	if rec.Name != nil {
		h.Name = *rec.Name
	}
	if rec.Color != nil {
		if c, ok := habit.ParseColor(*rec.Color); ok {
			h.Color = c
		}
	}
	if rec.CompletedDates != nil {
		h.CompletedDates = set.NewStrings(rec.CompletedDates...)
	}
	if rec.Notes != nil {
		h.Notes = *rec.Notes
	}
	if rec.CreatedAt != nil {
		h.CreatedAt = *rec.CreatedAt
	}
	return h
}
