// Package storage persists the habit list as a single versioned JSON file
// in the data directory. Writes are best-effort: failures are logged and
// absorbed, because in-memory state stays authoritative for the running
// session. Reads never fail either; anything unreadable just means "no
// stored data".
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/juju/collections/set"
	"github.com/rs/zerolog"

	"everyday/internal/fsutil"
	"everyday/internal/habit"
	"everyday/internal/state"
)

const (
	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600

	// DataFile is the fixed name of the durable habit envelope.
	DataFile = "habits.json"

	// EnvelopeVersion is the integer version of the durable envelope. It
	// is independent of the export document's semver string; the two are
	// versioned separately and must not be conflated.
	EnvelopeVersion = 1
)

// HabitRecord is the wire form of one habit, shared by the durable
// envelope and the export document.
type HabitRecord struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Color          string   `json:"color"`
	CompletedDates []string `json:"completedDates"`
	Notes          string   `json:"notes"`
	CreatedAt      int64    `json:"createdAt"`
}

// envelope wraps the habit records in the durable file.
type envelope struct {
	Version   int           `json:"version"`
	Habits    []HabitRecord `json:"habits"`
	Timestamp string        `json:"timestamp"`
}

// Storage reads and writes the durable habit file.
type Storage struct {
	dataDir string
	path    string
	log     zerolog.Logger
	now     func() time.Time // injectable clock for deterministic tests
}

// New creates a Storage rooted at dataDir, creating the directory if
// needed. Diagnostics go to log; pass zerolog.Nop() to discard them.
func New(dataDir string, log zerolog.Logger) (*Storage, error) {
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Storage{
		dataDir: dataDir,
		path:    filepath.Join(dataDir, DataFile),
		log:     log,
		now:     time.Now,
	}, nil
}

// SetNowFunc overrides the clock used for envelope timestamps and the seed
// habit. Passing nil resets it to time.Now.
func (s *Storage) SetNowFunc(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// Now returns the current time according to the storage clock.
func (s *Storage) Now() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// DataDir returns the path to the data directory.
func (s *Storage) DataDir() string {
	return s.dataDir
}

// Path returns the full path of the durable habit file.
func (s *Storage) Path() string {
	return s.path
}

// Serialize converts habits to their wire records. Date sets become sorted
// arrays; the sorting keeps files diffable but array order is not part of
// the contract.
func Serialize(habits []habit.Habit) []HabitRecord {
	records := make([]HabitRecord, len(habits))
	for i, h := range habits {
		records[i] = HabitRecord{
			ID:             h.ID,
			Name:           h.Name,
			Color:          string(h.Color),
			CompletedDates: h.CompletedDates.SortedValues(),
			Notes:          h.Notes,
			CreatedAt:      h.CreatedAt,
		}
	}
	return records
}

// Deserialize converts wire records back to habits. A missing date array
// becomes an empty set, and unknown color keys are normalized to the
// default so the closed color set survives hand-edited files.
func Deserialize(records []HabitRecord) []habit.Habit {
	habits := make([]habit.Habit, len(records))
	for i, rec := range records {
		color, _ := habit.ParseColor(rec.Color)
		habits[i] = habit.Habit{
			ID:             rec.ID,
			Name:           rec.Name,
			Color:          color,
			CompletedDates: set.NewStrings(rec.CompletedDates...),
			Notes:          rec.Notes,
			CreatedAt:      rec.CreatedAt,
		}
	}
	return habits
}

// Save writes the habit list to the durable file inside the versioned
// envelope. Save never returns an error: a failed write is logged and the
// session continues on in-memory state.
func (s *Storage) Save(habits []habit.Habit) {
	env := envelope{
		Version:   EnvelopeVersion,
		Habits:    Serialize(habits),
		Timestamp: s.Now().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		s.log.Warn().Err(err).Msg("encode habits failed, keeping in-memory state")
		return
	}
	fsutil.BestEffortBackup(s.path, dataFilePerm)
	if err := fsutil.WriteFileAtomic(s.path, data, dataFilePerm); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("write habits failed, keeping in-memory state")
	}
}

// Load reads the durable file. The boolean is false when the file is
// absent, unreadable, unparsable or missing a habits array; Load never
// returns an error. A corrupt primary file is recovered from its .bak
// copy when possible.
func (s *Storage) Load() ([]habit.Habit, bool) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, false
	}
	if err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("read habits failed")
		return nil, false
	}

	records, ok := decodeEnvelope(data)
	if !ok {
		records, ok = s.recoverFromBackup()
		if !ok {
			return nil, false
		}
	}
	return Deserialize(records), true
}

// decodeEnvelope parses and structurally validates envelope bytes. A
// top-level non-object, unparsable JSON, or a missing or non-array habits
// field all fail validation. Unknown extra fields are ignored.
func decodeEnvelope(data []byte) ([]HabitRecord, bool) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, false
	}
	if env.Habits == nil {
		return nil, false
	}
	return env.Habits, true
}

// recoverFromBackup sets the corrupt primary file aside and restores the
// .bak copy when that copy still parses.
func (s *Storage) recoverFromBackup() ([]HabitRecord, bool) {
	bakData, err := os.ReadFile(s.path + ".bak")
	if err != nil {
		s.log.Warn().Str("path", s.path).Msg("habit file corrupt and no usable backup")
		return nil, false
	}
	records, ok := decodeEnvelope(bakData)
	if !ok {
		s.log.Warn().Str("path", s.path).Msg("habit file and backup both corrupt")
		return nil, false
	}

	aside := fmt.Sprintf("%s.corrupt.%d", s.path, s.Now().Unix())
	if err := os.Rename(s.path, aside); err != nil {
		s.log.Warn().Err(err).Msg("could not set corrupt habit file aside")
	}
	if err := fsutil.WriteFileAtomic(s.path, bakData, dataFilePerm); err != nil {
		s.log.Warn().Err(err).Msg("could not restore habit backup")
	}
	s.log.Warn().Str("saved_as", aside).Msg("recovered habits from backup copy")
	return records, true
}

// Bootstrap fills the store from durable storage, or seeds it on first
// run. Runs once at startup, before the first render.
func (s *Storage) Bootstrap(st *state.Store) {
	if habits, ok := s.Load(); ok && len(habits) > 0 {
		st.SetHabits(habits)
		return
	}
	seed := habit.Seed(s.Now())
	st.SetHabits([]habit.Habit{seed})
	s.Save([]habit.Habit{seed})
}

// AutoSync subscribes to the store and mirrors every settled state to the
// durable file. This commit event is the only thing that calls Save during
// normal operation. The returned cancel stops the mirroring.
func (s *Storage) AutoSync(st *state.Store) (cancel func()) {
	return st.Subscribe(func(snap state.State) {
		s.Save(snap.Habits)
	})
}
