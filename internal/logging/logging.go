// Package logging sets up the file-backed diagnostic log.
//
// The TUI owns the terminal, so nothing may print to stdout or stderr
// while it runs. Absorbed storage failures, recovery notices and stale-id
// diagnostics all go to a log file in the data directory instead.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// FileName is the log file created inside the data directory.
const FileName = "everyday.log"

const logFilePerm os.FileMode = 0600

// Open appends to the log file in dataDir, filtering below the given
// level. An empty or unknown level means info. The caller closes the
// returned closer on shutdown; on error the returned logger is a no-op
// and there is nothing to close.
func Open(dataDir, level string) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log directory: %w", err)
	}
	path := filepath.Join(dataDir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, logFilePerm)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	logger := zerolog.New(f).Level(parseLevel(level)).With().Timestamp().Logger()
	return logger, f, nil
}

func parseLevel(raw string) zerolog.Level {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(raw)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
