// Package logging builds the charmbracelet/log loggers shared by the CLI,
// the terminal UI and the SSH server.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// stateRel is the log file location relative to $XDG_STATE_HOME.
const stateRel = "flappy/flappy.log"

// Options configures a logger.
type Options struct {
	Level  log.Level
	Writer io.Writer // Defaults to os.Stderr
	Prefix string
	JSON   bool
}

// New creates a logger with timestamps enabled.
func New(opts Options) *log.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	o := log.Options{
		Level:           opts.Level,
		Prefix:          opts.Prefix,
		ReportTimestamp: true,
	}
	if opts.JSON {
		o.Formatter = log.JSONFormatter
	}
	return log.NewWithOptions(w, o)
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// ParseLevel converts a CLI level name ("debug", "info", ...) to a level.
func ParseLevel(s string) (log.Level, error) {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("logging: %w", err)
	}
	return lvl, nil
}

// DefaultLogPath returns $XDG_STATE_HOME/flappy/flappy.log, creating the
// parent directory.
func DefaultLogPath() (string, error) {
	path, err := xdg.StateFile(stateRel)
	if err != nil {
		return "", fmt.Errorf("logging: cannot resolve log path: %w", err)
	}
	return path, nil
}

// OpenFile opens path for appending, or the default log path when path is
// empty. The terminal UI owns the screen, so it logs here instead of stderr.
func OpenFile(path string) (*os.File, error) {
	if path == "" {
		p, err := DefaultLogPath()
		if err != nil {
			return nil, err
		}
		path = p
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: cannot create directory for %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("logging: cannot open %s: %w", path, err)
	}
	return f, nil
}
