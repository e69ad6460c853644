package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceNotFound is returned when the session file does not exist
	ErrSourceNotFound = errors.New("source not found")
	// ErrMalformedDocument is returned when the session file is not valid JSON
	ErrMalformedDocument = errors.New("malformed document")
	// ErrNoLapData is returned when a session contains no laps
	ErrNoLapData = errors.New("no lap data")
	// ErrNoValidLaps is returned when no lap satisfies the validity rule
	ErrNoValidLaps = errors.New("no valid laps")
	// ErrSessionNotFound is returned by the store for unknown session ids
	ErrSessionNotFound = errors.New("session not found")
	// ErrNothingToSave is returned when a summary has no valid best lap
	ErrNothingToSave = errors.New("no valid session data to save")
)

// LoadError represents errors acquiring or parsing a session file
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load error %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// StoreError represents errors accessing the session database
type StoreError struct {
	Op  string // "open", "migrate", "insert", "query", "delete"
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
