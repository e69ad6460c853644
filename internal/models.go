package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dimchansky/utfbom"
)

// SessionDocument represents a session log as written by the simulator.
// Every field is optional; defaults are applied by the analyzer.
type SessionDocument struct {
	Track      *string         `json:"track,omitempty" yaml:"track,omitempty"`
	Players    []Player        `json:"players,omitempty" yaml:"players,omitempty"`
	QuickDrive json.RawMessage `json:"__quickDrive,omitempty" yaml:"-"`
	Sessions   []SessionBlock  `json:"sessions,omitempty" yaml:"sessions,omitempty"`
}

// Player represents a driver entry in the session log
type Player struct {
	Name *string `json:"name,omitempty" yaml:"name,omitempty"`
	Car  *string `json:"car,omitempty" yaml:"car,omitempty"`
}

// SessionBlock represents one sub-session (practice, qualifying, ...)
type SessionBlock struct {
	Name *string  `json:"name,omitempty" yaml:"name,omitempty"`
	Laps []RawLap `json:"laps,omitempty" yaml:"laps,omitempty"`
}

// RawLap represents a lap exactly as recorded in the session log
type RawLap struct {
	Time    *float64  `json:"time,omitempty" yaml:"time,omitempty"`
	Sectors []float64 `json:"sectors,omitempty" yaml:"sectors,omitempty"`
	Cuts    *float64  `json:"cuts,omitempty" yaml:"cuts,omitempty"`
}

const (
	DefaultTrack = "Unknown Track"
	DefaultCar   = "Unknown Car"

	// NotRecorded marks a lap or sector time that was not recorded
	NotRecorded int64 = -1

	maxSectors = 3
)

// DecodeSessionDocument decodes a session log, skipping a leading UTF-8 BOM.
// Content that is not a single JSON object yields ErrMalformedDocument.
func DecodeSessionDocument(r io.Reader) (*SessionDocument, error) {
	dec := json.NewDecoder(utfbom.SkipOnly(r))

	var doc SessionDocument
	if err := dec.Decode(&doc); err != nil {
		if isMalformed(err) {
			return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}
		return nil, fmt.Errorf("failed to read session document: %w", err)
	}

	// Trailing content after the document
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil || isMalformed(err) {
			return nil, fmt.Errorf("%w: unexpected data after document", ErrMalformedDocument)
		}
		return nil, fmt.Errorf("failed to read session document: %w", err)
	}

	return &doc, nil
}

func isMalformed(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}

// TrackName returns the raw track identifier or DefaultTrack
func (d *SessionDocument) TrackName() string {
	if d == nil || d.Track == nil {
		return DefaultTrack
	}
	return *d.Track
}

// CarName returns the first player's raw car identifier or DefaultCar
func (d *SessionDocument) CarName() string {
	if d == nil || len(d.Players) == 0 || d.Players[0].Car == nil {
		return DefaultCar
	}
	return *d.Players[0].Car
}

// QuickDriveText returns the embedded quick drive document when the log
// stores it as a string. Any other JSON value is ignored.
func (d *SessionDocument) QuickDriveText() (string, bool) {
	if d == nil || len(d.QuickDrive) == 0 {
		return "", false
	}
	var text string
	if err := json.Unmarshal(d.QuickDrive, &text); err != nil {
		LogDebug("Ignoring non-string quick drive metadata: %v", err)
		return "", false
	}
	return text, true
}

// Laps returns the laps of the first sub-session, or nil if there are none
func (d *SessionDocument) Laps() []RawLap {
	if d == nil || len(d.Sessions) == 0 {
		return nil
	}
	return d.Sessions[0].Laps
}

// LapRecord is the analyzed form of a single lap
type LapRecord struct {
	LapNumber int     `json:"lap_number" yaml:"lap_number"`
	TimeMs    int64   `json:"time_ms" yaml:"time_ms"`
	Sectors   []int64 `json:"sectors" yaml:"sectors"`
	Cuts      int     `json:"cuts" yaml:"cuts"`
	IsValid   bool    `json:"is_valid" yaml:"is_valid"`
}

// NewLapRecord builds the record for the lap at the given 1-based position
func NewLapRecord(lapNumber int, raw RawLap) LapRecord {
	timeMs := NotRecorded
	if raw.Time != nil {
		timeMs = int64(*raw.Time)
	}

	var sectors []int64
	if raw.Sectors == nil {
		sectors = []int64{NotRecorded, NotRecorded, NotRecorded}
	} else {
		n := len(raw.Sectors)
		if n > maxSectors {
			n = maxSectors
		}
		sectors = make([]int64, n)
		for i := 0; i < n; i++ {
			sectors[i] = int64(raw.Sectors[i])
		}
	}

	cuts := 0
	if raw.Cuts != nil {
		cuts = int(*raw.Cuts)
	}

	return LapRecord{
		LapNumber: lapNumber,
		TimeMs:    timeMs,
		Sectors:   sectors,
		Cuts:      cuts,
		IsValid:   IsValidLap(timeMs, cuts),
	}
}

// IsValidLap reports whether a lap counts towards session statistics
func IsValidLap(timeMs int64, cuts int) bool {
	return timeMs > 0 && cuts == 0
}

// Sector returns the recorded time of sector i (0-based), or NotRecorded
func (l LapRecord) Sector(i int) int64 {
	if i < 0 || i >= len(l.Sectors) || l.Sectors[i] <= 0 {
		return NotRecorded
	}
	return l.Sectors[i]
}

// ValidityTag returns the label shown in the Valid column
func (l LapRecord) ValidityTag() string {
	switch {
	case l.IsValid:
		return "YES"
	case l.Cuts > 0:
		return fmt.Sprintf("CUTS (%d)", l.Cuts)
	default:
		return "INVALID"
	}
}

// SessionSummary is the structured result of analyzing one session
type SessionSummary struct {
	BestLapMs       int64            `json:"best_lap_ms" yaml:"best_lap_ms"`
	TheoreticalMs   int64            `json:"theoretical_ms" yaml:"theoretical_ms"`
	AllLaps         []LapRecord      `json:"all_laps" yaml:"all_laps"`
	SessionDateTime string           `json:"session_datetime,omitempty" yaml:"session_datetime,omitempty"`
	Document        *SessionDocument `json:"-" yaml:"-"`
}

// NewSessionSummary returns a summary with sentinel aggregates and no laps
func NewSessionSummary() *SessionSummary {
	return &SessionSummary{
		BestLapMs:     NotRecorded,
		TheoreticalMs: NotRecorded,
		AllLaps:       []LapRecord{},
	}
}

// HasDateTime reports whether a session timestamp was extracted
func (s *SessionSummary) HasDateTime() bool {
	return s.SessionDateTime != ""
}

// CanSave reports whether the summary holds a session worth persisting
func (s *SessionSummary) CanSave() bool {
	return s != nil && s.BestLapMs > 0
}
