package internal

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

const (
	reportWidth = 50

	msgFileNotFound  = "Error: File not found."
	msgInvalidFormat = "Error: Invalid JSON file format."
	msgUnexpected    = "An unexpected error occurred: %v"
	msgNoLapData     = "No lap data found for the session."
	msgNoValidLaps   = "No valid laps were recorded in the session."
	msgNoDateTime    = "Time:  N/A (Could not extract session date/time)"
	msgNoTheoretical = "Theoretical Best: N/A (Missing Sector Data)"

	// LapHistoryHeader introduces the lap table in reports
	LapHistoryHeader = "LAP HISTORY (Lap | Time | S1 | S2 | S3 | Valid)"
)

var (
	reportRule      = strings.Repeat("=", reportWidth)
	reportSeparator = strings.Repeat("-", reportWidth)
)

// SessionStats holds the aggregates computed over the valid laps of a session
type SessionStats struct {
	TotalLaps     int               `json:"total_laps" yaml:"total_laps"`
	ValidLaps     int               `json:"valid_laps" yaml:"valid_laps"`
	ValidRate     float64           `json:"valid_rate" yaml:"valid_rate"`
	BestLapMs     int64             `json:"best_lap_ms" yaml:"best_lap_ms"`
	AverageLapMs  int64             `json:"average_lap_ms" yaml:"average_lap_ms"`
	SectorBests   [maxSectors]int64 `json:"sector_bests" yaml:"sector_bests"`
	TheoreticalMs int64             `json:"theoretical_ms" yaml:"theoretical_ms"`
	// TheoreticalSectors is 3, 2 for two-sector circuits, or 0 when unavailable
	TheoreticalSectors int `json:"theoretical_sectors" yaml:"theoretical_sectors"`
}

// Analyze reads and analyzes the session file at path. Failures are reported
// in the returned lines; the summary is never nil.
func Analyze(path string) ([]string, *SessionSummary) {
	doc, err := LoadSessionDocument(path)
	if err != nil {
		LogDebug("Failed to load %s: %v", path, err)
		return []string{loadDiagnostic(err)}, NewSessionSummary()
	}
	return AnalyzeDocument(doc)
}

// AnalyzeReader is Analyze for an already opened source such as stdin
func AnalyzeReader(r io.Reader) ([]string, *SessionSummary) {
	doc, err := DecodeSessionDocument(r)
	if err != nil {
		LogDebug("Failed to decode session: %v", err)
		return []string{loadDiagnostic(err)}, NewSessionSummary()
	}
	return AnalyzeDocument(doc)
}

// LoadSessionDocument opens and decodes a session file
func LoadSessionDocument(path string) (*SessionDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %w", ErrSourceNotFound, err)}
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	doc, err := DecodeSessionDocument(f)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return doc, nil
}

func loadDiagnostic(err error) string {
	switch {
	case errors.Is(err, ErrSourceNotFound):
		return msgFileNotFound
	case errors.Is(err, ErrMalformedDocument):
		return msgInvalidFormat
	default:
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			err = loadErr.Err
		}
		return fmt.Sprintf(msgUnexpected, err)
	}
}

// AnalyzeDocument produces the report and summary for a decoded session
func AnalyzeDocument(doc *SessionDocument) ([]string, *SessionSummary) {
	if doc == nil {
		doc = &SessionDocument{}
	}
	summary := NewSessionSummary()
	summary.Document = doc

	if text, ok := doc.QuickDriveText(); ok {
		if ts, ok := TryParseTimestamp(text); ok {
			summary.SessionDateTime = ts
		}
	}

	report := []string{
		reportRule,
		"   ASSETTO CORSA SESSION ANALYSIS   ",
		reportRule,
		fmt.Sprintf("Track: %s", NormalizeName(doc.TrackName())),
		fmt.Sprintf("Car:   %s", NormalizeName(doc.CarName())),
	}
	if summary.HasDateTime() {
		date, clock := SplitTimestamp(summary.SessionDateTime)
		report = append(report, fmt.Sprintf("Date:  %s", date), fmt.Sprintf("Time:  %s", clock))
	} else {
		report = append(report, msgNoDateTime)
	}
	report = append(report, reportSeparator)

	rawLaps := doc.Laps()
	if len(rawLaps) == 0 {
		return append(report, msgNoLapData), summary
	}

	laps := BuildLapRecords(rawLaps)
	summary.AllLaps = laps

	report = append(report, LapHistoryHeader)
	for _, lap := range laps {
		report = append(report, FormatLapRow(lap))
	}

	stats := ComputeStats(laps)
	LogDebug("Analyzed %d lap(s), %d valid", stats.TotalLaps, stats.ValidLaps)
	if stats.ValidLaps == 0 {
		return append(report, reportSeparator, msgNoValidLaps), summary
	}

	report = append(report, reportSeparator)
	report = append(report, FormatStats(stats)...)
	report = append(report, reportSeparator)

	summary.BestLapMs = stats.BestLapMs
	summary.TheoreticalMs = stats.TheoreticalMs

	return report, summary
}

// BuildLapRecords converts every raw lap, valid or not, in input order
func BuildLapRecords(raw []RawLap) []LapRecord {
	laps := make([]LapRecord, 0, len(raw))
	for i, lap := range raw {
		laps = append(laps, NewLapRecord(i+1, lap))
	}
	return laps
}

// ComputeStats aggregates the valid laps. Invalid laps only count towards TotalLaps.
func ComputeStats(laps []LapRecord) SessionStats {
	stats := SessionStats{
		TotalLaps:     len(laps),
		BestLapMs:     NotRecorded,
		AverageLapMs:  NotRecorded,
		TheoreticalMs: NotRecorded,
	}
	for i := range stats.SectorBests {
		stats.SectorBests[i] = NotRecorded
	}

	var total int64
	for _, lap := range laps {
		if !lap.IsValid {
			continue
		}
		stats.ValidLaps++
		total += lap.TimeMs
		if stats.BestLapMs == NotRecorded || lap.TimeMs < stats.BestLapMs {
			stats.BestLapMs = lap.TimeMs
		}
		for i := 0; i < maxSectors; i++ {
			s := lap.Sector(i)
			if s == NotRecorded {
				continue
			}
			if stats.SectorBests[i] == NotRecorded || s < stats.SectorBests[i] {
				stats.SectorBests[i] = s
			}
		}
	}

	if stats.ValidLaps == 0 {
		return stats
	}

	stats.ValidRate = float64(stats.ValidLaps) / float64(stats.TotalLaps) * 100
	stats.AverageLapMs = total / int64(stats.ValidLaps)

	s1, s2, s3 := stats.SectorBests[0], stats.SectorBests[1], stats.SectorBests[2]
	switch {
	case s1 != NotRecorded && s2 != NotRecorded && s3 != NotRecorded:
		stats.TheoreticalMs = s1 + s2 + s3
		stats.TheoreticalSectors = 3
	case s1 != NotRecorded && s2 != NotRecorded:
		stats.TheoreticalMs = s1 + s2
		stats.TheoreticalSectors = 2
	}

	return stats
}

// FormatLapRow renders one line of the lap history table
func FormatLapRow(lap LapRecord) string {
	return fmt.Sprintf("%3d | %-10s | %-8s | %-8s | %-8s | %s",
		lap.LapNumber,
		FormatDuration(lap.TimeMs),
		FormatDuration(lap.Sector(0)),
		FormatDuration(lap.Sector(1)),
		FormatDuration(lap.Sector(2)),
		lap.ValidityTag(),
	)
}

// FormatStats renders the summary block for sessions with at least one valid lap
func FormatStats(stats SessionStats) []string {
	lines := []string{
		fmt.Sprintf("Total Valid Laps: %d", stats.ValidLaps),
		fmt.Sprintf("Validity Rate:    %.1f%%", stats.ValidRate),
		fmt.Sprintf("Best Lap Time:    %s", FormatDuration(stats.BestLapMs)),
		fmt.Sprintf("Average Lap Time: %s", FormatDuration(stats.AverageLapMs)),
	}

	best := stats.SectorBests
	switch stats.TheoreticalSectors {
	case 3:
		lines = append(lines,
			fmt.Sprintf("Theoretical Best: %s", FormatDuration(stats.TheoreticalMs)),
			fmt.Sprintf("    (S1: %s, S2: %s, S3: %s)", FormatDuration(best[0]), FormatDuration(best[1]), FormatDuration(best[2])),
		)
	case 2:
		lines = append(lines,
			fmt.Sprintf("Theoretical Best: %s", FormatDuration(stats.TheoreticalMs)),
			fmt.Sprintf("    (S1: %s, S2: %s)", FormatDuration(best[0]), FormatDuration(best[1])),
		)
	default:
		lines = append(lines, msgNoTheoretical)
	}
	return lines
}

// FormatDuration formats milliseconds as M:SS.mmm. Negative values are "N/A".
func FormatDuration(ms int64) string {
	if ms < 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d:%02d.%03d", ms/60000, (ms/1000)%60, ms%1000)
}
