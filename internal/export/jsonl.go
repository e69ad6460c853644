package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/lap-analyzer/internal"
)

// JSONLExporter exports sessions in JSONL format (one lap per line)
type JSONLExporter struct{}

type jsonlLap struct {
	SessionID int64  `json:"session_id"`
	Car       string `json:"car"`
	Track     string `json:"track"`
	internal.LapRecord
	Time string `json:"time"`
}

// Export writes one line per lap, each carrying its session context
func (e *JSONLExporter) Export(session *internal.StoredSession, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, lap := range session.Laps {
		line := jsonlLap{
			SessionID: session.Session.ID,
			Car:       session.Session.CarModel,
			Track:     session.Session.TrackName,
			LapRecord: lap,
			Time:      internal.FormatDuration(lap.TimeMs),
		}
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("failed to encode lap %d: %w", lap.LapNumber, err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
