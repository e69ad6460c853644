package export

import (
	"encoding/json"
	"io"

	"github.com/iksnae/lap-analyzer/internal"
)

// JSONExporter exports sessions in JSON format (pretty-printed)
type JSONExporter struct{}

type jsonSession struct {
	*internal.StoredSession
	Stats internal.SessionStats `json:"stats"`
}

// Export writes the session row, its laps and the recomputed stats
func (e *JSONExporter) Export(session *internal.StoredSession, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(jsonSession{StoredSession: session, Stats: session.Stats()})
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
