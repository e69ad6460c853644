package export

import (
	"io"

	"github.com/iksnae/lap-analyzer/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports sessions in YAML format
type YAMLExporter struct{}

type yamlSession struct {
	Session internal.SessionRow   `yaml:"session"`
	Stats   internal.SessionStats `yaml:"stats"`
	Laps    []internal.LapRecord  `yaml:"laps"`
}

// Export exports a session to YAML format
func (e *YAMLExporter) Export(session *internal.StoredSession, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()

	return enc.Encode(yamlSession{
		Session: session.Session,
		Stats:   session.Stats(),
		Laps:    session.Laps,
	})
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
