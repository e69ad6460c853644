package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/lap-analyzer/internal"
)

// Exporter writes a saved session in one output format
type Exporter interface {
	Export(session *internal.StoredSession, w io.Writer) error
	Extension() string
}

// Formats lists the accepted format names
var Formats = []string{"json", "jsonl", "yaml", "md"}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch strings.ToLower(format) {
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "yaml", "yml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %q (supported: %s)", format, strings.Join(Formats, ", "))
	}
}
