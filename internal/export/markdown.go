package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/lap-analyzer/internal"
)

// MarkdownExporter exports sessions in Markdown format
type MarkdownExporter struct{}

// Export exports a session to Markdown format
func (e *MarkdownExporter) Export(session *internal.StoredSession, w io.Writer) error {
	row := session.Session
	stats := session.Stats()

	_, _ = fmt.Fprintf(w, "# Session %d\n\n", row.ID)
	_, _ = fmt.Fprintf(w, "**Track:** %s  \n", escapeMarkdown(row.TrackName))
	_, _ = fmt.Fprintf(w, "**Car:** %s  \n", escapeMarkdown(row.CarModel))
	_, _ = fmt.Fprintf(w, "**Date:** %s\n\n", strings.Replace(row.DateTime, "T", " ", 1))

	_, _ = fmt.Fprintf(w, "## Laps\n\n")
	if len(session.Laps) == 0 {
		_, _ = fmt.Fprintf(w, "No lap data found for the session.\n\n")
	} else {
		_, _ = fmt.Fprintf(w, "| Lap | Time | S1 | S2 | S3 | Valid |\n")
		_, _ = fmt.Fprintf(w, "|----:|------|----|----|----|-------|\n")
		for _, lap := range session.Laps {
			_, _ = fmt.Fprintf(w, "| %d | %s | %s | %s | %s | %s |\n",
				lap.LapNumber,
				internal.FormatDuration(lap.TimeMs),
				internal.FormatDuration(lap.Sector(0)),
				internal.FormatDuration(lap.Sector(1)),
				internal.FormatDuration(lap.Sector(2)),
				lap.ValidityTag())
		}
		_, _ = fmt.Fprintf(w, "\n")
	}

	_, _ = fmt.Fprintf(w, "## Summary\n\n")
	if stats.ValidLaps == 0 {
		_, _ = fmt.Fprintf(w, "No valid laps were recorded in the session.\n")
		return nil
	}
	_, _ = fmt.Fprintf(w, "- **Valid laps:** %d of %d (%.1f%%)\n", stats.ValidLaps, stats.TotalLaps, stats.ValidRate)
	_, _ = fmt.Fprintf(w, "- **Best lap:** %s\n", internal.FormatDuration(row.BestLapMs))
	_, _ = fmt.Fprintf(w, "- **Average lap:** %s\n", internal.FormatDuration(stats.AverageLapMs))
	_, _ = fmt.Fprintf(w, "- **Theoretical best:** %s\n", internal.FormatDuration(row.TheoreticalMs))

	return nil
}

// escapeMarkdown keeps names from breaking the surrounding emphasis
func escapeMarkdown(text string) string {
	text = strings.ReplaceAll(text, "**", "\\*\\*")
	text = strings.ReplaceAll(text, "__", "\\_\\_")
	return strings.ReplaceAll(text, "|", "\\|")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
