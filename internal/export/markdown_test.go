package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/lap-analyzer/internal"
)

func TestMarkdownExporter_Export(t *testing.T) {
	session := internal.CreateTestStoredSession(12)
	exporter := &MarkdownExporter{}

	var buf bytes.Buffer
	if err := exporter.Export(session, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Session 12",
		"**Track:** Monza",
		"**Car:** Bmw M3 E30",
		"**Date:** 2024-05-01 18:30:00",
		"| Lap | Time | S1 | S2 | S3 | Valid |",
		"| 1 | 1:52.000 | 0:36.000 | 0:40.000 | 0:36.000 | YES |",
		"| 3 | 1:48.000 | 0:35.000 | 0:38.000 | 0:35.000 | CUTS (2) |",
		"- **Valid laps:** 3 of 4 (75.0%)",
		"- **Best lap:** 1:49.500",
		"- **Average lap:** 1:50.500",
		"- **Theoretical best:** 1:49.000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Export() output missing %q\n%s", want, out)
		}
	}
}

func TestMarkdownExporter_NoValidLaps(t *testing.T) {
	session := &internal.StoredSession{
		Session: internal.SessionRow{ID: 2, CarModel: "Abarth500", TrackName: "Magione", BestLapMs: -1, TheoreticalMs: -1},
		Laps:    []internal.LapRecord{internal.CreateTestLap(1, 80000, nil, 3)},
	}

	var buf bytes.Buffer
	if err := (&MarkdownExporter{}).Export(session, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "| 1 | 1:20.000 | N/A | N/A | N/A | CUTS (3) |") {
		t.Errorf("lap row missing, got:\n%s", out)
	}
	if !strings.Contains(out, "No valid laps were recorded in the session.") {
		t.Errorf("expected no valid laps notice, got:\n%s", out)
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Monza", "Monza"},
		{"**bold**", "\\*\\*bold\\*\\*"},
		{"a|b", "a\\|b"},
		{"__init__", "\\_\\_init\\_\\_"},
	}

	for _, tt := range tests {
		if got := escapeMarkdown(tt.input); got != tt.want {
			t.Errorf("escapeMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
