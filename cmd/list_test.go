package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/iksnae/lap-analyzer/internal"
	"github.com/iksnae/lap-analyzer/testutil"
)

func TestListCommand(t *testing.T) {
	dbFile := testutil.TempDatabasePath(t)
	saveMonzaSession(t, dbFile)

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name: "all sessions",
			args: []string{"list"},
			want: []string{"Found 1 session(s)", "Bmw M3 E30", "Monza", "1:49.500", "2024-05-01 18:30"},
		},
		{
			name: "matching track",
			args: []string{"list", "--track", "Monza"},
			want: []string{"Found 1 session(s)"},
		},
		{
			name:    "other car",
			args:    []string{"list", "--car", "Abarth500"},
			want:    []string{"No sessions found"},
			notWant: []string{"Monza"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, "", append(tt.args, "--db", dbFile)...)
			if err != nil {
				t.Fatalf("list error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q, got:\n%s", want, out)
				}
			}
			for _, notWant := range tt.notWant {
				if strings.Contains(out, notWant) {
					t.Errorf("output should not contain %q, got:\n%s", notWant, out)
				}
			}
		})
	}
}

func TestDisplaySessions(t *testing.T) {
	now := time.Date(2024, 5, 3, 18, 30, 0, 0, time.Local)
	sessions := []internal.SessionRow{
		{ID: 2, CarModel: "Abarth500", TrackName: "Magione", DateTime: "2024-05-01T18:30:00", BestLapMs: 80000, TheoreticalMs: -1},
		{ID: 1, CarModel: "Bmw M3 E30", TrackName: "Monza", DateTime: "", BestLapMs: 109500, TheoreticalMs: 109000},
	}

	var buf bytes.Buffer
	displaySessions(&buf, sessions, now)
	out := buf.String()

	for _, want := range []string{"Found 2 session(s)", "Magione", "1:20.000", "N/A", "2 days ago", "—", "show <id>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q, got:\n%s", want, out)
		}
	}
}

func TestTruncateName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "short", input: "Bmw M3 E30", want: "Bmw M3 E30"},
		{name: "exact width", input: strings.Repeat("a", 30), want: strings.Repeat("a", 30)},
		{name: "ascii cut", input: strings.Repeat("a", 31), want: strings.Repeat("a", 27) + "..."},
		{name: "multibyte within width", input: "Škoda Octavia Rs Évolution Ü", want: "Škoda Octavia Rs Évolution Ü"},
		{name: "multibyte cut", input: strings.Repeat("é", 40), want: strings.Repeat("é", 27) + "..."},
		{name: "cut next to multibyte", input: strings.Repeat("a", 26) + "ééééééé", want: strings.Repeat("a", 26) + "é..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateName(tt.input, 30)
			if got != tt.want {
				t.Errorf("truncateName() = %q, want %q", got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncateName() = %q is not valid UTF-8", got)
			}
		})
	}
}

func TestFormatSessionDate(t *testing.T) {
	now := time.Date(2024, 5, 1, 20, 30, 0, 0, time.Local)

	tests := []struct {
		stored string
		want   string
	}{
		{stored: "2024-05-01T18:30:00", want: "2024-05-01 18:30 (2 hours ago)"},
		{stored: "", want: "—"},
		{stored: "yesterday", want: "yesterday"},
	}

	for _, tt := range tests {
		if got := formatSessionDate(tt.stored, now); got != tt.want {
			t.Errorf("formatSessionDate(%q) = %q, want %q", tt.stored, got, tt.want)
		}
	}
}
