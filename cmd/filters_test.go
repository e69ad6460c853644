package cmd

import (
	"strings"
	"testing"

	"github.com/iksnae/lap-analyzer/testutil"
)

func TestFiltersCommand(t *testing.T) {
	dbFile := testutil.TempDatabasePath(t)

	out, err := executeCommand(t, "", "filters", "--db", dbFile)
	if err != nil {
		t.Fatalf("filters error = %v", err)
	}
	if !strings.Contains(out, "Cars (0)") || !strings.Contains(out, "none saved yet") {
		t.Errorf("expected empty groups, got:\n%s", out)
	}

	saveMonzaSession(t, dbFile)

	out, err = executeCommand(t, "", "filters", "--db", dbFile)
	if err != nil {
		t.Fatalf("filters error = %v", err)
	}
	for _, want := range []string{"Cars (1)", "• Bmw M3 E30", "Tracks (1)", "• Monza"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q, got:\n%s", want, out)
		}
	}
}
