package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/lap-analyzer/internal"
	"github.com/spf13/cobra"
)

var (
	analyzeSave bool
)

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	ruleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	diagnosticStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|->",
	Short: "Analyze a session result file",
	Long: `Analyze an Assetto Corsa session result file and print the report.

Pass "-" to read the session from standard input. With --save the session and
all of its laps are stored in the session database, provided at least one lap
was valid.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := args[0]

		var (
			lines   []string
			summary *internal.SessionSummary
		)

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		steps := []internal.ProgressStep{
			{
				Message: "Analyzing session",
				Fn: func() error {
					if source == "-" {
						lines, summary = internal.AnalyzeReader(cmd.InOrStdin())
					} else {
						lines, summary = internal.Analyze(source)
					}
					return nil
				},
			},
		}
		if err := internal.ShowProgressWithSteps(ctx, steps); err != nil {
			return err
		}

		printReport(cmd.OutOrStdout(), lines)

		if !analyzeSave {
			return nil
		}

		if !summary.CanSave() {
			internal.PrintWarning(cmd.ErrOrStderr(), "No valid session data to save.")
			return nil
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		id, err := store.SaveSummary(summary)
		if err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Session saved with id %d", id))
		return nil
	},
}

// printReport writes the report lines, styling the structural ones
func printReport(w io.Writer, lines []string) {
	for _, line := range lines {
		_, _ = fmt.Fprintln(w, styleReportLine(line))
	}
}

func styleReportLine(line string) string {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return line
	case strings.Trim(trimmed, "=") == "" || strings.Trim(trimmed, "-") == "":
		return ruleStyle.Render(line)
	case strings.HasPrefix(trimmed, "ASSETTO CORSA"):
		return bannerStyle.Render(line)
	case strings.HasPrefix(line, "Error:"),
		strings.HasPrefix(line, "An unexpected error"),
		strings.HasPrefix(line, "No "),
		strings.Contains(line, "N/A ("):
		return diagnosticStyle.Render(line)
	}

	if label, rest, ok := strings.Cut(line, ":"); ok && !strings.Contains(label, "|") && !strings.HasPrefix(line, " ") {
		return labelStyle.Render(label+":") + rest
	}
	return line
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Save the analyzed session to the database")
}
