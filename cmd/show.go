package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/lap-analyzer/internal"
	"github.com/spf13/cobra"
)

var (
	// Styles for show command
	sessionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	sessionMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				MarginBottom(1)

	validLapStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	invalidLapStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show the laps of a saved session",
	Long:  `Display a saved session with its lap table and recomputed statistics.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseSessionID(args[0])
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		session, err := store.LoadSession(id)
		if err != nil {
			return err
		}

		displayStoredSession(cmd.OutOrStdout(), session)
		return nil
	},
}

func displayStoredSession(out io.Writer, session *internal.StoredSession) {
	if session == nil {
		return
	}
	row := session.Session

	_, _ = fmt.Fprintln(out, sessionHeaderStyle.Render(fmt.Sprintf("🏁 %s @ %s", row.CarModel, row.TrackName)))

	metaParts := []string{
		fmt.Sprintf("Session: %d", row.ID),
		fmt.Sprintf("Date: %s", strings.Replace(row.DateTime, "T", " ", 1)),
		fmt.Sprintf("Laps: %d", len(session.Laps)),
	}
	_, _ = fmt.Fprintln(out, sessionMetaStyle.Render(strings.Join(metaParts, " • ")))
	_, _ = fmt.Fprintln(out)

	if len(session.Laps) == 0 {
		_, _ = fmt.Fprintln(out, diagnosticStyle.Render("No lap data found for the session."))
		return
	}

	_, _ = fmt.Fprintln(out, labelStyle.Render(internal.LapHistoryHeader))
	for _, lap := range session.Laps {
		style := validLapStyle
		if !lap.IsValid {
			style = invalidLapStyle
		}
		_, _ = fmt.Fprintln(out, style.Render(internal.FormatLapRow(lap)))
	}
	_, _ = fmt.Fprintln(out)

	stats := session.Stats()
	if stats.ValidLaps == 0 {
		_, _ = fmt.Fprintln(out, diagnosticStyle.Render("No valid laps were recorded in the session."))
		return
	}
	for _, line := range internal.FormatStats(stats) {
		_, _ = fmt.Fprintln(out, styleReportLine(line))
	}
}

func init() {
	rootCmd.AddCommand(showCmd)
}
