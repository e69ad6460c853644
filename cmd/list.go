package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/iksnae/lap-analyzer/internal"
	"github.com/spf13/cobra"
)

var (
	listCar   string
	listTrack string
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	trackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Italic(true)
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions",
	Long: `List saved sessions, newest first.

Use --car and --track to narrow the list; names must match exactly as stored
(see 'lap-analyzer filters').`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		sessions, err := store.ListSessions(listCar, listTrack)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}

		displaySessions(cmd.OutOrStdout(), sessions, time.Now())
		return nil
	},
}

func displaySessions(out io.Writer, sessions []internal.SessionRow, now time.Time) {
	if len(sessions) == 0 {
		_, _ = fmt.Fprintln(out, headerStyle.Render("📋 No sessions found"))
		return
	}

	_, _ = fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("📋 Found %s session(s)", humanize.Comma(int64(len(sessions))))))
	_, _ = fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)

	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Car")+"\t"+titleStyle.Render("Track")+"\t"+
		titleStyle.Render("Best")+"\t"+titleStyle.Render("Theoretical")+"\t"+titleStyle.Render("Date")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 100))

	for _, s := range sessions {
		car := truncateName(s.CarModel, 30)

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			idStyle.Render(strconv.FormatInt(s.ID, 10)),
			car,
			trackStyle.Render(s.TrackName),
			timeStyle.Render(internal.FormatDuration(s.BestLapMs)),
			internal.FormatDuration(s.TheoreticalMs),
			dateStyle.Render(formatSessionDate(s.DateTime, now)),
		)
	}

	_ = w.Flush()
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, idStyle.Render("💡 Tip: Use the ID (e.g., ")+
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(strconv.FormatInt(sessions[0].ID, 10))+
		idStyle.Render(") with `lap-analyzer show <id>`"))
}

// formatSessionDate shows the stored timestamp with its age relative to now
func formatSessionDate(stored string, now time.Time) string {
	t, err := time.ParseInLocation(internal.TimestampLayout, stored, time.Local)
	if err != nil {
		if stored == "" {
			return "—"
		}
		return stored
	}
	return fmt.Sprintf("%s (%s)", t.Format("2006-01-02 15:04"), humanize.RelTime(t, now, "ago", "from now"))
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listCar, "car", "", "Only sessions driven with this car")
	listCmd.Flags().StringVar(&listTrack, "track", "", "Only sessions on this track")
}

// truncateName shortens s to at most width characters, ending in "..." when cut
func truncateName(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
