package cmd

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// filtersCmd represents the filters command
var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "List the cars and tracks of saved sessions",
	Long:  `List the distinct car and track names accepted by 'lap-analyzer list --car/--track'.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		cars, tracks, err := store.DistinctCarsAndTracks()
		if err != nil {
			return fmt.Errorf("failed to load filters: %w", err)
		}

		out := cmd.OutOrStdout()
		printFilterGroup(out, "🚗 Cars", cars)
		_, _ = fmt.Fprintln(out)
		printFilterGroup(out, "🛣️  Tracks", tracks)
		return nil
	},
}

func printFilterGroup(out io.Writer, title string, values []string) {
	_, _ = fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%s (%s)", title, humanize.Comma(int64(len(values))))))
	if len(values) == 0 {
		_, _ = fmt.Fprintln(out, dateStyle.Render("   none saved yet"))
		return
	}
	for _, v := range values {
		_, _ = fmt.Fprintf(out, "   • %s\n", v)
	}
}

func init() {
	rootCmd.AddCommand(filtersCmd)
}
