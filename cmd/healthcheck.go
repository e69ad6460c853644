package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/iksnae/lap-analyzer/internal"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that the session database is usable",
	Long: `Check the health of lap-analyzer by verifying:
  • Database path resolution
  • Database file presence
  • Schema migration and connectivity
  • Saved session count`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintln(out, sectionStyle.Render("🔍 Lap Analyzer Health Check"))
		_, _ = fmt.Fprintln(out)

		// Step 1: Resolve database path
		_, _ = fmt.Fprintln(out, infoStyle.Render("Step 1: Resolving database path..."))
		paths, err := internal.GetDataPaths(dbPath)
		if err != nil {
			internal.PrintError(out, fmt.Sprintf("Failed to resolve database path: %v", err))
			return fmt.Errorf("health check failed: %w", err)
		}
		_, _ = fmt.Fprintln(out, successStyle.Render("✅ Database path resolved"))
		if verbose {
			_, _ = fmt.Fprintf(out, "   Data directory: %s\n", paths.DataDir)
			_, _ = fmt.Fprintf(out, "   Database: %s\n", paths.DatabasePath)
		}
		_, _ = fmt.Fprintln(out)

		// Step 2: Check database file
		_, _ = fmt.Fprintln(out, infoStyle.Render("Step 2: Checking database file..."))
		if paths.DatabaseExists() {
			found := "✅ Database found"
			if info, err := os.Stat(paths.DatabasePath); err == nil {
				found += fmt.Sprintf(" (%s)", humanize.Bytes(uint64(info.Size())))
			}
			_, _ = fmt.Fprintln(out, successStyle.Render(found))
		} else {
			_, _ = fmt.Fprintln(out, warningStyle.Render("⚠️  Database not found, it will be created"))
		}
		_, _ = fmt.Fprintln(out)

		// Step 3: Open, migrate and ping
		_, _ = fmt.Fprintln(out, infoStyle.Render("Step 3: Opening database..."))
		store, err := internal.OpenStore(paths.DatabasePath)
		if err != nil {
			internal.PrintError(out, fmt.Sprintf("Failed to open database: %v", err))
			return fmt.Errorf("health check failed: %w", err)
		}
		defer closeStore(store)
		if err := store.Ping(); err != nil {
			internal.PrintError(out, fmt.Sprintf("Database ping failed: %v", err))
			return fmt.Errorf("health check failed: %w", err)
		}
		_, _ = fmt.Fprintln(out, successStyle.Render("✅ Database opened and schema up to date"))
		_, _ = fmt.Fprintln(out)

		// Step 4: Count sessions
		_, _ = fmt.Fprintln(out, infoStyle.Render("Step 4: Counting saved sessions..."))
		count, err := store.SessionCount()
		if err != nil {
			internal.PrintError(out, fmt.Sprintf("Failed to count sessions: %v", err))
			return fmt.Errorf("health check failed: %w", err)
		}
		_, _ = fmt.Fprintln(out)

		// Summary
		_, _ = fmt.Fprintln(out, sectionStyle.Render("📊 Summary"))
		_, _ = fmt.Fprintln(out)
		if count > 0 {
			_, _ = fmt.Fprintln(out, successStyle.Render("✅ Health check passed!"))
			_, _ = fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("   • Sessions: %s saved", humanize.Comma(int64(count)))))
			return nil
		}
		_, _ = fmt.Fprintln(out, warningStyle.Render("⚠️  Database available but no sessions saved"))
		_, _ = fmt.Fprintln(out, "   • Run 'lap-analyzer analyze <file> --save' to store one")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
}
