package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/iksnae/lap-analyzer/internal"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	dbPath  string
	version string = "dev"
	commit  string = "unknown"
	date    string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lap-analyzer",
	Short: "Analyze Assetto Corsa session logs",
	Long: `A CLI tool to analyze Assetto Corsa session result files and keep a
history of your sessions.

The analyzer reads the JSON log the simulator writes after a session
(race_out.json), classifies every lap as valid or invalid, and reports the best
lap, the average lap, the validity rate and the theoretical best lap built from
the fastest sector times.

Quick Start:
  lap-analyzer analyze race_out.json          # Print the session report
  lap-analyzer analyze race_out.json --save   # ...and store it
  lap-analyzer list --track Monza             # Saved sessions at Monza
  lap-analyzer show 3                         # Lap table of session 3
  lap-analyzer export 3 --format md           # Write session 3 as Markdown`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		internal.PrintError(os.Stderr, fmt.Sprintf("Error: %v", err))
		os.Exit(1)
	}
}

// openStore opens the session database selected by --db
func openStore() (*internal.Store, error) {
	paths, err := internal.GetDataPaths(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}
	internal.LogDebug("Using database %s", paths.DatabasePath)

	store, err := internal.OpenStore(paths.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}

func closeStore(store *internal.Store) {
	if err := store.Close(); err != nil {
		internal.LogWarn("Failed to close database: %v", err)
	}
}

func parseSessionID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid session id %q", arg)
	}
	return id, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Session database (file or directory); defaults to the per-user data directory")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
