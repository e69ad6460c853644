package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iksnae/lap-analyzer/internal"
	"github.com/iksnae/lap-analyzer/internal/export"
	"github.com/spf13/cobra"
)

var (
	format    string
	outputDir string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [session-id...]",
	Short: "Export saved sessions to file",
	Long: `Export saved sessions to various formats (jsonl, md, yaml, json).

Without ids every saved session is exported. Use --out - to write to standard
output instead of one file per session.
Use 'lap-analyzer list' to see available session IDs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		ids := make([]int64, 0, len(args))
		for _, arg := range args {
			id, err := parseSessionID(arg)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		if len(ids) == 0 {
			rows, err := store.ListSessions("", "")
			if err != nil {
				return fmt.Errorf("failed to list sessions: %w", err)
			}
			for _, row := range rows {
				ids = append(ids, row.ID)
			}
		}
		if len(ids) == 0 {
			internal.PrintInfo(cmd.OutOrStdout(), "No sessions to export")
			return nil
		}

		sessions := make([]*internal.StoredSession, 0, len(ids))
		for _, id := range ids {
			session, err := store.LoadSession(id)
			if err != nil {
				return fmt.Errorf("%w (use 'lap-analyzer list' to see available sessions)", err)
			}
			sessions = append(sessions, session)
		}

		if outputDir == "-" {
			return exportTo(cmd.OutOrStdout(), exporter, sessions)
		}

		// Ensure output directory exists
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return &internal.ExportError{Format: exporter.Extension(), Path: outputDir, Err: err}
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		err = internal.ShowProgress(ctx, fmt.Sprintf("Exporting %d session(s) to %s", len(sessions), outputDir), func() error {
			for _, session := range sessions {
				if err := exportFile(outputDir, exporter, session); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Export complete: %d session(s) exported to %s", len(sessions), outputDir))
		return nil
	},
}

func exportTo(w io.Writer, exporter export.Exporter, sessions []*internal.StoredSession) error {
	for _, session := range sessions {
		if err := exporter.Export(session, w); err != nil {
			return &internal.ExportError{Format: exporter.Extension(), Path: "-", Err: err}
		}
	}
	return nil
}

func exportFile(dir string, exporter export.Exporter, session *internal.StoredSession) error {
	filename := fmt.Sprintf("session_%d.%s", session.Session.ID, exporter.Extension())
	path := filepath.Join(dir, filename)

	file, err := os.Create(path)
	if err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}

	if err := exporter.Export(session, file); err != nil {
		_ = file.Close()
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}

	if err := file.Close(); err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	internal.LogDebug("Wrote %s", path)
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "md", "Export format (jsonl, md, yaml, json)")
	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "./exports", "Output directory, or - for standard output")
}
