package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/iksnae/lap-analyzer/internal"
	"github.com/spf13/cobra"
)

var (
	deleteYes bool
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a saved session and its laps",
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

		row, err := store.GetSession(id)
		if err != nil {
			return err
		}

		if !deleteYes {
			prompt := fmt.Sprintf("Delete session %d (%s @ %s, %s)? [y/N]: ",
				row.ID, row.CarModel, row.TrackName, row.DateTime)
			_, _ = fmt.Fprint(cmd.OutOrStdout(), prompt)

			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				internal.PrintInfo(cmd.OutOrStdout(), "Aborted, nothing deleted.")
				return nil
			}
		}

		if err := store.DeleteSession(id); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Deleted session %d", id))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Delete without asking for confirmation")
}
