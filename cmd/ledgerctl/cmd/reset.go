package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexiumfounders/subsplit/pkg/api"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all recorded transfers and payer overrides",
	Long: `Clear all recorded transfers, payer overrides and staged drafts.

The reset itself can be undone with 'ledgerctl undo'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("refusing to reset without --yes")
		}
		resp, err := ledgerClient().ResetAll(cmd.Context(), newRequest(&api.ResetAllRequest{}))
		if err != nil {
			return err
		}
		return renderSummary(cmd.OutOrStdout(), resp.Msg.Summary)
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "confirm the reset")
}
