package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nexiumfounders/subsplit/pkg/api"
)

var summaryCmd = &cobra.Command{
	Use:     "summary",
	Aliases: []string{"show"},
	Short:   "Show charges and balances for the selected month",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := ledgerClient().GetSummary(cmd.Context(), newRequest(&api.GetSummaryRequest{}))
		if err != nil {
			return err
		}
		return renderSummary(cmd.OutOrStdout(), resp.Msg.Summary)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
