package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nexiumfounders/subsplit/pkg/api"
)

var periodCmd = &cobra.Command{
	Use:   "period <YYYY-MM>",
	Short: "Select the month to view",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := ledgerClient().SelectPeriod(cmd.Context(), newRequest(&api.SelectPeriodRequest{Period: args[0]}))
		if err != nil {
			return err
		}
		return renderSummary(cmd.OutOrStdout(), resp.Msg.Summary)
	},
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Move to the following month",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return navigate(cmd, 1)
	},
}

var prevCmd = &cobra.Command{
	Use:   "prev",
	Short: "Move to the previous month",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return navigate(cmd, -1)
	},
}

func navigate(cmd *cobra.Command, delta int) error {
	resp, err := ledgerClient().NavigatePeriod(cmd.Context(), newRequest(&api.NavigatePeriodRequest{Delta: delta}))
	if err != nil {
		return err
	}
	return renderSummary(cmd.OutOrStdout(), resp.Msg.Summary)
}

func init() {
	rootCmd.AddCommand(periodCmd, nextCmd, prevCmd)
}
