package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nexiumfounders/subsplit/pkg/api"
)

var payerPeriod string

var payerCmd = &cobra.Command{
	Use:   "payer <charge-id> <participant-id>",
	Short: "Record who actually paid a charge in a month",
	Long: `Record who actually paid a charge in a month.

The month defaults to the selected one; pass --period to change another.

Examples:
  ledgerctl payer chatgpt omar
  ledgerctl payer gemini faris --period 2025-09`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := ledgerClient()
		period := payerPeriod
		if period == "" {
			resp, err := client.GetSummary(cmd.Context(), newRequest(&api.GetSummaryRequest{}))
			if err != nil {
				return err
			}
			period = resp.Msg.Summary.Period
		}

		resp, err := client.SetPayerOverride(cmd.Context(), newRequest(&api.SetPayerOverrideRequest{
			Period:        period,
			ChargeID:      args[0],
			ParticipantID: args[1],
		}))
		if err != nil {
			return err
		}
		return renderSummary(cmd.OutOrStdout(), resp.Msg.Summary)
	},
}

func init() {
	rootCmd.AddCommand(payerCmd)
	payerCmd.Flags().StringVarP(&payerPeriod, "period", "p", "", "month as YYYY-MM (default: selected month)")
}
