package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexiumfounders/subsplit/internal/money"
	"github.com/nexiumfounders/subsplit/pkg/api"
)

var transferCmd = &cobra.Command{
	Use:   "transfer <debtor> <creditor> <amount>",
	Short: "Record that debtor paid creditor",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := ledgerClient().RecordTransfer(cmd.Context(), newRequest(&api.RecordTransferRequest{
			DebtorID:   args[0],
			CreditorID: args[1],
			Amount:     args[2],
		}))
		if err != nil {
			return err
		}
		return renderTransfer(cmd, resp.Msg)
	},
}

var draftCmd = &cobra.Command{
	Use:   "draft <debtor> <creditor> <amount>",
	Short: "Stage a transfer amount without recording it",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := ledgerClient().SetTransferDraft(cmd.Context(), newRequest(&api.SetTransferDraftRequest{
			DebtorID:   args[0],
			CreditorID: args[1],
			Amount:     args[2],
		}))
		if err != nil {
			return err
		}
		return renderSummary(cmd.OutOrStdout(), resp.Msg.Summary)
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit <debtor> <creditor>",
	Short: "Record the staged transfer for a pair",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := ledgerClient().SubmitTransfer(cmd.Context(), newRequest(&api.SubmitTransferRequest{
			DebtorID:   args[0],
			CreditorID: args[1],
		}))
		if err != nil {
			return err
		}
		return renderTransfer(cmd, resp.Msg)
	},
}

func renderTransfer(cmd *cobra.Command, msg *api.RecordTransferResponse) error {
	out := cmd.OutOrStdout()
	if !msg.Accepted {
		fmt.Fprintln(out, "Transfer rejected: amount must be a positive number between two different participants.")
		return nil
	}
	t := msg.Transfer
	fmt.Fprintf(out, "Recorded %s → %s: %s (id %s)\n\n",
		t.DebtorID, t.CreditorID, money.Format(t.Amount, msg.Summary.Currency), t.ID)
	return renderSummary(out, msg.Summary)
}

func init() {
	rootCmd.AddCommand(transferCmd, draftCmd, submitCmd)
}
