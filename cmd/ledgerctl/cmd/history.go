package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexiumfounders/subsplit/internal/shortcut"
	"github.com/nexiumfounders/subsplit/pkg/api"
)

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Revert the most recent change",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistory(cmd, shortcut.Undo)
	},
}

var redoCmd = &cobra.Command{
	Use:   "redo",
	Short: "Re-apply the most recently undone change",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistory(cmd, shortcut.Redo)
	},
}

var keyCmd = &cobra.Command{
	Use:   "key <chord>",
	Short: "Run the history action bound to a key chord",
	Long: `Run the history action bound to a key chord.

ctrl+z and cmd+z undo; ctrl+y, cmd+y and ctrl+shift+z redo. Other chords do
nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		action := shortcut.Resolve(shortcut.Parse(args[0]))
		if action == shortcut.None {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is not bound\n", args[0])
			return nil
		}
		return runHistory(cmd, action)
	},
}

func runHistory(cmd *cobra.Command, action shortcut.Action) error {
	resp, err := callHistory(cmd.Context(), action)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !resp.Applied {
		fmt.Fprintf(out, "Nothing to %s.\n\n", action)
	}
	return renderSummary(out, resp.Summary)
}

func callHistory(ctx context.Context, action shortcut.Action) (*api.HistoryResponse, error) {
	client := ledgerClient()
	if action == shortcut.Redo {
		resp, err := client.Redo(ctx, newRequest(&api.RedoRequest{}))
		if err != nil {
			return nil, err
		}
		return resp.Msg, nil
	}
	resp, err := client.Undo(ctx, newRequest(&api.UndoRequest{}))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func init() {
	rootCmd.AddCommand(undoCmd, redoCmd, keyCmd)
}
