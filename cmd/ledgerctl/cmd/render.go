package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nexiumfounders/subsplit/internal/money"
	"github.com/nexiumfounders/subsplit/pkg/api"
)

// renderSummary prints the month's charges, then each participant's peer
// lines and totals, then the history state.
func renderSummary(w io.Writer, s *api.Summary) error {
	if s == nil {
		return fmt.Errorf("empty summary")
	}
	names := make(map[string]string, len(s.Participants))
	for _, p := range s.Participants {
		names[p.ID] = p.Name
	}
	name := func(id string) string {
		if n, ok := names[id]; ok && n != "" {
			return n
		}
		return id
	}
	fmt.Fprintf(w, "%s (%s)\n\n", s.PeriodLabel, s.Period)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CHARGE\tSTATUS\tAMOUNT\tPAID BY")
	for _, c := range s.Charges {
		payer := name(c.PayerID)
		if c.PayerID != c.DefaultPayerID {
			payer += " (override)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Name, c.Status, money.Format(c.Amount, s.Currency), payer)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, p := range s.Participants {
		fmt.Fprintf(w, "\n%s: owes %s, is owed %s\n", p.Name,
			money.Format(p.TotalOwedByThem, s.Currency),
			money.Format(p.TotalOwedToThem, s.Currency))
		for _, line := range p.Peers {
			switch {
			case line.YouOwe.IsPositive():
				fmt.Fprintf(w, "  you owe %s %s\n", name(line.OtherID), money.Format(line.YouOwe, s.Currency))
			case line.TheyOwe.IsPositive():
				fmt.Fprintf(w, "  %s owes you %s\n", name(line.OtherID), money.Format(line.TheyOwe, s.Currency))
			default:
				fmt.Fprintf(w, "  settled with %s\n", name(line.OtherID))
			}
		}
	}

	fmt.Fprintf(w, "\nOutstanding: %s\n", money.Format(s.OutstandingTotal, s.Currency))
	for _, d := range s.Drafts {
		fmt.Fprintf(w, "Draft: %s → %s %q\n", name(d.DebtorID), name(d.CreditorID), d.Amount)
	}
	fmt.Fprintf(w, "Undo: %s  Redo: %s\n", availability(s.CanUndo), availability(s.CanRedo))
	return nil
}

func availability(ok bool) string {
	if ok {
		return "available"
	}
	return "none"
}
