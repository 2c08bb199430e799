package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/nexiumfounders/subsplit/internal/models"
	"github.com/nexiumfounders/subsplit/internal/period"
)

// MemberBalance is the aggregate position of one participant after
// netting and recorded transfers.
type MemberBalance struct {
	ParticipantID   string
	TotalOwedByThem decimal.Decimal // row sum: what they still owe others
	TotalOwedToThem decimal.Decimal // column sum: what others still owe them
}

// Net returns TotalOwedToThem - TotalOwedByThem. Positive = owed money.
func (b MemberBalance) Net() decimal.Decimal {
	return b.TotalOwedToThem.Sub(b.TotalOwedByThem)
}

// DebtEdge represents an outstanding debt from one person to another.
type DebtEdge struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount decimal.Decimal
}

// Inputs is everything the ledger engine reads.
type Inputs struct {
	Participants []string
	Charges      []models.RecurringCharge
	Overrides    models.PayerOverrides
	Settlements  *models.Matrix
	Selected     period.Period
}

// Balances holds every matrix the engine derives, plus the aggregates.
type Balances struct {
	Raw            *models.Matrix
	Net            *models.Matrix
	AfterTransfers *models.Matrix
	Members        []MemberBalance
}

// Compute runs the full pipeline: accumulate raw dues from the earliest
// charge start through the selected month, net pairwise, apply recorded
// transfers, aggregate. Nothing is cached; the same inputs always produce
// equal matrices.
func Compute(in Inputs) Balances {
	raw := AccumulateRawDues(in.Participants, in.Charges, in.Overrides, models.EarliestStart(in.Charges), in.Selected)
	net := NetPairs(raw)

	settlements := in.Settlements
	if settlements == nil {
		settlements = models.NewMatrix(in.Participants)
	}
	after := AfterTransfers(net, settlements)

	return Balances{
		Raw:            raw,
		Net:            net,
		AfterTransfers: after,
		Members:        Aggregate(after),
	}
}

// AccumulateRawDues builds raw[debtor][payer] over every month from earliest
// through selected inclusive. Each billed charge is split evenly among all
// participants; every participant other than the payer owes the payer one
// share.
//
// An override naming someone outside participants falls back to the default
// payer; a charge whose payer still cannot be resolved is skipped.
func AccumulateRawDues(participants []string, charges []models.RecurringCharge, overrides models.PayerOverrides, earliest, selected period.Period) *models.Matrix {
	raw := models.NewMatrix(participants)
	if len(charges) == 0 {
		return raw
	}

	for p := range period.Range(earliest, selected) {
		for _, charge := range charges {
			eval := Evaluate(charge, p)
			if eval.Amount.IsZero() {
				continue
			}

			payer := ResolvePayer(p, charge, overrides)
			if !raw.Has(payer) {
				payer = charge.DefaultPayer
			}
			if !raw.Has(payer) {
				continue
			}

			shares, err := CalculateShares(eval.Amount, participants)
			if err != nil {
				continue
			}
			for _, debtor := range participants {
				if debtor == payer {
					continue
				}
				raw.Add(debtor, payer, shares[debtor])
			}
		}
	}
	return raw
}

// NetPairs cancels opposing raw dues: net[a][b] = max(raw[a][b]-raw[b][a], 0).
// At most one direction of any pair is non-zero.
func NetPairs(raw *models.Matrix) *models.Matrix {
	net := models.NewMatrix(raw.Participants())
	raw.Each(func(a, b string, ab decimal.Decimal) {
		net.Set(a, b, floorZero(ab.Sub(raw.At(b, a))))
	})
	return net
}

// AfterTransfers subtracts the settlement record from the netted matrix:
// after[a][b] = max(net[a][b]-record[a][b], 0). Over-payment is discarded,
// never carried forward or turned into debt the other way.
func AfterTransfers(net, record *models.Matrix) *models.Matrix {
	after := models.NewMatrix(net.Participants())
	net.Each(func(a, b string, owed decimal.Decimal) {
		after.Set(a, b, floorZero(owed.Sub(record.At(a, b))))
	})
	return after
}

// Aggregate returns per-participant row and column sums of after, in
// participant order.
func Aggregate(after *models.Matrix) []MemberBalance {
	ids := after.Participants()
	members := make([]MemberBalance, len(ids))
	for i, id := range ids {
		members[i] = MemberBalance{
			ParticipantID:   id,
			TotalOwedByThem: after.RowSum(id),
			TotalOwedToThem: after.ColumnSum(id),
		}
	}
	return members
}

// DebtEdges lists the non-zero cells of m in participant order.
func DebtEdges(m *models.Matrix) []DebtEdge {
	var edges []DebtEdge
	m.Each(func(from, to string, amount decimal.Decimal) {
		if amount.IsPositive() {
			edges = append(edges, DebtEdge{From: from, To: to, Amount: amount})
		}
	})
	return edges
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
