package ledger

import (
	"maps"

	"github.com/shopspring/decimal"

	"github.com/nexiumfounders/subsplit/internal/calculator"
	"github.com/nexiumfounders/subsplit/internal/models"
	"github.com/nexiumfounders/subsplit/internal/period"
)

// ChargeView is one charge as seen in the selected month.
type ChargeView struct {
	Charge     models.RecurringCharge
	Evaluation calculator.Evaluation
	PayerID    string
}

// PeerLine is one participant's standing with one other participant.
// At most one of YouOwe and TheyOwe is non-zero.
type PeerLine struct {
	OtherID string
	YouOwe  decimal.Decimal
	TheyOwe decimal.Decimal
}

// Settled reports whether nothing is owed either way.
func (l PeerLine) Settled() bool {
	return l.YouOwe.IsZero() && l.TheyOwe.IsZero()
}

// ParticipantView groups a participant's peer lines and totals.
type ParticipantView struct {
	Participant models.Participant
	Peers       []PeerLine
	Balance     calculator.MemberBalance
}

// Summary is everything a host needs to render the ledger for the selected
// month. It is computed from scratch on every call.
type Summary struct {
	Selected     period.Period
	Currency     string
	Charges      []ChargeView
	Balances     calculator.Balances
	Participants []ParticipantView
	Settlements  *models.Matrix
	Drafts       map[string]map[string]string
	CanUndo      bool
	CanRedo      bool
}

// Summary evaluates the ledger for the selected month.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := s.live.Clone()
	balances := calculator.Compute(calculator.Inputs{
		Participants: s.ids,
		Charges:      s.book.Charges,
		Overrides:    live.Overrides,
		Settlements:  live.Settlements,
		Selected:     live.Selected,
	})

	charges := make([]ChargeView, len(s.book.Charges))
	for i, c := range s.book.Charges {
		payer := calculator.ResolvePayer(live.Selected, c, live.Overrides)
		if _, ok := s.book.Participant(payer); !ok {
			payer = c.DefaultPayer
		}
		charges[i] = ChargeView{
			Charge:     c,
			Evaluation: calculator.Evaluate(c, live.Selected),
			PayerID:    payer,
		}
	}

	after := balances.AfterTransfers
	participants := make([]ParticipantView, len(s.book.Participants))
	for i, p := range s.book.Participants {
		view := ParticipantView{Participant: p, Balance: balances.Members[i]}
		for _, other := range s.book.Participants {
			if other.ID == p.ID {
				continue
			}
			view.Peers = append(view.Peers, PeerLine{
				OtherID: other.ID,
				YouOwe:  after.At(p.ID, other.ID),
				TheyOwe: after.At(other.ID, p.ID),
			})
		}
		participants[i] = view
	}

	drafts := make(map[string]map[string]string, len(s.drafts))
	for debtor, row := range s.drafts {
		drafts[debtor] = maps.Clone(row)
	}

	return Summary{
		Selected:     live.Selected,
		Currency:     s.book.Currency,
		Charges:      charges,
		Balances:     balances,
		Participants: participants,
		Settlements:  live.Settlements,
		Drafts:       drafts,
		CanUndo:      s.history.CanUndo(),
		CanRedo:      s.history.CanRedo(),
	}
}
