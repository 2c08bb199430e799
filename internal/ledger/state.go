package ledger

import (
	"github.com/nexiumfounders/subsplit/internal/models"
	"github.com/nexiumfounders/subsplit/internal/period"
)

// State is the mutable part of a ledger: everything undo and redo restore.
type State struct {
	Settlements *models.Matrix
	Overrides   models.PayerOverrides
	Selected    period.Period
}

// Clone returns a structural deep copy.
func (s State) Clone() State {
	return State{
		Settlements: s.Settlements.Clone(),
		Overrides:   s.Overrides.Clone(),
		Selected:    s.Selected,
	}
}

// Equal reports whether s and o hold the same values.
func (s State) Equal(o State) bool {
	return s.Selected == o.Selected &&
		s.Settlements.Equal(o.Settlements) &&
		s.Overrides.Equal(o.Overrides)
}
