package models

import (
	"github.com/shopspring/decimal"

	"github.com/nexiumfounders/subsplit/internal/period"
)

// Participant is one of the people splitting recurring costs.
type Participant struct {
	// ID is the stable identifier used in matrices and overrides (e.g. "faris").
	ID string `yaml:"id" json:"id"`

	// Name is the display name.
	Name string `yaml:"name" json:"name"`
}

// ParticipantIDs returns the IDs of ps in order.
func ParticipantIDs(ps []Participant) []string {
	ids := make([]string, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}

// RecurringCharge is a monthly subscription shared by all participants.
type RecurringCharge struct {
	// ID is the unique identifier of the charge (e.g. "chatgpt").
	ID string `json:"id"`

	// Name is the display name (e.g. "ChatGPT Plus").
	Name string `json:"name"`

	// Price is the amount billed each month once the charge is active.
	Price decimal.Decimal `json:"price"`

	// Start is the first billed month. Only year and month are meaningful.
	Start period.Period `json:"start"`

	// FirstPeriodFree waives the charge for the Start month.
	FirstPeriodFree bool `json:"first_period_free"`

	// DefaultPayer is the participant ID whose card pays the charge unless an
	// override says otherwise.
	DefaultPayer string `json:"default_payer"`
}

// EarliestStart returns the earliest Start among charges, or the zero Period
// when charges is empty.
func EarliestStart(charges []RecurringCharge) period.Period {
	var earliest period.Period
	for i, c := range charges {
		if i == 0 || c.Start.Before(earliest) {
			earliest = c.Start
		}
	}
	return earliest
}
