package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/nexiumfounders/subsplit/internal/models"
	"github.com/nexiumfounders/subsplit/internal/period"
)

// Status describes a charge in a given month.
type Status int

const (
	// NotStarted means the month precedes the charge's start month.
	NotStarted Status = iota
	// FreePeriod means the month is a waived first month.
	FreePeriod
	// Due means the full price is billed.
	Due
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "Not started"
	case FreePeriod:
		return "First Month Free"
	case Due:
		return "Due"
	default:
		return "Unknown"
	}
}

// Evaluation is the result of evaluating a charge for one month.
type Evaluation struct {
	Amount decimal.Decimal
	Status Status
}

// Evaluate decides whether charge is billed in p and for how much. It is the
// only place that answers this question: both the monthly view and the
// ledger accumulation call it.
func Evaluate(charge models.RecurringCharge, p period.Period) Evaluation {
	switch {
	case p.Before(charge.Start):
		return Evaluation{Amount: decimal.Zero, Status: NotStarted}
	case charge.FirstPeriodFree && p == charge.Start:
		return Evaluation{Amount: decimal.Zero, Status: FreePeriod}
	default:
		return Evaluation{Amount: charge.Price, Status: Due}
	}
}

// ResolvePayer returns who paid charge in p: the override if one exists,
// otherwise the charge's default payer.
func ResolvePayer(p period.Period, charge models.RecurringCharge, overrides models.PayerOverrides) string {
	if payer, ok := overrides.Get(p.Key(), charge.ID); ok {
		return payer
	}
	return charge.DefaultPayer
}
