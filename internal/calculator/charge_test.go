package calculator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nexiumfounders/subsplit/internal/models"
	"github.com/nexiumfounders/subsplit/internal/period"
)

var aug2025 = period.Period{Year: 2025, Month: time.August}

func gemini() models.RecurringCharge {
	return models.RecurringCharge{
		ID:              "gemini",
		Name:            "Gemini Pro",
		Price:           decimal.NewFromInt(700),
		Start:           aug2025,
		FirstPeriodFree: true,
		DefaultPayer:    "ahmed",
	}
}

func TestEvaluate(t *testing.T) {
	paid := gemini()
	paid.FirstPeriodFree = false

	tests := []struct {
		name       string
		charge     models.RecurringCharge
		at         period.Period
		wantStatus Status
		wantAmount int64
	}{
		{"free charge one month early", gemini(), aug2025.Shift(-1), NotStarted, 0},
		{"free charge a year early", gemini(), aug2025.Shift(-12), NotStarted, 0},
		{"free charge at start", gemini(), aug2025, FreePeriod, 0},
		{"free charge one month later", gemini(), aug2025.Shift(1), Due, 700},
		{"free charge next year same month", gemini(), aug2025.Shift(12), Due, 700},
		{"paid charge at start", paid, aug2025, Due, 700},
		{"paid charge one month early", paid, aug2025.Shift(-1), NotStarted, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.charge, tt.at)
			if got.Status != tt.wantStatus {
				t.Errorf("status = %v, want %v", got.Status, tt.wantStatus)
			}
			if !got.Amount.Equal(decimal.NewFromInt(tt.wantAmount)) {
				t.Errorf("amount = %s, want %d", got.Amount, tt.wantAmount)
			}
		})
	}
}

func TestStatusString(t *testing.T) {
	for status, want := range map[Status]string{
		NotStarted: "Not started",
		FreePeriod: "First Month Free",
		Due:        "Due",
		Status(42): "Unknown",
	} {
		if got := status.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", status, got, want)
		}
	}
}

func TestResolvePayer(t *testing.T) {
	charge := gemini()
	overrides := models.PayerOverrides{}
	overrides.Set("2025-09", "gemini", "omar")
	overrides.Set("2025-09", "chatgpt", "faris")

	if got := ResolvePayer(aug2025, charge, overrides); got != "ahmed" {
		t.Errorf("without override got %q, want default payer ahmed", got)
	}
	if got := ResolvePayer(aug2025.Shift(1), charge, overrides); got != "omar" {
		t.Errorf("with override got %q, want omar", got)
	}
	if got := ResolvePayer(aug2025.Shift(1), charge, nil); got != "ahmed" {
		t.Errorf("nil overrides got %q, want ahmed", got)
	}
}
