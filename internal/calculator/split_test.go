package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCalculateShares(t *testing.T) {
	tests := []struct {
		name         string
		amount       decimal.Decimal
		participants []string
		wantErr      bool
		wantShare    string
	}{
		{
			name:         "two-person split",
			amount:       decimal.NewFromInt(600),
			participants: []string{"Alice", "Bob"},
			wantShare:    "300",
		},
		{
			name:         "three-person split",
			amount:       decimal.NewFromInt(600),
			participants: []string{"Alice", "Bob", "Charlie"},
			wantShare:    "200",
		},
		{
			name:         "zero amount",
			amount:       decimal.Zero,
			participants: []string{"Alice", "Bob"},
			wantShare:    "0",
		},
		{
			name:         "no participants should error",
			amount:       decimal.NewFromInt(10),
			participants: []string{},
			wantErr:      true,
		},
		{
			name:         "negative amount should error",
			amount:       decimal.NewFromInt(-10),
			participants: []string{"Alice"},
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := CalculateShares(tt.amount, tt.participants)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CalculateShares() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(shares) != len(tt.participants) {
				t.Fatalf("got %d shares, want %d", len(shares), len(tt.participants))
			}
			want := decimal.RequireFromString(tt.wantShare)
			for _, p := range tt.participants {
				if !shares[p].Equal(want) {
					t.Errorf("%s share = %s, want %s", p, shares[p], want)
				}
			}
		})
	}
}

func TestCalculateSharesThirdsSumBack(t *testing.T) {
	// 700 / 3 does not terminate; the shares must still add back to the
	// amount once rounded to cents.
	shares, err := CalculateShares(decimal.NewFromInt(700), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("CalculateShares: %v", err)
	}
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s)
	}
	if !sum.Round(2).Equal(decimal.NewFromInt(700)) {
		t.Errorf("sum of shares = %s, want 700", sum)
	}
}
