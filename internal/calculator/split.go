package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CalculateShares splits amount equally among participants. Every
// participant, including whoever paid, carries one share.
func CalculateShares(amount decimal.Decimal, participants []string) (map[string]decimal.Decimal, error) {
	if len(participants) == 0 {
		return nil, fmt.Errorf("must have at least one participant")
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("amount cannot be negative: %s", amount)
	}

	share := amount.Div(decimal.NewFromInt(int64(len(participants))))
	shares := make(map[string]decimal.Decimal, len(participants))
	for _, p := range participants {
		shares[p] = share
	}
	return shares, nil
}
