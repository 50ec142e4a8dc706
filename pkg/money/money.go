// Package money holds the currency arithmetic for cart totals and
// change. Amounts are decimal, never binary floating point, so the
// total and change invariants hold to exact equality.
package money

import (
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/adiwijaya/tokokita-backend/pkg/errors"
)

// ParseAmount turns user-entered text into a non-negative amount.
func ParseAmount(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeInvalidAmount, "amount is required")
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeInvalidAmount, err, "amount is not a number").
			WithDetails(map[string]any{"amount": raw})
	}
	if amount.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeInvalidAmount, "amount cannot be negative").
			WithDetails(map[string]any{"amount": raw})
	}
	return amount, nil
}

// LineTotal is unit price times quantity.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// Sum adds the provided amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	return total
}
