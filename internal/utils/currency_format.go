package utils

import (
	"github.com/shopspring/decimal"
)

// FormatCents formats an integer cent amount as a dollar string, e.g.
// 1100 -> "11.00". Ledger amounts are stored in minor units; formatting is
// display-only.
func FormatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}

// PlatformFeeFromBps computes the platform fee (in cents) for a gross amount
// given a commission expressed in basis points, rounding half up to the
// nearest cent. Example: gross 5000, 2000 bps -> 1000.
func PlatformFeeFromBps(grossCents int64, commissionBps int) int64 {
	fee := decimal.NewFromInt(grossCents).
		Mul(decimal.NewFromInt(int64(commissionBps))).
		Div(decimal.NewFromInt(10000))
	return fee.Round(0).IntPart()
}
