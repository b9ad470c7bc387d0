package services

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount as dollars with thousands separators and
// exactly 2 decimal places (e.g., $12,345.60).
func FormatMoney(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	amount = amount.Round(2)
	whole := amount.IntPart()
	cents := amount.Sub(decimal.NewFromInt(whole)).Shift(2).IntPart()
	return fmt.Sprintf("%s$%s.%02d", sign, humanize.Comma(whole), cents)
}

// FormatWholeMoney formats an amount rounded to whole dollars (e.g., $5,850).
func FormatWholeMoney(amount decimal.Decimal) string {
	whole := amount.Round(0).IntPart()
	if whole < 0 {
		return "-$" + humanize.Comma(-whole)
	}
	return "$" + humanize.Comma(whole)
}

// formatMetres prints a distance without trailing zeros ("3", "4.5").
func formatMetres(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}
