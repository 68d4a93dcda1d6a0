package output

import (
	"fmt"

	"github.com/rpgo/wealth-projector/pkg/money"
)

// FormatCurrency formats an amount in whole units with thousands separators.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(symbol string, amount float64) string {
	return money.NewMoney(amount).Whole(currencyOr(symbol))
}

// FormatCurrencyCents is FormatCurrency with two decimals.
func FormatCurrencyCents(symbol string, amount float64) string {
	return money.NewMoney(amount).Format(currencyOr(symbol), 2)
}

// FormatPercentage formats a fraction (0.045) as a percentage with 2 decimals.
func FormatPercentage(rate float64) string { return fmt.Sprintf("%.2f%%", rate*100) }

func currencyOr(symbol string) string {
	if symbol == "" {
		return money.DefaultSymbol
	}
	return symbol
}

// plain renders a number for machine-readable outputs.
func plain(v float64) string { return fmt.Sprintf("%.2f", v) }
