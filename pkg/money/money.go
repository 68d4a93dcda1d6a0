package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultSymbol is the currency symbol used for display when none is configured.
const DefaultSymbol = "R$"

// Money represents a monetary amount with decimal precision.
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// String returns the amount with two decimals and no grouping.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount as "<symbol> 1,234.56" with the given number of
// decimal places. An empty symbol omits the prefix.
func (m Money) Format(symbol string, places int32) string {
	s := Group(m.Decimal.StringFixed(places))
	if symbol == "" {
		return s
	}
	if strings.HasPrefix(s, "-") {
		return "-" + symbol + " " + s[1:]
	}
	return symbol + " " + s
}

// Whole renders the amount rounded to whole units, e.g. "R$ 1,234".
func (m Money) Whole(symbol string) string { return m.Format(symbol, 0) }

// Group inserts thousands separators into a plain decimal string.
func Group(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if len(intPart) <= 3 {
		return sign + intPart + frac
	}
	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return sign + b.String() + frac
}
