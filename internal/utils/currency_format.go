package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CentsToEuros converts an integer cent amount to a decimal euro amount.
func CentsToEuros(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FormatCents renders a cent amount the way de-DE formats EUR.
// Example: 150 returns "1,50 €", -123456 returns "-1.234,56 €".
func FormatCents(cents int64) string {
	euros := CentsToEuros(cents)
	sign := ""
	if euros.IsNegative() {
		sign = "-"
		euros = euros.Abs()
	}

	fixed := euros.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	return sign + b.String() + "," + fracPart + " €"
}
