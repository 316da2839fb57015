package pricing

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// UnavailablePrice is shown in place of a price that is not a finite number.
const UnavailablePrice = "N/A"

var currencySymbols = map[string]string{
	"GBP": "£",
	"USD": "$",
	"EUR": "€",
}

// FormatPriceWithCurrency renders a price for display, e.g. "£1,234.50".
// Currencies without a known symbol are prefixed with their code ("CHF 12.00").
// NaN and infinite prices render as UnavailablePrice.
func FormatPriceWithCurrency(price float64, currency string) string {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return UnavailablePrice
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))

	amount := decimal.NewFromFloat(price).Round(2)
	neg := amount.IsNegative()
	digits := amount.Abs().StringFixed(2)

	intPart, fracPart := digits, ""
	if i := strings.IndexByte(digits, '.'); i >= 0 {
		intPart, fracPart = digits[:i], digits[i:]
	}

	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3 + 6)
	if neg {
		b.WriteString("-")
	}
	if symbol, ok := currencySymbols[currency]; ok {
		b.WriteString(symbol)
	} else if currency != "" {
		b.WriteString(currency)
		b.WriteString(" ")
	}

	// Thousands separators, inserted from the left.
	rem := len(intPart) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(intPart[:rem])
	for i := rem; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteString(fracPart)
	return b.String()
}
