// Package pricing converts made-to-measure dimensions into area-based prices.
//
// Dimensions are whole inches plus a fraction string such as "3/8". Prices are
// rates per square meter. Nothing in this package returns an error: malformed
// fractions count as zero and unparsable rates propagate as NaN.
package pricing

import (
	"math"
	"strconv"
	"strings"

	"blinds-storefront/internal/domain"
)

// MetersPerInch converts inches to meters.
const MetersPerInch = 0.0254

// ParseFraction turns "n/d" into n/d. Empty input, "0", anything that is not
// exactly two numeric parts, and a zero denominator all give 0.
func ParseFraction(s string) float64 {
	if s == "" || s == "0" {
		return 0
	}
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return 0
	}
	numerator, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0
	}
	denominator, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// ToMeters converts whole inches plus a fraction to meters.
func ToMeters(whole int, fraction string) float64 {
	return (float64(whole) + ParseFraction(fraction)) * MetersPerInch
}

// AreaSquareMeters is the area of a width x height blind in square meters.
func AreaSquareMeters(width int, widthFraction string, height int, heightFraction string) float64 {
	return ToMeters(width, widthFraction) * ToMeters(height, heightFraction)
}

// CalculatePrice multiplies a per-square-meter rate by the blind's area.
// The result is not rounded; see FormatPrice.
func CalculatePrice(pricePerSquareMeter float64, width int, widthFraction string, height int, heightFraction string) float64 {
	return pricePerSquareMeter * AreaSquareMeters(width, widthFraction, height, heightFraction)
}

// ParseRate parses a per-square-meter rate given as a string. Unparsable input is NaN.
func ParseRate(s string) float64 {
	return domain.ParseAmount(s)
}

// FormatPrice rounds to 2 decimal places, halves away from zero.
func FormatPrice(price float64) float64 {
	return math.Round(price*100) / 100
}
