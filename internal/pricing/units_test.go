package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFraction(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"3/4", 0.75},
		{"1/8", 0.125},
		{"7/16", 0.4375},
		{"0", 0},
		{"", 0},
		{"3/0", 0},
		{"abc/2", 0},
		{"1/abc", 0},
		{"1/2/3", 0},
		{"5", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFraction(tt.in))
		})
	}
}

func TestToMeters(t *testing.T) {
	assert.InDelta(t, 0.6096, ToMeters(24, "0"), 1e-9)
	assert.InDelta(t, 24.5*MetersPerInch, ToMeters(24, "1/2"), 1e-9)
	assert.InDelta(t, 0, ToMeters(0, ""), 1e-9)
}

func TestCalculatePrice_DefaultSize(t *testing.T) {
	area := AreaSquareMeters(24, "0", 24, "0")
	assert.InDelta(t, 0.37161216, area, 1e-9)

	price := CalculatePrice(100, 24, "0", 24, "0")
	assert.InDelta(t, 37.161216, price, 1e-9)
	assert.Equal(t, 37.16, FormatPrice(price))
}

func TestCalculatePrice_MalformedFractionsCountAsZero(t *testing.T) {
	assert.Equal(t,
		CalculatePrice(50, 30, "0", 40, "0"),
		CalculatePrice(50, 30, "bad", 40, "2/0"),
	)
}

func TestCalculatePrice_NaNRatePropagates(t *testing.T) {
	price := CalculatePrice(ParseRate("not-a-number"), 24, "0", 24, "0")
	assert.True(t, math.IsNaN(price))
}

func TestParseRate(t *testing.T) {
	assert.Equal(t, 45.5, ParseRate("45.50"))
	assert.Equal(t, 12.0, ParseRate(" 12 "))
	assert.True(t, math.IsNaN(ParseRate("")))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, 37.16, FormatPrice(37.1595))
	assert.Equal(t, 37.16, FormatPrice(37.164))
	assert.Equal(t, 10.13, FormatPrice(10.125))
	assert.Equal(t, -10.13, FormatPrice(-10.125))
	assert.Equal(t, 0.0, FormatPrice(0))
}
