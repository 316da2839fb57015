package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"45.00", 45},
		{" 12 ", 12},
		{"45.00 GBP", 45},
		{"45abc", 45},
		{"-3.5e2kg", -350},
		{".5", 0.5},
		{"7.", 7},
		{"1e", 1},
		{"Infinity", math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAmount(tt.in))
		})
	}

	for _, in := range []string{"", "n/a", "GBP 45", "-", "."} {
		assert.True(t, math.IsNaN(ParseAmount(in)), "expected NaN for %q", in)
	}
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	var data ProductData
	require.NoError(t, json.Unmarshal([]byte(`{"basePrice":"45.50","oldPrice":null}`), &data))
	assert.Equal(t, Amount(45.5), data.BasePrice)
	// A backend null is a missing price.
	assert.Equal(t, Amount(0), data.OldPrice)

	require.NoError(t, json.Unmarshal([]byte(`{"basePrice":"n/a","oldPrice":60}`), &data))
	assert.False(t, data.BasePrice.Valid())
	assert.Equal(t, Amount(60), data.OldPrice)

	assert.Error(t, json.Unmarshal([]byte(`{"basePrice":true}`), &data))
}

func TestProduct_JSONKeepsNonFinitePrices(t *testing.T) {
	p := Product{
		Slug:            "vertical-blind",
		Price:           47.16,
		OriginalPrice:   Amount(math.NaN()),
		RelatedProducts: []Product{{Slug: "roller", Price: Amount(math.NaN()), OriginalPrice: 10}},
	}

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"originalPrice":null`)

	var back Product
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, Amount(47.16), back.Price)
	assert.True(t, math.IsNaN(back.OriginalPrice.Float64()))
	require.Len(t, back.RelatedProducts, 1)
	assert.True(t, math.IsNaN(back.RelatedProducts[0].Price.Float64()))
	assert.Equal(t, Amount(10), back.RelatedProducts[0].OriginalPrice)
}

func TestProduct_UnmarshalJSON_MissingPriceIsZero(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"slug":"a","price":12.5}`), &p))
	assert.Equal(t, Amount(12.5), p.Price)
	assert.Equal(t, Amount(0), p.OriginalPrice)
}

func TestCart_Recalculate(t *testing.T) {
	c := &Cart{Items: []CartItem{
		{Product: Product{Price: 47.16}, Quantity: 2},
		{Product: Product{Price: Amount(math.NaN())}, Quantity: 1},
		{Product: Product{Price: 0.1}, Quantity: 3},
	}}

	c.Recalculate()

	assert.Equal(t, 94.62, c.Total)
	assert.Equal(t, 6, c.ItemCount)
}
