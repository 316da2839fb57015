package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one configured product in a cart. Product holds a snapshot whose
// Price is the finalized, customized price at the time it was added.
type CartItem struct {
	ID            string               `json:"id"`
	Product       Product              `json:"product"`
	Configuration ProductConfiguration `json:"configuration"`
	Quantity      int                  `json:"quantity"`
	AddedAt       time.Time            `json:"addedAt"`
}

// Cart is a session cart. Total and ItemCount are derived from Items.
type Cart struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"itemCount"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Recalculate refreshes Total and ItemCount from the items. Totals are summed
// in decimal and rounded to 2 places; items with a non-finite price are skipped.
func (c *Cart) Recalculate() {
	total := decimal.Zero
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
		if !item.Product.Price.Valid() {
			continue
		}
		line := decimal.NewFromFloat(item.Product.Price.Float64()).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	c.Total = total.Round(2).InexactFloat64()
	c.ItemCount = count
}
