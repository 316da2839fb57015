// Package cart holds the cart operations. Items are identified by their own id,
// so the same product added twice with different configurations stays two items.
package cart

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"blinds-storefront/internal/domain"
)

// ErrItemNotFound is returned when an item id is not in the cart.
var ErrItemNotFound = errors.New("cart: item not found")

// IDFunc generates cart and cart item ids.
type IDFunc func() string

// NewID returns a random UUID string.
func NewID() string {
	return uuid.NewString()
}

// New returns an empty cart.
func New(id string, now time.Time) *domain.Cart {
	return &domain.Cart{ID: id, Items: []domain.CartItem{}, UpdatedAt: now}
}

// Add appends a new item with quantity 1. product must already carry its
// finalized price.
func Add(c *domain.Cart, product domain.Product, cfg domain.ProductConfiguration, now time.Time, idFn IDFunc) domain.CartItem {
	if idFn == nil {
		idFn = NewID
	}
	item := domain.CartItem{
		ID:            idFn(),
		Product:       product,
		Configuration: cfg,
		Quantity:      1,
		AddedAt:       now,
	}
	c.Items = append(c.Items, item)
	c.UpdatedAt = now
	Recalculate(c)
	return item
}

// Remove deletes the item with itemID.
func Remove(c *domain.Cart, itemID string, now time.Time) error {
	i := indexOf(c, itemID)
	if i < 0 {
		return ErrItemNotFound
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	c.UpdatedAt = now
	Recalculate(c)
	return nil
}

// UpdateQuantity sets the quantity of an item. A quantity of zero or less
// removes it.
func UpdateQuantity(c *domain.Cart, itemID string, quantity int, now time.Time) error {
	if quantity <= 0 {
		return Remove(c, itemID, now)
	}
	i := indexOf(c, itemID)
	if i < 0 {
		return ErrItemNotFound
	}
	c.Items[i].Quantity = quantity
	c.UpdatedAt = now
	Recalculate(c)
	return nil
}

// Clear empties the cart.
func Clear(c *domain.Cart, now time.Time) {
	c.Items = []domain.CartItem{}
	c.UpdatedAt = now
	Recalculate(c)
}

// Recalculate refreshes the cart's derived Total and ItemCount.
func Recalculate(c *domain.Cart) {
	c.Recalculate()
}

func indexOf(c *domain.Cart, itemID string) int {
	for i, item := range c.Items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}
