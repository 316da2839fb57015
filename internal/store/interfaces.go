package store

import (
	"context"
	"errors"

	"blinds-storefront/internal/domain"
)

// Predefined errors for store operations
var (
	ErrProductNotFound = errors.New("store: product not found")
	ErrCartNotFound    = errors.New("store: cart not found")
)

// ProductSource reads raw product records. It is implemented by the backend API
// client and by the Postgres catalog mirror.
type ProductSource interface {
	GetProductBySlug(ctx context.Context, slug string) (*domain.ProductData, error)
	ListProducts(ctx context.Context, limit int) ([]domain.ProductData, error)
}

// CartStorer persists whole cart snapshots keyed by cart ID.
type CartStorer interface {
	GetCart(ctx context.Context, id string) (*domain.Cart, error)
	SaveCart(ctx context.Context, cart *domain.Cart) error
	DeleteCart(ctx context.Context, id string) error
}
