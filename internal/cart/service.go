package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"blinds-storefront/internal/domain"
	"blinds-storefront/internal/store"
)

// Service loads, mutates and saves carts through a store.CartStorer.
type Service struct {
	carts  store.CartStorer
	logger zerolog.Logger
	now    func() time.Time
	newID  IDFunc

	// mu serializes read-modify-write cycles within this process.
	mu sync.Mutex
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// WithIDFunc overrides the id generator.
func WithIDFunc(fn IDFunc) ServiceOption {
	return func(s *Service) { s.newID = fn }
}

// NewService creates a cart Service.
func NewService(carts store.CartStorer, logger zerolog.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		carts:  carts,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create saves and returns a new empty cart.
func (s *Service) Create(ctx context.Context) (*domain.Cart, error) {
	c := New(s.newID(), s.now())
	if err := s.carts.SaveCart(ctx, c); err != nil {
		return nil, fmt.Errorf("cart: create: %w", err)
	}
	s.logger.Debug().Str("cart_id", c.ID).Msg("cart created")
	return c, nil
}

// Get returns the cart with id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Cart, error) {
	c, err := s.carts.GetCart(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cart: get %s: %w", id, err)
	}
	Recalculate(c)
	return c, nil
}

// AddToCart adds product, which must carry its finalized price, as a new item.
func (s *Service) AddToCart(ctx context.Context, cartID string, product domain.Product, cfg domain.ProductConfiguration) (*domain.Cart, *domain.CartItem, error) {
	var item domain.CartItem
	c, err := s.mutate(ctx, cartID, func(c *domain.Cart, now time.Time) error {
		item = Add(c, product, cfg, now, s.newID)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info().
		Str("cart_id", cartID).
		Str("item_id", item.ID).
		Str("slug", product.Slug).
		Float64("price", product.Price.Float64()).
		Msg("item added to cart")
	return c, &item, nil
}

// RemoveFromCart removes one item.
func (s *Service) RemoveFromCart(ctx context.Context, cartID, itemID string) (*domain.Cart, error) {
	return s.mutate(ctx, cartID, func(c *domain.Cart, now time.Time) error {
		return Remove(c, itemID, now)
	})
}

// UpdateQuantity changes an item's quantity; zero or less removes the item.
func (s *Service) UpdateQuantity(ctx context.Context, cartID, itemID string, quantity int) (*domain.Cart, error) {
	return s.mutate(ctx, cartID, func(c *domain.Cart, now time.Time) error {
		return UpdateQuantity(c, itemID, quantity, now)
	})
}

// ClearCart removes every item but keeps the cart.
func (s *Service) ClearCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	return s.mutate(ctx, cartID, func(c *domain.Cart, now time.Time) error {
		Clear(c, now)
		return nil
	})
}

// Delete removes the cart from the store entirely.
func (s *Service) Delete(ctx context.Context, cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.carts.DeleteCart(ctx, cartID); err != nil {
		return fmt.Errorf("cart: delete %s: %w", cartID, err)
	}
	s.logger.Info().Str("cart_id", cartID).Msg("cart deleted")
	return nil
}

func (s *Service) mutate(ctx context.Context, cartID string, fn func(*domain.Cart, time.Time) error) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.carts.GetCart(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("cart: load %s: %w", cartID, err)
	}
	Recalculate(c)
	if err := fn(c, s.now()); err != nil {
		return nil, err
	}
	if err := s.carts.SaveCart(ctx, c); err != nil {
		return nil, fmt.Errorf("cart: save %s: %w", cartID, err)
	}
	return c, nil
}
