package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"blinds-storefront/internal/domain"
)

// PostgresStore implements ProductSource over a local mirror of the backend
// catalog and CartStorer over a carts table.
type PostgresStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewPostgresStore creates a new PostgresStore instance.
func NewPostgresStore(db *sql.DB, logger zerolog.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: logger}
}

// --- ProductSource Implementation ---

const productColumns = `id, slug, title, description, base_price, old_price, categories, images, features`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (*domain.ProductData, error) {
	var (
		p           domain.ProductData
		description sql.NullString
		basePrice   sql.NullFloat64
		oldPrice    sql.NullFloat64
		categories  []byte
		images      pq.StringArray
		features    []byte
	)
	if err := row.Scan(&p.ID, &p.Slug, &p.Title, &description, &basePrice, &oldPrice, &categories, &images, &features); err != nil {
		return nil, err
	}
	p.Description = description.String
	p.BasePrice = domain.Amount(basePrice.Float64)
	p.OldPrice = domain.Amount(oldPrice.Float64)
	p.Images = []string(images)
	if p.Images == nil {
		p.Images = []string{}
	}

	p.Categories = []domain.CategoryRef{}
	if len(categories) > 0 {
		if err := json.Unmarshal(categories, &p.Categories); err != nil {
			return nil, fmt.Errorf("decode categories of %q: %w", p.Slug, err)
		}
	}
	if len(features) > 0 && string(features) != "null" {
		var f domain.Features
		if err := json.Unmarshal(features, &f); err != nil {
			return nil, fmt.Errorf("decode features of %q: %w", p.Slug, err)
		}
		p.Features = &f
	}
	return &p, nil
}

func (s *PostgresStore) GetProductBySlug(ctx context.Context, slug string) (*domain.ProductData, error) {
	query := `
		SELECT ` + productColumns + `
		FROM storefront.products
		WHERE slug = $1 AND is_active = TRUE;
	`
	product, err := scanProduct(s.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("store: GetProductBySlug failed to scan row: %w", err)
	}
	return product, nil
}

func (s *PostgresStore) ListProducts(ctx context.Context, limit int) ([]domain.ProductData, error) {
	if limit <= 0 {
		return []domain.ProductData{}, nil
	}
	query := `
		SELECT ` + productColumns + `
		FROM storefront.products
		WHERE is_active = TRUE
		ORDER BY created_at DESC
		LIMIT $1;
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("store: ListProducts failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.ProductData, 0, limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("store: ListProducts failed to scan product row: %w", err)
		}
		products = append(products, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListProducts iteration error: %w", err)
	}
	return products, nil
}

// --- CartStorer Implementation ---

func (s *PostgresStore) GetCart(ctx context.Context, id string) (*domain.Cart, error) {
	query := `
		SELECT id, items, updated_at
		FROM storefront.carts
		WHERE id = $1;
	`
	var (
		cart  domain.Cart
		items []byte
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(&cart.ID, &items, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "22P02" { // invalid_text_representation: malformed uuid
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("store: GetCart failed to scan row: %w", err)
	}
	cart.Items = []domain.CartItem{}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &cart.Items); err != nil {
			return nil, fmt.Errorf("store: GetCart failed to decode items: %w", err)
		}
	}
	// Total and item count are not stored.
	cart.Recalculate()
	return &cart, nil
}

func (s *PostgresStore) SaveCart(ctx context.Context, cart *domain.Cart) error {
	items, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("store: SaveCart failed to encode items: %w", err)
	}
	query := `
		INSERT INTO storefront.carts (id, items, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET items = EXCLUDED.items, updated_at = EXCLUDED.updated_at;
	`
	if _, err := s.db.ExecContext(ctx, query, cart.ID, items, cart.UpdatedAt); err != nil {
		return fmt.Errorf("store: SaveCart failed to upsert cart: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteCart(ctx context.Context, id string) error {
	query := `DELETE FROM storefront.carts WHERE id = $1;`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("store: DeleteCart failed to execute delete: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: DeleteCart failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrCartNotFound
	}
	return nil
}

// Ping checks the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	if s.db == nil {
		return nil
	}
	s.logger.Info().Msg("closing database connection pool")
	if err := s.db.Close(); err != nil {
		s.logger.Error().Err(err).Msg("failed to close database connection pool")
		return err
	}
	return nil
}
