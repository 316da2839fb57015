package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blinds-storefront/internal/domain"
)

// Helper function to create a mock DB and PostgresStore for testing
func newMockDBAndStore(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresStore) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	store := NewPostgresStore(db, zerolog.Nop())
	require.NotNil(t, store, "Store should not be nil")

	return db, mock, store
}

var productRowColumns = []string{"id", "slug", "title", "description", "base_price", "old_price", "categories", "images", "features"}

func TestPostgresStore_GetProductBySlug_Found(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	query := regexp.QuoteMeta(`
		SELECT ` + productColumns + `
		FROM storefront.products
		WHERE slug = $1 AND is_active = TRUE;
	`)

	rows := sqlmock.NewRows(productRowColumns).AddRow(
		int64(7), "vertical-blind", "Vertical Blind", "Made to measure", 100.0, 120.0,
		[]byte(`[{"name":"Vertical Blinds","slug":"vertical-blinds"}]`),
		[]byte(`{"a.jpg","b.jpg"}`),
		[]byte(`{"hasSize":true,"hasHeadrail":true}`),
	)
	mock.ExpectQuery(query).WithArgs("vertical-blind").WillReturnRows(rows)

	product, err := store.GetProductBySlug(context.Background(), "vertical-blind")

	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, int64(7), product.ID)
	assert.Equal(t, "Vertical Blind", product.Title)
	assert.Equal(t, domain.Amount(100), product.BasePrice)
	assert.Equal(t, domain.Amount(120), product.OldPrice)
	assert.Equal(t, []domain.CategoryRef{{Name: "Vertical Blinds", Slug: "vertical-blinds"}}, product.Categories)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, product.Images)
	require.NotNil(t, product.Features)
	assert.True(t, product.Features.HasHeadrail)

	require.NoError(t, mock.ExpectationsWereMet(), "SQLmock expectations were not met")
}

func TestPostgresStore_GetProductBySlug_NullColumns(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	rows := sqlmock.NewRows(productRowColumns).AddRow(
		int64(8), "plain", "Plain", nil, nil, nil, nil, nil, nil,
	)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM storefront.products`)).WithArgs("plain").WillReturnRows(rows)

	product, err := store.GetProductBySlug(context.Background(), "plain")

	require.NoError(t, err)
	assert.Empty(t, product.Description)
	assert.NotNil(t, product.Categories)
	assert.NotNil(t, product.Images)
	assert.Nil(t, product.Features)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetProductBySlug_NotFound(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM storefront.products`)).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	product, err := store.GetProductBySlug(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProductNotFound), "Error should be ErrProductNotFound")
	assert.Nil(t, product)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListProducts(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	query := regexp.QuoteMeta(`
		SELECT ` + productColumns + `
		FROM storefront.products
		WHERE is_active = TRUE
		ORDER BY created_at DESC
		LIMIT $1;
	`)
	rows := sqlmock.NewRows(productRowColumns).
		AddRow(int64(1), "a", "A", "", 10.0, 12.0, []byte(`[]`), []byte(`{}`), nil).
		AddRow(int64(2), "b", "B", "", 20.0, 22.0, []byte(`[{"name":"Roller Blinds","slug":"roller-blinds"}]`), []byte(`{b.jpg}`), nil)
	mock.ExpectQuery(query).WithArgs(2).WillReturnRows(rows)

	products, err := store.ListProducts(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "a", products[0].Slug)
	assert.Empty(t, products[0].Categories)
	assert.Equal(t, "roller-blinds", products[1].Categories[0].Slug)
	assert.Equal(t, []string{"b.jpg"}, products[1].Images)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListProducts_ZeroLimit(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	products, err := store.ListProducts(context.Background(), 0)

	require.NoError(t, err)
	assert.Empty(t, products)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListProducts_QueryError(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	dbErr := errors.New("connection refused")
	mock.ExpectQuery(regexp.QuoteMeta(`FROM storefront.products`)).WithArgs(5).WillReturnError(dbErr)

	_, err := store.ListProducts(context.Background(), 5)

	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveCart(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	now := time.Now().UTC().Truncate(time.Millisecond)
	cart := &domain.Cart{
		ID:        "0b6f4c2e-8f6f-4f1a-9d7e-2b1f0c9a7e11",
		Items:     []domain.CartItem{{ID: "i1", Quantity: 1, Product: domain.Product{Slug: "a", Price: 10}}},
		UpdatedAt: now,
	}

	query := regexp.QuoteMeta(`
		INSERT INTO storefront.carts (id, items, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET items = EXCLUDED.items, updated_at = EXCLUDED.updated_at;
	`)
	mock.ExpectExec(query).
		WithArgs(cart.ID, sqlmock.AnyArg(), now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.SaveCart(context.Background(), cart))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetCart_Found(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	now := time.Now().UTC().Truncate(time.Millisecond)
	items := []byte(`[{"id":"i1","product":{"slug":"a","price":47.16,"originalPrice":null},"configuration":{"width":24,"widthFraction":"0","height":24,"heightFraction":"0","headrail":"classic"},"quantity":2,"addedAt":"2025-12-01T10:00:00Z"}]`)
	rows := sqlmock.NewRows([]string{"id", "items", "updated_at"}).AddRow("cart-1", items, now)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM storefront.carts`)).WithArgs("cart-1").WillReturnRows(rows)

	cart, err := store.GetCart(context.Background(), "cart-1")

	require.NoError(t, err)
	assert.Equal(t, "cart-1", cart.ID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, domain.Amount(47.16), cart.Items[0].Product.Price)
	assert.False(t, cart.Items[0].Product.OriginalPrice.Valid())
	assert.Equal(t, "classic", cart.Items[0].Configuration.Headrail)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 94.32, cart.Total)
	assert.Equal(t, 2, cart.ItemCount)
	assert.WithinDuration(t, now, cart.UpdatedAt, time.Second)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetCart_NotFound(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM storefront.carts`)).WithArgs("nope").WillReturnError(sql.ErrNoRows)
	_, err := store.GetCart(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrCartNotFound)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM storefront.carts`)).WithArgs("not-a-uuid").WillReturnError(&pq.Error{Code: "22P02"})
	_, err = store.GetCart(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrCartNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteCart(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	query := regexp.QuoteMeta(`DELETE FROM storefront.carts WHERE id = $1;`)
	mock.ExpectExec(query).WithArgs("cart-1").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, store.DeleteCart(context.Background(), "cart-1"))

	mock.ExpectExec(query).WithArgs("cart-2").WillReturnResult(sqlmock.NewResult(0, 0))
	err := store.DeleteCart(context.Background(), "cart-2")
	assert.True(t, errors.Is(err, ErrCartNotFound), "Error should be ErrCartNotFound")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Close(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)

	mock.ExpectClose()
	require.NoError(t, store.Close())
	require.NoError(t, mock.ExpectationsWereMet())
	_ = db
}
