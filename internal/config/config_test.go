package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", c.HttpServer.Port)
	assert.Equal(t, "9090", c.GrpcServer.Port)
	assert.Equal(t, CatalogSourceAPI, c.Storefront.CatalogSource)
	assert.Equal(t, CartBackendMemory, c.Storefront.CartBackend)
	assert.Equal(t, FeatureModeDerived, c.Storefront.FeatureMode)
	assert.Equal(t, "GBP", c.Storefront.Currency)
	assert.Equal(t, 4, c.Storefront.RelatedLimit)
	assert.Equal(t, 24*time.Hour, c.Redis.CartTTL)
	assert.Equal(t, 10*time.Second, c.Backend.Timeout)
	assert.False(t, c.UsesPostgres())
}

func TestLoad_PostgresRequiredOnlyWhenSelected(t *testing.T) {
	t.Setenv("CART_BACKEND", "postgres")
	t.Setenv("POSTGRES_HOST", "")
	t.Setenv("POSTGRES_USER", "")
	t.Setenv("POSTGRES_PASSWORD", "")
	t.Setenv("POSTGRES_DBNAME", "")

	_, err := Load()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "POSTGRES_HOST")

	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_USER", "shop")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DBNAME", "storefront")

	c, err := Load()
	require.NoError(t, err)
	assert.True(t, c.UsesPostgres())
	assert.Equal(t, "host=db port=5432 user=shop password=secret dbname=storefront sslmode=disable", c.Postgres.DSN())
}

func TestLoad_InvalidEnums(t *testing.T) {
	for _, env := range []string{"CATALOG_SOURCE", "CART_BACKEND", "FEATURE_MODE"} {
		t.Run(env, func(t *testing.T) {
			t.Setenv(env, "bogus")
			_, err := Load()
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), env)
		})
	}
}

func TestLoad_NormalizesCase(t *testing.T) {
	t.Setenv("CART_BACKEND", "Redis")
	t.Setenv("STOREFRONT_CURRENCY", "usd")

	c, err := Load()

	require.NoError(t, err)
	assert.Equal(t, CartBackendRedis, c.Storefront.CartBackend)
	assert.Equal(t, "USD", c.Storefront.Currency)
}
