package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"blinds-storefront/internal/domain"
)

var (
	vertical = domain.CategoryRef{Name: "Vertical Blinds", Slug: "vertical-blinds"}
	roller   = domain.CategoryRef{Name: "Roller Blinds", Slug: "roller-blinds"}
)

func slugs(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Slug)
	}
	return out
}

func mapDefault(raw domain.ProductData) domain.Product {
	return MapProductDataToProduct(raw)
}

func TestRelatedProducts_SameCategoryFirst(t *testing.T) {
	target := rawProduct("v1", vertical)
	all := []domain.ProductData{
		rawProduct("r1", roller),
		target,
		rawProduct("v2", vertical),
		rawProduct("r2", roller),
		rawProduct("v3", vertical),
	}

	related := RelatedProducts(target, all, 4, mapDefault)

	assert.Equal(t, []string{"v2", "v3", "r1", "r2"}, slugs(related))
}

func TestRelatedProducts_Limit(t *testing.T) {
	target := rawProduct("v1", vertical)
	all := []domain.ProductData{
		rawProduct("v2", vertical),
		rawProduct("v3", vertical),
		rawProduct("v4", vertical),
		rawProduct("r1", roller),
	}

	assert.Equal(t, []string{"v2", "v3"}, slugs(RelatedProducts(target, all, 2, mapDefault)))
	assert.Empty(t, RelatedProducts(target, all, 0, mapDefault))
	assert.NotPanics(t, func() {
		assert.Empty(t, RelatedProducts(target, all, -1, mapDefault))
	})
}

func TestRelatedProducts_NoDuplicatesOrSelf(t *testing.T) {
	target := rawProduct("v1", vertical)
	all := []domain.ProductData{target, rawProduct("v2", vertical), rawProduct("v2", vertical), target}

	assert.Equal(t, []string{"v2"}, slugs(RelatedProducts(target, all, 4, mapDefault)))
}

func TestRelatedProducts_TargetWithoutCategory(t *testing.T) {
	target := rawProduct("plain")
	all := []domain.ProductData{rawProduct("v2", vertical), target, rawProduct("r1", roller)}

	assert.Equal(t, []string{"v2", "r1"}, slugs(RelatedProducts(target, all, 4, mapDefault)))
}
