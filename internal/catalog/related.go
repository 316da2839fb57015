package catalog

import "blinds-storefront/internal/domain"

// DefaultRelatedLimit is how many related products a product page shows.
const DefaultRelatedLimit = 4

// RelatedProducts picks up to limit products for the page of target. Products
// sharing target's first category come first, then other products top the list
// up. target itself is never included and slugs are not repeated.
func RelatedProducts(target domain.ProductData, all []domain.ProductData, limit int, mapFn func(domain.ProductData) domain.Product) []domain.Product {
	if limit <= 0 {
		return []domain.Product{}
	}
	related := make([]domain.Product, 0, limit)

	categorySlug := ""
	if len(target.Categories) > 0 {
		categorySlug = target.Categories[0].Slug
	}

	seen := map[string]struct{}{target.Slug: {}}
	take := func(sameCategory bool) {
		for _, candidate := range all {
			if len(related) >= limit {
				return
			}
			if _, dup := seen[candidate.Slug]; dup {
				continue
			}
			if categorySlug != "" && hasCategory(candidate, categorySlug) != sameCategory {
				continue
			}
			seen[candidate.Slug] = struct{}{}
			related = append(related, mapFn(candidate))
		}
	}

	take(true)
	if categorySlug != "" {
		take(false)
	}
	return related
}

func hasCategory(p domain.ProductData, slug string) bool {
	for _, c := range p.Categories {
		if c.Slug == slug {
			return true
		}
	}
	return false
}
