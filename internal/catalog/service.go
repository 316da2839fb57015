package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"blinds-storefront/internal/domain"
	"blinds-storefront/internal/store"
)

// relatedCandidates caps how many products are scanned for related products.
const relatedCandidates = 100

// ProductPage is everything the product detail page needs.
type ProductPage struct {
	Product                     domain.Product     `json:"product"`
	Raw                         domain.ProductData `json:"-"`
	BasePricePerSquareMeter     domain.Amount      `json:"basePricePerSquareMeter"`
	OriginalPricePerSquareMeter domain.Amount      `json:"originalPricePerSquareMeter"`
}

// Service reads products from a ProductSource and maps them for display.
type Service struct {
	products     store.ProductSource
	features     FeatureResolver
	relatedLimit int
	logger       zerolog.Logger
}

// NewService creates a catalog Service. A nil resolver keeps the static defaults.
func NewService(products store.ProductSource, features FeatureResolver, relatedLimit int, logger zerolog.Logger) *Service {
	if features == nil {
		features = StaticFeatures
	}
	if relatedLimit < 0 {
		relatedLimit = DefaultRelatedLimit
	}
	return &Service{
		products:     products,
		features:     features,
		relatedLimit: relatedLimit,
		logger:       logger,
	}
}

// Map maps one raw product with the service's feature resolver.
func (s *Service) Map(raw domain.ProductData) domain.Product {
	return MapProductDataToProduct(raw, WithFeatureResolver(s.features))
}

// LoadProduct loads and maps one product without related products.
func (s *Service) LoadProduct(ctx context.Context, slug string) (*ProductPage, error) {
	raw, err := s.products.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("catalog: load product %q: %w", slug, err)
	}
	return &ProductPage{
		Product:                     s.Map(*raw),
		Raw:                         *raw,
		BasePricePerSquareMeter:     domain.Amount(GetBasePricePerSquareMeter(*raw)),
		OriginalPricePerSquareMeter: domain.Amount(GetOriginalPricePerSquareMeter(*raw)),
	}, nil
}

// ProductPage loads a product by slug together with its related products.
// Failing to load related products is not an error; the list is left empty.
func (s *Service) ProductPage(ctx context.Context, slug string) (*ProductPage, error) {
	page, err := s.LoadProduct(ctx, slug)
	if err != nil {
		return nil, err
	}

	all, err := s.products.ListProducts(ctx, relatedCandidates)
	if err != nil {
		s.logger.Warn().Err(err).Str("slug", slug).Msg("failed to load related products")
		return page, nil
	}
	page.Product.RelatedProducts = RelatedProducts(page.Raw, all, s.relatedLimit, s.Map)
	return page, nil
}

// Rate returns the per-square-meter selling rate for the customization engine.
func (p *ProductPage) Rate() *float64 {
	rate := p.BasePricePerSquareMeter.Float64()
	return &rate
}

// ListProducts returns up to limit display products.
func (s *Service) ListProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	raws, err := s.products.ListProducts(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("catalog: list products: %w", err)
	}
	out := make([]domain.Product, 0, len(raws))
	for _, raw := range raws {
		out = append(out, s.Map(raw))
	}
	return out, nil
}
