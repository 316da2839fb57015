// Package catalog turns raw backend product records into display products and
// maps storefront filters onto backend tags.
package catalog

import (
	"blinds-storefront/internal/customize"
	"blinds-storefront/internal/domain"
	"blinds-storefront/internal/pricing"
)

// Default size the listing price is quoted for, in inches.
const (
	DefaultWidth          = 24
	DefaultWidthFraction  = "0"
	DefaultHeight         = 24
	DefaultHeightFraction = "0"
)

// FeatureResolver decides which customization groups a product offers.
type FeatureResolver func(raw domain.ProductData, category string) domain.Features

type mapOptions struct {
	width, height                 int
	widthFraction, heightFraction string
	features                      FeatureResolver
}

// MapOption customizes MapProductDataToProduct.
type MapOption func(*mapOptions)

// WithDefaultSize sets the size the display price is computed for.
func WithDefaultSize(width int, widthFraction string, height int, heightFraction string) MapOption {
	return func(o *mapOptions) {
		o.width, o.widthFraction = width, widthFraction
		o.height, o.heightFraction = height, heightFraction
	}
}

// WithFeatureResolver replaces the static default feature set.
func WithFeatureResolver(r FeatureResolver) MapOption {
	return func(o *mapOptions) {
		if r != nil {
			o.features = r
		}
	}
}

// StaticFeatures ignores the product and returns domain.DefaultFeatures.
func StaticFeatures(domain.ProductData, string) domain.Features {
	return domain.DefaultFeatures()
}

// MapProductDataToProduct builds the display product. Prices are per-square-meter
// rates multiplied by the default size's area and rounded to 2 decimals; a rate
// that did not parse stays NaN.
func MapProductDataToProduct(raw domain.ProductData, opts ...MapOption) domain.Product {
	o := mapOptions{
		width:          DefaultWidth,
		widthFraction:  DefaultWidthFraction,
		height:         DefaultHeight,
		heightFraction: DefaultHeightFraction,
		features:       StaticFeatures,
	}
	for _, opt := range opts {
		opt(&o)
	}

	category := domain.DefaultCategory
	if len(raw.Categories) > 0 {
		category = raw.Categories[0].Name
	}

	area := pricing.AreaSquareMeters(o.width, o.widthFraction, o.height, o.heightFraction)
	price := GetBasePricePerSquareMeter(raw) * area
	originalPrice := GetOriginalPricePerSquareMeter(raw) * area

	images := raw.Images
	if images == nil {
		images = []string{}
	}

	return domain.Product{
		ID:                raw.ID,
		Name:              raw.Title,
		Slug:              raw.Slug,
		Category:          category,
		Price:             domain.Amount(pricing.FormatPrice(price)),
		OriginalPrice:     domain.Amount(pricing.FormatPrice(originalPrice)),
		Rating:            domain.DefaultRating,
		ReviewCount:       domain.DefaultReviewCount,
		EstimatedDelivery: domain.DefaultEstimatedDelivery,
		Description:       raw.Description,
		Images:            images,
		Features:          o.features(raw, category),
		Reviews:           []domain.Review{},
		RelatedProducts:   []domain.Product{},
	}
}

// GetBasePricePerSquareMeter returns the raw selling rate without area multiplication.
func GetBasePricePerSquareMeter(raw domain.ProductData) float64 {
	return raw.BasePrice.Float64()
}

// GetOriginalPricePerSquareMeter returns the raw pre-discount rate.
func GetOriginalPricePerSquareMeter(raw domain.ProductData) float64 {
	return raw.OldPrice.Float64()
}

// ResolveFeatures prefers flags sent by the backend and otherwise derives them
// from the product family: roller and day/night blinds have no headrail.
func ResolveFeatures(raw domain.ProductData, category string) domain.Features {
	if raw.Features != nil {
		return *raw.Features
	}
	f := domain.DefaultFeatures()
	f.HasInstallationMethod = true
	f.HasControlOption = true

	switch customize.ClassifyFamily(category) {
	case customize.FamilyRoller:
		f.HasChainColor = true
		f.HasWrappedCassette = true
		f.HasCassetteMatchingBar = true
	default:
		f.HasHeadrail = true
		f.HasHeadrailColour = true
		f.HasStacking = true
		f.HasControlSide = true
		f.HasBottomChain = true
		f.HasBracketType = true
	}
	return f
}
