// Package customize prices a configured blind and decides which option groups
// a customer is shown. Everything here is a pure function of the product, its
// feature flags and the current configuration; unknown option ids cost nothing.
package customize

import (
	"math"
	"strings"

	"blinds-storefront/internal/domain"
	"blinds-storefront/internal/pricing"
)

// DefaultCurrency is used by Evaluate.
const DefaultCurrency = "GBP"

// Family selects between the two option table pairs.
type Family string

const (
	// FamilyStandard products hang from a headrail (vertical blinds and the like).
	FamilyStandard Family = "standard"
	// FamilyRoller covers roller and day/night blinds, which have no headrail.
	FamilyRoller Family = "roller"
)

// ClassifyFamily maps a category name to its family.
func ClassifyFamily(category string) Family {
	c := strings.ToLower(category)
	if strings.Contains(c, "roller") || strings.Contains(c, "day") || strings.Contains(c, "night") {
		return FamilyRoller
	}
	return FamilyStandard
}

// Visibility says which option groups are shown for the current configuration.
type Visibility struct {
	Size                bool `json:"showSize"`
	Headrail            bool `json:"showHeadrail"`
	HeadrailColour      bool `json:"showHeadrailColour"`
	InstallationMethod  bool `json:"showInstallationMethod"`
	ControlOption       bool `json:"showControlOption"`
	Stacking            bool `json:"showStacking"`
	ControlSide         bool `json:"showControlSide"`
	BottomChain         bool `json:"showBottomChain"`
	BracketType         bool `json:"showBracketType"`
	ChainColor          bool `json:"showChainColor"`
	WrappedCassette     bool `json:"showWrappedCassette"`
	CassetteMatchingBar bool `json:"showCassetteMatchingBar"`
}

// VisibilityFor applies the headrail rules. The chain colour and cassette groups
// are left false; they follow product flags, see Evaluate.
func VisibilityFor(family Family, headrail string) Visibility {
	if family == FamilyRoller {
		return Visibility{
			Size:               true,
			InstallationMethod: true,
			ControlOption:      true,
		}
	}

	classicOrPlatinum := headrail == HeadrailClassic || headrail == HeadrailPlatinum
	return Visibility{
		Size:               true,
		Headrail:           true,
		HeadrailColour:     headrail == HeadrailPlatinum,
		InstallationMethod: classicOrPlatinum,
		ControlOption:      classicOrPlatinum,
		Stacking:           classicOrPlatinum,
		ControlSide:        classicOrPlatinum,
		BottomChain:        classicOrPlatinum || headrail == HeadrailLouvresOnly,
		BracketType:        classicOrPlatinum,
	}
}

// QuoteLine is one selected option that was found in its table.
type QuoteLine struct {
	Group    Group   `json:"group"`
	OptionID string  `json:"optionId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
}

// Quote is the priced result for one configuration. Total is unrounded;
// DisplayTotal and Formatted are what a customer sees and is charged.
type Quote struct {
	Family         Family        `json:"family"`
	Visibility     Visibility    `json:"visibility"`
	BasePrice      domain.Amount `json:"basePrice"`
	AdditionalCost float64       `json:"additionalCost"`
	Total          domain.Amount `json:"total"`
	DisplayTotal   domain.Amount `json:"displayTotal"`
	Formatted      string        `json:"formatted"`
	Lines          []QuoteLine   `json:"lines"`
}

// Engine evaluates configurations and formats totals in one currency.
type Engine struct {
	currency string
}

// NewEngine returns an Engine that formats prices in currency.
func NewEngine(currency string) *Engine {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Engine{currency: currency}
}

// Currency returns the display currency code.
func (e *Engine) Currency() string { return e.currency }

// Evaluate prices cfg with the default currency.
func Evaluate(product domain.Product, cfg domain.ProductConfiguration, rate *float64) Quote {
	return NewEngine(DefaultCurrency).Evaluate(product, cfg, rate)
}

// Evaluate prices cfg for product. rate is the per-square-meter rate from the
// backend; nil, zero and NaN rates mean none was supplied and the product's
// default-size price is used instead.
func (e *Engine) Evaluate(product domain.Product, cfg domain.ProductConfiguration, rate *float64) Quote {
	family := ClassifyFamily(product.Category)
	features := product.Features

	visibility := VisibilityFor(family, cfg.Headrail)
	visibility.ChainColor = features.HasChainColor
	visibility.WrappedCassette = features.HasWrappedCassette
	visibility.CassetteMatchingBar = features.HasCassetteMatchingBar

	base := BasePrice(product, cfg, rate)

	selections := []struct {
		group   Group
		enabled bool
		visible bool
		id      string
	}{
		{GroupHeadrail, features.HasHeadrail, visibility.Headrail, cfg.Headrail},
		{GroupHeadrailColour, features.HasHeadrailColour, visibility.HeadrailColour, cfg.HeadrailColour},
		{GroupInstallationMethod, features.HasInstallationMethod, visibility.InstallationMethod, cfg.InstallationMethod},
		{GroupControlOption, features.HasControlOption, visibility.ControlOption, cfg.ControlOption},
		{GroupStacking, features.HasStacking, visibility.Stacking, cfg.Stacking},
		{GroupControlSide, features.HasControlSide, visibility.ControlSide, cfg.ControlSide},
		{GroupBottomChain, features.HasBottomChain, visibility.BottomChain, cfg.BottomChain},
		{GroupBracketType, features.HasBracketType, visibility.BracketType, cfg.BracketType},
		// No headrail rule applies to these three.
		{GroupChainColor, features.HasChainColor, true, cfg.ChainColor},
		{GroupWrappedCassette, features.HasWrappedCassette, true, cfg.WrappedCassette},
		{GroupCassetteMatchingBar, features.HasCassetteMatchingBar, true, cfg.CassetteMatchingBar},
	}

	var additional float64
	lines := []QuoteLine{}
	for _, s := range selections {
		if !s.enabled || !s.visible || s.id == "" {
			continue
		}
		option, ok := findOption(table(family, s.group), s.id)
		if !ok {
			continue
		}
		additional += option.Price
		lines = append(lines, QuoteLine{Group: s.group, OptionID: option.ID, Name: option.Name, Price: option.Price})
	}

	total := base + additional
	return Quote{
		Family:         family,
		Visibility:     visibility,
		BasePrice:      domain.Amount(base),
		AdditionalCost: additional,
		Total:          domain.Amount(total),
		DisplayTotal:   domain.Amount(pricing.FormatPrice(total)),
		Formatted:      pricing.FormatPriceWithCurrency(pricing.FormatPrice(total), e.currency),
		Lines:          lines,
	}
}

// BasePrice is the size-dependent part of the price. With a rate and both
// dimensions set it is the area price; with a rate but no size yet it is the
// bare rate; without a rate it is the product's default-size price.
func BasePrice(product domain.Product, cfg domain.ProductConfiguration, rate *float64) float64 {
	if !rateSupplied(rate) {
		return product.Price.Float64()
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return *rate
	}
	return pricing.CalculatePrice(*rate, cfg.Width, cfg.WidthFraction, cfg.Height, cfg.HeightFraction)
}

func rateSupplied(rate *float64) bool {
	return rate != nil && *rate != 0 && !math.IsNaN(*rate)
}

// PricedProduct returns a copy of product carrying the quote's total as its
// price, ready to be snapshotted into a cart.
func PricedProduct(product domain.Product, quote Quote) domain.Product {
	priced := product
	priced.Price = quote.Total
	priced.RelatedProducts = []domain.Product{}
	return priced
}
