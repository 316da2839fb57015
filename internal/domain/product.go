package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Amount is a monetary value that the backend may send either as a JSON number
// or as a numeric string (e.g. "45.00"). A string with no leading number becomes NaN
// and is left for callers to deal with; NaN and infinities encode back as null.
type Amount float64

// Float64 returns the amount as a plain float64.
func (a Amount) Float64() float64 { return float64(a) }

// Valid reports whether the amount is a finite number.
func (a Amount) Valid() bool {
	f := float64(a)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("domain: invalid amount %s: %w", raw, err)
		}
		*a = Amount(ParseAmount(s))
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("domain: invalid amount %s: %w", raw, err)
	}
	*a = Amount(f)
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(a))
}

// numericPrefix matches the leading decimal number of a price string.
var numericPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

// ParseAmount parses the leading number of a price string, so "45.00 GBP" is
// 45. Input with no leading number yields NaN.
func ParseAmount(s string) float64 {
	m := numericPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return f
}

// CategoryRef is a category reference as sent by the backend product API.
type CategoryRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ProductData is the raw product record returned by the backend product API.
// Prices are per square meter.
type ProductData struct {
	ID          int64         `json:"id"`
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	BasePrice   Amount        `json:"basePrice"`
	OldPrice    Amount        `json:"oldPrice"`
	Categories  []CategoryRef `json:"categories"`
	Images      []string      `json:"images"`
	Features    *Features     `json:"features,omitempty"` // Optional; most backend records omit it
}

// Review is a customer review shown on the product page.
type Review struct {
	Author  string `json:"author"`
	Rating  int    `json:"rating"`
	Title   string `json:"title"`
	Comment string `json:"comment"`
	Date    string `json:"date"`
}

// Product is the display-ready product entity.
// Price and OriginalPrice are for the default size, rounded to 2 decimals.
type Product struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Slug              string    `json:"slug"`
	Category          string    `json:"category"`
	Price             Amount    `json:"price"`
	OriginalPrice     Amount    `json:"originalPrice"`
	Rating            float64   `json:"rating"`
	ReviewCount       int       `json:"reviewCount"`
	EstimatedDelivery string    `json:"estimatedDelivery"`
	Description       string    `json:"description"`
	Images            []string  `json:"images"`
	Features          Features  `json:"features"`
	Reviews           []Review  `json:"reviews"`
	RelatedProducts   []Product `json:"relatedProducts"`
}

// UnmarshalJSON reads a product back from its own encoding. Non-finite prices
// encode as null, so an explicit null price decodes to NaN rather than 0.
func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	if err := json.Unmarshal(data, (*plain)(p)); err != nil {
		return err
	}
	var prices struct {
		Price         json.RawMessage `json:"price"`
		OriginalPrice json.RawMessage `json:"originalPrice"`
	}
	if err := json.Unmarshal(data, &prices); err != nil {
		return err
	}
	if isNull(prices.Price) {
		p.Price = Amount(math.NaN())
	}
	if isNull(prices.OriginalPrice) {
		p.OriginalPrice = Amount(math.NaN())
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

// Features gates which customization groups apply to a product.
type Features struct {
	HasSize                bool `json:"hasSize"`
	HasRoom                bool `json:"hasRoom"`
	HasMount               bool `json:"hasMount"`
	HasHeadrail            bool `json:"hasHeadrail"`
	HasHeadrailColour      bool `json:"hasHeadrailColour"`
	HasInstallationMethod  bool `json:"hasInstallationMethod"`
	HasControlOption       bool `json:"hasControlOption"`
	HasStacking            bool `json:"hasStacking"`
	HasControlSide         bool `json:"hasControlSide"`
	HasBottomChain         bool `json:"hasBottomChain"`
	HasBracketType         bool `json:"hasBracketType"`
	HasChainColor          bool `json:"hasChainColor"`
	HasWrappedCassette     bool `json:"hasWrappedCassette"`
	HasCassetteMatchingBar bool `json:"hasCassetteMatchingBar"`
	HasOpenStyle           bool `json:"hasOpenStyle"`
	HasWandPosition        bool `json:"hasWandPosition"`
	HasValance             bool `json:"hasValance"`
	HasControl             bool `json:"hasControl"`
	HasColour              bool `json:"hasColour"`
	HasRollerStyle         bool `json:"hasRollerStyle"`
	HasFabricType          bool `json:"hasFabricType"`
	HasBottomBar           bool `json:"hasBottomBar"`
	HasLift                bool `json:"hasLift"`
}

// Static product defaults applied by the product mapper.
const (
	DefaultCategory          = "Blinds"
	DefaultEstimatedDelivery = "22 December 2025"
	DefaultRating            = 5
	DefaultReviewCount       = 0
)

// DefaultFeatures returns the static feature set used when nothing better is known.
func DefaultFeatures() Features {
	return Features{
		HasSize:  true,
		HasRoom:  true,
		HasMount: true,
	}
}
