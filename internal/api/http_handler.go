package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"blinds-storefront/internal/cart"
	"blinds-storefront/internal/catalog"
	"blinds-storefront/internal/customize"
	"blinds-storefront/internal/domain"
	"blinds-storefront/internal/store"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// CatalogService is what the handlers need from the catalog.
type CatalogService interface {
	LoadProduct(ctx context.Context, slug string) (*catalog.ProductPage, error)
	ProductPage(ctx context.Context, slug string) (*catalog.ProductPage, error)
	ListProducts(ctx context.Context, limit int) ([]domain.Product, error)
}

// CartService is what the handlers need from the cart.
type CartService interface {
	Create(ctx context.Context) (*domain.Cart, error)
	Get(ctx context.Context, id string) (*domain.Cart, error)
	AddToCart(ctx context.Context, cartID string, product domain.Product, cfg domain.ProductConfiguration) (*domain.Cart, *domain.CartItem, error)
	RemoveFromCart(ctx context.Context, cartID, itemID string) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, cartID, itemID string, quantity int) (*domain.Cart, error)
	ClearCart(ctx context.Context, cartID string) (*domain.Cart, error)
	Delete(ctx context.Context, cartID string) error
}

// HTTPHandler holds dependencies for HTTP handlers.
type HTTPHandler struct {
	catalog  CatalogService
	engine   *customize.Engine
	carts    CartService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewHTTPHandler creates a new HTTPHandler with dependencies.
func NewHTTPHandler(cs CatalogService, engine *customize.Engine, carts CartService, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		catalog:  cs,
		engine:   engine,
		carts:    carts,
		validate: validator.New(),
		logger:   logger,
	}
}

// --- Helpers ---

// ErrorResponse defines the structure for JSON error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil { // Avoid writing empty body for 204 No Content
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Error().Err(err).Msg("failed to encode JSON response")
		}
	}
}

// respondWithServiceError maps store and cart errors to a status code.
func (h *HTTPHandler) respondWithServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrProductNotFound):
		respondWithError(w, http.StatusNotFound, store.ErrProductNotFound.Error())
	case errors.Is(err, store.ErrCartNotFound):
		respondWithError(w, http.StatusNotFound, store.ErrCartNotFound.Error())
	case errors.Is(err, cart.ErrItemNotFound):
		respondWithError(w, http.StatusNotFound, cart.ErrItemNotFound.Error())
	case errors.Is(err, context.DeadlineExceeded):
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg(fallback)
		respondWithError(w, http.StatusGatewayTimeout, fallback)
	default:
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg(fallback)
		respondWithError(w, http.StatusInternalServerError, fallback)
	}
}

func (h *HTTPHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, input interface{}) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return false
	}
	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return false
	}
	return true
}

// --- Product Handlers ---

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n <= 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid limit format")
			return
		}
		limit = n
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	products, err := h.catalog.ListProducts(r.Context(), limit)
	if err != nil {
		h.respondWithServiceError(w, r, err, "Failed to list products")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	respondWithJSON(w, http.StatusOK, products)
}

func (h *HTTPHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	page, err := h.catalog.ProductPage(r.Context(), slug)
	if err != nil {
		h.respondWithServiceError(w, r, err, "Failed to retrieve product")
		return
	}
	respondWithJSON(w, http.StatusOK, page)
}

// ProductOptionsResponse describes the customization form for a fresh configuration.
type ProductOptionsResponse struct {
	Family        customize.Family            `json:"family"`
	Features      domain.Features             `json:"features"`
	Options       customize.OptionSet         `json:"options"`
	Configuration domain.ProductConfiguration `json:"configuration"`
	Quote         customize.Quote             `json:"quote"`
}

func (h *HTTPHandler) GetProductOptions(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	page, err := h.catalog.LoadProduct(r.Context(), slug)
	if err != nil {
		h.respondWithServiceError(w, r, err, "Failed to retrieve product")
		return
	}

	cfg := customize.NewConfiguration()
	quote := h.engine.Evaluate(page.Product, cfg, page.Rate())
	respondWithJSON(w, http.StatusOK, ProductOptionsResponse{
		Family:        quote.Family,
		Features:      page.Product.Features,
		Options:       customize.OptionsFor(quote.Family),
		Configuration: cfg,
		Quote:         quote,
	})
}

func (h *HTTPHandler) QuoteProduct(w http.ResponseWriter, r *http.Request) {
	var cfg domain.ProductConfiguration
	if !h.decodeAndValidate(w, r, &cfg) {
		return
	}

	slug := chi.URLParam(r, "slug")
	page, err := h.catalog.LoadProduct(r.Context(), slug)
	if err != nil {
		h.respondWithServiceError(w, r, err, "Failed to retrieve product")
		return
	}
	respondWithJSON(w, http.StatusOK, h.engine.Evaluate(page.Product, cfg, page.Rate()))
}

// ConfigureInput is a configuration change for a product. Configuration is the
// current state; when omitted the product's starting configuration is used.
type ConfigureInput struct {
	Configuration *domain.ProductConfiguration `json:"configuration,omitempty"`
	Patch         customize.ConfigurationPatch `json:"patch"`
}

// ConfigureResponse carries the updated configuration and its quote.
type ConfigureResponse struct {
	Configuration domain.ProductConfiguration `json:"configuration"`
	Quote         customize.Quote             `json:"quote"`
}

func (h *HTTPHandler) ConfigureProduct(w http.ResponseWriter, r *http.Request) {
	var input ConfigureInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	slug := chi.URLParam(r, "slug")
	page, err := h.catalog.LoadProduct(r.Context(), slug)
	if err != nil {
		h.respondWithServiceError(w, r, err, "Failed to retrieve product")
		return
	}

	base := customize.NewConfiguration()
	if input.Configuration != nil {
		base = *input.Configuration
	}
	next := customize.UpdateConfiguration(base, input.Patch)
	respondWithJSON(w, http.StatusOK, ConfigureResponse{
		Configuration: next,
		Quote:         h.engine.Evaluate(page.Product, next, page.Rate()),
	})
}

// --- Filter Handlers ---

// FilterTagsResponse lists the backend tags a storefront filter maps to.
type FilterTagsResponse struct {
	FilterType string   `json:"filterType"`
	Value      string   `json:"value"`
	Tags       []string `json:"tags"`
}

func (h *HTTPHandler) GetFilterTags(w http.ResponseWriter, r *http.Request) {
	filterType := chi.URLParam(r, "filterType")
	value := r.URL.Query().Get("value")
	if strings.TrimSpace(value) == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'value' is required")
		return
	}
	respondWithJSON(w, http.StatusOK, FilterTagsResponse{
		FilterType: filterType,
		Value:      value,
		Tags:       catalog.MapFilterToTagSlugs(filterType, value),
	})
}

// --- Cart Handlers ---

func (h *HTTPHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.Create(r.Context())
	if err != nil {
		h.respondWithServiceError(w, r, err, "Failed to create cart")
		return
	}
	respondWithJSON(w, http.StatusCreated, c)
}

func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.Get(r.Context(), chi.URLParam(r, "cartId"))
	if err != nil {
		h.respondWithServiceError(w, r, err, "Failed to retrieve cart")
		return
	}
	respondWithJSON(w, http.StatusOK, c)
}

// ClearCart empties the cart, or removes it entirely with ?purge=true.
func (h *HTTPHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartId")
	if purge, _ := strconv.ParseBool(r.URL.Query().Get("purge")); purge {
		if err := h.carts.Delete(r.Context(), cartID); err != nil {
			h.respondWithServiceError(w, r, err, "Failed to delete cart")
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	c, err := h.carts.ClearCart(r.Context(), cartID)
	if err != nil {
		h.respondWithServiceError(w, r, err, "Failed to clear cart")
		return
	}
	respondWithJSON(w, http.StatusOK, c)
}

// AddToCartInput defines the expected input for adding a configured product.
type AddToCartInput struct {
	Slug          string                      `json:"slug" validate:"required,max=255"`
	Configuration domain.ProductConfiguration `json:"configuration"`
}

// AddToCartResponse returns the updated cart and the new item.
type AddToCartResponse struct {
	Cart *domain.Cart     `json:"cart"`
	Item *domain.CartItem `json:"item"`
}

func (h *HTTPHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var input AddToCartInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	page, err := h.catalog.LoadProduct(r.Context(), input.Slug)
	if err != nil {
		h.respondWithServiceError(w, r, err, "Failed to retrieve product")
		return
	}
	quote := h.engine.Evaluate(page.Product, input.Configuration, page.Rate())
	if !quote.Total.Valid() {
		respondWithError(w, http.StatusUnprocessableEntity, "Product has no valid price")
		return
	}

	cartID := chi.URLParam(r, "cartId")
	c, item, err := h.carts.AddToCart(r.Context(), cartID, customize.PricedProduct(page.Product, quote), input.Configuration)
	if err != nil {
		h.respondWithServiceError(w, r, err, "Failed to add item to cart")
		return
	}
	respondWithJSON(w, http.StatusCreated, AddToCartResponse{Cart: c, Item: item})
}

// UpdateQuantityInput defines the expected input for changing an item's quantity.
// A quantity of zero or less removes the item.
type UpdateQuantityInput struct {
	Quantity *int `json:"quantity" validate:"required"`
}

func (h *HTTPHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var input UpdateQuantityInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}
	c, err := h.carts.UpdateQuantity(r.Context(), chi.URLParam(r, "cartId"), chi.URLParam(r, "itemId"), *input.Quantity)
	if err != nil {
		h.respondWithServiceError(w, r, err, "Failed to update cart item")
		return
	}
	respondWithJSON(w, http.StatusOK, c)
}

func (h *HTTPHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.RemoveFromCart(r.Context(), chi.URLParam(r, "cartId"), chi.URLParam(r, "itemId"))
	if err != nil {
		h.respondWithServiceError(w, r, err, "Failed to remove cart item")
		return
	}
	respondWithJSON(w, http.StatusOK, c)
}

// --- Route Registration ---

// RegisterRoutes sets up the HTTP routes for the service.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.ListProducts) // GET /api/v1/products
		r.Route("/{slug}", func(r chi.Router) {
			r.Get("/", h.GetProduct)               // GET /api/v1/products/{slug}
			r.Get("/options", h.GetProductOptions) // GET /api/v1/products/{slug}/options
			r.Post("/quote", h.QuoteProduct)       // POST /api/v1/products/{slug}/quote
			r.Post("/configure", h.ConfigureProduct)
		})
	})

	r.Get("/api/v1/filters/{filterType}/tags", h.GetFilterTags)

	r.Route("/api/v1/carts", func(r chi.Router) {
		r.Post("/", h.CreateCart) // POST /api/v1/carts
		r.Route("/{cartId}", func(r chi.Router) {
			r.Get("/", h.GetCart)      // GET /api/v1/carts/{cartId}
			r.Delete("/", h.ClearCart) // DELETE /api/v1/carts/{cartId}[?purge=true]
			r.Post("/items", h.AddToCart)
			r.Patch("/items/{itemId}", h.UpdateCartItem)
			r.Delete("/items/{itemId}", h.RemoveCartItem)
		})
	})
}
