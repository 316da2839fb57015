// Package backend is the HTTP client for the upstream product API.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"blinds-storefront/internal/domain"
	"blinds-storefront/internal/store"
)

// DefaultTimeout bounds a single backend request.
const DefaultTimeout = 10 * time.Second

// ErrUnexpectedStatus wraps non-2xx responses other than 404.
var ErrUnexpectedStatus = errors.New("backend: unexpected status")

// Client fetches raw products from the backend API. It implements
// store.ProductSource.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a Client for baseURL, e.g. "https://api.example.com/api".
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger, opts ...ClientOption) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ store.ProductSource = (*Client)(nil)

type envelope[T any] struct {
	Data T `json:"data"`
}

// FetchProductBySlug calls GET {base}/products/{slug}.
func (c *Client) FetchProductBySlug(ctx context.Context, slug string) (*domain.ProductData, error) {
	var body envelope[*domain.ProductData]
	if err := c.get(ctx, "/products/"+url.PathEscape(slug), nil, &body); err != nil {
		return nil, err
	}
	if body.Data == nil {
		return nil, store.ErrProductNotFound
	}
	return body.Data, nil
}

// FetchAllProducts calls GET {base}/products?limit=N.
func (c *Client) FetchAllProducts(ctx context.Context, limit int) ([]domain.ProductData, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var body envelope[[]domain.ProductData]
	if err := c.get(ctx, "/products", query, &body); err != nil {
		return nil, err
	}
	if body.Data == nil {
		body.Data = []domain.ProductData{}
	}
	return body.Data, nil
}

func (c *Client) GetProductBySlug(ctx context.Context, slug string) (*domain.ProductData, error) {
	return c.FetchProductBySlug(ctx, slug)
}

func (c *Client) ListProducts(ctx context.Context, limit int) ([]domain.ProductData, error) {
	return c.FetchAllProducts(ctx, limit)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("backend: build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("backend request")

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return store.ErrProductNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: GET %s returned %d: %s", ErrUnexpectedStatus, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend: decode %s: %w", path, err)
	}
	return nil
}
