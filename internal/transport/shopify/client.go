// Package shopify is the read-only client for the commerce backend
// holding the parts catalog. Queries go through the storefront GraphQL
// endpoint.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/enthusiast-garage/dealersearch/internal/domain"
)

const defaultTimeout = 10 * time.Second

const productFragment = `
  id
  handle
  availableForSale
  title
  description
  vendor
  productType
  priceRange {
    minVariantPrice { amount currencyCode }
    maxVariantPrice { amount currencyCode }
  }
  featuredImage { url }
  tags
  updatedAt
`

const productsQuery = `
  query products($first: Int!, $query: String) {
    products(first: $first, query: $query) {
      edges { node {` + productFragment + `} }
    }
  }
`

const productByHandleQuery = `
  query productByHandle($handle: String!) {
    product(handle: $handle) {` + productFragment + `}
  }
`

const shopQuery = `{ shop { name } }`

// Config holds the catalog source settings.
type Config struct {
	StoreDomain     string
	StorefrontToken string
	APIVersion      string
	// Endpoint overrides the derived GraphQL URL (used by tests).
	Endpoint   string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client queries the catalog source.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
	logger     *zap.Logger
}

// NewClient creates a catalog source client.
func NewClient(cfg *Config) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s/api/%s/graphql.json", cfg.StoreDomain, cfg.APIVersion)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
		token:      cfg.StorefrontToken,
		logger:     logger,
	}
}

// Products fetches the first n catalog products, for index building.
func (c *Client) Products(ctx context.Context, first int) ([]domain.Product, error) {
	var data struct {
		Products productConnection `json:"products"`
	}
	vars := map[string]any{"first": first}
	if err := c.fetch(ctx, productsQuery, vars, &data); err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	return data.Products.toDomain(), nil
}

// ProductsByTagQuery fetches products matching a tag-based search query,
// e.g. `tag:"BMW E46" OR tag:"BMW Universal"`.
func (c *Client) ProductsByTagQuery(ctx context.Context, tagQuery string, first int) ([]domain.Product, error) {
	var data struct {
		Products productConnection `json:"products"`
	}
	vars := map[string]any{"first": first, "query": tagQuery}
	if err := c.fetch(ctx, productsQuery, vars, &data); err != nil {
		return nil, fmt.Errorf("fetch products by tag: %w", err)
	}
	return data.Products.toDomain(), nil
}

// ProductByHandle fetches a single product.
// Returns domain.ErrProductNotFound when the handle is unknown.
func (c *Client) ProductByHandle(ctx context.Context, handle string) (domain.Product, error) {
	var data struct {
		Product *productNode `json:"product"`
	}
	vars := map[string]any{"handle": handle}
	if err := c.fetch(ctx, productByHandleQuery, vars, &data); err != nil {
		return domain.Product{}, fmt.Errorf("fetch product by handle: %w", err)
	}
	if data.Product == nil {
		return domain.Product{}, fmt.Errorf("handle %q: %w", handle, domain.ErrProductNotFound)
	}
	return data.Product.toDomain(), nil
}

// HealthCheck verifies the catalog source responds to a trivial query.
func (c *Client) HealthCheck(ctx context.Context) error {
	var data struct {
		Shop struct {
			Name string `json:"name"`
		} `json:"shop"`
	}
	if err := c.fetch(ctx, shopQuery, nil, &data); err != nil {
		return fmt.Errorf("catalog source health: %w", err)
	}
	return nil
}

// fetch posts a GraphQL query and decodes the data envelope into out.
func (c *Client) fetch(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("X-Shopify-Storefront-Access-Token", c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: catalog source returned %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("%w: graphql: %s", domain.ErrUpstreamUnavailable, envelope.Errors[0].Message)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}
