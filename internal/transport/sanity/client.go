// Package sanity is the read-only client for the content source holding
// vehicle inventory. Queries are GROQ over HTTP.
package sanity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/enthusiast-garage/dealersearch/internal/domain"
)

const defaultTimeout = 10 * time.Second

// vehicleProjection is the field list shared by every vehicle query.
const vehicleProjection = `{
  _id,
  listingTitle,
  slug,
  chassis,
  vin,
  mileage,
  listingPrice,
  showCallForPrice,
  status,
  inventoryStatus,
  _createdAt
}`

// Config holds the content source settings.
type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	// BaseURL overrides the derived API host (used by tests).
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client queries the content source.
type Client struct {
	httpClient *http.Client
	baseURL    string
	dataset    string
	apiVersion string
	token      string
	logger     *zap.Logger
}

// NewClient creates a content source client.
func NewClient(cfg *Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.api.sanity.io", cfg.ProjectID)
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
		baseURL:    strings.TrimRight(baseURL, "/"),
		dataset:    cfg.Dataset,
		apiVersion: cfg.APIVersion,
		token:      cfg.Token,
		logger:     logger,
	}
}

// LiveVehicles fetches every live vehicle listing, for index building.
func (c *Client) LiveVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	query := `*[_type == "vehicle" && isLive == true] ` + vehicleProjection

	var docs []vehicleDoc
	if err := c.fetch(ctx, query, nil, &docs); err != nil {
		return nil, fmt.Errorf("fetch live vehicles: %w", err)
	}
	return toVehicles(docs), nil
}

// CurrentVehiclesByChassis fetches current-inventory vehicles whose chassis
// is in models, newest first, capped at limit.
func (c *Client) CurrentVehiclesByChassis(ctx context.Context, models []string, limit int) ([]domain.Vehicle, error) {
	query := fmt.Sprintf(
		`*[_type == "vehicle" && chassis in $models && inventoryStatus == "Current Inventory"] | order(_createdAt desc) [0...%d] %s`,
		limit, vehicleProjection,
	)

	var docs []vehicleDoc
	if err := c.fetch(ctx, query, map[string]any{"models": models}, &docs); err != nil {
		return nil, fmt.Errorf("fetch vehicles by chassis: %w", err)
	}
	return toVehicles(docs), nil
}

// VehicleBySlug fetches a single vehicle listing.
// Returns domain.ErrVehicleNotFound when no listing carries the slug.
func (c *Client) VehicleBySlug(ctx context.Context, slug string) (domain.Vehicle, error) {
	query := `*[_type == "vehicle" && slug.current == $slug][0] ` + vehicleProjection

	var doc *vehicleDoc
	if err := c.fetch(ctx, query, map[string]any{"slug": slug}, &doc); err != nil {
		return domain.Vehicle{}, fmt.Errorf("fetch vehicle by slug: %w", err)
	}
	if doc == nil {
		return domain.Vehicle{}, fmt.Errorf("slug %q: %w", slug, domain.ErrVehicleNotFound)
	}
	return doc.toDomain(), nil
}

// HealthCheck verifies the content source responds to a trivial query.
func (c *Client) HealthCheck(ctx context.Context) error {
	var count int
	if err := c.fetch(ctx, `count(*[_type == "vehicle"][0...1])`, nil, &count); err != nil {
		return fmt.Errorf("content source health: %w", err)
	}
	return nil
}

// fetch runs a GROQ query and decodes the result envelope into out.
// Query parameters are passed as JSON-encoded $-prefixed URL values.
func (c *Client) fetch(ctx context.Context, query string, params map[string]any, out any) error {
	values := url.Values{"query": {query}}
	for name, v := range params {
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode param %s: %w", name, err)
		}
		values.Set("$"+name, string(encoded))
	}

	endpoint := fmt.Sprintf("%s/v%s/data/query/%s?%s",
		c.baseURL, c.apiVersion, c.dataset, values.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: content source returned %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if string(envelope.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}
