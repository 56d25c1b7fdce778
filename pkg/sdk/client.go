// Package sdk is a thin typed client for the dealersearch HTTP API.
//
// For in-process use without a running server, see the root dealersearch
// package instead.
package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// Option configures the Client.
type Option func(*Client)

// WithAPIKey sets the bearer token sent with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// Client talks to a dealersearch server.
type Client struct {
	baseURL string
	apiKey  string
	hc      *http.Client
}

// New creates a client for the server at baseURL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Search queries the vehicle and parts indexes. opts may be nil.
func (c *Client) Search(ctx context.Context, query string, opts *SearchOptions) (*SearchResponse, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}
	q := url.Values{}
	q.Set("q", query)
	if opts.Type != "" {
		q.Set("type", opts.Type)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}

	var resp SearchResponse
	if err := c.get(ctx, "/search?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return &resp, nil
}

// CompatibleParts returns parts ranked for the vehicle with the given slug.
func (c *Client) CompatibleParts(ctx context.Context, slug string) (*PartsResponse, error) {
	var resp PartsResponse
	path := "/vehicles/" + url.PathEscape(slug) + "/parts"
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("compatible parts: %w", err)
	}
	return &resp, nil
}

// VehiclesWithPart returns current inventory vehicles the part with the
// given handle fits.
func (c *Client) VehiclesWithPart(ctx context.Context, handle string) (*VehiclesResponse, error) {
	var resp VehiclesResponse
	path := "/products/" + url.PathEscape(handle) + "/vehicles"
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("vehicles with part: %w", err)
	}
	return &resp, nil
}

// RefreshIndexes asks the server to rebuild both search indexes.
func (c *Client) RefreshIndexes(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/index/refresh", nil); err != nil {
		return fmt.Errorf("refresh indexes: %w", err)
	}
	return nil
}

// Health reports upstream connectivity as seen by the server. A degraded
// server answers 503 but still returns a report, so err is nil in that
// case too; inspect report.Status.
func (c *Client) Health(ctx context.Context) (*HealthReport, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/health")
	if err != nil {
		return nil, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("health: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusServiceUnavailable {
		return nil, fmt.Errorf("health: %w", apiErrorFrom(resp))
	}
	var report HealthReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("health: decode response: %w", err)
	}
	return &report, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, out)
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	req, err := c.newRequest(ctx, method, path)
	if err != nil {
		return err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiErrorFrom(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}
