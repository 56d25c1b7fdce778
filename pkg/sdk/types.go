package sdk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Error codes returned by the server.
const (
	CodeBadRequest          = "bad_request"
	CodeValidationFailed    = "validation_failed"
	CodeVehicleNotFound     = "vehicle_not_found"
	CodeProductNotFound     = "product_not_found"
	CodeNotFound            = "not_found"
	CodeRateLimited         = "rate_limited"
	CodeUpstreamUnavailable = "upstream_unavailable"
	CodeInternalError       = "internal_error"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

func apiErrorFrom(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = CodeInternalError
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

// SearchOptions narrows a search. Type is "all", "vehicles" or "parts";
// empty means "all". Limit 0 means the server default of 20.
type SearchOptions struct {
	Type  string
	Limit int
}

// SearchResponse is the answer to a search query.
type SearchResponse struct {
	Results      []SearchResult `json:"results"`
	TotalResults int            `json:"totalResults"`
	SearchTimeMs int64          `json:"searchTimeMs"`
}

// SearchResult is one hit. Exactly one of Vehicle() or Product() decodes,
// according to Type. Score is in [0, 1], 0 best.
type SearchResult struct {
	Type  string          `json:"type"`
	Item  json.RawMessage `json:"item"`
	Score float64         `json:"score"`
}

// Vehicle decodes the item of a "vehicle" result.
func (r *SearchResult) Vehicle() (VehicleSummary, error) {
	var v VehicleSummary
	if r.Type != "vehicle" {
		return v, fmt.Errorf("result is %q, not a vehicle", r.Type)
	}
	if err := json.Unmarshal(r.Item, &v); err != nil {
		return v, fmt.Errorf("decode vehicle item: %w", err)
	}
	return v, nil
}

// Product decodes the item of a "product" result.
func (r *SearchResult) Product() (ProductSummary, error) {
	var p ProductSummary
	if r.Type != "product" {
		return p, fmt.Errorf("result is %q, not a product", r.Type)
	}
	if err := json.Unmarshal(r.Item, &p); err != nil {
		return p, fmt.Errorf("decode product item: %w", err)
	}
	return p, nil
}

// VehicleSummary is the indexed view of a vehicle listing.
type VehicleSummary struct {
	ID              string    `json:"id"`
	ListingTitle    string    `json:"listingTitle"`
	Slug            string    `json:"slug"`
	Chassis         string    `json:"chassis"`
	VIN             string    `json:"vin,omitempty"`
	Mileage         int       `json:"mileage"`
	ListingPrice    float64   `json:"listingPrice,omitempty"`
	Status          string    `json:"status"`
	InventoryStatus string    `json:"inventoryStatus"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ProductSummary is the indexed view of a catalog product.
type ProductSummary struct {
	ID               string    `json:"id"`
	Handle           string    `json:"handle"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Vendor           string    `json:"vendor"`
	ProductType      string    `json:"productType"`
	Tags             string    `json:"tags"`
	MinPrice         float64   `json:"minPrice"`
	MaxPrice         float64   `json:"maxPrice"`
	AvailableForSale bool      `json:"availableForSale"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Vehicle is a full vehicle listing.
type Vehicle struct {
	ID               string    `json:"id"`
	ListingTitle     string    `json:"listingTitle"`
	Slug             string    `json:"slug"`
	Chassis          string    `json:"chassis"`
	VIN              string    `json:"vin,omitempty"`
	Mileage          int       `json:"mileage"`
	ListingPrice     float64   `json:"listingPrice"`
	ShowCallForPrice bool      `json:"showCallForPrice"`
	Status           string    `json:"status"`
	InventoryStatus  string    `json:"inventoryStatus"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Product is a full catalog product.
type Product struct {
	ID               string    `json:"id"`
	Handle           string    `json:"handle"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Vendor           string    `json:"vendor"`
	ProductType      string    `json:"productType"`
	Tags             []string  `json:"tags"`
	MinPrice         float64   `json:"minPrice"`
	MaxPrice         float64   `json:"maxPrice"`
	Currency         string    `json:"currency"`
	AvailableForSale bool      `json:"availableForSale"`
	ImageURL         string    `json:"imageUrl,omitempty"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// RankedPart is a part ranked for a vehicle. Relevance is 10 for an exact
// year fit, 5 for a model match and 1 for a universal part.
type RankedPart struct {
	Product   Product `json:"product"`
	Relevance int     `json:"relevance"`
}

// PartsResponse is the answer to a compatible-parts lookup.
type PartsResponse struct {
	Parts []RankedPart `json:"parts"`
	Total int          `json:"total"`
}

// VehiclesResponse is the answer to a vehicles-with-part lookup.
type VehiclesResponse struct {
	Vehicles []Vehicle `json:"vehicles"`
	Total    int       `json:"total"`
}

// HealthReport is the server's view of its upstreams. Status is "ok" or
// "degraded"; each check is "ok" or "error".
type HealthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
