package domain

import "time"

// Product is a catalog product as returned by the commerce backend.
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

// SearchableProduct is the denormalized projection of a product used by the
// search index. Tags are concatenated into a single string so the fuzzy
// matcher can treat them as one weighted field. Same lifecycle rule as
// SearchableVehicle.
type SearchableProduct struct {
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
