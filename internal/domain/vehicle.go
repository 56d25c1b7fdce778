package domain

import "time"

// Status is the sale status of a vehicle listing.
type Status string

// Sale status constants.
const (
	StatusCurrent Status = "current"
	StatusSold    Status = "sold"
)

// Vehicle is a vehicle listing as returned by the content source.
// Slug and chassis are already flattened by the transport layer.
type Vehicle struct {
	ID               string    `json:"id"`
	ListingTitle     string    `json:"listingTitle"`
	Slug             string    `json:"slug"`
	Chassis          string    `json:"chassis"`
	VIN              string    `json:"vin,omitempty"`
	Mileage          int       `json:"mileage"`
	ListingPrice     float64   `json:"listingPrice"`
	ShowCallForPrice bool      `json:"showCallForPrice"`
	Status           Status    `json:"status"`
	InventoryStatus  string    `json:"inventoryStatus"`
	CreatedAt        time.Time `json:"createdAt"`
}

// SearchableVehicle is the denormalized projection of a vehicle used by the
// search index. It is an immutable snapshot; it exists only inside an index
// and is rebuilt whenever the index is refreshed.
type SearchableVehicle struct {
	ID              string    `json:"id"`
	ListingTitle    string    `json:"listingTitle"`
	Slug            string    `json:"slug"`
	Chassis         string    `json:"chassis"`
	VIN             string    `json:"vin,omitempty"`
	Mileage         int       `json:"mileage"`
	ListingPrice    float64   `json:"listingPrice,omitempty"`
	Status          Status    `json:"status"`
	InventoryStatus string    `json:"inventoryStatus"`
	CreatedAt       time.Time `json:"createdAt"`
}
