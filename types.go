package dealersearch

import (
	"time"

	"github.com/enthusiast-garage/dealersearch/internal/domain"
	"github.com/enthusiast-garage/dealersearch/internal/domain/search/result"
	recommenduc "github.com/enthusiast-garage/dealersearch/internal/usecase/recommend"
)

// ResultType discriminates what a SearchResult wraps.
type ResultType string

// Search result types.
const (
	ResultTypeVehicle ResultType = "vehicle"
	ResultTypeProduct ResultType = "product"
)

// SearchResult is a single search hit. Exactly one of Vehicle or Product is
// set, according to Type. Score is in [0, 1] where 0 is a perfect match;
// result lists are sorted ascending.
type SearchResult struct {
	Type    ResultType      `json:"type"`
	Vehicle *VehicleSummary `json:"vehicle,omitempty"`
	Product *ProductSummary `json:"product,omitempty"`
	Score   float64         `json:"score"`
}

// VehicleSummary is the indexed view of a vehicle listing. ListingPrice is
// zero when the listing is marked call-for-price.
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

// ProductSummary is the indexed view of a catalog product. Tags are
// concatenated into one space-separated string.
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

// Vehicle is a full vehicle listing from the content source.
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

// CompatiblePart is a catalog part ranked for a specific vehicle. Relevance
// is 10 for an exact year-in-range fit, 5 for a model match without year
// confirmation and 1 for a universal part. Lists sort descending.
type CompatiblePart struct {
	Product   Product `json:"product"`
	Relevance int     `json:"relevance"`
}

func fromSearchResults(results []result.Result) []SearchResult {
	out := make([]SearchResult, 0, len(results))
	for i := range results {
		out = append(out, fromSearchResult(&results[i]))
	}
	return out
}

func fromSearchResult(r *result.Result) SearchResult {
	sr := SearchResult{Score: float64(r.Score())}
	if v, ok := r.Vehicle(); ok {
		sr.Type = ResultTypeVehicle
		sr.Vehicle = &VehicleSummary{
			ID:              v.ID,
			ListingTitle:    v.ListingTitle,
			Slug:            v.Slug,
			Chassis:         v.Chassis,
			VIN:             v.VIN,
			Mileage:         v.Mileage,
			ListingPrice:    v.ListingPrice,
			Status:          string(v.Status),
			InventoryStatus: v.InventoryStatus,
			CreatedAt:       v.CreatedAt,
		}
		return sr
	}
	p, _ := r.Product()
	sr.Type = ResultTypeProduct
	sr.Product = &ProductSummary{
		ID:               p.ID,
		Handle:           p.Handle,
		Title:            p.Title,
		Description:      p.Description,
		Vendor:           p.Vendor,
		ProductType:      p.ProductType,
		Tags:             p.Tags,
		MinPrice:         p.MinPrice,
		MaxPrice:         p.MaxPrice,
		AvailableForSale: p.AvailableForSale,
		UpdatedAt:        p.UpdatedAt,
	}
	return sr
}

func fromVehicle(v domain.Vehicle) Vehicle {
	return Vehicle{
		ID:               v.ID,
		ListingTitle:     v.ListingTitle,
		Slug:             v.Slug,
		Chassis:          v.Chassis,
		VIN:              v.VIN,
		Mileage:          v.Mileage,
		ListingPrice:     v.ListingPrice,
		ShowCallForPrice: v.ShowCallForPrice,
		Status:           string(v.Status),
		InventoryStatus:  v.InventoryStatus,
		CreatedAt:        v.CreatedAt,
	}
}

func fromVehicles(vehicles []domain.Vehicle) []Vehicle {
	out := make([]Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, fromVehicle(v))
	}
	return out
}

func fromProduct(p domain.Product) Product {
	return Product{
		ID:               p.ID,
		Handle:           p.Handle,
		Title:            p.Title,
		Description:      p.Description,
		Vendor:           p.Vendor,
		ProductType:      p.ProductType,
		Tags:             p.Tags,
		MinPrice:         p.MinPrice,
		MaxPrice:         p.MaxPrice,
		Currency:         p.Currency,
		AvailableForSale: p.AvailableForSale,
		ImageURL:         p.ImageURL,
		UpdatedAt:        p.UpdatedAt,
	}
}

func fromRankedParts(parts []recommenduc.RankedPart) []CompatiblePart {
	out := make([]CompatiblePart, 0, len(parts))
	for _, p := range parts {
		out = append(out, CompatiblePart{
			Product:   fromProduct(p.Product),
			Relevance: int(p.Relevance),
		})
	}
	return out
}
