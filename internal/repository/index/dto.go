package index

import (
	"strings"

	"github.com/enthusiast-garage/dealersearch/internal/domain"
)

func toSearchableVehicles(vehicles []domain.Vehicle) []domain.SearchableVehicle {
	out := make([]domain.SearchableVehicle, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, domain.SearchableVehicle{
			ID:              v.ID,
			ListingTitle:    v.ListingTitle,
			Slug:            v.Slug,
			Chassis:         v.Chassis,
			VIN:             v.VIN,
			Mileage:         v.Mileage,
			ListingPrice:    listingPrice(v),
			Status:          v.Status,
			InventoryStatus: v.InventoryStatus,
			CreatedAt:       v.CreatedAt,
		})
	}
	return out
}

// listingPrice hides the price when the listing is call-for-price.
func listingPrice(v domain.Vehicle) float64 {
	if v.ShowCallForPrice {
		return 0
	}
	return v.ListingPrice
}

func toSearchableProducts(products []domain.Product) []domain.SearchableProduct {
	out := make([]domain.SearchableProduct, 0, len(products))
	for _, p := range products {
		out = append(out, domain.SearchableProduct{
			ID:               p.ID,
			Handle:           p.Handle,
			Title:            p.Title,
			Description:      p.Description,
			Vendor:           p.Vendor,
			ProductType:      p.ProductType,
			Tags:             strings.Join(p.Tags, " "),
			MinPrice:         p.MinPrice,
			MaxPrice:         p.MaxPrice,
			AvailableForSale: p.AvailableForSale,
			UpdatedAt:        p.UpdatedAt,
		})
	}
	return out
}
