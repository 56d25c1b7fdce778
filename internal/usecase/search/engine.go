package search

import (
	"github.com/enthusiast-garage/dealersearch/internal/domain"
	"github.com/enthusiast-garage/dealersearch/internal/fuzzy"
)

// Field weights bias matching toward titles, then identifying fields,
// then descriptive text. Changing a weight reshuffles result order for
// every query, so treat these as tuning constants.
func vehicleKeys() []fuzzy.Key[domain.SearchableVehicle] {
	return []fuzzy.Key[domain.SearchableVehicle]{
		{Name: "listingTitle", Weight: 2.0, Value: func(v domain.SearchableVehicle) string { return v.ListingTitle }},
		{Name: "chassis", Weight: 1.5, Value: func(v domain.SearchableVehicle) string { return v.Chassis }},
		{Name: "vin", Weight: 1.5, Value: func(v domain.SearchableVehicle) string { return v.VIN }},
		{Name: "status", Weight: 1.0, Value: func(v domain.SearchableVehicle) string { return string(v.Status) }},
		{Name: "inventoryStatus", Weight: 1.0, Value: func(v domain.SearchableVehicle) string { return v.InventoryStatus }},
		{Name: "slug", Weight: 0.8, Value: func(v domain.SearchableVehicle) string { return v.Slug }},
	}
}

func productKeys() []fuzzy.Key[domain.SearchableProduct] {
	return []fuzzy.Key[domain.SearchableProduct]{
		{Name: "title", Weight: 2.0, Value: func(p domain.SearchableProduct) string { return p.Title }},
		{Name: "tags", Weight: 1.5, Value: func(p domain.SearchableProduct) string { return p.Tags }},
		{Name: "description", Weight: 1.0, Value: func(p domain.SearchableProduct) string { return p.Description }},
		{Name: "vendor", Weight: 0.8, Value: func(p domain.SearchableProduct) string { return p.Vendor }},
		{Name: "productType", Weight: 0.8, Value: func(p domain.SearchableProduct) string { return p.ProductType }},
		{Name: "handle", Weight: 0.8, Value: func(p domain.SearchableProduct) string { return p.Handle }},
	}
}

func searchVehicles(items []domain.SearchableVehicle, query string) []fuzzy.Match[domain.SearchableVehicle] {
	return fuzzy.NewIndex(items, vehicleKeys()).Search(query)
}

func searchProducts(items []domain.SearchableProduct, query string) []fuzzy.Match[domain.SearchableProduct] {
	return fuzzy.NewIndex(items, productKeys()).Search(query)
}
