package sanity

import (
	"time"

	"github.com/enthusiast-garage/dealersearch/internal/domain"
)

// vehicleDoc is the wire shape of a vehicle document.
type vehicleDoc struct {
	ID           string `json:"_id"`
	ListingTitle string `json:"listingTitle"`
	Slug         struct {
		Current string `json:"current"`
	} `json:"slug"`
	Chassis          string  `json:"chassis"`
	VIN              string  `json:"vin"`
	Mileage          int     `json:"mileage"`
	ListingPrice     float64 `json:"listingPrice"`
	ShowCallForPrice bool    `json:"showCallForPrice"`
	Status           string  `json:"status"`
	InventoryStatus  string  `json:"inventoryStatus"`
	CreatedAt        string  `json:"_createdAt"`
}

func (d vehicleDoc) toDomain() domain.Vehicle {
	createdAt, _ := time.Parse(time.RFC3339, d.CreatedAt)
	return domain.Vehicle{
		ID:               d.ID,
		ListingTitle:     d.ListingTitle,
		Slug:             d.Slug.Current,
		Chassis:          d.Chassis,
		VIN:              d.VIN,
		Mileage:          d.Mileage,
		ListingPrice:     d.ListingPrice,
		ShowCallForPrice: d.ShowCallForPrice,
		Status:           domain.Status(d.Status),
		InventoryStatus:  d.InventoryStatus,
		CreatedAt:        createdAt,
	}
}

func toVehicles(docs []vehicleDoc) []domain.Vehicle {
	vehicles := make([]domain.Vehicle, len(docs))
	for i, d := range docs {
		vehicles[i] = d.toDomain()
	}
	return vehicles
}
