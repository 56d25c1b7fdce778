package search

import (
	"context"

	"github.com/enthusiast-garage/dealersearch/internal/domain"
)

type mockProvider struct {
	vehiclesFn func(ctx context.Context) ([]domain.SearchableVehicle, error)
	productsFn func(ctx context.Context) ([]domain.SearchableProduct, error)

	vehicleCalls int
	productCalls int
}

func (m *mockProvider) Vehicles(ctx context.Context) ([]domain.SearchableVehicle, error) {
	m.vehicleCalls++
	if m.vehiclesFn != nil {
		return m.vehiclesFn(ctx)
	}
	return nil, nil
}

func (m *mockProvider) Products(ctx context.Context) ([]domain.SearchableProduct, error) {
	m.productCalls++
	if m.productsFn != nil {
		return m.productsFn(ctx)
	}
	return nil, nil
}

func inventoryVehicles() []domain.SearchableVehicle {
	return []domain.SearchableVehicle{
		{ID: "v1", ListingTitle: "2006 BMW E46 M3 Competition", Slug: "2006-bmw-e46-m3", Chassis: "E46", Status: domain.StatusCurrent, InventoryStatus: "in stock"},
		{ID: "v2", ListingTitle: "2012 BMW E90 335i", Slug: "2012-bmw-e90-335i", Chassis: "E90", Status: domain.StatusCurrent, InventoryStatus: "in stock"},
		{ID: "v3", ListingTitle: "1988 Porsche 944 Turbo", Slug: "1988-porsche-944-turbo", Chassis: "", Status: domain.StatusSold, InventoryStatus: "sold"},
	}
}

func catalogProducts() []domain.SearchableProduct {
	return []domain.SearchableProduct{
		{ID: "p1", Handle: "e46-brake-rotors", Title: "E46 Brake Rotors", Tags: "BMW E46 2001-2006 Brakes", Description: "Slotted front rotors", Vendor: "StopTech", ProductType: "Brakes"},
		{ID: "p2", Handle: "leather-cleaner", Title: "Leather Care Kit", Tags: "BMW Universal Interior", Description: "Cleaner and conditioner", Vendor: "Griot's", ProductType: "Detailing"},
	}
}
