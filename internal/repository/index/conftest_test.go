package index

import (
	"context"
	"time"

	"github.com/enthusiast-garage/dealersearch/internal/domain"
)

type mockVehicleLister struct {
	liveVehiclesFn func(ctx context.Context) ([]domain.Vehicle, error)
	calls          int
}

func (m *mockVehicleLister) LiveVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	m.calls++
	if m.liveVehiclesFn != nil {
		return m.liveVehiclesFn(ctx)
	}
	return nil, nil
}

type mockProductLister struct {
	productsFn func(ctx context.Context, first int) ([]domain.Product, error)
	calls      int
}

func (m *mockProductLister) Products(ctx context.Context, first int) ([]domain.Product, error) {
	m.calls++
	if m.productsFn != nil {
		return m.productsFn(ctx, first)
	}
	return nil, nil
}

func someVehicles() []domain.Vehicle {
	return []domain.Vehicle{
		{
			ID:           "v1",
			ListingTitle: "2006 BMW E46 M3",
			Slug:         "2006-bmw-e46-m3",
			Chassis:      "E46",
			Mileage:      42000,
			ListingPrice: 45000,
			Status:       domain.StatusCurrent,
			CreatedAt:    time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:               "v2",
			ListingTitle:     "1995 BMW E36 M3",
			Slug:             "1995-bmw-e36-m3",
			Chassis:          "E36",
			ShowCallForPrice: true,
			ListingPrice:     30000,
			Status:           domain.StatusSold,
		},
	}
}

func someProducts() []domain.Product {
	return []domain.Product{
		{
			ID:     "p1",
			Handle: "e46-brake-rotors",
			Title:  "E46 Brake Rotors",
			Tags:   []string{"BMW E46 2001-2006", "Brakes"},
		},
	}
}
