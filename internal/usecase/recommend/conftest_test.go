package recommend

import (
	"context"

	"github.com/enthusiast-garage/dealersearch/internal/domain"
)

type mockVehicleSource struct {
	bySlugFn    func(ctx context.Context, slug string) (domain.Vehicle, error)
	byChassisFn func(ctx context.Context, models []string, limit int) ([]domain.Vehicle, error)

	bySlugCalls    int
	byChassisCalls int
}

func (m *mockVehicleSource) VehicleBySlug(ctx context.Context, slug string) (domain.Vehicle, error) {
	m.bySlugCalls++
	if m.bySlugFn != nil {
		return m.bySlugFn(ctx, slug)
	}
	return domain.Vehicle{}, domain.ErrVehicleNotFound
}

func (m *mockVehicleSource) CurrentVehiclesByChassis(ctx context.Context, models []string, limit int) ([]domain.Vehicle, error) {
	m.byChassisCalls++
	if m.byChassisFn != nil {
		return m.byChassisFn(ctx, models, limit)
	}
	return nil, nil
}

type mockProductSource struct {
	byHandleFn   func(ctx context.Context, handle string) (domain.Product, error)
	byTagQueryFn func(ctx context.Context, tagQuery string, first int) ([]domain.Product, error)

	byHandleCalls   int
	byTagQueryCalls int
}

func (m *mockProductSource) ProductByHandle(ctx context.Context, handle string) (domain.Product, error) {
	m.byHandleCalls++
	if m.byHandleFn != nil {
		return m.byHandleFn(ctx, handle)
	}
	return domain.Product{}, domain.ErrProductNotFound
}

func (m *mockProductSource) ProductsByTagQuery(ctx context.Context, tagQuery string, first int) ([]domain.Product, error) {
	m.byTagQueryCalls++
	if m.byTagQueryFn != nil {
		return m.byTagQueryFn(ctx, tagQuery, first)
	}
	return nil, nil
}

func e46Vehicle() domain.Vehicle {
	return domain.Vehicle{
		ID:           "v1",
		ListingTitle: "2003 BMW E46 M3",
		Slug:         "2003-bmw-e46-m3",
		Chassis:      "E46",
		Status:       domain.StatusCurrent,
	}
}

func candidateParts() []domain.Product {
	return []domain.Product{
		{ID: "p-universal", Handle: "leather-cleaner", Title: "Leather Care Kit", Tags: []string{"BMW Universal"}},
		{ID: "p-exact", Handle: "e46-brake-rotors", Title: "E46 Brake Rotors", Tags: []string{"BMW E46 2001-2006"}},
		{ID: "p-model", Handle: "e46-spoiler", Title: "Carbon Spoiler", Tags: []string{"E46 M3 carbon spoiler"}},
		{ID: "p-wrong", Handle: "e90-mats", Title: "E90 Floor Mats", Tags: []string{"BMW E90"}},
	}
}
