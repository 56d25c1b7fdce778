package chi

import (
	"context"
	"errors"

	chiv5 "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/enthusiast-garage/dealersearch/internal/cache"
	"github.com/enthusiast-garage/dealersearch/internal/domain"
	healthuc "github.com/enthusiast-garage/dealersearch/internal/usecase/health"
	recommenduc "github.com/enthusiast-garage/dealersearch/internal/usecase/recommend"
	searchuc "github.com/enthusiast-garage/dealersearch/internal/usecase/search"
)

type stubIndexes struct {
	vehicles    []domain.SearchableVehicle
	products    []domain.SearchableProduct
	vehiclesErr error
	productsErr error
}

func (s *stubIndexes) Vehicles(context.Context) ([]domain.SearchableVehicle, error) {
	return s.vehicles, s.vehiclesErr
}

func (s *stubIndexes) Products(context.Context) ([]domain.SearchableProduct, error) {
	return s.products, s.productsErr
}

type stubVehicleSource struct {
	vehicle domain.Vehicle
	err     error
}

func (s *stubVehicleSource) VehicleBySlug(_ context.Context, slug string) (domain.Vehicle, error) {
	if s.err != nil {
		return domain.Vehicle{}, s.err
	}
	return s.vehicle, nil
}

func (s *stubVehicleSource) CurrentVehiclesByChassis(context.Context, []string, int) ([]domain.Vehicle, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Vehicle{s.vehicle}, nil
}

type stubProductSource struct {
	product    domain.Product
	candidates []domain.Product
	err        error
}

func (s *stubProductSource) ProductByHandle(_ context.Context, handle string) (domain.Product, error) {
	if s.err != nil {
		return domain.Product{}, s.err
	}
	return s.product, nil
}

func (s *stubProductSource) ProductsByTagQuery(context.Context, string, int) ([]domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.candidates, nil
}

type stubRefresher struct {
	err   error
	calls int
}

func (s *stubRefresher) RefreshAll(context.Context) error {
	s.calls++
	return s.err
}

type stubChecker struct{ err error }

func (s *stubChecker) HealthCheck(context.Context) error { return s.err }

type fixture struct {
	indexes   *stubIndexes
	vehicles  *stubVehicleSource
	products  *stubProductSource
	refresher *stubRefresher
	content   *stubChecker
	catalog   *stubChecker
}

func defaultFixture() *fixture {
	return &fixture{
		indexes: &stubIndexes{
			vehicles: []domain.SearchableVehicle{
				{ID: "v1", ListingTitle: "2003 BMW E46 M3", Slug: "2003-bmw-e46-m3", Chassis: "E46", Status: domain.StatusCurrent},
			},
			products: []domain.SearchableProduct{
				{ID: "p1", Handle: "e46-brake-rotors", Title: "E46 Brake Rotors", Tags: "BMW E46 2001-2006"},
			},
		},
		vehicles: &stubVehicleSource{
			vehicle: domain.Vehicle{ID: "v1", ListingTitle: "2003 BMW E46 M3", Slug: "2003-bmw-e46-m3", Chassis: "E46"},
		},
		products: &stubProductSource{
			product: domain.Product{ID: "p1", Handle: "e46-brake-rotors", Tags: []string{"BMW E46 2001-2006"}},
			candidates: []domain.Product{
				{ID: "p1", Handle: "e46-brake-rotors", Tags: []string{"BMW E46 2001-2006"}},
				{ID: "p2", Handle: "leather-cleaner", Tags: []string{"BMW Universal"}},
			},
		},
		refresher: &stubRefresher{},
		content:   &stubChecker{},
		catalog:   &stubChecker{},
	}
}

func newTestRouter(f *fixture) *chiv5.Mux {
	store := cache.NewMemory()
	srv := NewServer(
		searchuc.New(f.indexes, store),
		recommenduc.New(f.vehicles, f.products, store),
		f.refresher,
		healthuc.New(f.content, f.catalog),
		zap.NewNop(),
	)
	r := chiv5.NewRouter()
	srv.RegisterRoutes(r)
	return r
}

var errUpstreamDown = errors.New("upstream down")
