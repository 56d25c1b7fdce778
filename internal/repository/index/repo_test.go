package index

import (
	"context"
	"errors"
	"testing"

	"github.com/enthusiast-garage/dealersearch/internal/cache"
	"github.com/enthusiast-garage/dealersearch/internal/domain"
)

func newTestRepo(vehicles *mockVehicleLister, products *mockProductLister) (*Repo, cache.Cache) {
	store := cache.NewMemory()
	repo := NewRepo(&Config{
		Vehicles: vehicles,
		Products: products,
		Cache:    store,
	})
	return repo, store
}

func TestVehicles_BuildsSearchableSnapshot(t *testing.T) {
	vehicles := &mockVehicleLister{
		liveVehiclesFn: func(ctx context.Context) ([]domain.Vehicle, error) {
			return someVehicles(), nil
		},
	}
	repo, _ := newTestRepo(vehicles, &mockProductLister{})

	got, err := repo.Vehicles(context.Background())
	if err != nil {
		t.Fatalf("Vehicles: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0].Chassis != "E46" || got[0].ListingPrice != 45000 {
		t.Errorf("first entry = %+v", got[0])
	}
	// Call-for-price listings must not leak the price into the index.
	if got[1].ListingPrice != 0 {
		t.Errorf("call-for-price listing has price %v, want 0", got[1].ListingPrice)
	}
}

func TestVehicles_SecondCallServedFromCache(t *testing.T) {
	vehicles := &mockVehicleLister{
		liveVehiclesFn: func(ctx context.Context) ([]domain.Vehicle, error) {
			return someVehicles(), nil
		},
	}
	repo, _ := newTestRepo(vehicles, &mockProductLister{})

	ctx := context.Background()
	if _, err := repo.Vehicles(ctx); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := repo.Vehicles(ctx); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if vehicles.calls != 1 {
		t.Errorf("upstream called %d times, want 1", vehicles.calls)
	}
}

func TestProducts_ConcatenatesTags(t *testing.T) {
	products := &mockProductLister{
		productsFn: func(ctx context.Context, first int) ([]domain.Product, error) {
			if first != productFetchLimit {
				t.Errorf("first = %d, want %d", first, productFetchLimit)
			}
			return someProducts(), nil
		},
	}
	repo, _ := newTestRepo(&mockVehicleLister{}, products)

	got, err := repo.Products(context.Background())
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	if got[0].Tags != "BMW E46 2001-2006 Brakes" {
		t.Errorf("tags = %q", got[0].Tags)
	}
}

func TestVehicles_UpstreamErrorPropagates(t *testing.T) {
	vehicles := &mockVehicleLister{
		liveVehiclesFn: func(ctx context.Context) ([]domain.Vehicle, error) {
			return nil, domain.ErrUpstreamUnavailable
		},
	}
	repo, _ := newTestRepo(vehicles, &mockProductLister{})

	_, err := repo.Vehicles(context.Background())
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Errorf("err = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestRefreshAll_BypassesCache(t *testing.T) {
	vehicles := &mockVehicleLister{
		liveVehiclesFn: func(ctx context.Context) ([]domain.Vehicle, error) {
			return someVehicles(), nil
		},
	}
	products := &mockProductLister{
		productsFn: func(ctx context.Context, first int) ([]domain.Product, error) {
			return someProducts(), nil
		},
	}
	repo, _ := newTestRepo(vehicles, products)

	ctx := context.Background()
	if _, err := repo.Vehicles(ctx); err != nil {
		t.Fatalf("prime: %v", err)
	}
	if err := repo.RefreshAll(ctx); err != nil {
		t.Fatalf("RefreshAll: %v", err)
	}
	if vehicles.calls != 2 {
		t.Errorf("vehicle upstream called %d times, want 2", vehicles.calls)
	}
	if products.calls != 1 {
		t.Errorf("product upstream called %d times, want 1", products.calls)
	}
}

func TestRefreshAll_ReturnsFirstError(t *testing.T) {
	sentinel := errors.New("content source down")
	vehicles := &mockVehicleLister{
		liveVehiclesFn: func(ctx context.Context) ([]domain.Vehicle, error) {
			return nil, sentinel
		},
	}
	products := &mockProductLister{
		productsFn: func(ctx context.Context, first int) ([]domain.Product, error) {
			return someProducts(), nil
		},
	}
	repo, _ := newTestRepo(vehicles, products)

	if err := repo.RefreshAll(context.Background()); !errors.Is(err, sentinel) {
		t.Errorf("err = %v, want %v", err, sentinel)
	}
}

func TestWarm_SwallowsFailures(t *testing.T) {
	vehicles := &mockVehicleLister{
		liveVehiclesFn: func(ctx context.Context) ([]domain.Vehicle, error) {
			return nil, domain.ErrUpstreamUnavailable
		},
	}
	repo, _ := newTestRepo(vehicles, &mockProductLister{})

	// Must not panic or block; the error is logged only.
	repo.Warm(context.Background())
}
