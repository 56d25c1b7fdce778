package recommend

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/enthusiast-garage/dealersearch/internal/cache"
	"github.com/enthusiast-garage/dealersearch/internal/domain"
)

func TestCompatibleParts_RanksAndFilters(t *testing.T) {
	vehicles := &mockVehicleSource{
		bySlugFn: func(ctx context.Context, slug string) (domain.Vehicle, error) {
			return e46Vehicle(), nil
		},
	}
	products := &mockProductSource{
		byTagQueryFn: func(ctx context.Context, tagQuery string, first int) ([]domain.Product, error) {
			want := `tag:"BMW E46" OR tag:"BMW Universal"`
			if tagQuery != want {
				t.Errorf("tagQuery = %q, want %q", tagQuery, want)
			}
			if first != candidateFetchLimit {
				t.Errorf("first = %d, want %d", first, candidateFetchLimit)
			}
			return candidateParts(), nil
		},
	}
	svc := New(vehicles, products, cache.NewMemory())

	ranked, err := svc.CompatibleParts(context.Background(), "2003-bmw-e46-m3")
	if err != nil {
		t.Fatalf("CompatibleParts: %v", err)
	}

	// The E90-only part scores zero and is excluded; the rest sort by
	// descending relevance.
	if len(ranked) != 3 {
		t.Fatalf("got %d parts, want 3", len(ranked))
	}
	wantOrder := []string{"p-exact", "p-model", "p-universal"}
	wantScores := []RelevanceScore{10, 5, 1}
	for i, r := range ranked {
		if r.Product.ID != wantOrder[i] {
			t.Errorf("ranked[%d] = %s, want %s", i, r.Product.ID, wantOrder[i])
		}
		if r.Relevance != wantScores[i] {
			t.Errorf("ranked[%d].Relevance = %d, want %d", i, r.Relevance, wantScores[i])
		}
	}
}

func TestCompatibleParts_CapsAtSix(t *testing.T) {
	vehicles := &mockVehicleSource{
		bySlugFn: func(ctx context.Context, slug string) (domain.Vehicle, error) {
			return e46Vehicle(), nil
		},
	}
	products := &mockProductSource{
		byTagQueryFn: func(ctx context.Context, tagQuery string, first int) ([]domain.Product, error) {
			var many []domain.Product
			for i := 0; i < 10; i++ {
				many = append(many, domain.Product{
					ID:   fmt.Sprintf("p%d", i),
					Tags: []string{"BMW E46 2001-2006"},
				})
			}
			return many, nil
		},
	}
	svc := New(vehicles, products, cache.NewMemory())

	ranked, err := svc.CompatibleParts(context.Background(), "2003-bmw-e46-m3")
	if err != nil {
		t.Fatalf("CompatibleParts: %v", err)
	}
	if len(ranked) != maxCompatibleParts {
		t.Errorf("got %d parts, want %d", len(ranked), maxCompatibleParts)
	}
}

func TestCompatibleParts_SecondCallServedFromCache(t *testing.T) {
	vehicles := &mockVehicleSource{
		bySlugFn: func(ctx context.Context, slug string) (domain.Vehicle, error) {
			return e46Vehicle(), nil
		},
	}
	products := &mockProductSource{
		byTagQueryFn: func(ctx context.Context, tagQuery string, first int) ([]domain.Product, error) {
			return candidateParts(), nil
		},
	}
	svc := New(vehicles, products, cache.NewMemory())

	ctx := context.Background()
	if _, err := svc.CompatibleParts(ctx, "2003-bmw-e46-m3"); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := svc.CompatibleParts(ctx, "2003-bmw-e46-m3"); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if vehicles.bySlugCalls != 1 || products.byTagQueryCalls != 1 {
		t.Errorf("sources called %d/%d times, want 1/1", vehicles.bySlugCalls, products.byTagQueryCalls)
	}
}

func TestCompatibleParts_UnknownSlug(t *testing.T) {
	svc := New(&mockVehicleSource{}, &mockProductSource{}, cache.NewMemory())

	_, err := svc.CompatibleParts(context.Background(), "no-such-vehicle")
	if !errors.Is(err, domain.ErrVehicleNotFound) {
		t.Errorf("err = %v, want ErrVehicleNotFound", err)
	}
}

func TestCompatibleParts_CatalogOutageDegrades(t *testing.T) {
	vehicles := &mockVehicleSource{
		bySlugFn: func(ctx context.Context, slug string) (domain.Vehicle, error) {
			return e46Vehicle(), nil
		},
	}
	products := &mockProductSource{
		byTagQueryFn: func(ctx context.Context, tagQuery string, first int) ([]domain.Product, error) {
			return nil, domain.ErrUpstreamUnavailable
		},
	}
	svc := New(vehicles, products, cache.NewMemory())

	ranked, err := svc.CompatibleParts(context.Background(), "2003-bmw-e46-m3")
	if err != nil {
		t.Fatalf("CompatibleParts: %v", err)
	}
	if len(ranked) != 0 {
		t.Errorf("got %d parts, want 0", len(ranked))
	}
}

func TestCompatibleParts_NoChassisQueriesUniversalOnly(t *testing.T) {
	vehicles := &mockVehicleSource{
		bySlugFn: func(ctx context.Context, slug string) (domain.Vehicle, error) {
			return domain.Vehicle{ListingTitle: "1988 Porsche 944 Turbo", Slug: slug}, nil
		},
	}
	products := &mockProductSource{
		byTagQueryFn: func(ctx context.Context, tagQuery string, first int) ([]domain.Product, error) {
			if tagQuery != `tag:"BMW Universal"` {
				t.Errorf("tagQuery = %q", tagQuery)
			}
			return nil, nil
		},
	}
	svc := New(vehicles, products, cache.NewMemory())

	if _, err := svc.CompatibleParts(context.Background(), "1988-porsche-944"); err != nil {
		t.Fatalf("CompatibleParts: %v", err)
	}
}

func TestVehiclesWithPart_DerivesModels(t *testing.T) {
	vehicles := &mockVehicleSource{
		byChassisFn: func(ctx context.Context, models []string, limit int) ([]domain.Vehicle, error) {
			if len(models) != 2 || models[0] != "E46" || models[1] != "E90" {
				t.Errorf("models = %v, want [E46 E90]", models)
			}
			if limit != maxVehiclesWithPart {
				t.Errorf("limit = %d, want %d", limit, maxVehiclesWithPart)
			}
			return []domain.Vehicle{e46Vehicle()}, nil
		},
	}
	products := &mockProductSource{
		byHandleFn: func(ctx context.Context, handle string) (domain.Product, error) {
			return domain.Product{
				Handle: handle,
				Tags:   []string{"BMW E46 2001-2006", "BMW Universal", "BMW E90", "BMW E46"},
			}, nil
		},
	}
	svc := New(vehicles, products, cache.NewMemory())

	got, err := svc.VehiclesWithPart(context.Background(), "strut-brace")
	if err != nil {
		t.Fatalf("VehiclesWithPart: %v", err)
	}
	if len(got) != 1 || got[0].Chassis != "E46" {
		t.Errorf("vehicles = %v", got)
	}
}

func TestVehiclesWithPart_UniversalOnlyPartYieldsNothing(t *testing.T) {
	vehicles := &mockVehicleSource{}
	products := &mockProductSource{
		byHandleFn: func(ctx context.Context, handle string) (domain.Product, error) {
			return domain.Product{Handle: handle, Tags: []string{"BMW Universal"}}, nil
		},
	}
	svc := New(vehicles, products, cache.NewMemory())

	got, err := svc.VehiclesWithPart(context.Background(), "leather-cleaner")
	if err != nil {
		t.Fatalf("VehiclesWithPart: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d vehicles, want 0", len(got))
	}
	if vehicles.byChassisCalls != 0 {
		t.Error("universal-only part must not query the content source")
	}
}

func TestVehiclesWithPart_UnknownHandle(t *testing.T) {
	svc := New(&mockVehicleSource{}, &mockProductSource{}, cache.NewMemory())

	_, err := svc.VehiclesWithPart(context.Background(), "no-such-part")
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("err = %v, want ErrProductNotFound", err)
	}
}

func TestVehiclesWithPart_SecondCallServedFromCache(t *testing.T) {
	vehicles := &mockVehicleSource{
		byChassisFn: func(ctx context.Context, models []string, limit int) ([]domain.Vehicle, error) {
			return []domain.Vehicle{e46Vehicle()}, nil
		},
	}
	products := &mockProductSource{
		byHandleFn: func(ctx context.Context, handle string) (domain.Product, error) {
			return domain.Product{Handle: handle, Tags: []string{"BMW E46"}}, nil
		},
	}
	svc := New(vehicles, products, cache.NewMemory())

	ctx := context.Background()
	if _, err := svc.VehiclesWithPart(ctx, "e46-spoiler"); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := svc.VehiclesWithPart(ctx, "e46-spoiler"); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if products.byHandleCalls != 1 || vehicles.byChassisCalls != 1 {
		t.Errorf("sources called %d/%d times, want 1/1", products.byHandleCalls, vehicles.byChassisCalls)
	}
}

func TestVehiclesWithPart_ContentOutageDegrades(t *testing.T) {
	vehicles := &mockVehicleSource{
		byChassisFn: func(ctx context.Context, models []string, limit int) ([]domain.Vehicle, error) {
			return nil, domain.ErrUpstreamUnavailable
		},
	}
	products := &mockProductSource{
		byHandleFn: func(ctx context.Context, handle string) (domain.Product, error) {
			return domain.Product{Handle: handle, Tags: []string{"BMW E46"}}, nil
		},
	}
	svc := New(vehicles, products, cache.NewMemory())

	got, err := svc.VehiclesWithPart(context.Background(), "e46-spoiler")
	if err != nil {
		t.Fatalf("VehiclesWithPart: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d vehicles, want 0", len(got))
	}
}
