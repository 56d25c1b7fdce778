// Package index builds and caches the denormalized search indexes over
// the vehicle and parts sources.
package index

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/enthusiast-garage/dealersearch/internal/cache"
	"github.com/enthusiast-garage/dealersearch/internal/domain"
)

const (
	vehicleIndexKey = "search:vehicles:index"
	productIndexKey = "search:products:index"

	defaultIndexTTL = 5 * time.Minute

	// Page cap of the catalog source; one page covers the whole catalog
	// for a dealership-sized store.
	productFetchLimit = 250
)

// VehicleLister is the slice of the content source the index needs.
type VehicleLister interface {
	LiveVehicles(ctx context.Context) ([]domain.Vehicle, error)
}

// ProductLister is the slice of the catalog source the index needs.
type ProductLister interface {
	Products(ctx context.Context, first int) ([]domain.Product, error)
}

// Repo builds searchable snapshots on demand and keeps them warm in the
// cache between refreshes.
type Repo struct {
	vehicles VehicleLister
	products ProductLister
	store    cache.Cache
	ttl      time.Duration
	logger   *zap.Logger
}

// Config wires the index repository.
type Config struct {
	Vehicles VehicleLister
	Products ProductLister
	Cache    cache.Cache
	// TTL bounds index staleness. Zero means the default of five minutes.
	TTL    time.Duration
	Logger *zap.Logger
}

// NewRepo creates the index repository.
func NewRepo(cfg *Config) *Repo {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultIndexTTL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repo{
		vehicles: cfg.Vehicles,
		products: cfg.Products,
		store:    cfg.Cache,
		ttl:      ttl,
		logger:   logger,
	}
}

// Vehicles returns the vehicle index, building it from the content source
// on a cache miss.
func (r *Repo) Vehicles(ctx context.Context) ([]domain.SearchableVehicle, error) {
	if cached, ok := cache.GetJSON[[]domain.SearchableVehicle](ctx, r.store, vehicleIndexKey); ok {
		return cached, nil
	}
	return r.refreshVehicles(ctx)
}

// Products returns the parts index, building it from the catalog source
// on a cache miss.
func (r *Repo) Products(ctx context.Context) ([]domain.SearchableProduct, error) {
	if cached, ok := cache.GetJSON[[]domain.SearchableProduct](ctx, r.store, productIndexKey); ok {
		return cached, nil
	}
	return r.refreshProducts(ctx)
}

// RefreshAll rebuilds both indexes from their sources, bypassing any
// cached snapshot. The two rebuilds run concurrently.
func (r *Repo) RefreshAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := r.refreshVehicles(ctx)
		return err
	})
	g.Go(func() error {
		_, err := r.refreshProducts(ctx)
		return err
	})
	return g.Wait()
}

// Warm pre-builds both indexes so the first search does not pay the
// upstream round trips. Failures are logged, not returned; the indexes
// will be built lazily on first use instead.
func (r *Repo) Warm(ctx context.Context) {
	if err := r.RefreshAll(ctx); err != nil {
		r.logger.Warn("index warmup failed, will build lazily", zap.Error(err))
	}
}

func (r *Repo) refreshVehicles(ctx context.Context) ([]domain.SearchableVehicle, error) {
	vehicles, err := r.vehicles.LiveVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("build vehicle index: %w", err)
	}
	searchable := toSearchableVehicles(vehicles)
	cache.SetJSON(ctx, r.store, vehicleIndexKey, searchable, r.ttl)
	r.logger.Debug("vehicle index rebuilt", zap.Int("count", len(searchable)))
	return searchable, nil
}

func (r *Repo) refreshProducts(ctx context.Context) ([]domain.SearchableProduct, error) {
	products, err := r.products.Products(ctx, productFetchLimit)
	if err != nil {
		return nil, fmt.Errorf("build parts index: %w", err)
	}
	searchable := toSearchableProducts(products)
	cache.SetJSON(ctx, r.store, productIndexKey, searchable, r.ttl)
	r.logger.Debug("parts index rebuilt", zap.Int("count", len(searchable)))
	return searchable, nil
}
