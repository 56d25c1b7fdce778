package dealersearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/enthusiast-garage/dealersearch/internal/cache"
	cacheRedis "github.com/enthusiast-garage/dealersearch/internal/cache/redis"
	"github.com/enthusiast-garage/dealersearch/internal/domain"
	"github.com/enthusiast-garage/dealersearch/internal/domain/search/result"
	"github.com/enthusiast-garage/dealersearch/internal/domain/search/scope"
	indexrepo "github.com/enthusiast-garage/dealersearch/internal/repository/index"
	"github.com/enthusiast-garage/dealersearch/internal/transport/sanity"
	"github.com/enthusiast-garage/dealersearch/internal/transport/shopify"
	recommenduc "github.com/enthusiast-garage/dealersearch/internal/usecase/recommend"
	searchuc "github.com/enthusiast-garage/dealersearch/internal/usecase/search"
)

const (
	defaultContentAPIVersion = "2021-10-21"
	defaultCatalogAPIVersion = "2024-07"
	defaultKeyPrefix         = "dealersearch:"

	defaultReadinessTimeout = 10 * time.Second
)

// Narrow views of the internal services, so tests can substitute them.
type searchUseCase interface {
	Search(ctx context.Context, query string, sc scope.Scope, limit int) ([]result.Result, error)
}

type recommendUseCase interface {
	CompatibleParts(ctx context.Context, slug string) ([]recommenduc.RankedPart, error)
	VehiclesWithPart(ctx context.Context, handle string) ([]domain.Vehicle, error)
}

type vehicleDirectory interface {
	VehicleBySlug(ctx context.Context, slug string) (domain.Vehicle, error)
}

type indexRefresher interface {
	RefreshAll(ctx context.Context) error
}

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Client is the dealersearch SDK entry point. It embeds the search and
// fitment services in-process, talking straight to the content and catalog
// sources without an intermediate HTTP hop.
type Client struct {
	store      cache.Cache
	closeStore func()

	searchSvc    searchUseCase
	recommendSvc recommendUseCase
	vehicles     vehicleDirectory
	indexes      indexRefresher

	content healthChecker
	catalog healthChecker
}

// New creates a dealersearch Client. Content and catalog sources are
// required (use WithContent and WithCatalog); everything else has defaults.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		contentAPIVersion: defaultContentAPIVersion,
		catalogAPIVersion: defaultCatalogAPIVersion,
		cacheBackend:      "memory",
		keyPrefix:         defaultKeyPrefix,
	}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	if cfg.contentProjectID == "" || cfg.contentDataset == "" {
		return nil, errors.New("dealersearch: content source required (use WithContent)")
	}
	if cfg.catalogDomain == "" || cfg.catalogToken == "" {
		return nil, errors.New("dealersearch: catalog source required (use WithCatalog)")
	}

	store, closeStore, err := createStore(cfg)
	if err != nil {
		return nil, err
	}
	return wireClient(store, closeStore, cfg), nil
}

func createStore(cfg *clientConfig) (cache.Cache, func(), error) {
	switch cfg.cacheBackend {
	case "memory":
		return cache.NewMemory(), func() {}, nil
	case "redis":
		s, err := cacheRedis.NewStore(cacheRedis.Config{
			Addrs:     cfg.redisAddrs,
			Password:  cfg.redisPassword,
			KeyPrefix: cfg.keyPrefix,
		}, cfg.logger)
		if err != nil {
			return nil, nil, fmt.Errorf("dealersearch: create redis store: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), defaultReadinessTimeout)
		defer cancel()
		if err := s.Ping(ctx); err != nil {
			s.Close()
			return nil, nil, fmt.Errorf("dealersearch: redis not ready: %w", err)
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("dealersearch: unknown cache backend %q", cfg.cacheBackend)
	}
}

func wireClient(store cache.Cache, closeStore func(), cfg *clientConfig) *Client {
	content := sanity.NewClient(&sanity.Config{
		ProjectID:  cfg.contentProjectID,
		Dataset:    cfg.contentDataset,
		APIVersion: cfg.contentAPIVersion,
		Token:      cfg.contentToken,
		HTTPClient: cfg.httpClient,
		Logger:     cfg.logger,
	})
	catalog := shopify.NewClient(&shopify.Config{
		StoreDomain:     cfg.catalogDomain,
		StorefrontToken: cfg.catalogToken,
		APIVersion:      cfg.catalogAPIVersion,
		HTTPClient:      cfg.httpClient,
		Logger:          cfg.logger,
	})
	indexRepo := indexrepo.NewRepo(&indexrepo.Config{
		Vehicles: content,
		Products: catalog,
		Cache:    store,
		TTL:      cfg.indexTTL,
		Logger:   cfg.logger,
	})

	return &Client{
		store:        store,
		closeStore:   closeStore,
		searchSvc:    searchuc.New(indexRepo, store),
		recommendSvc: recommenduc.New(content, catalog, store),
		vehicles:     content,
		indexes:      indexRepo,
		content:      content,
		catalog:      catalog,
	}
}

// Close releases the cache backend. The client must not be used afterwards.
func (c *Client) Close() {
	if c.closeStore != nil {
		c.closeStore()
	}
}

// Ping checks connectivity to both upstream sources.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.content.HealthCheck(ctx); err != nil {
		return fmt.Errorf("ping content: %w", err)
	}
	if err := c.catalog.HealthCheck(ctx); err != nil {
		return fmt.Errorf("ping catalog: %w", err)
	}
	return nil
}

// RefreshIndexes rebuilds both search indexes from the upstream sources,
// bypassing the cached snapshots.
func (c *Client) RefreshIndexes(ctx context.Context) error {
	if err := c.indexes.RefreshAll(ctx); err != nil {
		return fmt.Errorf("refresh indexes: %w", err)
	}
	return nil
}
