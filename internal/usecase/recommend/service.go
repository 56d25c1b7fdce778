// Package recommend ranks parts for a vehicle by fitment relevance and
// finds the in-stock vehicles a part fits.
package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/enthusiast-garage/dealersearch/internal/cache"
	"github.com/enthusiast-garage/dealersearch/internal/domain"
	"github.com/enthusiast-garage/dealersearch/internal/domain/fitment"
	"github.com/enthusiast-garage/dealersearch/internal/logger"
	"github.com/enthusiast-garage/dealersearch/internal/metrics"
)

const (
	recommendationTTL = 5 * time.Minute

	// The catalog's tag query is a coarse pre-filter; fine-grained
	// scoring happens here, so fetch more candidates than we return.
	candidateFetchLimit = 20

	maxCompatibleParts  = 6
	maxVehiclesWithPart = 4
)

// RankedPart is one recommended part with its fitment relevance.
type RankedPart struct {
	Product   domain.Product `json:"product"`
	Relevance RelevanceScore `json:"relevance"`
}

// Service is the fitment recommendation ranker.
type Service struct {
	vehicles VehicleSource
	products ProductSource
	store    cache.Cache
}

// New creates a recommendation service.
func New(vehicles VehicleSource, products ProductSource, store cache.Cache) *Service {
	return &Service{vehicles: vehicles, products: products, store: store}
}

// CompatibleParts returns up to six parts fitting the vehicle identified
// by slug, best fitment first. Returns domain.ErrVehicleNotFound for an
// unknown slug. A catalog outage degrades to an empty list.
func (s *Service) CompatibleParts(ctx context.Context, slug string) ([]RankedPart, error) {
	key := "compatible-parts:" + slug
	if cached, ok := cache.GetJSON[[]RankedPart](ctx, s.store, key); ok {
		metrics.RecommendationCacheTotal.WithLabelValues("parts", "hit").Inc()
		return cached, nil
	}
	metrics.RecommendationCacheTotal.WithLabelValues("parts", "miss").Inc()

	vehicle, err := s.vehicles.VehicleBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("resolve vehicle: %w", err)
	}

	chassis := strings.ToUpper(vehicle.Chassis)
	year := fitment.YearFromTitle(vehicle.ListingTitle)

	candidates, err := s.products.ProductsByTagQuery(ctx, tagQuery(chassis), candidateFetchLimit)
	if err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues("parts").Inc()
		logger.FromContext(ctx).Warn("part recommendations degraded, catalog unavailable",
			zap.String("slug", slug), zap.Error(err))
		return []RankedPart{}, nil
	}

	ranked := make([]RankedPart, 0, len(candidates))
	for _, p := range candidates {
		if score := rankProductForVehicle(p, chassis, year); score > scoreNone {
			ranked = append(ranked, RankedPart{Product: p, Relevance: score})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Relevance > ranked[j].Relevance
	})
	if len(ranked) > maxCompatibleParts {
		ranked = ranked[:maxCompatibleParts]
	}

	cache.SetJSON(ctx, s.store, key, ranked, recommendationTTL)
	return ranked, nil
}

// VehiclesWithPart returns up to four current-inventory vehicles the part
// fits, newest first. Returns domain.ErrProductNotFound for an unknown
// handle. A universal-only part derives no models and yields an empty
// list; so does a content source outage.
func (s *Service) VehiclesWithPart(ctx context.Context, handle string) ([]domain.Vehicle, error) {
	key := "vehicles-with-part:" + handle
	if cached, ok := cache.GetJSON[[]domain.Vehicle](ctx, s.store, key); ok {
		metrics.RecommendationCacheTotal.WithLabelValues("vehicles", "hit").Inc()
		return cached, nil
	}
	metrics.RecommendationCacheTotal.WithLabelValues("vehicles", "miss").Inc()

	product, err := s.products.ProductByHandle(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("resolve product: %w", err)
	}

	models := fitment.ModelsFromTags(product.Tags)
	if len(models) == 0 {
		return []domain.Vehicle{}, nil
	}

	vehicles, err := s.vehicles.CurrentVehiclesByChassis(ctx, models, maxVehiclesWithPart)
	if err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues("vehicles").Inc()
		logger.FromContext(ctx).Warn("vehicle matches degraded, content source unavailable",
			zap.String("handle", handle), zap.Error(err))
		return []domain.Vehicle{}, nil
	}

	cache.SetJSON(ctx, s.store, key, vehicles, recommendationTTL)
	return vehicles, nil
}

// tagQuery builds the coarse catalog pre-filter. Universal parts always
// qualify; the chassis clause is added when the vehicle has one.
func tagQuery(chassis string) string {
	universal := `tag:"BMW Universal"`
	if chassis == "" {
		return universal
	}
	return fmt.Sprintf(`tag:"BMW %s" OR %s`, chassis, universal)
}
