// Package search runs fuzzy queries across the vehicle and parts indexes
// and merges the hits into one ranked list.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/enthusiast-garage/dealersearch/internal/cache"
	"github.com/enthusiast-garage/dealersearch/internal/domain"
	"github.com/enthusiast-garage/dealersearch/internal/domain/search/request"
	"github.com/enthusiast-garage/dealersearch/internal/domain/search/result"
	"github.com/enthusiast-garage/dealersearch/internal/domain/search/scope"
	"github.com/enthusiast-garage/dealersearch/internal/fuzzy"
	"github.com/enthusiast-garage/dealersearch/internal/logger"
	"github.com/enthusiast-garage/dealersearch/internal/metrics"
)

const (
	resultsTTL = 5 * time.Minute

	// Searches slower than this get a warn log; the whole path is
	// in-memory once indexes are warm, so anything slower usually means a
	// cold index paid an upstream round trip.
	slowSearchThreshold = 300 * time.Millisecond
)

// Service is the search orchestrator.
type Service struct {
	provider IndexProvider
	store    cache.Cache
}

// New creates a search service.
func New(provider IndexProvider, store cache.Cache) *Service {
	return &Service{provider: provider, store: store}
}

// Search runs query against the indexes selected by sc and returns up to
// limit results ranked best first.
//
// Queries shorter than two characters return an empty list, never an
// error. Other parameter problems wrap domain.ErrInvalidQuery. Upstream
// outages never fail a search: a branch whose index cannot be built is
// logged and contributes nothing, so the worst case is an empty list.
func (s *Service) Search(ctx context.Context, query string, sc scope.Scope, limit int) ([]result.Result, error) {
	if len(strings.TrimSpace(query)) < request.MinQueryLength {
		return []result.Result{}, nil
	}
	req, err := request.New(query, sc, limit)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	key := resultsKey(req.Scope(), req.Query())

	if cached, ok := cache.GetJSON[[]result.Result](ctx, s.store, key); ok {
		metrics.SearchCacheTotal.WithLabelValues("hit").Inc()
		return truncate(cached, req.Limit()), nil
	}
	metrics.SearchCacheTotal.WithLabelValues("miss").Inc()

	merged := s.run(ctx, req.Query(), req.Scope())

	// The full merged list goes into the cache so later requests with a
	// different limit are still hits.
	cache.SetJSON(ctx, s.store, key, merged, resultsTTL)

	elapsed := time.Since(start)
	metrics.SearchDuration.WithLabelValues(string(req.Scope())).Observe(elapsed.Seconds())
	if elapsed > slowSearchThreshold {
		logger.FromContext(ctx).Warn("slow search",
			zap.String("query", req.Query()),
			zap.String("scope", string(req.Scope())),
			zap.Duration("elapsed", elapsed),
		)
	}

	return truncate(merged, req.Limit()), nil
}

// Terms common enough that paying their first search at startup is worth
// it. Kept short so warming stays a burst, not a load test.
var popularTerms = []string{
	"BMW", "E46", "M3", "parts", "performance",
	"brake", "suspension", "engine", "M5", "E39",
}

// WarmPopular seeds the result cache with searches for common terms.
// Best effort: a failing term is logged and skipped. The first term
// already builds both indexes, so the rest are in-memory.
func (s *Service) WarmPopular(ctx context.Context) {
	warmed := 0
	for _, term := range popularTerms {
		if _, err := s.Search(ctx, term, scope.All, 0); err != nil {
			logger.FromContext(ctx).Warn("result cache warm failed",
				zap.String("query", term), zap.Error(err))
			continue
		}
		warmed++
	}
	logger.FromContext(ctx).Debug("result cache warmed", zap.Int("terms", warmed))
}

// run executes the requested branches concurrently and merges their hits
// into one list sorted ascending by score. Ties keep vehicles before
// products, matching branch order.
//
// A branch whose index cannot be built contributes nothing: it is logged
// and counted, never surfaced to the caller. Search results degrade to
// empty during an upstream outage rather than failing the request.
func (s *Service) run(ctx context.Context, query string, sc scope.Scope) []result.Result {
	var (
		vehicleMatches []fuzzy.Match[domain.SearchableVehicle]
		productMatches []fuzzy.Match[domain.SearchableProduct]
		vehicleErr     error
		productErr     error
	)

	g, gctx := errgroup.WithContext(ctx)
	if sc.IncludesVehicles() {
		g.Go(func() error {
			items, err := s.provider.Vehicles(gctx)
			if err != nil {
				vehicleErr = err
				return nil
			}
			vehicleMatches = searchVehicles(items, query)
			return nil
		})
	}
	if sc.IncludesParts() {
		g.Go(func() error {
			items, err := s.provider.Products(gctx)
			if err != nil {
				productErr = err
				return nil
			}
			productMatches = searchProducts(items, query)
			return nil
		})
	}
	_ = g.Wait()

	log := logger.FromContext(ctx)
	if vehicleErr != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues("vehicles").Inc()
		log.Warn("vehicle branch skipped", zap.Error(vehicleErr))
	}
	if productErr != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues("parts").Inc()
		log.Warn("parts branch skipped", zap.Error(productErr))
	}

	merged := make([]result.Result, 0, len(vehicleMatches)+len(productMatches))
	for _, m := range vehicleMatches {
		merged = append(merged, result.Vehicle(m.Item, result.MatchScore(m.Score)))
	}
	for _, m := range productMatches {
		merged = append(merged, result.Product(m.Item, result.MatchScore(m.Score)))
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score() < merged[j].Score()
	})
	return merged
}

func resultsKey(sc scope.Scope, query string) string {
	return fmt.Sprintf("search:results:%s:%s", sc, strings.ToLower(query))
}

func truncate(results []result.Result, limit int) []result.Result {
	if len(results) > limit {
		return results[:limit]
	}
	return results
}
