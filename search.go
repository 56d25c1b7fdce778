package dealersearch

import (
	"context"
	"fmt"

	"github.com/enthusiast-garage/dealersearch/internal/domain/search/scope"
)

// SearchAll runs a fuzzy search across both the vehicle and parts indexes
// and returns the merged list, best matches first. Queries shorter than two
// characters return an empty list. limit 0 means the default of 20.
func (c *Client) SearchAll(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	return c.search(ctx, query, scope.All, limit)
}

// SearchVehicles searches the vehicle index only.
func (c *Client) SearchVehicles(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	return c.search(ctx, query, scope.Vehicles, limit)
}

// SearchParts searches the parts index only.
func (c *Client) SearchParts(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	return c.search(ctx, query, scope.Parts, limit)
}

func (c *Client) search(ctx context.Context, query string, sc scope.Scope, limit int) ([]SearchResult, error) {
	results, err := c.searchSvc.Search(ctx, query, sc, limit)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", sc, err)
	}
	return fromSearchResults(results), nil
}

// GetVehicleDetails fetches a single vehicle listing by its slug.
// Returns ErrVehicleNotFound when the slug is unknown.
func (c *Client) GetVehicleDetails(ctx context.Context, slug string) (Vehicle, error) {
	v, err := c.vehicles.VehicleBySlug(ctx, slug)
	if err != nil {
		return Vehicle{}, fmt.Errorf("vehicle details: %w", err)
	}
	return fromVehicle(v), nil
}

// GetCompatibleParts returns catalog parts that fit the given vehicle,
// most relevant first. Returns ErrVehicleNotFound when the slug is unknown;
// a catalog outage yields an empty list rather than an error.
func (c *Client) GetCompatibleParts(ctx context.Context, slug string) ([]CompatiblePart, error) {
	parts, err := c.recommendSvc.CompatibleParts(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("compatible parts: %w", err)
	}
	return fromRankedParts(parts), nil
}

// GetVehiclesWithPart returns current inventory vehicles the given part
// fits. Returns ErrProductNotFound when the handle is unknown; universal
// parts and content outages yield an empty list.
func (c *Client) GetVehiclesWithPart(ctx context.Context, handle string) ([]Vehicle, error) {
	vehicles, err := c.recommendSvc.VehiclesWithPart(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("vehicles with part: %w", err)
	}
	return fromVehicles(vehicles), nil
}
