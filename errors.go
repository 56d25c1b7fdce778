package dealersearch

import "github.com/enthusiast-garage/dealersearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound            = domain.ErrNotFound
	ErrVehicleNotFound     = domain.ErrVehicleNotFound
	ErrProductNotFound     = domain.ErrProductNotFound
	ErrInvalidQuery        = domain.ErrInvalidQuery
	ErrRateLimited         = domain.ErrRateLimited
	ErrUpstreamUnavailable = domain.ErrUpstreamUnavailable
)
