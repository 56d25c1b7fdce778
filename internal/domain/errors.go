package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrVehicleNotFound signals a missing vehicle listing.
	ErrVehicleNotFound = errors.New("vehicle not found")
	// ErrProductNotFound signals a missing catalog product.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidQuery signals an invalid search query or parameter.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrUpstreamUnavailable signals that a data source could not be reached.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
