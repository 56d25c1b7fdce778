package request

import (
	"fmt"
	"strings"

	"github.com/enthusiast-garage/dealersearch/internal/domain"
	"github.com/enthusiast-garage/dealersearch/internal/domain/search/scope"
)

// Search parameter limits.
const (
	// MinQueryLength is the minimum trimmed query length; anything shorter
	// is rejected before any index is touched.
	MinQueryLength = 2
	MaxQueryLength = 100
	DefaultLimit   = 20
	MaxLimit       = 100
)

// Request is a validated search query.
type Request struct {
	query string
	sc    scope.Scope
	limit int
}

// New validates and normalizes search parameters.
// Defaults: scope=all, limit=20. Limit is clamped to MaxLimit.
// All validation failures wrap domain.ErrInvalidQuery.
func New(query string, sc scope.Scope, limit int) (Request, error) {
	query = strings.TrimSpace(query)
	if len(query) < MinQueryLength {
		return Request{}, fmt.Errorf("%w: query must be at least %d characters", domain.ErrInvalidQuery, MinQueryLength)
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query must not exceed %d characters", domain.ErrInvalidQuery, MaxQueryLength)
	}
	if sc == "" {
		sc = scope.All
	}
	if !sc.IsValid() {
		return Request{}, fmt.Errorf("%w: type must be %q, %q or %q", domain.ErrInvalidQuery, scope.Vehicles, scope.Parts, scope.All)
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 0 {
		return Request{}, fmt.Errorf("%w: limit must be a positive integer", domain.ErrInvalidQuery)
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Request{query: query, sc: sc, limit: limit}, nil
}

// Query returns the trimmed search query text.
func (r *Request) Query() string { return r.query }

// Scope returns the index selection.
func (r *Request) Scope() scope.Scope { return r.sc }

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }
