package health

import "context"

// ContentChecker checks content source (vehicle CMS) availability.
type ContentChecker interface {
	HealthCheck(ctx context.Context) error
}

// CatalogChecker checks catalog source (parts store) availability.
type CatalogChecker interface {
	HealthCheck(ctx context.Context) error
}
