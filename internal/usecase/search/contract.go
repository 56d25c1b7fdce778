package search

import (
	"context"

	"github.com/enthusiast-garage/dealersearch/internal/domain"
)

// IndexProvider supplies the searchable snapshots the engine runs over.
type IndexProvider interface {
	Vehicles(ctx context.Context) ([]domain.SearchableVehicle, error)
	Products(ctx context.Context) ([]domain.SearchableProduct, error)
}
