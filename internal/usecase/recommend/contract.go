package recommend

import (
	"context"

	"github.com/enthusiast-garage/dealersearch/internal/domain"
)

// VehicleSource is the slice of the content source the ranker needs.
type VehicleSource interface {
	VehicleBySlug(ctx context.Context, slug string) (domain.Vehicle, error)
	CurrentVehiclesByChassis(ctx context.Context, models []string, limit int) ([]domain.Vehicle, error)
}

// ProductSource is the slice of the catalog source the ranker needs.
type ProductSource interface {
	ProductByHandle(ctx context.Context, handle string) (domain.Product, error)
	ProductsByTagQuery(ctx context.Context, tagQuery string, first int) ([]domain.Product, error)
}
