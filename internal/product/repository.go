package product

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)
	// Update returns nil when no row matched.
	Update(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
}
