package order

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
)

type Repository interface {
	// Create inserts the header and fills in its generated id and joined customer name.
	Create(ctx context.Context, o *model.Order) error
	// CreateItems inserts every item in a single statement.
	CreateItems(ctx context.Context, items []model.OrderItem) error

	// FindByID returns the header with customer name and items, or nil when absent.
	FindByID(ctx context.Context, id int64) (*model.Order, error)
	FindAll(ctx context.Context) ([]model.Order, error)
	// FindRecent also loads product names and payment transactions.
	FindRecent(ctx context.Context, limit int) ([]model.Order, error)

	Delete(ctx context.Context, id int64) error
	DeleteItems(ctx context.Context, orderID int64) error
}
