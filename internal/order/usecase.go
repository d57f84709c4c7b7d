package order

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/order/dto"
)

type UseCase interface {
	CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error)
	DeleteOrder(ctx context.Context, input *dto.DeleteOrderInput) error
	ListOrders(ctx context.Context) ([]model.Order, error)
	LastFewOrders(ctx context.Context) ([]model.Order, error)
}

// EventPublisher ships lifecycle events to downstream consumers (inventory, reporting).
// The use case calls it from a single goroutine.
type EventPublisher interface {
	Publish(ctx context.Context, event *dto.OrderEvent) error
}
