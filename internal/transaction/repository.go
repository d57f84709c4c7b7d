package transaction

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/transaction/dto"
)

type Repository interface {
	Create(ctx context.Context, t *model.Transaction) error
	FindAll(ctx context.Context) ([]model.Transaction, error)
	// Update returns nil when no row matched.
	Update(ctx context.Context, input *dto.UpdateTransactionInput) (*model.Transaction, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteByOrderID(ctx context.Context, orderID int64) error
}
