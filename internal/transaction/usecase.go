package transaction

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/transaction/dto"
)

var ErrNotFound = errors.New("transaction not found")

type UseCase interface {
	CreateTransaction(ctx context.Context, input *dto.CreateTransactionInput) (*model.Transaction, error)
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
	UpdateTransaction(ctx context.Context, input *dto.UpdateTransactionInput) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
}
