package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/transaction"
	"github.com/fekuna/omnipos-backoffice-service/internal/transaction/dto"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
)

type transactionUseCase struct {
	repo   transaction.Repository
	logger logger.ZapLogger
}

func NewTransactionUseCase(repo transaction.Repository, log logger.ZapLogger) transaction.UseCase {
	return &transactionUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *transactionUseCase) CreateTransaction(ctx context.Context, input *dto.CreateTransactionInput) (*model.Transaction, error) {
	createdAt := time.Now()
	if input.CreatedAt != nil {
		createdAt = *input.CreatedAt
	}

	t := &model.Transaction{
		BaseModel:       model.BaseModel{CreatedAt: createdAt},
		OrderID:         input.OrderID,
		PaymentMethodID: input.PaymentMethodID,
		Amount:          input.Amount,
		Category:        input.Category,
		Type:            input.Type,
		Status:          input.Status,
		Description:     input.Description,
		UserUID:         input.UserID,
	}

	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *transactionUseCase) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *transactionUseCase) UpdateTransaction(ctx context.Context, input *dto.UpdateTransactionInput) (*model.Transaction, error) {
	t, err := uc.repo.Update(ctx, input)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, transaction.ErrNotFound
	}
	return t, nil
}

func (uc *transactionUseCase) DeleteTransaction(ctx context.Context, id int64) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return transaction.ErrNotFound
	}
	return nil
}
