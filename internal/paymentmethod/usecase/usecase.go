package usecase

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/paymentmethod"
)

type paymentMethodUseCase struct {
	repo paymentmethod.Repository
}

func NewPaymentMethodUseCase(repo paymentmethod.Repository) paymentmethod.UseCase {
	return &paymentMethodUseCase{repo: repo}
}

func (uc *paymentMethodUseCase) ListPaymentMethods(ctx context.Context) ([]model.PaymentMethod, error) {
	return uc.repo.FindAll(ctx)
}
