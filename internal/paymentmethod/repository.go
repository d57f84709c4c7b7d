package paymentmethod

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
)

type Repository interface {
	FindAll(ctx context.Context) ([]model.PaymentMethod, error)
}

// UseCase is read-only; payment methods are seeded by migrations.
type UseCase interface {
	ListPaymentMethods(ctx context.Context) ([]model.PaymentMethod, error)
}
