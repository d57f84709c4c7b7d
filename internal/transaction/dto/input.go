package dto

import (
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/shopspring/decimal"
)

type CreateTransactionInput struct {
	UserID          string
	OrderID         *int64
	PaymentMethodID *int64
	Amount          decimal.Decimal
	Category        string
	Type            model.TransactionType
	Status          string
	Description     string
	CreatedAt       *time.Time // Optional; cashier entries may be back-dated
}

// UpdateTransactionInput is a partial update: nil fields are left untouched.
type UpdateTransactionInput struct {
	ID              int64
	UserID          string
	PaymentMethodID *int64
	Amount          *decimal.Decimal
	Category        *string
	Type            *model.TransactionType
	Status          *string
	Description     *string
	CreatedAt       *time.Time
}
