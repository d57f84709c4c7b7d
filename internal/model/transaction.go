package model

import "github.com/shopspring/decimal"

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

const (
	TransactionCategorySelling = "selling"
	TransactionStatusCompleted = "completed"
)

type Transaction struct {
	BaseModel
	OrderID         *int64          `db:"order_id" json:"order_id"`                   // Null for cashier entries
	PaymentMethodID *int64          `db:"payment_method_id" json:"payment_method_id"` // Nullable
	Amount          decimal.Decimal `db:"amount" json:"amount"`
	Category        string          `db:"category" json:"category"`
	Type            TransactionType `db:"type" json:"type"`
	Status          string          `db:"status" json:"status"`
	Description     string          `db:"description" json:"description"`
	UserUID         string          `db:"user_uid" json:"user_uid"`
}
