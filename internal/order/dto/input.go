package dto

import "github.com/shopspring/decimal"

type LineItemInput struct {
	ProductID int64
	Quantity  int
	Price     decimal.Decimal // Price at time of sale, as sent by the till
}

type CreateOrderInput struct {
	UserID          string
	CustomerID      int64
	PaymentMethodID int64
	Items           []LineItemInput
	Total           decimal.Decimal // Trusted as computed by the caller
	Discount        decimal.Decimal // Percent
	ReplaceOrderID  *int64          // Set when editing: the old order is deleted after the new one is written
}

type DeleteOrderInput struct {
	ID     int64
	UserID string
}
