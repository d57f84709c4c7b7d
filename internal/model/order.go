package model

import "github.com/shopspring/decimal"

type OrderStatus string

const (
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	BaseModel
	CustomerID   int64           `db:"customer_id" json:"customer_id"`
	TotalAmount  decimal.Decimal `db:"total_amount" json:"total_amount"`
	Discount     decimal.Decimal `db:"discount" json:"discount"`
	Status       OrderStatus     `db:"status" json:"status"`
	UserUID      string          `db:"user_uid" json:"user_uid"`
	Customer     *CustomerRef    `db:"-" json:"customer"`              // Joined data
	Items        []OrderItem     `db:"-" json:"order_items,omitempty"` // Not in DB table directly
	Transactions []Transaction   `db:"-" json:"transaction,omitempty"` // Joined data
}

type OrderItem struct {
	ID        int64           `db:"id" json:"id"`
	OrderID   int64           `db:"order_id" json:"order_id"`
	ProductID int64           `db:"product_id" json:"product_id"`
	Quantity  int             `db:"quantity" json:"quantity"`
	Price     decimal.Decimal `db:"price" json:"price"` // Snapshot at time of sale
	Product   *ProductRef     `db:"-" json:"product,omitempty"`
}
