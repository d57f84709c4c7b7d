package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type DeleteOrderResult struct {
	Status  int
	Message string
}

const (
	EventOrderCreated = "OrderCreated"
	EventOrderDeleted = "OrderDeleted"
)

type OrderEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	ID          int64              `json:"id"`
	CustomerID  int64              `json:"customer_id"`
	UserUID     string             `json:"user_uid"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Items       []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	ProductID int64           `json:"product_id"`
	Quantity  float64         `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}
