package dto

import "github.com/shopspring/decimal"

type ProductFilters struct {
	SearchQuery string `json:"q"` // Matched against name and description
}

type CreateProductInput struct {
	UserID      string
	Name        string
	Price       decimal.Decimal
	Description *string
}

// UpdateProductInput leaves nil fields untouched.
type UpdateProductInput struct {
	ID          int64
	UserID      string
	Name        *string
	Price       *decimal.Decimal
	Description *string
}
