package model

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel
	Name        string          `db:"name" json:"name"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Description *string         `db:"description" json:"description"` // Nullable
	UserUID     *string         `db:"user_uid" json:"user_uid"`
}

// ProductRef is the joined product shape embedded in order items.
type ProductRef struct {
	Name string `json:"name"`
}
