package model

type Customer struct {
	BaseModel
	Name    string  `db:"name" json:"name"`
	Phone   *string `db:"phone" json:"phone"` // Nullable
	UserUID *string `db:"user_uid" json:"user_uid"`
}

// CustomerRef is the joined customer shape embedded in orders.
type CustomerRef struct {
	Name string `json:"name"`
}

type PaymentMethod struct {
	BaseModel
	Name string `db:"name" json:"name"`
}
