package dto

type CreateCustomerInput struct {
	UserID string
	Name   string
	Phone  *string
}
