package customer

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/internal/customer/dto"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
)

type UseCase interface {
	CreateCustomer(ctx context.Context, input *dto.CreateCustomerInput) (*model.Customer, error)
	ListCustomers(ctx context.Context) ([]model.Customer, error)
}
