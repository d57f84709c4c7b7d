package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/customer"
	"github.com/fekuna/omnipos-backoffice-service/internal/customer/dto"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
)

type customerUseCase struct {
	repo   customer.Repository
	logger logger.ZapLogger
}

func NewCustomerUseCase(repo customer.Repository, log logger.ZapLogger) customer.UseCase {
	return &customerUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *customerUseCase) CreateCustomer(ctx context.Context, input *dto.CreateCustomerInput) (*model.Customer, error) {
	userUID := input.UserID
	c := &model.Customer{
		BaseModel: model.BaseModel{CreatedAt: time.Now()},
		Name:      input.Name,
		Phone:     input.Phone,
		UserUID:   &userUID,
	}

	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *customerUseCase) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	return uc.repo.FindAll(ctx)
}
