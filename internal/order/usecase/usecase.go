package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/backup"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/order"
	"github.com/fekuna/omnipos-backoffice-service/internal/order/dto"
	"github.com/fekuna/omnipos-backoffice-service/internal/saga"
	"github.com/fekuna/omnipos-backoffice-service/internal/transaction"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	recentOrdersLimit = 5
	publishTimeout    = 5 * time.Second
	eventQueueSize    = 256
)

type orderUseCase struct {
	repo       order.Repository
	txRepo     transaction.Repository
	backupRepo backup.Repository
	publisher  order.EventPublisher // nil disables events
	events     chan *dto.OrderEvent
	logger     logger.ZapLogger
}

func NewOrderUseCase(
	repo order.Repository,
	txRepo transaction.Repository,
	backupRepo backup.Repository,
	publisher order.EventPublisher,
	log logger.ZapLogger,
) order.UseCase {
	uc := &orderUseCase{
		repo:       repo,
		txRepo:     txRepo,
		backupRepo: backupRepo,
		publisher:  publisher,
		logger:     log,
	}
	if publisher != nil {
		uc.events = make(chan *dto.OrderEvent, eventQueueSize)
		go uc.publishLoop()
	}
	return uc
}

func (uc *orderUseCase) CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error) {
	now := time.Now()

	o := &model.Order{
		BaseModel:   model.BaseModel{CreatedAt: now},
		CustomerID:  input.CustomerID,
		TotalAmount: input.Total,
		Discount:    input.Discount,
		Status:      model.OrderStatusCompleted,
		UserUID:     input.UserID,
	}

	var items []model.OrderItem
	var payment *model.Transaction

	s := saga.New(
		saga.Step{
			Name: "insert order",
			Do: func(ctx context.Context) error {
				return uc.repo.Create(ctx, o)
			},
			Undo: func(ctx context.Context) error {
				return uc.repo.Delete(ctx, o.ID)
			},
		},
		saga.Step{
			Name: "insert order items",
			Do: func(ctx context.Context) error {
				items = make([]model.OrderItem, 0, len(input.Items))
				for _, it := range input.Items {
					items = append(items, model.OrderItem{
						OrderID:   o.ID,
						ProductID: it.ProductID,
						Quantity:  it.Quantity,
						Price:     it.Price,
					})
				}
				return uc.repo.CreateItems(ctx, items)
			},
			Undo: func(ctx context.Context) error {
				return uc.repo.DeleteItems(ctx, o.ID)
			},
		},
		saga.Step{
			Name: "insert payment transaction",
			Do: func(ctx context.Context) error {
				orderID := o.ID
				paymentMethodID := input.PaymentMethodID
				payment = &model.Transaction{
					BaseModel:       model.BaseModel{CreatedAt: now},
					OrderID:         &orderID,
					PaymentMethodID: &paymentMethodID,
					Amount:          input.Total,
					Category:        model.TransactionCategorySelling,
					Type:            model.TransactionTypeIncome,
					Status:          model.TransactionStatusCompleted,
					Description:     fmt.Sprintf("Payment for order #%d", o.ID),
					UserUID:         input.UserID,
				}
				return uc.txRepo.Create(ctx, payment)
			},
			Undo: func(ctx context.Context) error {
				return uc.txRepo.DeleteByOrderID(ctx, o.ID)
			},
		},
	)

	if input.ReplaceOrderID != nil {
		replaceID := *input.ReplaceOrderID
		s.Add(saga.Step{
			Name: "delete replaced order",
			Do: func(ctx context.Context) error {
				return uc.DeleteOrder(ctx, &dto.DeleteOrderInput{ID: replaceID, UserID: input.UserID})
			},
		})
	}

	if err := s.Run(ctx); err != nil {
		var sagaErr *saga.Error
		if errors.As(err, &sagaErr) {
			uc.logger.Error("order creation failed",
				zap.String("step", sagaErr.Step),
				zap.Int64("order_id", o.ID),
				zap.Error(sagaErr.Err),
			)
			if !sagaErr.Compensated() {
				uc.logger.Error("order compensation incomplete",
					zap.Int64("order_id", o.ID),
					zap.Error(sagaErr.CompensationError()),
				)
			}
		}
		return nil, err
	}

	o.Items = items
	o.Transactions = []model.Transaction{*payment}

	uc.publish(dto.EventOrderCreated, o)
	return o, nil
}

func (uc *orderUseCase) DeleteOrder(ctx context.Context, input *dto.DeleteOrderInput) error {
	log := uc.logger.With(zap.Int64("order_id", input.ID))

	o, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return fmt.Errorf("find order: %w", err)
	}
	if o == nil {
		return order.ErrOrderNotFound
	}

	body, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("%w: %v", order.ErrBackupFailed, err)
	}
	err = uc.backupRepo.Create(ctx, &model.Backup{
		BaseModel:  model.BaseModel{CreatedAt: time.Now()},
		OldBody:    string(body),
		RecordType: model.BackupRecordTypeOrder,
		UserUID:    input.UserID,
	})
	if err != nil {
		log.Error("failed to backup order", zap.Error(err))
		return fmt.Errorf("%w: %v", order.ErrBackupFailed, err)
	}

	// Partial deletes are not rolled back; the backup above holds the full graph.
	if err := uc.repo.DeleteItems(ctx, input.ID); err != nil {
		log.Error("failed to delete order items", zap.Error(err))
		return fmt.Errorf("delete order items: %w", err)
	}
	if err := uc.txRepo.DeleteByOrderID(ctx, input.ID); err != nil {
		log.Error("failed to delete order transactions, items already removed", zap.Error(err))
		return fmt.Errorf("delete order transactions: %w", err)
	}
	if err := uc.repo.Delete(ctx, input.ID); err != nil {
		log.Error("failed to delete order header, items and transactions already removed", zap.Error(err))
		return fmt.Errorf("delete order: %w", err)
	}

	uc.publish(dto.EventOrderDeleted, o)
	return nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context) ([]model.Order, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *orderUseCase) LastFewOrders(ctx context.Context) ([]model.Order, error) {
	return uc.repo.FindRecent(ctx, recentOrdersLimit)
}

// publish queues the event for the publish loop and never blocks the caller.
func (uc *orderUseCase) publish(eventType string, o *model.Order) {
	if uc.events == nil {
		return
	}

	event := &dto.OrderEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Payload: dto.OrderPayload{
			ID:          o.ID,
			CustomerID:  o.CustomerID,
			UserUID:     o.UserUID,
			TotalAmount: o.TotalAmount,
			Items:       make([]dto.OrderItemPayload, 0, len(o.Items)),
		},
		Timestamp: time.Now(),
	}
	for _, it := range o.Items {
		event.Payload.Items = append(event.Payload.Items, dto.OrderItemPayload{
			ProductID: it.ProductID,
			Quantity:  float64(it.Quantity),
			Price:     it.Price,
		})
	}

	select {
	case uc.events <- event:
	default:
		uc.logger.Warn("order event queue full, dropping event",
			zap.String("event_type", eventType),
			zap.Int64("order_id", o.ID),
		)
	}
}

// publishLoop sends queued events one at a time, in the order they were queued.
func (uc *orderUseCase) publishLoop() {
	for event := range uc.events {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		err := uc.publisher.Publish(ctx, event)
		cancel()

		if err != nil {
			uc.logger.Warn("failed to publish order event",
				zap.String("event_type", event.EventType),
				zap.Int64("order_id", event.Payload.ID),
				zap.Error(err),
			)
		}
	}
}
