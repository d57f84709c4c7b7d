package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/order"
	"github.com/fekuna/omnipos-backoffice-service/internal/order/dto"
	"github.com/fekuna/omnipos-backoffice-service/internal/saga"
	txdto "github.com/fekuna/omnipos-backoffice-service/internal/transaction/dto"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStore = errors.New("store unavailable")

// memStore stands in for the four tables the lifecycle touches.
type memStore struct {
	orders  map[int64]model.Order
	items   map[int64]model.OrderItem
	txs     map[int64]model.Transaction
	backups []model.Backup
	nextID  int64

	failCreateOrder   bool
	failCreateItems   bool
	failCreateTx      bool
	failBackup        bool
	failDeleteItems   bool
	failDeleteOrder   bool
	failFindByID      bool
	failDeleteByOrder bool
}

func newMemStore() *memStore {
	return &memStore{
		orders: map[int64]model.Order{},
		items:  map[int64]model.OrderItem{},
		txs:    map[int64]model.Transaction{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

type orderRepo struct{ *memStore }

func (r orderRepo) Create(_ context.Context, o *model.Order) error {
	if r.failCreateOrder {
		return errStore
	}
	o.ID = r.id()
	o.Customer = &model.CustomerRef{Name: "Walk-in"}
	r.orders[o.ID] = *o
	return nil
}

func (r orderRepo) CreateItems(_ context.Context, items []model.OrderItem) error {
	if r.failCreateItems {
		return errStore
	}
	for _, it := range items {
		it.ID = r.id()
		r.items[it.ID] = it
	}
	return nil
}

func (r orderRepo) FindByID(_ context.Context, id int64) (*model.Order, error) {
	if r.failFindByID {
		return nil, errStore
	}
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	for _, it := range r.items {
		if it.OrderID == id {
			o.Items = append(o.Items, it)
		}
	}
	return &o, nil
}

func (r orderRepo) FindAll(context.Context) ([]model.Order, error) {
	out := []model.Order{}
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}

func (r orderRepo) FindRecent(_ context.Context, limit int) ([]model.Order, error) {
	out := []model.Order{}
	for _, o := range r.orders {
		if len(out) == limit {
			break
		}
		out = append(out, o)
	}
	return out, nil
}

func (r orderRepo) Delete(_ context.Context, id int64) error {
	if r.failDeleteOrder {
		return errStore
	}
	delete(r.orders, id)
	return nil
}

func (r orderRepo) DeleteItems(_ context.Context, orderID int64) error {
	if r.failDeleteItems {
		return errStore
	}
	for id, it := range r.items {
		if it.OrderID == orderID {
			delete(r.items, id)
		}
	}
	return nil
}

type txRepo struct{ *memStore }

func (r txRepo) Create(_ context.Context, t *model.Transaction) error {
	if r.failCreateTx {
		return errStore
	}
	t.ID = r.id()
	r.txs[t.ID] = *t
	return nil
}

func (r txRepo) FindAll(context.Context) ([]model.Transaction, error) { return nil, nil }

func (r txRepo) Update(context.Context, *txdto.UpdateTransactionInput) (*model.Transaction, error) {
	return nil, nil
}

func (r txRepo) Delete(context.Context, int64) (bool, error) { return false, nil }

func (r txRepo) DeleteByOrderID(_ context.Context, orderID int64) error {
	if r.failDeleteByOrder {
		return errStore
	}
	for id, t := range r.txs {
		if t.OrderID != nil && *t.OrderID == orderID {
			delete(r.txs, id)
		}
	}
	return nil
}

type backupRepo struct{ *memStore }

func (r backupRepo) Create(_ context.Context, b *model.Backup) error {
	if r.failBackup {
		return errStore
	}
	b.ID = r.id()
	r.backups = append(r.backups, *b)
	return nil
}

type chanPublisher struct {
	events chan *dto.OrderEvent
}

func (p *chanPublisher) Publish(_ context.Context, e *dto.OrderEvent) error {
	p.events <- e
	return nil
}

func newUseCase(s *memStore, pub order.EventPublisher) order.UseCase {
	return NewOrderUseCase(orderRepo{s}, txRepo{s}, backupRepo{s}, pub, logger.NewNop())
}

func twoByFifty() *dto.CreateOrderInput {
	return &dto.CreateOrderInput{
		UserID:          "uid-1",
		CustomerID:      3,
		PaymentMethodID: 2,
		Items: []dto.LineItemInput{
			{ProductID: 11, Quantity: 2, Price: decimal.NewFromInt(50)},
		},
		Total:    decimal.NewFromInt(90),
		Discount: decimal.NewFromInt(10),
	}
}

func TestCreateOrderWritesHeaderItemsAndPayment(t *testing.T) {
	s := newMemStore()
	uc := newUseCase(s, nil)

	in := twoByFifty()
	in.Items = append(in.Items, dto.LineItemInput{ProductID: 12, Quantity: 1, Price: decimal.NewFromInt(5)})

	o, err := uc.CreateOrder(context.Background(), in)
	require.NoError(t, err)

	assert.Len(t, s.orders, 1)
	assert.Len(t, s.items, 2)
	assert.Len(t, s.txs, 1)

	assert.Equal(t, model.OrderStatusCompleted, o.Status)
	assert.Equal(t, "uid-1", o.UserUID)
	require.NotNil(t, o.Customer)
	assert.Equal(t, "Walk-in", o.Customer.Name)
	for _, it := range s.items {
		assert.Equal(t, o.ID, it.OrderID)
	}
}

func TestCreateOrderPaymentMatchesTotal(t *testing.T) {
	s := newMemStore()
	uc := newUseCase(s, nil)

	o, err := uc.CreateOrder(context.Background(), twoByFifty())
	require.NoError(t, err)

	require.Len(t, o.Transactions, 1)
	tx := o.Transactions[0]
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(90)))
	assert.Equal(t, model.TransactionTypeIncome, tx.Type)
	assert.Equal(t, model.TransactionCategorySelling, tx.Category)
	assert.Equal(t, model.TransactionStatusCompleted, tx.Status)
	assert.Equal(t, "Payment for order #1", tx.Description)
	require.NotNil(t, tx.OrderID)
	assert.Equal(t, o.ID, *tx.OrderID)
	require.NotNil(t, tx.PaymentMethodID)
	assert.Equal(t, int64(2), *tx.PaymentMethodID)
	assert.True(t, o.Discount.Equal(decimal.NewFromInt(10)))
}

func TestCreateOrderHeaderFailureCreatesNothing(t *testing.T) {
	s := newMemStore()
	s.failCreateOrder = true
	s.failDeleteOrder = true
	uc := newUseCase(s, nil)

	o, err := uc.CreateOrder(context.Background(), twoByFifty())
	require.ErrorIs(t, err, errStore)
	assert.Nil(t, o)

	var sagaErr *saga.Error
	require.ErrorAs(t, err, &sagaErr)
	assert.Equal(t, "insert order", sagaErr.Step)
	// nothing completed, so no undo ran (the header undo would have failed)
	assert.True(t, sagaErr.Compensated())

	assert.Empty(t, s.orders)
	assert.Empty(t, s.items)
	assert.Empty(t, s.txs)
}

func TestCreateOrderItemFailureLeavesNoOrphan(t *testing.T) {
	s := newMemStore()
	s.failCreateItems = true
	uc := newUseCase(s, nil)

	o, err := uc.CreateOrder(context.Background(), twoByFifty())
	require.Error(t, err)
	assert.Nil(t, o)
	assert.ErrorIs(t, err, errStore)

	var sagaErr *saga.Error
	require.ErrorAs(t, err, &sagaErr)
	assert.Equal(t, "insert order items", sagaErr.Step)

	assert.Empty(t, s.orders)
	assert.Empty(t, s.items)
	assert.Empty(t, s.txs)
}

func TestCreateOrderPaymentFailureLeavesNoRows(t *testing.T) {
	s := newMemStore()
	s.failCreateTx = true
	uc := newUseCase(s, nil)

	_, err := uc.CreateOrder(context.Background(), twoByFifty())
	require.Error(t, err)

	var sagaErr *saga.Error
	require.ErrorAs(t, err, &sagaErr)
	assert.Equal(t, "insert payment transaction", sagaErr.Step)
	assert.True(t, sagaErr.Compensated())

	assert.Empty(t, s.orders)
	assert.Empty(t, s.items)
	assert.Empty(t, s.txs)
}

func TestCreateOrderUndoFailureKeepsCause(t *testing.T) {
	s := newMemStore()
	s.failCreateTx = true
	s.failDeleteItems = true
	uc := newUseCase(s, nil)

	_, err := uc.CreateOrder(context.Background(), twoByFifty())
	require.Error(t, err)

	var sagaErr *saga.Error
	require.ErrorAs(t, err, &sagaErr)
	assert.Equal(t, "insert payment transaction", sagaErr.Step)
	assert.False(t, sagaErr.Compensated())
	// the header undo still ran after the items undo failed
	assert.Empty(t, s.orders)
	assert.Len(t, s.items, 1)
}

func TestDeleteOrderBacksUpOnceThenRemovesRows(t *testing.T) {
	s := newMemStore()
	uc := newUseCase(s, nil)

	o, err := uc.CreateOrder(context.Background(), twoByFifty())
	require.NoError(t, err)

	err = uc.DeleteOrder(context.Background(), &dto.DeleteOrderInput{ID: o.ID, UserID: "uid-2"})
	require.NoError(t, err)

	require.Len(t, s.backups, 1)
	b := s.backups[0]
	assert.Equal(t, model.BackupRecordTypeOrder, b.RecordType)
	assert.Equal(t, "uid-2", b.UserUID)

	var snapshot model.Order
	require.NoError(t, json.Unmarshal([]byte(b.OldBody), &snapshot))
	assert.Equal(t, o.ID, snapshot.ID)
	assert.Len(t, snapshot.Items, 1)

	assert.Empty(t, s.orders)
	assert.Empty(t, s.items)
	assert.Empty(t, s.txs)

	res := order.DeleteResult(err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Order and related items deleted successfully", res.Message)
}

func TestDeleteOrderBackupFailureDeletesNothing(t *testing.T) {
	s := newMemStore()
	uc := newUseCase(s, nil)

	o, err := uc.CreateOrder(context.Background(), twoByFifty())
	require.NoError(t, err)

	s.failBackup = true
	err = uc.DeleteOrder(context.Background(), &dto.DeleteOrderInput{ID: o.ID, UserID: "uid-1"})
	require.ErrorIs(t, err, order.ErrBackupFailed)
	assert.Equal(t, "Cannot backup order data", order.Message(err))

	assert.Len(t, s.orders, 1)
	assert.Len(t, s.items, 1)
	assert.Len(t, s.txs, 1)
}

func TestDeleteMissingOrder(t *testing.T) {
	s := newMemStore()
	uc := newUseCase(s, nil)

	err := uc.DeleteOrder(context.Background(), &dto.DeleteOrderInput{ID: 404, UserID: "uid-1"})
	require.ErrorIs(t, err, order.ErrOrderNotFound)
	assert.Empty(t, s.backups)

	res := order.DeleteResult(err)
	assert.Equal(t, http.StatusInternalServerError, res.Status)
	assert.Equal(t, "Order Not Found", res.Message)
}

func TestDeleteOrderLookupFailure(t *testing.T) {
	s := newMemStore()
	s.failFindByID = true
	uc := newUseCase(s, nil)

	err := uc.DeleteOrder(context.Background(), &dto.DeleteOrderInput{ID: 1})
	require.ErrorIs(t, err, errStore)
	assert.NotErrorIs(t, err, order.ErrOrderNotFound)
	assert.Empty(t, s.backups)
}

func TestDeleteOrderStopsAfterItemFailure(t *testing.T) {
	s := newMemStore()
	uc := newUseCase(s, nil)

	o, err := uc.CreateOrder(context.Background(), twoByFifty())
	require.NoError(t, err)

	s.failDeleteItems = true
	err = uc.DeleteOrder(context.Background(), &dto.DeleteOrderInput{ID: o.ID})
	require.ErrorIs(t, err, errStore)

	assert.Len(t, s.backups, 1)
	assert.Len(t, s.orders, 1)
	assert.Len(t, s.txs, 1)
}

func TestDeleteOrderStopsAfterTransactionFailure(t *testing.T) {
	s := newMemStore()
	uc := newUseCase(s, nil)

	o, err := uc.CreateOrder(context.Background(), twoByFifty())
	require.NoError(t, err)

	s.failDeleteByOrder = true
	err = uc.DeleteOrder(context.Background(), &dto.DeleteOrderInput{ID: o.ID})
	require.ErrorIs(t, err, errStore)
	assert.NotErrorIs(t, err, order.ErrOrderNotFound)

	assert.Len(t, s.backups, 1)
	assert.Empty(t, s.items)
	assert.Len(t, s.txs, 1)
	assert.Len(t, s.orders, 1)
	assert.Equal(t, http.StatusInternalServerError, order.DeleteResult(err).Status)
}

func TestDeleteOrderHeaderFailure(t *testing.T) {
	s := newMemStore()
	uc := newUseCase(s, nil)

	o, err := uc.CreateOrder(context.Background(), twoByFifty())
	require.NoError(t, err)

	s.failDeleteOrder = true
	err = uc.DeleteOrder(context.Background(), &dto.DeleteOrderInput{ID: o.ID})
	require.ErrorIs(t, err, errStore)

	assert.Len(t, s.backups, 1)
	assert.Empty(t, s.items)
	assert.Empty(t, s.txs)
	assert.Len(t, s.orders, 1)
	assert.Equal(t, http.StatusInternalServerError, order.DeleteResult(err).Status)
}

func TestReplaceOrder(t *testing.T) {
	s := newMemStore()
	uc := newUseCase(s, nil)

	old, err := uc.CreateOrder(context.Background(), twoByFifty())
	require.NoError(t, err)

	in := twoByFifty()
	in.ReplaceOrderID = &old.ID
	in.Items[0].Quantity = 3
	in.Total = decimal.NewFromInt(135)

	o, err := uc.CreateOrder(context.Background(), in)
	require.NoError(t, err)

	assert.NotEqual(t, old.ID, o.ID)
	require.Len(t, s.orders, 1)
	_, ok := s.orders[o.ID]
	assert.True(t, ok)
	assert.Len(t, s.items, 1)
	assert.Len(t, s.txs, 1)
	require.Len(t, s.backups, 1)
	assert.Contains(t, s.backups[0].OldBody, `"total_amount":"90"`)
}

func TestReplaceFailureRollsBackNewOrder(t *testing.T) {
	s := newMemStore()
	uc := newUseCase(s, nil)

	old, err := uc.CreateOrder(context.Background(), twoByFifty())
	require.NoError(t, err)

	s.failBackup = true
	in := twoByFifty()
	in.ReplaceOrderID = &old.ID

	_, err = uc.CreateOrder(context.Background(), in)
	require.ErrorIs(t, err, order.ErrBackupFailed)

	var sagaErr *saga.Error
	require.ErrorAs(t, err, &sagaErr)
	assert.Equal(t, "delete replaced order", sagaErr.Step)

	require.Len(t, s.orders, 1)
	_, ok := s.orders[old.ID]
	assert.True(t, ok)
	assert.Len(t, s.items, 1)
	assert.Len(t, s.txs, 1)
}

func TestLastFewOrdersLimitsToFive(t *testing.T) {
	s := newMemStore()
	uc := newUseCase(s, nil)

	for i := 0; i < 7; i++ {
		_, err := uc.CreateOrder(context.Background(), twoByFifty())
		require.NoError(t, err)
	}

	recent, err := uc.LastFewOrders(context.Background())
	require.NoError(t, err)
	assert.Len(t, recent, 5)

	all, err := uc.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 7)
}

func TestLifecycleEventsArePublished(t *testing.T) {
	s := newMemStore()
	pub := &chanPublisher{events: make(chan *dto.OrderEvent, 2)}
	uc := newUseCase(s, pub)

	o, err := uc.CreateOrder(context.Background(), twoByFifty())
	require.NoError(t, err)

	select {
	case e := <-pub.events:
		assert.Equal(t, dto.EventOrderCreated, e.EventType)
		assert.Equal(t, o.ID, e.Payload.ID)
		require.Len(t, e.Payload.Items, 1)
		assert.Equal(t, float64(2), e.Payload.Items[0].Quantity)
		assert.NotEmpty(t, e.EventID)
	case <-time.After(time.Second):
		t.Fatal("OrderCreated was not published")
	}

	require.NoError(t, uc.DeleteOrder(context.Background(), &dto.DeleteOrderInput{ID: o.ID}))

	select {
	case e := <-pub.events:
		assert.Equal(t, dto.EventOrderDeleted, e.EventType)
		assert.Equal(t, o.ID, e.Payload.ID)
	case <-time.After(time.Second):
		t.Fatal("OrderDeleted was not published")
	}
}

func TestReplaceEventsArriveInOrder(t *testing.T) {
	for i := 0; i < 20; i++ {
		s := newMemStore()
		pub := &chanPublisher{events: make(chan *dto.OrderEvent, 3)}
		uc := newUseCase(s, pub)

		old, err := uc.CreateOrder(context.Background(), twoByFifty())
		require.NoError(t, err)

		in := twoByFifty()
		in.ReplaceOrderID = &old.ID
		o, err := uc.CreateOrder(context.Background(), in)
		require.NoError(t, err)

		want := []struct {
			eventType string
			orderID   int64
		}{
			{dto.EventOrderCreated, old.ID},
			{dto.EventOrderDeleted, old.ID},
			{dto.EventOrderCreated, o.ID},
		}
		for _, w := range want {
			select {
			case e := <-pub.events:
				assert.Equal(t, w.eventType, e.EventType)
				assert.Equal(t, w.orderID, e.Payload.ID)
			case <-time.After(time.Second):
				t.Fatalf("%s for order %d was not published", w.eventType, w.orderID)
			}
		}
	}
}

type failingPublisher struct {
	mu    sync.Mutex
	calls int
}

func (p *failingPublisher) Publish(context.Context, *dto.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return errors.New("broker down")
}

func TestPublishFailureDoesNotFailCreate(t *testing.T) {
	s := newMemStore()
	pub := &failingPublisher{}
	uc := newUseCase(s, pub)

	_, err := uc.CreateOrder(context.Background(), twoByFifty())
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		pub.mu.Lock()
		defer pub.mu.Unlock()
		return pub.calls == 1
	}, time.Second, 10*time.Millisecond)
	assert.Len(t, s.orders, 1)
}
