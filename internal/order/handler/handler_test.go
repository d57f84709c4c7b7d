package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fekuna/omnipos-backoffice-service/internal/access"
	"github.com/fekuna/omnipos-backoffice-service/internal/access/accesstest"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/order"
	"github.com/fekuna/omnipos-backoffice-service/internal/order/dto"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUseCase struct {
	created   *dto.CreateOrderInput
	deleted   *dto.DeleteOrderInput
	createErr error
	deleteErr error
	listErr   error
}

func (f *fakeUseCase) CreateOrder(_ context.Context, in *dto.CreateOrderInput) (*model.Order, error) {
	f.created = in
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &model.Order{BaseModel: model.BaseModel{ID: 9}, TotalAmount: in.Total, Status: model.OrderStatusCompleted}, nil
}

func (f *fakeUseCase) DeleteOrder(_ context.Context, in *dto.DeleteOrderInput) error {
	f.deleted = in
	return f.deleteErr
}

func (f *fakeUseCase) ListOrders(context.Context) ([]model.Order, error) {
	return []model.Order{{BaseModel: model.BaseModel{ID: 1}}}, f.listErr
}

func (f *fakeUseCase) LastFewOrders(context.Context) ([]model.Order, error) {
	return []model.Order{{BaseModel: model.BaseModel{ID: 2}}}, f.listErr
}

const cashier = "cashier@example.com"

func do(uc order.UseCase, labels []string, method, path, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(accesstest.WithSession("uid-1", cashier))
	gate := accesstest.StaticGate{cashier: labels}
	NewOrderHandler(uc, gate, logger.NewNop()).RegisterRoutes(r)

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const createBody = `{
	"customerId": 3,
	"paymentMethodId": 2,
	"products": [{"id": 11, "quantity": 2, "price": 50}],
	"total": 90,
	"discount": 10
}`

func TestCreateOrderMapsRequest(t *testing.T) {
	uc := &fakeUseCase{}
	w := do(uc, []string{access.OrderCreate}, http.MethodPost, "/orders", createBody)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.created)
	in := uc.created
	assert.Equal(t, "uid-1", in.UserID)
	assert.Equal(t, int64(3), in.CustomerID)
	assert.Equal(t, int64(2), in.PaymentMethodID)
	require.Len(t, in.Items, 1)
	assert.Equal(t, int64(11), in.Items[0].ProductID)
	assert.Equal(t, 2, in.Items[0].Quantity)
	assert.True(t, in.Items[0].Price.Equal(decimal.NewFromInt(50)))
	assert.True(t, in.Total.Equal(decimal.NewFromInt(90)))
	assert.Nil(t, in.ReplaceOrderID)

	var got model.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(9), got.ID)
}

func TestCreateOrderRequiresCreateGrant(t *testing.T) {
	uc := &fakeUseCase{}
	w := do(uc, []string{access.OrderView}, http.MethodPost, "/orders", createBody)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	assert.Nil(t, uc.created)
}

func TestReplaceOrderRequiresEditGrant(t *testing.T) {
	body := strings.Replace(createBody, `"discount": 10`, `"discount": 10, "orderId": 4`, 1)

	uc := &fakeUseCase{}
	w := do(uc, []string{access.OrderCreate}, http.MethodPost, "/orders", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, uc.created)

	w = do(uc, []string{access.OrderCreate, access.OrderEdit}, http.MethodPost, "/orders", body)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.created.ReplaceOrderID)
	assert.Equal(t, int64(4), *uc.created.ReplaceOrderID)
}

func TestZeroOrderIDIsPlainCreate(t *testing.T) {
	body := strings.Replace(createBody, `"discount": 10`, `"discount": 10, "orderId": 0`, 1)

	uc := &fakeUseCase{}
	w := do(uc, []string{access.OrderCreate}, http.MethodPost, "/orders", body)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.created)
	assert.Nil(t, uc.created.ReplaceOrderID)
}

func TestCreateOrderMalformedJSON(t *testing.T) {
	uc := &fakeUseCase{}
	w := do(uc, []string{access.OrderCreate}, http.MethodPost, "/orders", `{"customerId": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, uc.created)
}

func TestCreateOrderFailure(t *testing.T) {
	uc := &fakeUseCase{createErr: fmt.Errorf("delete replaced: %w", order.ErrOrderNotFound)}
	w := do(uc, []string{access.OrderCreate}, http.MethodPost, "/orders", createBody)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Order Not Found"}`, w.Body.String())
}

func TestListOrderRoutesNeedViewGrant(t *testing.T) {
	for _, path := range []string{"/orders", "/orders/lastFew"} {
		t.Run(path, func(t *testing.T) {
			uc := &fakeUseCase{}
			w := do(uc, []string{access.OrderCreate}, http.MethodGet, path, "")
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			w = do(uc, []string{access.OrderView}, http.MethodGet, path, "")
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestLastFewOrdersIsNotShadowedByID(t *testing.T) {
	w := do(&fakeUseCase{}, []string{access.OrderView}, http.MethodGet, "/orders/lastFew", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":2`)
}

func TestDeleteOrder(t *testing.T) {
	uc := &fakeUseCase{}
	w := do(uc, []string{access.OrderDelete}, http.MethodDelete, "/orders/5", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Order and related items deleted successfully"}`, w.Body.String())
	require.NotNil(t, uc.deleted)
	assert.Equal(t, int64(5), uc.deleted.ID)
	assert.Equal(t, "uid-1", uc.deleted.UserID)
}

func TestDeleteOrderFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"missing", order.ErrOrderNotFound, "Order Not Found"},
		{"backup", fmt.Errorf("%w: disk full", order.ErrBackupFailed), "Cannot backup order data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(&fakeUseCase{deleteErr: tt.err}, []string{access.OrderDelete}, http.MethodDelete, "/orders/5", "")

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tt.want), w.Body.String())
		})
	}
}

func TestDeleteOrderNonNumericID(t *testing.T) {
	uc := &fakeUseCase{}
	w := do(uc, []string{access.OrderDelete}, http.MethodDelete, "/orders/abc", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Order Not Found"}`, w.Body.String())
	assert.Nil(t, uc.deleted)
}

func TestDeleteOrderRequiresDeleteGrant(t *testing.T) {
	uc := &fakeUseCase{}
	w := do(uc, []string{access.OrderView, access.OrderEdit}, http.MethodDelete, "/orders/5", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, uc.deleted)
}
