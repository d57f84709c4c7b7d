package handler

import (
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-backoffice-service/internal/access"
	"github.com/fekuna/omnipos-backoffice-service/internal/auth"
	"github.com/fekuna/omnipos-backoffice-service/internal/order"
	"github.com/fekuna/omnipos-backoffice-service/internal/order/dto"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type OrderHandler struct {
	uc     order.UseCase
	gate   access.Gate
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, gate access.Gate, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		gate:   gate,
		logger: log,
	}
}

func (h *OrderHandler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/orders")
	g.POST("", access.RequireAll(h.gate, access.OrderCreate), h.CreateOrder)
	g.GET("", access.RequireAll(h.gate, access.OrderView), h.ListOrders)
	g.GET("/lastFew", access.RequireAll(h.gate, access.OrderView), h.LastFewOrders)
	g.DELETE("/:orderId", access.RequireAll(h.gate, access.OrderDelete), h.DeleteOrder)
}

type lineItemRequest struct {
	ID       int64           `json:"id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type createOrderRequest struct {
	CustomerID      int64             `json:"customerId"`
	PaymentMethodID int64             `json:"paymentMethodId"`
	Products        []lineItemRequest `json:"products"`
	Total           decimal.Decimal   `json:"total"`
	Discount        decimal.Decimal   `json:"discount"`
	OrderID         *int64            `json:"orderId"` // Set when editing an existing order
}

// CreateOrder also replaces an existing order when orderId is non-zero, which needs ORDER_EDIT on top.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// A zero order id is a plain create.
	replace := req.OrderID != nil && *req.OrderID != 0

	session := auth.GetSession(c.Request.Context())
	if replace && !h.gate.AllRolesGranted(c.Request.Context(), session.Email, []string{access.OrderCreate, access.OrderEdit}) {
		auth.Unauthorized(c)
		return
	}

	input := &dto.CreateOrderInput{
		UserID:          session.UserID,
		CustomerID:      req.CustomerID,
		PaymentMethodID: req.PaymentMethodID,
		Items:           make([]dto.LineItemInput, 0, len(req.Products)),
		Total:           req.Total,
		Discount:        req.Discount,
	}
	if replace {
		input.ReplaceOrderID = req.OrderID
	}
	for _, p := range req.Products {
		input.Items = append(input.Items, dto.LineItemInput{
			ProductID: p.ID,
			Quantity:  p.Quantity,
			Price:     p.Price,
		})
	}

	o, err := h.uc.CreateOrder(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": order.Message(err)})
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.uc.ListOrders(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) LastFewOrders(c *gin.Context) {
	orders, err := h.uc.LastFewOrders(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load recent orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	var err error
	id, perr := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if perr != nil {
		err = order.ErrOrderNotFound
	} else {
		session := auth.GetSession(c.Request.Context())
		err = h.uc.DeleteOrder(c.Request.Context(), &dto.DeleteOrderInput{ID: id, UserID: session.UserID})
	}

	res := order.DeleteResult(err)
	if res.Status != http.StatusOK {
		h.logger.Error("failed to delete order", zap.String("order_id", c.Param("orderId")), zap.Error(err))
		c.JSON(res.Status, gin.H{"error": res.Message})
		return
	}
	c.JSON(res.Status, gin.H{"message": res.Message})
}
