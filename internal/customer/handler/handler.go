package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-backoffice-service/internal/access"
	"github.com/fekuna/omnipos-backoffice-service/internal/auth"
	"github.com/fekuna/omnipos-backoffice-service/internal/customer"
	"github.com/fekuna/omnipos-backoffice-service/internal/customer/dto"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	uc     customer.UseCase
	gate   access.Gate
	logger logger.ZapLogger
}

func NewCustomerHandler(uc customer.UseCase, gate access.Gate, log logger.ZapLogger) *CustomerHandler {
	return &CustomerHandler{
		uc:     uc,
		gate:   gate,
		logger: log,
	}
}

func (h *CustomerHandler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/customers")
	g.GET("", access.RequireAny(h.gate, access.OrderView, access.OrderCreate, access.OrderEdit), h.ListCustomers)
	g.POST("", access.RequireAll(h.gate, access.OrderCreate), h.CreateCustomer)
}

type createCustomerRequest struct {
	Name  string  `json:"name" binding:"required"`
	Phone *string `json:"phone"`
}

func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.uc.ListCustomers(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list customers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, customers)
}

// CreateCustomer is used from the till when a sale needs a new named customer.
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := auth.GetSession(c.Request.Context())
	cust, err := h.uc.CreateCustomer(c.Request.Context(), &dto.CreateCustomerInput{
		UserID: session.UserID,
		Name:   req.Name,
		Phone:  req.Phone,
	})
	if err != nil {
		h.logger.Error("failed to create customer", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cust)
}
