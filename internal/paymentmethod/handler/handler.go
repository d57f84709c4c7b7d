package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-backoffice-service/internal/access"
	"github.com/fekuna/omnipos-backoffice-service/internal/paymentmethod"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentMethodHandler struct {
	uc     paymentmethod.UseCase
	gate   access.Gate
	logger logger.ZapLogger
}

func NewPaymentMethodHandler(uc paymentmethod.UseCase, gate access.Gate, log logger.ZapLogger) *PaymentMethodHandler {
	return &PaymentMethodHandler{
		uc:     uc,
		gate:   gate,
		logger: log,
	}
}

func (h *PaymentMethodHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/payment-methods", access.RequireAny(h.gate,
		access.OrderView, access.OrderCreate, access.OrderEdit,
		access.TransactionView, access.TransactionCreate, access.TransactionEdit,
	), h.ListPaymentMethods)
}

func (h *PaymentMethodHandler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.uc.ListPaymentMethods(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list payment methods", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, methods)
}
