package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/access"
	"github.com/fekuna/omnipos-backoffice-service/internal/auth"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/transaction"
	"github.com/fekuna/omnipos-backoffice-service/internal/transaction/dto"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	uc     transaction.UseCase
	gate   access.Gate
	logger logger.ZapLogger
}

func NewTransactionHandler(uc transaction.UseCase, gate access.Gate, log logger.ZapLogger) *TransactionHandler {
	return &TransactionHandler{
		uc:     uc,
		gate:   gate,
		logger: log,
	}
}

func (h *TransactionHandler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/transactions")
	g.GET("", access.RequireAll(h.gate, access.TransactionView), h.ListTransactions)
	g.POST("", access.RequireAll(h.gate, access.TransactionCreate), h.CreateTransaction)
	g.PUT("/:transactionId", access.RequireAll(h.gate, access.TransactionEdit), h.UpdateTransaction)
	g.DELETE("/:transactionId", access.RequireAll(h.gate, access.TransactionDelete), h.DeleteTransaction)
}

type createTransactionRequest struct {
	OrderID         *int64                `json:"order_id"`
	PaymentMethodID *int64                `json:"payment_method_id"`
	Amount          decimal.Decimal       `json:"amount"`
	Category        string                `json:"category"`
	Type            model.TransactionType `json:"type" binding:"required,oneof=income expense"`
	Status          string                `json:"status"`
	Description     string                `json:"description"`
	CreatedAt       *time.Time            `json:"created_at"`
}

type updateTransactionRequest struct {
	PaymentMethodID *int64                 `json:"payment_method_id"`
	Amount          *decimal.Decimal       `json:"amount"`
	Category        *string                `json:"category"`
	Type            *model.TransactionType `json:"type" binding:"omitempty,oneof=income expense"`
	Status          *string                `json:"status"`
	Description     *string                `json:"description"`
	CreatedAt       *time.Time             `json:"created_at"`
}

func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	items, err := h.uc.ListTransactions(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list transactions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := auth.GetSession(c.Request.Context())
	t, err := h.uc.CreateTransaction(c.Request.Context(), &dto.CreateTransactionInput{
		UserID:          session.UserID,
		OrderID:         req.OrderID,
		PaymentMethodID: req.PaymentMethodID,
		Amount:          req.Amount,
		Category:        req.Category,
		Type:            req.Type,
		Status:          req.Status,
		Description:     req.Description,
		CreatedAt:       req.CreatedAt,
	})
	if err != nil {
		h.logger.Error("failed to create transaction", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("transactionId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found or not authorized"})
		return
	}

	var req updateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := auth.GetSession(c.Request.Context())
	t, err := h.uc.UpdateTransaction(c.Request.Context(), &dto.UpdateTransactionInput{
		ID:              id,
		UserID:          session.UserID,
		PaymentMethodID: req.PaymentMethodID,
		Amount:          req.Amount,
		Category:        req.Category,
		Type:            req.Type,
		Status:          req.Status,
		Description:     req.Description,
		CreatedAt:       req.CreatedAt,
	})
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found or not authorized"})
			return
		}
		h.logger.Error("failed to update transaction", zap.Int64("transaction_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("transactionId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found or not authorized"})
		return
	}

	if err := h.uc.DeleteTransaction(c.Request.Context(), id); err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found or not authorized"})
			return
		}
		h.logger.Error("failed to delete transaction", zap.Int64("transaction_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
