package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-backoffice-service/internal/access"
	"github.com/fekuna/omnipos-backoffice-service/internal/auth"
	"github.com/fekuna/omnipos-backoffice-service/internal/product"
	"github.com/fekuna/omnipos-backoffice-service/internal/product/dto"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc     product.UseCase
	gate   access.Gate
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, gate access.Gate, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		gate:   gate,
		logger: log,
	}
}

// The till and the product screens both read the catalogue.
var listGrants = []string{
	access.OrderView,
	access.ProductsView,
	access.ProductsEdit,
	access.OrderEdit,
	access.OrderCreate,
	access.ProductsCreate,
}

func (h *ProductHandler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/products")
	g.GET("", access.RequireAny(h.gate, listGrants...), h.ListProducts)
	g.POST("", access.RequireAll(h.gate, access.ProductsCreate), h.CreateProduct)
	g.PUT("/:productId", access.RequireAll(h.gate, access.ProductsEdit), h.UpdateProduct)
}

type createProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description"`
}

type updateProductRequest struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.uc.ListProducts(c.Request.Context(), &dto.ProductFilters{
		SearchQuery: c.Query("q"),
	})
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := auth.GetSession(c.Request.Context())
	p, err := h.uc.CreateProduct(c.Request.Context(), &dto.CreateProductInput{
		UserID:      session.UserID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		h.logger.Error("failed to create product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := auth.GetSession(c.Request.Context())
	p, err := h.uc.UpdateProduct(c.Request.Context(), &dto.UpdateProductInput{
		ID:          id,
		UserID:      session.UserID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		h.logger.Error("failed to update product", zap.Int64("product_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}
