package http

import (
	"net/http"
	"strconv"

	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/usecase"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalog usecase.CatalogRepo
}

func NewCatalogHandler(catalog usecase.CatalogRepo) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListProducts handles GET /products?category_id=N.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var categoryID int64
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		categoryID = id
	}

	products, err := h.catalog.ListProducts(c.Request.Context(), categoryID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /products/:id, reviews included.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) ListShippingMethods(c *gin.Context) {
	methods, err := h.catalog.ListShippingMethods(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, methods)
}

func (h *CatalogHandler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.catalog.ListPaymentMethods(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, methods)
}

type createReviewReq struct {
	ProductID  int64  `json:"producto_id" binding:"required"`
	CustomerID int64  `json:"cliente_id" binding:"required"`
	OrderID    int64  `json:"pedido_id" binding:"required"`
	Rating     int    `json:"puntuacion" binding:"required,min=1,max=5"`
	Comment    string `json:"comentario"`
}

// CreateReview handles POST /reviews.
func (h *CatalogHandler) CreateReview(c *gin.Context) {
	var req createReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "incomplete review data"})
		return
	}

	id, err := h.catalog.CreateReview(c.Request.Context(), &usecase.ReviewRecord{
		ProductID:  req.ProductID,
		CustomerID: req.CustomerID,
		OrderID:    req.OrderID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "resena_id": id, "message": "review saved"})
}
