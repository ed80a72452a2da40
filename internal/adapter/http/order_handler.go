package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	domain "github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/entity"
	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/logging"
	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/usecase"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	create *usecase.CreateOrder
	change *usecase.ChangeOrderStatus
	query  usecase.OrderRepo
	cache  usecase.OrderCache
}

func NewOrderHandler(create *usecase.CreateOrder, change *usecase.ChangeOrderStatus, query usecase.OrderRepo, cache usecase.OrderCache) *OrderHandler {
	return &OrderHandler{create: create, change: change, query: query, cache: cache}
}

type createOrderItemReq struct {
	ProductID int64   `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	Precio    float64 `json:"precio" binding:"gte=0"`
}

type createOrderReq struct {
	CustomerID        int64                `json:"customer_id" binding:"required"`
	ShippingAddressID int64                `json:"shipping_address_id" binding:"required"`
	PaymentMethodID   int64                `json:"payment_method_id" binding:"required"`
	ShippingMethodID  int64                `json:"shipping_method_id" binding:"required"`
	Items             []createOrderItemReq `json:"items" binding:"required,min=1,dive"`
	Notes             string               `json:"notes"`
}

type orderItemResp struct {
	ID          int64   `json:"order_item_id"`
	ProductID   int64   `json:"product_id"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
	ProductName string  `json:"product_name"`
	ImageURL    string  `json:"image_url"`
}

type orderResp struct {
	ID                 int64                  `json:"order_id"`
	CustomerID         int64                  `json:"customer_id"`
	ShippingAddressID  int64                  `json:"shipping_address_id"`
	PaymentMethodID    int64                  `json:"payment_method_id"`
	ShippingMethodID   int64                  `json:"shipping_method_id"`
	StatusID           int                    `json:"status_id"`
	StatusName         string                 `json:"status_name"`
	PaymentMethodName  string                 `json:"payment_method_name"`
	ShippingMethodName string                 `json:"shipping_method_name"`
	ShippingCost       float64                `json:"shipping_cost"`
	Subtotal           float64                `json:"subtotal"`
	Tax                float64                `json:"tax"`
	Total              float64                `json:"total"`
	TrackingCode       string                 `json:"tracking_code"`
	Notes              string                 `json:"notes"`
	CreatedAt          time.Time              `json:"created_at"`
	Address            *usecase.AddressRecord `json:"address,omitempty"`
	Items              []orderItemResp        `json:"items"`
}

func toOrderResp(rec *usecase.OrderRecord) orderResp {
	out := orderResp{
		ID:                 rec.ID,
		CustomerID:         rec.CustomerID,
		ShippingAddressID:  rec.ShippingAddressID,
		PaymentMethodID:    rec.PaymentMethodID,
		ShippingMethodID:   rec.ShippingMethodID,
		StatusID:           rec.StatusID,
		StatusName:         rec.StatusName,
		PaymentMethodName:  rec.PaymentMethodName,
		ShippingMethodName: rec.ShippingMethodName,
		ShippingCost:       rec.ShippingCost,
		Subtotal:           rec.Subtotal,
		Tax:                rec.Tax,
		Total:              rec.Total,
		TrackingCode:       rec.TrackingCode,
		Notes:              rec.Notes,
		CreatedAt:          rec.CreatedAt,
		Address:            rec.Address,
		Items:              []orderItemResp{},
	}
	for _, it := range rec.Items {
		out.Items = append(out.Items, orderItemResp{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
			ProductName: it.ProductName,
			ImageURL:    it.ImageURL,
		})
	}
	return out
}

// CreateOrder handles POST /orders.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "incomplete order data"})
		return
	}

	in := usecase.CreateOrderInput{
		CustomerID:        req.CustomerID,
		ShippingAddressID: req.ShippingAddressID,
		PaymentMethodID:   req.PaymentMethodID,
		ShippingMethodID:  req.ShippingMethodID,
		Notes:             req.Notes,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, domain.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.Precio,
		})
	}

	rec, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   toOrderResp(rec),
		"message": "order created",
	})
}

// GetOrderByID handles GET /orders/:id.
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	rec, err := h.query.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResp(rec))
}

// ListCustomerOrders handles GET /customers/:id/orders. An unknown
// customer simply has no orders; the response is an empty array.
func (h *OrderHandler) ListCustomerOrders(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}

	recs, err := h.query.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		writeError(c, err)
		return
	}
	out := []orderResp{}
	for i := range recs {
		out = append(out, toOrderResp(&recs[i]))
	}
	c.JSON(http.StatusOK, out)
}

type updateStatusReq struct {
	StatusID int `json:"estado_id" binding:"required"`
}

// UpdateStatus handles PUT /orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "estado_id required"})
		return
	}

	if err := h.change.Execute(c.Request.Context(), id, req.StatusID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetOrderStatus handles GET /orders/:id/status: cache fast path with a
// database fallback.
func (h *OrderHandler) GetOrderStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	if h.cache != nil {
		if statusID, ok, err := h.cache.GetStatus(c.Request.Context(), id); err == nil && ok {
			c.JSON(http.StatusOK, gin.H{"order_id": id, "status_id": statusID, "status_name": domain.Status(statusID).Name()})
			return
		} else if err != nil {
			logging.From(c).Warn("status cache read failed", "order_id", id, "err", err)
		}
	}

	rec, err := h.query.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": rec.ID, "status_id": rec.StatusID, "status_name": rec.StatusName})
}

// writeError maps the error taxonomy to HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrUpstream):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		logging.From(c).Error("internal error", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
