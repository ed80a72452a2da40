package http

import (
	"net/http"
	"strconv"

	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/usecase"
	"github.com/gin-gonic/gin"
)

type AddressHandler struct {
	addresses usecase.AddressRepo
}

func NewAddressHandler(addresses usecase.AddressRepo) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

// ListByCustomer handles GET /customers/:id/addresses.
func (h *AddressHandler) ListByCustomer(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}

	addrs, err := h.addresses.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, addrs)
}

type addressReq struct {
	CustomerID   int64  `json:"cliente_id"`
	Kind         string `json:"tipo"`
	Street       string `json:"calle" binding:"required"`
	ExteriorNo   string `json:"numero_exterior"`
	InteriorNo   string `json:"numero_interior"`
	Neighborhood string `json:"colonia"`
	City         string `json:"ciudad" binding:"required"`
	State        string `json:"estado" binding:"required"`
	PostalCode   string `json:"codigo_postal" binding:"required"`
	Country      string `json:"pais"`
	References   string `json:"referencias"`
}

func (r *addressReq) toRecord() *usecase.AddressRecord {
	kind := r.Kind
	if kind == "" {
		kind = "envío"
	}
	country := r.Country
	if country == "" {
		country = "México"
	}
	return &usecase.AddressRecord{
		CustomerID:   r.CustomerID,
		Kind:         kind,
		Street:       r.Street,
		ExteriorNo:   r.ExteriorNo,
		InteriorNo:   r.InteriorNo,
		Neighborhood: r.Neighborhood,
		City:         r.City,
		State:        r.State,
		PostalCode:   r.PostalCode,
		Country:      country,
		References:   r.References,
	}
}

// Create handles POST /addresses.
func (h *AddressHandler) Create(c *gin.Context) {
	var req addressReq
	if err := c.ShouldBindJSON(&req); err != nil || req.CustomerID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "incomplete address data"})
		return
	}

	out, err := h.addresses.Create(c.Request.Context(), req.toRecord())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// Update handles PUT /addresses/:id.
func (h *AddressHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
		return
	}
	var req addressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "incomplete address data"})
		return
	}

	rec := req.toRecord()
	rec.ID = id
	if err := h.addresses.Update(c.Request.Context(), rec); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "address updated"})
}

// Delete handles DELETE /addresses/:id.
func (h *AddressHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
		return
	}

	if err := h.addresses.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "address deleted"})
}
