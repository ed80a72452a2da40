package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/adapter/http/middleware"
	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/logging"
	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/security"
	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/usecase"
	"github.com/gin-gonic/gin"
)

// SignatureHeader carries the provider's HMAC over the raw event body.
const SignatureHeader = "X-Provider-Signature"

const maxWebhookBody = 1 << 20 // 1MB

type PaymentHandler struct {
	checkout *usecase.StartCheckout
	apply    *usecase.ApplyPaymentEvent
	verifier *security.WebhookVerifier
}

func NewPaymentHandler(checkout *usecase.StartCheckout, apply *usecase.ApplyPaymentEvent, verifier *security.WebhookVerifier) *PaymentHandler {
	return &PaymentHandler{checkout: checkout, apply: apply, verifier: verifier}
}

type checkoutSessionReq struct {
	OrderID int64 `json:"order_id" binding:"required"`
}

// CreateCheckoutSession handles POST /payments/checkout-session.
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	var req checkoutSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_id required"})
		return
	}

	url, err := h.checkout.Execute(c.Request.Context(), req.OrderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// providerEvent is the provider's callback envelope.
type providerEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID                string `json:"id"`
			ClientReferenceID string `json:"client_reference_id"`
			PaymentIntent     string `json:"payment_intent"`
		} `json:"object"`
	} `json:"data"`
}

// Webhook handles POST /webhooks/payment-provider. Signature
// verification runs over the exact raw bytes; after it passes, the
// provider always gets a success acknowledgment so its retry policy is
// not triggered by internal failures.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}
	defer c.Request.Body.Close()

	if err := h.verifier.Verify(raw, c.GetHeader(SignatureHeader)); err != nil {
		middleware.CountWebhookEvent("unknown", "bad_signature")
		c.JSON(http.StatusBadRequest, gin.H{"error": "signature verification failed"})
		return
	}

	l := logging.From(c)

	var ev providerEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		// Signed but unparseable: acknowledge, nothing to apply.
		l.Error("webhook body not parseable", "err", err)
		middleware.CountWebhookEvent("unknown", "bad_payload")
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	if ev.Type != usecase.EventCheckoutCompleted {
		l.Info("ignoring provider event", "kind", ev.Type)
		middleware.CountWebhookEvent(ev.Type, "ignored")
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	orderID, err := strconv.ParseInt(ev.Data.Object.ClientReferenceID, 10, 64)
	if err != nil {
		l.Error("webhook missing order reference", "reference", ev.Data.Object.ClientReferenceID)
		middleware.CountWebhookEvent(ev.Type, "bad_reference")
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	ctx := logging.WithCtx(c.Request.Context(), l)
	h.apply.Execute(ctx, usecase.PaymentEvent{
		ID:            ev.ID,
		Kind:          ev.Type,
		OrderID:       orderID,
		TransactionID: ev.Data.Object.PaymentIntent,
		Raw:           raw,
	})

	middleware.CountWebhookEvent(ev.Type, "applied")
	c.JSON(http.StatusOK, gin.H{"received": true})
}
