package http

import (
	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/adapter/http/middleware"
	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(oh *OrderHandler, ph *PaymentHandler, ah *AuthHandler, ch *CatalogHandler, dh *AddressHandler, authz *middleware.Authz) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())

	l := logging.New("http")

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// The webhook stays outside the body-logging middleware: signature
	// verification needs the body byte-for-byte.
	r.POST("/webhooks/payment-provider", ph.Webhook)

	api := r.Group("/", middleware.Logging(l))
	{
		api.POST("/auth/register", ah.Register)
		api.POST("/auth/login", ah.Login)
		api.PUT("/users/:id/password", ah.ChangePassword)
		api.PUT("/customers/:id", ah.UpdateProfile)

		api.GET("/products", ch.ListProducts)
		api.GET("/products/:id", ch.GetProduct)
		api.GET("/categories", ch.ListCategories)
		api.GET("/shipping-methods", ch.ListShippingMethods)
		api.GET("/payment-methods", ch.ListPaymentMethods)
		api.POST("/reviews", ch.CreateReview)

		api.GET("/customers/:id/addresses", dh.ListByCustomer)
		api.POST("/addresses", dh.Create)
		api.PUT("/addresses/:id", dh.Update)
		api.DELETE("/addresses/:id", dh.Delete)

		api.POST("/orders", oh.CreateOrder)
		api.GET("/orders/:id", oh.GetOrderByID)
		api.GET("/orders/:id/status", oh.GetOrderStatus)
		api.GET("/customers/:id/orders", oh.ListCustomerOrders)
		api.PUT("/orders/:id/status", authz.Require("orders.manage"), oh.UpdateStatus)

		api.POST("/payments/checkout-session", ph.CreateCheckoutSession)
	}

	return r
}
