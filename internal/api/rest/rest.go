package rest

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/feral-file/give-gateway/internal/api/middleware"
	"github.com/feral-file/give-gateway/internal/domain"
)

// SetupRoutes configures all REST API routes. donor runs ahead of the donation form checkout routes.
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig, donor ...gin.HandlerFunc) {
	// Health check and metrics (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Stripe delivers to {site}?give-listener=stripe
	router.POST("/", handler.StripeListener)

	admin := []gin.HandlerFunc{
		middleware.Auth(authCfg),
		middleware.RequireCapability(domain.CapabilityManageSettings),
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/forms/:id/hash", handler.IssueFormHash)

		paypal := v1.Group("/paypal-commerce")
		{
			// Donation form checkout
			checkout := paypal.Group("", donor...)
			checkout.POST("/orders", handler.CreateOrder)
			checkout.POST("/orders/approve", handler.ApproveOrder)

			// Seller account management
			settings := paypal.Group("", admin...)
			settings.POST("/onboarding", handler.PayPalOnboarded)
			settings.POST("/partner-link", handler.PayPalPartnerLink)
			settings.POST("/disconnect", handler.PayPalDisconnect)
			settings.PUT("/merchant", handler.SaveMerchant)
			settings.GET("/merchant", handler.GetMerchant)
		}

		stripe := v1.Group("/stripe/webhooks", admin...)
		{
			stripe.POST("", handler.CreateStripeWebhook)
			stripe.GET("", handler.ListStripeWebhooks)
			stripe.GET("/:id", handler.GetStripeWebhook)
			stripe.DELETE("/:id", handler.DeleteStripeWebhook)
		}

		notifications := v1.Group("/notifications", admin...)
		{
			notifications.GET("", handler.ListNotifications)
			notifications.GET("/:id/status", handler.GetNotificationStatus)
			notifications.GET("/:id/values/:option", handler.GetNotificationValue)
			notifications.GET("/:id/preview", handler.PreviewNotification)
			notifications.POST("/:id/preview", handler.SendPreviewNotification)
		}
	}
}

// readLimited reads the request body, failing when it exceeds limit bytes
func readLimited(c *gin.Context, limit int64) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	return body, nil
}
