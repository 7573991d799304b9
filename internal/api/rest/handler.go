package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/give-gateway/internal/api/middleware"
	apierrors "github.com/feral-file/give-gateway/internal/api/shared/errors"
	"github.com/feral-file/give-gateway/internal/commerce"
	"github.com/feral-file/give-gateway/internal/domain"
	"github.com/feral-file/give-gateway/internal/formhash"
	"github.com/feral-file/give-gateway/internal/logger"
	"github.com/feral-file/give-gateway/internal/notification"
	"github.com/feral-file/give-gateway/internal/providers/stripe"
	"github.com/feral-file/give-gateway/internal/webhook"
)

const maxWebhookPayload = 64 << 10

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)

	// StripeListener receives Stripe event deliveries
	// POST /?give-listener=stripe
	StripeListener(c *gin.Context)

	// IssueFormHash returns the give-form-hash a donation form must post back
	// GET /api/v1/forms/:id/hash
	IssueFormHash(c *gin.Context)

	// PayPalOnboarded completes seller onboarding
	// POST /api/v1/paypal-commerce/onboarding?sharedId=<id>&authCode=<code>
	PayPalOnboarded(c *gin.Context)

	// PayPalPartnerLink requests a seller onboarding link
	// POST /api/v1/paypal-commerce/partner-link
	PayPalPartnerLink(c *gin.Context)

	// PayPalDisconnect removes the connected seller account
	// POST /api/v1/paypal-commerce/disconnect
	PayPalDisconnect(c *gin.Context)

	// SaveMerchant stores the seller credentials
	// PUT /api/v1/paypal-commerce/merchant
	SaveMerchant(c *gin.Context)

	// GetMerchant summarizes the connected seller account
	// GET /api/v1/paypal-commerce/merchant
	GetMerchant(c *gin.Context)

	// CreateOrder opens a PayPal order for a donation
	// POST /api/v1/paypal-commerce/orders
	CreateOrder(c *gin.Context)

	// ApproveOrder captures an approved order
	// POST /api/v1/paypal-commerce/orders/approve?order=<id>
	ApproveOrder(c *gin.Context)

	// CreateStripeWebhook registers the listener URL with Stripe
	// POST /api/v1/stripe/webhooks
	CreateStripeWebhook(c *gin.Context)

	// ListStripeWebhooks lists the endpoints registered with Stripe
	// GET /api/v1/stripe/webhooks
	ListStripeWebhooks(c *gin.Context)

	// GetStripeWebhook retrieves one registered endpoint
	// GET /api/v1/stripe/webhooks/:id
	GetStripeWebhook(c *gin.Context)

	// DeleteStripeWebhook removes an endpoint from Stripe
	// DELETE /api/v1/stripe/webhooks/:id
	DeleteStripeWebhook(c *gin.Context)

	// ListNotifications lists the registered email notification types
	// GET /api/v1/notifications
	ListNotifications(c *gin.Context)

	// GetNotificationStatus resolves whether a notification is active
	// GET /api/v1/notifications/:id/status?form_id=<id>
	GetNotificationStatus(c *gin.Context)

	// GetNotificationValue resolves a notification setting
	// GET /api/v1/notifications/:id/values/:option?form_id=<id>&default=<value>
	GetNotificationValue(c *gin.Context)

	// PreviewNotification authorizes an email preview
	// GET /api/v1/notifications/:id/preview?give_action=preview_email
	PreviewNotification(c *gin.Context)

	// SendPreviewNotification authorizes sending a preview email
	// POST /api/v1/notifications/:id/preview?give_action=send_preview_email
	SendPreviewNotification(c *gin.Context)
}

// Dependencies are the services the handlers call into
type Dependencies struct {
	Commerce      *commerce.Router
	Registrar     *webhook.Registrar
	Listener      *webhook.Listener
	Notifications *notification.Registry
	Accessor      *notification.Accessor
	FormHash      *formhash.Hasher
}

// handler implements the Handler interface
type handler struct {
	debug bool
	deps  Dependencies
}

// NewHandler creates a new REST API handler
func NewHandler(debug bool, deps Dependencies) Handler {
	return &handler{
		debug: debug,
		deps:  deps,
	}
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "give-gateway",
	})
}

func (h *handler) StripeListener(c *gin.Context) {
	if c.Query(domain.StripeListenerParam) != domain.StripeListenerValue {
		respondNotFound(c, "Unknown listener")
		return
	}

	payload, err := readLimited(c, maxWebhookPayload)
	if err != nil {
		respondBadRequest(c, "Invalid payload", err.Error())
		return
	}

	event, err := h.deps.Listener.Handle(c.Request.Context(), payload, c.GetHeader(webhook.SignatureHeader))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"received": true, "id": event.ID})
	case errors.Is(err, webhook.ErrNoWebhookSecret):
		logger.WarnCtx(c.Request.Context(), "Stripe event received before a webhook was registered")
		c.JSON(http.StatusServiceUnavailable, apierrors.NewServiceError("Webhook not registered"))
	case errors.Is(err, webhook.ErrInvalidSignatureHeader),
		errors.Is(err, webhook.ErrNoValidSignature),
		errors.Is(err, webhook.ErrTimestampOutsideWindow):
		logger.WarnCtx(c.Request.Context(), "Stripe signature rejected", zap.Error(err), zap.String("client_ip", c.ClientIP()))
		respondBadRequest(c, "Invalid signature", err.Error())
	default:
		respondBadRequest(c, "Invalid event", err.Error())
	}
}

func (h *handler) IssueFormHash(c *gin.Context) {
	formID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || formID <= 0 {
		respondValidationError(c, "form id must be a positive integer")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"form_id": formID,
		"hash":    h.deps.FormHash.Generate(formID),
	})
}

func (h *handler) PayPalOnboarded(c *gin.Context) {
	sharedID := c.Query("sharedId")
	authCode := c.Query("authCode")
	if sharedID == "" || authCode == "" {
		respondFailure(c, http.StatusBadRequest, errorData("sharedId and authCode are required"))
		return
	}

	if err := h.deps.Commerce.OnBoardedUser(c.Request.Context(), sharedID, authCode); err != nil {
		respondCommerceError(c, "onboarded_user", err)
		return
	}
	respondSuccess(c, nil)
}

func (h *handler) PayPalPartnerLink(c *gin.Context) {
	data, err := h.deps.Commerce.GetPartnerURL(c.Request.Context())
	if err != nil {
		respondCommerceError(c, "get_partner_url", err)
		return
	}
	respondSuccess(c, data)
}

func (h *handler) PayPalDisconnect(c *gin.Context) {
	result, err := h.deps.Commerce.RemovePayPalAccount(c.Request.Context())
	if err != nil {
		respondCommerceError(c, "remove_account", err)
		return
	}
	respondSuccess(c, result)
}

func (h *handler) SaveMerchant(c *gin.Context) {
	var merchant commerce.MerchantUpdate
	if err := c.ShouldBindJSON(&merchant); err != nil {
		respondFailure(c, http.StatusBadRequest, errorData("invalid request body: "+err.Error()))
		return
	}

	if err := h.deps.Commerce.SaveMerchantDetails(c.Request.Context(), merchant); err != nil {
		respondCommerceError(c, "save_merchant", err)
		return
	}
	respondSuccess(c, nil)
}

func (h *handler) GetMerchant(c *gin.Context) {
	status, err := h.deps.Commerce.MerchantStatus(c.Request.Context())
	if err != nil {
		respondCommerceError(c, "merchant_status", err)
		return
	}
	respondSuccess(c, status)
}

func (h *handler) CreateOrder(c *gin.Context) {
	var form commerce.OrderForm
	if err := c.ShouldBind(&form); err != nil {
		respondFailure(c, http.StatusBadRequest, errorData("invalid order form: "+err.Error()))
		return
	}

	id, err := h.deps.Commerce.CreateOrder(c.Request.Context(), form)
	if err != nil {
		respondCommerceError(c, "create_order", err)
		return
	}
	respondSuccess(c, gin.H{"id": id})
}

func (h *handler) ApproveOrder(c *gin.Context) {
	order, err := h.deps.Commerce.ApproveOrder(c.Request.Context(), c.Query("order"))
	if err != nil {
		respondCommerceError(c, "approve_order", err)
		return
	}
	respondSuccess(c, gin.H{"order": order})
}

func (h *handler) CreateStripeWebhook(c *gin.Context) {
	endpoint, err := h.deps.Registrar.Create(c.Request.Context())
	if err != nil {
		webhook.RecordError(c.Request.Context(), err)
		respondFailure(c, http.StatusBadGateway, nil)
		return
	}
	respondSuccess(c, redactSecret(*endpoint))
}

func (h *handler) ListStripeWebhooks(c *gin.Context) {
	endpoints, err := h.deps.Registrar.ListAll(c.Request.Context())
	if err != nil {
		webhook.RecordError(c.Request.Context(), err)
		respondFailure(c, http.StatusBadGateway, nil)
		return
	}

	data := make([]stripe.WebhookEndpoint, 0, len(endpoints))
	for _, e := range endpoints {
		data = append(data, redactSecret(e))
	}
	respondSuccess(c, data)
}

func (h *handler) GetStripeWebhook(c *gin.Context) {
	endpoint, err := h.deps.Registrar.Retrieve(c.Request.Context(), c.Param("id"))
	if err != nil {
		webhook.RecordError(c.Request.Context(), err)
		respondFailure(c, http.StatusBadGateway, nil)
		return
	}
	respondSuccess(c, redactSecret(*endpoint))
}

func (h *handler) DeleteStripeWebhook(c *gin.Context) {
	endpoint, err := h.deps.Registrar.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		webhook.RecordError(c.Request.Context(), err)
		respondFailure(c, http.StatusBadGateway, nil)
		return
	}
	respondSuccess(c, redactSecret(*endpoint))
}

// notificationResponse is a registered notification type with its display email type
type notificationResponse struct {
	notification.Config
	EmailType string `json:"email_type"`
}

func (h *handler) ListNotifications(c *gin.Context) {
	configs := h.deps.Notifications.List()
	data := make([]notificationResponse, 0, len(configs))
	for _, cfg := range configs {
		emailType, err := notification.FormattedEmailType(cfg.ContentType)
		if err != nil {
			respondInternalError(c, err, "Invalid notification content type", zap.String("id", cfg.ID))
			return
		}
		data = append(data, notificationResponse{Config: cfg, EmailType: emailType})
	}
	c.JSON(http.StatusOK, data)
}

func (h *handler) GetNotificationStatus(c *gin.Context) {
	cfg, formID, ok := h.notificationScope(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	status, err := h.deps.Accessor.NotificationStatus(ctx, cfg, formID)
	if err != nil {
		respondInternalError(c, err, "Failed to read notification status", zap.String("id", cfg.ID))
		return
	}
	active, err := h.deps.Accessor.IsEmailNotificationActive(ctx, cfg, formID)
	if err != nil {
		respondInternalError(c, err, "Failed to resolve notification status", zap.String("id", cfg.ID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      cfg.ID,
		"form_id": formID,
		"status":  status,
		"active":  active,
	})
}

func (h *handler) GetNotificationValue(c *gin.Context) {
	cfg, formID, ok := h.notificationScope(c)
	if !ok {
		return
	}

	var def any
	if v, present := c.GetQuery("default"); present {
		def = v
	}

	option := c.Param("option")
	value, err := h.deps.Accessor.GetValue(c.Request.Context(), cfg, option, formID, def)
	if err != nil {
		respondInternalError(c, err, "Failed to read notification setting", zap.String("option", option))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      cfg.ID,
		"form_id": formID,
		"option":  option,
		"value":   value,
	})
}

func (h *handler) PreviewNotification(c *gin.Context) {
	h.preview(c, notification.CanPreviewEmail)
}

func (h *handler) SendPreviewNotification(c *gin.Context) {
	h.preview(c, notification.CanSendPreviewEmail)
}

func (h *handler) preview(c *gin.Context, allowed func(domain.Actor, string) bool) {
	cfg, formID, ok := h.notificationScope(c)
	if !ok {
		return
	}

	if !notification.IsEmailPreview(cfg) {
		respondNotFound(c, "Notification has no preview", cfg.ID)
		return
	}
	if !allowed(middleware.ActorFromContext(c), c.Query("give_action")) {
		respondForbidden(c, "Preview not allowed", cfg.ID)
		return
	}

	ctx := c.Request.Context()
	subject, err := h.deps.Accessor.GetValue(ctx, cfg, cfg.ID+"_email_subject", formID, cfg.DefaultEmailSubject)
	if err != nil {
		respondInternalError(c, err, "Failed to read email subject", zap.String("id", cfg.ID))
		return
	}

	data := gin.H{
		"id":      cfg.ID,
		"form_id": formID,
		"subject": subject,
	}
	if notification.HasPreviewHeader(cfg) {
		header, err := h.deps.Accessor.GetValue(ctx, cfg, cfg.ID+"_email_header", formID, cfg.DefaultEmailHeader)
		if err != nil {
			respondInternalError(c, err, "Failed to read email header", zap.String("id", cfg.ID))
			return
		}
		data["header"] = header
	}
	if notification.HasRecipientField(cfg) {
		data["recipient_group"] = cfg.RecipientGroupName
	}

	c.JSON(http.StatusOK, data)
}

// notificationScope resolves the :id notification and the optional form_id query.
// It responds and returns false when either is invalid.
func (h *handler) notificationScope(c *gin.Context) (notification.Config, int64, bool) {
	cfg, found := h.deps.Notifications.Get(c.Param("id"))
	if !found {
		respondNotFound(c, "Unknown notification", c.Param("id"))
		return notification.Config{}, 0, false
	}

	var formID int64
	if raw := c.Query("form_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 0 {
			respondValidationError(c, "form_id must be a non-negative integer")
			return notification.Config{}, 0, false
		}
		formID = id
	}

	return cfg, formID, true
}

func redactSecret(e stripe.WebhookEndpoint) stripe.WebhookEndpoint {
	e.Secret = ""
	return e
}
