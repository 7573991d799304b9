package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/feral-file/give-gateway/internal/domain"
	"github.com/feral-file/give-gateway/internal/logger"
	"github.com/feral-file/give-gateway/internal/metrics"
	"github.com/feral-file/give-gateway/internal/providers/paypal"
	"github.com/feral-file/give-gateway/internal/scheduler"
	"github.com/feral-file/give-gateway/internal/settings"
)

var (
	ErrMerchantNotConnected = errors.New("paypal merchant account is not connected")
	ErrInvalidOrder         = errors.New("invalid order")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// OrderError carries the decoded remote error body of a failed order call
type OrderError struct {
	Body any
	Err  error
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("order request failed: %v", e.Err)
}

func (e *OrderError) Unwrap() error {
	return e.Err
}

// Config is the site context the router needs
type Config struct {
	Mode        string
	AdminURL    string
	BaseCountry string
	Currency    string
}

// OrderForm is the donor form submission used to open an order
type OrderForm struct {
	FormID    int64  `form:"give-form-id" validate:"gt=0"`
	FormHash  string `form:"give-form-hash"`
	Amount    string `form:"give-amount" validate:"required"`
	FirstName string `form:"give_first"`
	LastName  string `form:"give_last"`
	Email     string `form:"give_email" validate:"omitempty,email"`
}

// DisconnectResult reports what happened to the remote webhook during a disconnect
type DisconnectResult struct {
	WebhookDeleted bool   `json:"webhookDeleted"`
	WebhookError   string `json:"webhookError,omitempty"`
}

// MerchantStatus summarizes the connected account for the settings screen
type MerchantStatus struct {
	Connected        bool     `json:"connected"`
	AccountIsReady   bool     `json:"accountIsReady"`
	MerchantID       string   `json:"merchantId,omitempty"`
	AccountCountry   string   `json:"accountCountry,omitempty"`
	Errors           []string `json:"errors,omitempty"`
	RefreshScheduled bool     `json:"refreshScheduled"`
}

// Router implements the PayPal Commerce onboarding and checkout operations
type Router struct {
	client    paypal.Client
	options   *settings.Options
	merchants *MerchantRepository
	webhooks  *WebhookRepository
	refresher *TokenRefresher
	config    Config
}

// NewRouter creates a Router
func NewRouter(client paypal.Client, options *settings.Options, s scheduler.Scheduler, config Config) *Router {
	return &Router{
		client:    client,
		options:   options,
		merchants: NewMerchantRepository(options, config.Mode),
		webhooks:  NewWebhookRepository(options, config.Mode),
		refresher: NewTokenRefresher(s),
		config:    config,
	}
}

// OnBoardedUser exchanges the seller's authorization code for an access token,
// stores it and schedules its refresh
func (r *Router) OnBoardedUser(ctx context.Context, sharedID, authCode string) (err error) {
	defer observe("onboarded_user", &err)

	partnerLink := struct {
		Nonce string `json:"nonce"`
	}{}
	if _, err := r.options.Decode(ctx, PartnerLinkOptionName, &partnerLink); err != nil {
		return err
	}

	body, err := r.client.GenerateAccessToken(ctx, sharedID, authCode, partnerLink.Nonce)
	if err != nil {
		return err
	}

	token, err := decodeTokenRecord(body)
	if err != nil {
		return err
	}

	if err := r.options.Set(ctx, AccessTokenOptionName, token); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}

	if err := r.refresher.Register(cast.ToInt64(token["expiresIn"]), r.RefreshToken); err != nil {
		return fmt.Errorf("failed to schedule token refresh: %w", err)
	}

	logger.InfoCtx(ctx, "PayPal seller onboarded", zap.String("mode", r.config.Mode))
	return nil
}

// GetPartnerURL requests a seller onboarding link and keeps the response for the onboarding callback
func (r *Router) GetPartnerURL(ctx context.Context) (data json.RawMessage, err error) {
	defer observe("get_partner_url", &err)

	country, err := r.options.String(ctx, baseCountryOptionName, r.config.BaseCountry)
	if err != nil {
		return nil, err
	}

	body, err := r.client.PartnerLink(ctx, r.config.AdminURL+partnerReturnPath, country)
	if err != nil {
		return nil, err
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, domain.ErrEmptyResponse
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("partner link response is not JSON: %s", string(body))
	}

	data = json.RawMessage(body)
	if err := r.options.Set(ctx, PartnerLinkOptionName, data); err != nil {
		return nil, fmt.Errorf("failed to store partner link: %w", err)
	}

	return data, nil
}

// RemovePayPalAccount disconnects the seller.
// Each step is idempotent, a failed run can be repeated until it converges.
// A failed remote webhook delete keeps the stored id and does not stop the local cleanup.
func (r *Router) RemovePayPalAccount(ctx context.Context) (result DisconnectResult, err error) {
	defer observe("remove_account", &err)

	webhookID, err := r.webhooks.WebhookID(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to read webhook id: %w", err)
	}

	if webhookID != "" {
		accessToken := ""
		merchant, found, err := r.merchants.Get(ctx)
		if err != nil {
			return result, err
		}
		if found {
			accessToken = merchant.AccessToken
		}

		if err := r.client.DeleteWebhook(ctx, accessToken, webhookID); err != nil {
			result.WebhookError = err.Error()
			logger.Record(ctx, "PayPal Commerce - Webhook Error", err.Error(), zap.String("webhook_id", webhookID))
		} else {
			if err := r.webhooks.DeleteWebhookID(ctx); err != nil {
				return result, fmt.Errorf("failed to delete webhook id: %w", err)
			}
			result.WebhookDeleted = true
		}
	}

	err = multierr.Combine(
		r.merchants.Delete(ctx),
		r.merchants.DeleteAccountErrors(ctx),
		r.merchants.DeleteClientToken(ctx),
	)
	r.refresher.Cancel()

	if err != nil {
		return result, fmt.Errorf("failed to clear merchant data: %w", err)
	}

	logger.InfoCtx(ctx, "PayPal account disconnected",
		zap.String("mode", r.config.Mode),
		zap.Bool("webhook_deleted", result.WebhookDeleted))

	return result, nil
}

// CreateOrder opens a PayPal order for a donation and returns its id
func (r *Router) CreateOrder(ctx context.Context, form OrderForm) (id string, err error) {
	defer observe("create_order", &err)

	if err := validate.Struct(form); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}

	amount, err := ParseAmount(form.Amount)
	if err != nil {
		return "", err
	}

	merchant, err := r.connectedMerchant(ctx)
	if err != nil {
		return "", err
	}

	currency, err := r.options.String(ctx, currencyOptionName, r.config.Currency)
	if err != nil {
		return "", err
	}

	id, err = r.client.CreateOrder(ctx, merchant.AccessToken, paypal.OrderRequest{
		FormID:     form.FormID,
		Amount:     amount,
		Currency:   currency,
		MerchantID: merchant.MerchantIDInPayPal,
		Payer: paypal.Payer{
			FirstName: form.FirstName,
			LastName:  form.LastName,
			Email:     form.Email,
		},
	})
	if err != nil {
		return "", newOrderError(err)
	}

	return id, nil
}

// ApproveOrder captures an approved order and returns the captured order
func (r *Router) ApproveOrder(ctx context.Context, orderID string) (order map[string]any, err error) {
	defer observe("approve_order", &err)

	if strings.TrimSpace(orderID) == "" {
		return nil, fmt.Errorf("%w: order id is required", ErrInvalidOrder)
	}

	merchant, err := r.connectedMerchant(ctx)
	if err != nil {
		return nil, err
	}

	order, err = r.client.CaptureOrder(ctx, merchant.AccessToken, orderID)
	if err != nil {
		return nil, newOrderError(err)
	}

	return order, nil
}

// SaveMerchantDetails stores the seller credentials along with any webhook id and account errors.
// A present access token schedules its refresh.
func (r *Router) SaveMerchantDetails(ctx context.Context, update MerchantUpdate) (err error) {
	defer observe("save_merchant", &err)

	if err := validate.Struct(update); err != nil {
		return fmt.Errorf("invalid merchant details: %w", err)
	}

	merchant := update.MerchantDetail
	if err := r.merchants.Save(ctx, merchant); err != nil {
		return fmt.Errorf("failed to save merchant details: %w", err)
	}

	if update.WebhookID != "" {
		if err := r.webhooks.SaveWebhookID(ctx, update.WebhookID); err != nil {
			return fmt.Errorf("failed to save webhook id: %w", err)
		}
	}

	switch {
	case update.AccountErrors == nil:
	case len(update.AccountErrors) == 0:
		if err := r.merchants.DeleteAccountErrors(ctx); err != nil {
			return fmt.Errorf("failed to clear account errors: %w", err)
		}
	default:
		if err := r.merchants.SaveAccountErrors(ctx, update.AccountErrors); err != nil {
			return fmt.Errorf("failed to save account errors: %w", err)
		}
	}

	if merchant.AccessToken != "" {
		if err := r.refresher.Register(cast.ToInt64(merchant.TokenDetails["expiresIn"]), r.RefreshToken); err != nil {
			return fmt.Errorf("failed to schedule token refresh: %w", err)
		}
	}

	return nil
}

// MerchantStatus summarizes the connected account
func (r *Router) MerchantStatus(ctx context.Context) (MerchantStatus, error) {
	status := MerchantStatus{RefreshScheduled: r.refresher.Pending()}

	merchant, found, err := r.merchants.Get(ctx)
	if err != nil {
		return status, err
	}
	if found {
		status.Connected = true
		status.AccountIsReady = merchant.AccountIsReady
		status.MerchantID = merchant.MerchantIDInPayPal
		status.AccountCountry = merchant.AccountCountry
	}

	status.Errors, err = r.merchants.AccountErrors(ctx)
	if err != nil {
		return status, err
	}

	return status, nil
}

// RefreshToken is the scheduled job renewing the seller access token.
// A failed refresh is retried later unless the merchant is gone.
func (r *Router) RefreshToken(ctx context.Context) {
	err := r.refreshToken(ctx)
	observe("refresh_token", &err)
	if err == nil {
		return
	}

	logger.Record(ctx, "PayPal Commerce - Refresh Token Error", err.Error())
	if errors.Is(err, ErrMerchantNotConnected) {
		return
	}
	if err := r.refresher.Retry(r.RefreshToken); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to reschedule token refresh: %w", err))
	}
}

// ResumeTokenRefresh schedules a refresh for a connected merchant after a restart.
// Pending jobs live in memory, so the next refresh runs at the minimum delay.
func (r *Router) ResumeTokenRefresh(ctx context.Context) error {
	merchant, found, err := r.merchants.Get(ctx)
	if err != nil {
		return err
	}
	if !found || merchant.AccessToken == "" {
		return nil
	}
	return r.refresher.Register(0, r.RefreshToken)
}

func (r *Router) refreshToken(ctx context.Context) error {
	merchant, found, err := r.merchants.Get(ctx)
	if err != nil {
		return err
	}
	if !found {
		return ErrMerchantNotConnected
	}

	body, err := r.client.RefreshAccessToken(ctx, merchant.ClientID, merchant.ClientSecret)
	if err != nil {
		return err
	}

	token, err := decodeTokenRecord(body)
	if err != nil {
		return err
	}

	accessToken := cast.ToString(token["accessToken"])
	if accessToken == "" {
		return fmt.Errorf("refresh response has no access token")
	}

	merchant.AccessToken = accessToken
	merchant.TokenDetails = token
	if err := r.merchants.Save(ctx, *merchant); err != nil {
		return fmt.Errorf("failed to save merchant details: %w", err)
	}
	if err := r.options.Set(ctx, AccessTokenOptionName, token); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}

	logger.InfoCtx(ctx, "PayPal access token refreshed", zap.String("mode", r.config.Mode))
	return r.refresher.Register(cast.ToInt64(token["expiresIn"]), r.RefreshToken)
}

func (r *Router) connectedMerchant(ctx context.Context) (*MerchantDetail, error) {
	merchant, found, err := r.merchants.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !found || merchant.AccessToken == "" {
		return nil, ErrMerchantNotConnected
	}
	return merchant, nil
}

// ParseAmount reads a donation amount, tolerating thousands separators
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(raw), ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: bad amount %q", ErrInvalidOrder, raw)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: amount must be positive", ErrInvalidOrder)
	}
	return amount, nil
}

// decodeTokenRecord parses a token response and camelCases its keys
func decodeTokenRecord(body []byte) (map[string]any, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, domain.ErrEmptyResponse
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	token, _ := CamelCaseKeys(raw).(map[string]any)
	return token, nil
}

func newOrderError(err error) *OrderError {
	var apiErr *paypal.APIError
	if errors.As(err, &apiErr) {
		return &OrderError{Body: apiErr.Decoded(), Err: err}
	}
	return &OrderError{Body: err.Error(), Err: err}
}

func observe(operation string, err *error) {
	metrics.CommerceOperations.WithLabelValues(operation, metrics.Outcome(*err)).Inc()
}
