package paypal

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/feral-file/give-gateway/internal/adapter"
)

const (
	ModeSandbox = "sandbox"
	ModeLive    = "live"
)

// APIError is a non-2xx PayPal response. Body holds the raw payload.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("paypal request failed with status %d: %s", e.StatusCode, string(e.Body))
}

// Decoded returns the body as JSON, or the raw text when it is not JSON
func (e *APIError) Decoded() any {
	var decoded any
	if err := json.Unmarshal(e.Body, &decoded); err != nil {
		return string(e.Body)
	}
	return decoded
}

// Payer identifies the donor on an order
type Payer struct {
	FirstName string
	LastName  string
	Email     string
}

// OrderRequest carries what is needed to open a checkout order
type OrderRequest struct {
	FormID   int64
	Amount   decimal.Decimal
	Currency string
	// MerchantID is the seller's PayPal merchant id, omitted when unknown
	MerchantID string
	Payer      Payer
}

// Client defines the PayPal Commerce operations used by the onboarding and checkout flows
//
//go:generate mockgen -source=client.go -destination=../../mocks/paypal_client.go -package=mocks -mock_names=Client=MockPayPalClient
type Client interface {
	// APIURL returns the API base for the configured mode joined with path
	APIURL(path string) string

	// Mode returns sandbox or live
	Mode() string

	// GenerateAccessToken exchanges a seller authorization code for an access token.
	// The raw response body is returned.
	GenerateAccessToken(ctx context.Context, sharedID, authCode, nonce string) ([]byte, error)

	// RefreshAccessToken fetches a new access token with client credentials
	RefreshAccessToken(ctx context.Context, clientID, clientSecret string) ([]byte, error)

	// PartnerLink asks the connect service for a seller onboarding link
	PartnerLink(ctx context.Context, returnURL, countryCode string) ([]byte, error)

	// DeleteWebhook removes a webhook registration
	DeleteWebhook(ctx context.Context, accessToken, webhookID string) error

	// CreateOrder opens a capture order and returns its id
	CreateOrder(ctx context.Context, accessToken string, order OrderRequest) (string, error)

	// CaptureOrder captures an approved order
	CaptureOrder(ctx context.Context, accessToken, orderID string) (map[string]any, error)
}

// zeroDecimalCurrencies are the PayPal currencies that reject fractional amounts
var zeroDecimalCurrencies = map[string]bool{
	"HUF": true,
	"JPY": true,
	"TWD": true,
}

// ClientOption customizes a PayPalClient
type ClientOption func(*PayPalClient)

// WithExchangeClient sets the HTTP client used for the authorization code exchange.
// The code is single use, so this client should not retry.
func WithExchangeClient(httpClient adapter.HTTPClient) ClientOption {
	return func(c *PayPalClient) {
		c.exchangeClient = httpClient
	}
}

// PayPalClient implements Client over the PayPal REST API
type PayPalClient struct {
	httpClient     adapter.HTTPClient
	exchangeClient adapter.HTTPClient
	apiURL         string
	sandboxAPIURL  string
	connectURL     string
	mode           string
}

// NewClient creates a new PayPal client for mode
func NewClient(httpClient adapter.HTTPClient, apiURL, sandboxAPIURL, connectURL, mode string, opts ...ClientOption) Client {
	c := &PayPalClient{
		httpClient:     httpClient,
		exchangeClient: httpClient,
		apiURL:         strings.TrimRight(apiURL, "/"),
		sandboxAPIURL:  strings.TrimRight(sandboxAPIURL, "/"),
		connectURL:     strings.TrimRight(connectURL, "/"),
		mode:           mode,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FormatAmount renders amount with the decimal places PayPal accepts for currency
func FormatAmount(amount decimal.Decimal, currency string) string {
	if zeroDecimalCurrencies[strings.ToUpper(currency)] {
		return amount.StringFixed(0)
	}
	return amount.StringFixed(2)
}

// APIURL returns the API base for the configured mode joined with path
func (c *PayPalClient) APIURL(path string) string {
	base := c.sandboxAPIURL
	if c.mode == ModeLive {
		base = c.apiURL
	}
	return base + "/" + strings.TrimLeft(path, "/")
}

// Mode returns sandbox or live
func (c *PayPalClient) Mode() string {
	return c.mode
}

// GenerateAccessToken exchanges a seller authorization code for an access token
func (c *PayPalClient) GenerateAccessToken(ctx context.Context, sharedID, authCode, nonce string) ([]byte, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", authCode)
	form.Set("code_verifier", nonce)

	headers := map[string]string{
		"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte(sharedID+":")),
	}

	respBody, err := c.exchangeClient.PostBytes(ctx, c.APIURL("v1/oauth2/token"), headers,
		"application/x-www-form-urlencoded", []byte(form.Encode()))
	if err != nil {
		return nil, wrapError("generate access token", err)
	}
	return respBody, nil
}

// RefreshAccessToken fetches a new access token with client credentials
func (c *PayPalClient) RefreshAccessToken(ctx context.Context, clientID, clientSecret string) ([]byte, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	headers := map[string]string{
		"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte(clientID+":"+clientSecret)),
	}

	respBody, err := c.httpClient.PostBytes(ctx, c.APIURL("v1/oauth2/token"), headers,
		"application/x-www-form-urlencoded", []byte(form.Encode()))
	if err != nil {
		return nil, wrapError("refresh access token", err)
	}
	return respBody, nil
}

// PartnerLink asks the connect service for a seller onboarding link
func (c *PayPalClient) PartnerLink(ctx context.Context, returnURL, countryCode string) ([]byte, error) {
	query := url.Values{}
	query.Set("mode", c.mode)
	query.Set("request", "partner-link")

	form := url.Values{}
	form.Set("return_url", returnURL)
	form.Set("country_code", countryCode)

	respBody, err := c.httpClient.PostBytes(ctx, c.connectURL+"/paypal?"+query.Encode(), nil,
		"application/x-www-form-urlencoded", []byte(form.Encode()))
	if err != nil {
		return nil, wrapError("get partner link", err)
	}
	return respBody, nil
}

// DeleteWebhook removes a webhook registration
func (c *PayPalClient) DeleteWebhook(ctx context.Context, accessToken, webhookID string) error {
	_, err := c.httpClient.Delete(ctx, c.APIURL("v1/notifications/webhooks/"+url.PathEscape(webhookID)), bearer(accessToken))
	if err != nil {
		return wrapError("delete webhook", err)
	}
	return nil
}

type orderAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type orderPayee struct {
	MerchantID string `json:"merchant_id"`
}

type orderPurchaseUnit struct {
	CustomID string      `json:"custom_id"`
	Amount   orderAmount `json:"amount"`
	Payee    *orderPayee `json:"payee,omitempty"`
}

type orderPayerName struct {
	GivenName string `json:"given_name"`
	Surname   string `json:"surname"`
}

type orderPayer struct {
	Name         orderPayerName `json:"name"`
	EmailAddress string         `json:"email_address"`
}

type orderBody struct {
	Intent             string              `json:"intent"`
	PurchaseUnits      []orderPurchaseUnit `json:"purchase_units"`
	Payer              orderPayer          `json:"payer"`
	ApplicationContext map[string]string   `json:"application_context"`
}

// CreateOrder opens a capture order and returns its id
func (c *PayPalClient) CreateOrder(ctx context.Context, accessToken string, order OrderRequest) (string, error) {
	unit := orderPurchaseUnit{
		CustomID: strconv.FormatInt(order.FormID, 10),
		Amount: orderAmount{
			CurrencyCode: order.Currency,
			Value:        FormatAmount(order.Amount, order.Currency),
		},
	}
	if order.MerchantID != "" {
		unit.Payee = &orderPayee{MerchantID: order.MerchantID}
	}

	body, err := json.Marshal(orderBody{
		Intent:        "CAPTURE",
		PurchaseUnits: []orderPurchaseUnit{unit},
		Payer: orderPayer{
			Name:         orderPayerName{GivenName: order.Payer.FirstName, Surname: order.Payer.LastName},
			EmailAddress: order.Payer.Email,
		},
		ApplicationContext: map[string]string{"shipping_preference": "NO_SHIPPING"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal order: %w", err)
	}

	headers := bearer(accessToken)
	headers["PayPal-Request-Id"] = uuid.NewString()
	headers["Prefer"] = "return=minimal"

	respBody, err := c.httpClient.PostBytes(ctx, c.APIURL("v2/checkout/orders"), headers, "application/json", body)
	if err != nil {
		return "", wrapError("create order", err)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &created); err != nil {
		return "", fmt.Errorf("failed to unmarshal PayPal order: %w", err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("PayPal order response has no id: %s", string(respBody))
	}
	return created.ID, nil
}

// CaptureOrder captures an approved order
func (c *PayPalClient) CaptureOrder(ctx context.Context, accessToken, orderID string) (map[string]any, error) {
	headers := bearer(accessToken)
	headers["Prefer"] = "return=representation"

	respBody, err := c.httpClient.PostBytes(ctx, c.APIURL("v2/checkout/orders/"+url.PathEscape(orderID)+"/capture"),
		headers, "application/json", []byte("{}"))
	if err != nil {
		return nil, wrapError("capture order", err)
	}

	var captured map[string]any
	if err := json.Unmarshal(respBody, &captured); err != nil {
		return nil, fmt.Errorf("failed to unmarshal PayPal capture: %w", err)
	}
	return captured, nil
}

func bearer(accessToken string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + accessToken}
}

// wrapError turns a non-2xx response into *APIError
func wrapError(op string, err error) error {
	var httpErr *adapter.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Errorf("failed to %s: %w", op, &APIError{StatusCode: httpErr.StatusCode, Body: httpErr.Body})
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
