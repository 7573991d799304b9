package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/feral-file/give-gateway/internal/adapter"
)

var ErrNoSecretKey = errors.New("no Stripe secret key configured")

// WebhookEndpoint is a Stripe webhook endpoint object
type WebhookEndpoint struct {
	ID            string   `json:"id"`
	Object        string   `json:"object"`
	URL           string   `json:"url"`
	EnabledEvents []string `json:"enabled_events"`
	Status        string   `json:"status"`
	Livemode      bool     `json:"livemode"`
	Application   *string  `json:"application"`
	// Secret is only returned when the endpoint is created
	Secret  string `json:"secret,omitempty"`
	Created int64  `json:"created"`
	Deleted bool   `json:"deleted,omitempty"`
}

// WebhookEndpointList is one page of webhook endpoints
type WebhookEndpointList struct {
	Object  string            `json:"object"`
	Data    []WebhookEndpoint `json:"data"`
	HasMore bool              `json:"has_more"`
	URL     string            `json:"url"`
}

// WebhookEndpointParams are the fields sent when creating an endpoint
type WebhookEndpointParams struct {
	URL           string
	EnabledEvents []string
	// Connect subscribes to events from connected accounts instead of the platform account
	Connect bool
}

// Error is the error object Stripe returns for non-2xx responses
type Error struct {
	HTTPStatusCode int    `json:"-"`
	Type           string `json:"type"`
	Code           string `json:"code,omitempty"`
	Message        string `json:"message"`
	Param          string `json:"param,omitempty"`
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("stripe %s (%s): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("stripe %s: %s", e.Type, e.Message)
}

// Client defines the Stripe operations used for webhook management
//
//go:generate mockgen -source=client.go -destination=../../mocks/stripe_client.go -package=mocks -mock_names=Client=MockStripeClient
type Client interface {
	// CreateWebhookEndpoint registers a new webhook endpoint
	CreateWebhookEndpoint(ctx context.Context, params WebhookEndpointParams) (*WebhookEndpoint, error)

	// RetrieveWebhookEndpoint fetches a webhook endpoint by ID
	RetrieveWebhookEndpoint(ctx context.Context, id string) (*WebhookEndpoint, error)

	// ListWebhookEndpoints returns up to limit webhook endpoints
	ListWebhookEndpoints(ctx context.Context, limit int) (*WebhookEndpointList, error)

	// DeleteWebhookEndpoint removes a webhook endpoint
	DeleteWebhookEndpoint(ctx context.Context, id string) (*WebhookEndpoint, error)
}

// StripeClient implements Client over the Stripe REST API
type StripeClient struct {
	httpClient adapter.HTTPClient
	apiURL     string
	secretKey  string
}

// NewClient creates a new Stripe client
func NewClient(httpClient adapter.HTTPClient, apiURL string, secretKey string) Client {
	return &StripeClient{
		httpClient: httpClient,
		apiURL:     apiURL,
		secretKey:  secretKey,
	}
}

// CreateWebhookEndpoint registers a new webhook endpoint
func (c *StripeClient) CreateWebhookEndpoint(ctx context.Context, params WebhookEndpointParams) (*WebhookEndpoint, error) {
	if c.secretKey == "" {
		return nil, ErrNoSecretKey
	}

	form := url.Values{}
	form.Set("url", params.URL)
	for _, event := range params.EnabledEvents {
		form.Add("enabled_events[]", event)
	}
	if params.Connect {
		form.Set("connect", "true")
	}

	respBody, err := c.httpClient.PostBytes(ctx, c.apiURL+"/v1/webhook_endpoints", c.headers(),
		"application/x-www-form-urlencoded", []byte(form.Encode()))
	if err != nil {
		return nil, c.wrapError("create webhook endpoint", err)
	}

	var endpoint WebhookEndpoint
	if err := json.Unmarshal(respBody, &endpoint); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Stripe webhook endpoint: %w", err)
	}
	return &endpoint, nil
}

// RetrieveWebhookEndpoint fetches a webhook endpoint by ID
func (c *StripeClient) RetrieveWebhookEndpoint(ctx context.Context, id string) (*WebhookEndpoint, error) {
	if c.secretKey == "" {
		return nil, ErrNoSecretKey
	}

	respBody, err := c.httpClient.GetBytes(ctx, c.apiURL+"/v1/webhook_endpoints/"+url.PathEscape(id), c.headers())
	if err != nil {
		return nil, c.wrapError("retrieve webhook endpoint", err)
	}

	var endpoint WebhookEndpoint
	if err := json.Unmarshal(respBody, &endpoint); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Stripe webhook endpoint: %w", err)
	}
	return &endpoint, nil
}

// ListWebhookEndpoints returns up to limit webhook endpoints
func (c *StripeClient) ListWebhookEndpoints(ctx context.Context, limit int) (*WebhookEndpointList, error) {
	if c.secretKey == "" {
		return nil, ErrNoSecretKey
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	respBody, err := c.httpClient.GetBytes(ctx, c.apiURL+"/v1/webhook_endpoints?"+query.Encode(), c.headers())
	if err != nil {
		return nil, c.wrapError("list webhook endpoints", err)
	}

	var list WebhookEndpointList
	if err := json.Unmarshal(respBody, &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Stripe webhook endpoint list: %w", err)
	}
	return &list, nil
}

// DeleteWebhookEndpoint removes a webhook endpoint
func (c *StripeClient) DeleteWebhookEndpoint(ctx context.Context, id string) (*WebhookEndpoint, error) {
	if c.secretKey == "" {
		return nil, ErrNoSecretKey
	}

	respBody, err := c.httpClient.Delete(ctx, c.apiURL+"/v1/webhook_endpoints/"+url.PathEscape(id), c.headers())
	if err != nil {
		return nil, c.wrapError("delete webhook endpoint", err)
	}

	var endpoint WebhookEndpoint
	if err := json.Unmarshal(respBody, &endpoint); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Stripe webhook endpoint: %w", err)
	}
	return &endpoint, nil
}

func (c *StripeClient) headers() map[string]string {
	return map[string]string{
		"Authorization":  "Bearer " + c.secretKey,
		"Stripe-Version": "2024-06-20",
	}
}

// wrapError turns a non-2xx response into *Error when the body carries one
func (c *StripeClient) wrapError(op string, err error) error {
	var httpErr *adapter.HTTPError
	if errors.As(err, &httpErr) {
		var body struct {
			Error *Error `json:"error"`
		}
		if jsonErr := json.Unmarshal(httpErr.Body, &body); jsonErr == nil && body.Error != nil {
			body.Error.HTTPStatusCode = httpErr.StatusCode
			return fmt.Errorf("failed to %s: %w", op, body.Error)
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
