package webhook

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/feral-file/give-gateway/internal/domain"
	"github.com/feral-file/give-gateway/internal/logger"
	"github.com/feral-file/give-gateway/internal/metrics"
	"github.com/feral-file/give-gateway/internal/providers/stripe"
	"github.com/feral-file/give-gateway/internal/settings"
)

// Registrar manages the Stripe webhook endpoint that points back at this site.
// The listener URL and the mode are fixed at construction.
type Registrar struct {
	client    stripe.Client
	options   *settings.Options
	mode      string
	connected bool
	url       string
}

// NewRegistrar creates a Registrar for siteURL in mode.
// connected registers the endpoint for connected-account events.
func NewRegistrar(client stripe.Client, options *settings.Options, siteURL string, mode string, connected bool) (*Registrar, error) {
	listenerURL, err := ListenerURL(siteURL)
	if err != nil {
		return nil, err
	}

	return &Registrar{
		client:    client,
		options:   options,
		mode:      mode,
		connected: connected,
		url:       listenerURL,
	}, nil
}

// ListenerURL appends the listener query argument to siteURL
func ListenerURL(siteURL string) (string, error) {
	u, err := url.Parse(siteURL)
	if err != nil {
		return "", fmt.Errorf("invalid site url %q: %w", siteURL, err)
	}
	q := u.Query()
	q.Set(domain.StripeListenerParam, domain.StripeListenerValue)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// URL returns the listener URL endpoints are registered with
func (r *Registrar) URL() string {
	return r.url
}

// Mode returns the Stripe mode this registrar writes settings for
func (r *Registrar) Mode() string {
	return r.mode
}

// Create registers an endpoint for every event type and persists its ID.
// Nothing is written when Stripe rejects the request.
func (r *Registrar) Create(ctx context.Context) (_ *stripe.WebhookEndpoint, err error) {
	defer observe("create", &err)

	endpoint, err := r.client.CreateWebhookEndpoint(ctx, stripe.WebhookEndpointParams{
		URL:           r.url,
		EnabledEvents: []string{EventTypeWildcard},
		Connect:       r.connected,
	})
	if err != nil {
		return nil, err
	}

	if err := r.SetDataToDB(ctx, endpoint.ID); err != nil {
		return nil, err
	}

	if endpoint.Secret != "" {
		if err := r.options.Set(ctx, SecretOptionName(r.mode), endpoint.Secret); err != nil {
			return nil, fmt.Errorf("failed to store webhook secret: %w", err)
		}
	}

	logger.InfoCtx(ctx, "Stripe webhook endpoint created",
		zap.String("id", endpoint.ID),
		zap.String("mode", r.mode),
		zap.String("url", r.url))

	return endpoint, nil
}

// Retrieve fetches a registered endpoint
func (r *Registrar) Retrieve(ctx context.Context, id string) (_ *stripe.WebhookEndpoint, err error) {
	defer observe("retrieve", &err)
	return r.client.RetrieveWebhookEndpoint(ctx, id)
}

// Delete removes an endpoint from Stripe.
// When it is the one recorded for the current mode, the stored id, flag and secret are cleared too.
func (r *Registrar) Delete(ctx context.Context, id string) (_ *stripe.WebhookEndpoint, err error) {
	defer observe("delete", &err)

	endpoint, err := r.client.DeleteWebhookEndpoint(ctx, id)
	if err != nil {
		return nil, err
	}

	stored, err := r.options.String(ctx, IDOptionName(r.mode), "")
	if err != nil {
		return nil, fmt.Errorf("failed to read webhook id: %w", err)
	}
	if stored == id {
		if err := r.options.Delete(ctx, ExistsOptionName(r.mode), IDOptionName(r.mode), SecretOptionName(r.mode)); err != nil {
			return nil, fmt.Errorf("failed to clear webhook settings: %w", err)
		}
	}

	logger.InfoCtx(ctx, "Stripe webhook endpoint deleted",
		zap.String("id", id),
		zap.String("mode", r.mode),
		zap.Bool("was_registered", stored == id))

	return endpoint, nil
}

// ListAll returns the first page of registered endpoints
func (r *Registrar) ListAll(ctx context.Context) (_ []stripe.WebhookEndpoint, err error) {
	defer observe("list_all", &err)

	list, err := r.client.ListWebhookEndpoints(ctx, listLimit)
	if err != nil {
		return nil, err
	}
	return list.Data, nil
}

// SetDataToDB records id as the endpoint registered for the current mode.
// An empty id is ignored.
func (r *Registrar) SetDataToDB(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}

	if err := r.options.Set(ctx, ExistsOptionName(r.mode), true); err != nil {
		return fmt.Errorf("failed to flag webhook as registered: %w", err)
	}
	if err := r.options.Set(ctx, IDOptionName(r.mode), id); err != nil {
		return fmt.Errorf("failed to store webhook id: %w", err)
	}
	return nil
}

// RecordError logs a registrar failure under the Stripe webhook category
func RecordError(ctx context.Context, err error) {
	logger.Record(ctx, "Stripe - Webhook Error", err.Error())
}

func observe(operation string, err *error) {
	metrics.WebhookOperations.WithLabelValues(operation, metrics.Outcome(*err)).Inc()
}
