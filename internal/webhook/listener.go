package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/give-gateway/internal/adapter"
	"github.com/feral-file/give-gateway/internal/logger"
	"github.com/feral-file/give-gateway/internal/metrics"
	"github.com/feral-file/give-gateway/internal/settings"
)

var ErrNoWebhookSecret = errors.New("no webhook secret stored for this mode")

// Listener verifies and decodes deliveries to the Stripe listener URL
type Listener struct {
	options   *settings.Options
	mode      string
	clock     adapter.Clock
	tolerance time.Duration
}

// NewListener creates a Listener checking signatures against the secret stored for mode
func NewListener(options *settings.Options, mode string, clock adapter.Clock) *Listener {
	return &Listener{
		options:   options,
		mode:      mode,
		clock:     clock,
		tolerance: DefaultTolerance,
	}
}

// Handle verifies payload against the signature header and returns the decoded event
func (l *Listener) Handle(ctx context.Context, payload []byte, signatureHeader string) (*Event, error) {
	secret, err := l.options.String(ctx, SecretOptionName(l.mode), "")
	if err != nil {
		return nil, fmt.Errorf("failed to read webhook secret: %w", err)
	}
	if secret == "" {
		return nil, ErrNoWebhookSecret
	}

	if err := VerifySignature(payload, signatureHeader, secret, l.tolerance, l.clock.Now()); err != nil {
		return nil, err
	}

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to decode Stripe event: %w", err)
	}

	correlationID := ulid.MustNewDefault(l.clock.Now()).String()
	logger.InfoCtx(ctx, "Stripe event received",
		zap.String("correlation_id", correlationID),
		zap.String("event_id", event.ID),
		zap.String("event_type", event.Type),
		zap.Bool("livemode", event.Livemode))
	metrics.StripeEventsReceived.WithLabelValues(event.Type).Inc()

	return &event, nil
}
