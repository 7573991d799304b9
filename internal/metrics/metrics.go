package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "give_gateway_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "give_gateway_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	CommerceOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "give_gateway_commerce_operations_total",
			Help: "Total number of PayPal Commerce operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	WebhookOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "give_gateway_stripe_webhook_operations_total",
			Help: "Total number of Stripe webhook registrar operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	StripeEventsReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "give_gateway_stripe_events_received_total",
			Help: "Total number of Stripe events accepted by the listener",
		},
		[]string{"event_type"},
	)

	TokenRefreshScheduled = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "give_gateway_paypal_token_refresh_scheduled",
			Help: "1 while a PayPal access token refresh is pending",
		},
	)
)

// Outcome maps an error to the outcome label
func Outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
