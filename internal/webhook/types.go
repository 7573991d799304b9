package webhook

import (
	"encoding/json"
	"fmt"
)

const (
	// SignatureHeader carries the Stripe signature of a webhook delivery
	SignatureHeader = "Stripe-Signature"

	// EventTypeWildcard subscribes an endpoint to every event type
	EventTypeWildcard = "*"

	listLimit = 20
)

// Event is the envelope Stripe posts to the listener
type Event struct {
	ID       string `json:"id"`
	Object   string `json:"object"`
	Type     string `json:"type"`
	Created  int64  `json:"created"`
	Livemode bool   `json:"livemode"`
	// Account is set for events coming from a connected account
	Account string          `json:"account,omitempty"`
	Data    json.RawMessage `json:"data"`
}

// ExistsOptionName is the setting flagging that an endpoint was registered in mode
func ExistsOptionName(mode string) string {
	return fmt.Sprintf("give_stripe_is_%s_webhook_exists", mode)
}

// IDOptionName is the setting holding the endpoint ID registered in mode
func IDOptionName(mode string) string {
	return fmt.Sprintf("give_stripe_%s_webhook_id", mode)
}

// SecretOptionName is the setting holding the signing secret of the endpoint registered in mode
func SecretOptionName(mode string) string {
	return fmt.Sprintf("give_stripe_%s_webhook_secret", mode)
}
