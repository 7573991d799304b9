package commerce

import (
	"context"
	"fmt"

	"github.com/feral-file/give-gateway/internal/settings"
)

// MerchantDetail is the connected seller account
type MerchantDetail struct {
	MerchantID             string         `json:"merchantId"`
	MerchantIDInPayPal     string         `json:"merchantIdInPayPal"`
	ClientID               string         `json:"clientId" validate:"required"`
	ClientSecret           string         `json:"clientSecret" validate:"required"`
	AccessToken            string         `json:"accessToken"`
	AccountIsReady         bool           `json:"accountIsReady"`
	SupportsCustomPayments bool           `json:"supportsCustomPayments"`
	AccountCountry         string         `json:"accountCountry"`
	TokenDetails           map[string]any `json:"tokenDetails,omitempty"`
}

// MerchantUpdate is a seller account save. WebhookID is recorded when set.
// A nil AccountErrors leaves the recorded errors alone and an empty one clears them.
type MerchantUpdate struct {
	MerchantDetail
	WebhookID     string   `json:"webhookId,omitempty"`
	AccountErrors []string `json:"accountErrors"`
}

// MerchantRepository stores the seller account, its onboarding errors and the client token for one mode
type MerchantRepository struct {
	options *settings.Options
	mode    string
}

// NewMerchantRepository creates a MerchantRepository for mode
func NewMerchantRepository(options *settings.Options, mode string) *MerchantRepository {
	return &MerchantRepository{options: options, mode: mode}
}

// Get returns the stored merchant and whether one exists
func (r *MerchantRepository) Get(ctx context.Context) (*MerchantDetail, bool, error) {
	var merchant MerchantDetail
	found, err := r.options.Decode(ctx, accountOptionName(r.mode), &merchant)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load merchant details: %w", err)
	}
	if !found {
		return nil, false, nil
	}
	return &merchant, true, nil
}

// Save stores merchant
func (r *MerchantRepository) Save(ctx context.Context, merchant MerchantDetail) error {
	return r.options.Set(ctx, accountOptionName(r.mode), merchant)
}

// Delete removes the merchant
func (r *MerchantRepository) Delete(ctx context.Context) error {
	return r.options.Delete(ctx, accountOptionName(r.mode))
}

// AccountErrors returns the onboarding errors recorded for the merchant
func (r *MerchantRepository) AccountErrors(ctx context.Context) ([]string, error) {
	var errs []string
	if _, err := r.options.Decode(ctx, accountErrorsOptionName(r.mode), &errs); err != nil {
		return nil, fmt.Errorf("failed to load account errors: %w", err)
	}
	return errs, nil
}

// SaveAccountErrors replaces the recorded onboarding errors
func (r *MerchantRepository) SaveAccountErrors(ctx context.Context, errs []string) error {
	return r.options.Set(ctx, accountErrorsOptionName(r.mode), errs)
}

// DeleteAccountErrors removes the recorded onboarding errors
func (r *MerchantRepository) DeleteAccountErrors(ctx context.Context) error {
	return r.options.Delete(ctx, accountErrorsOptionName(r.mode))
}

// DeleteClientToken removes the client token left by card field checkouts
func (r *MerchantRepository) DeleteClientToken(ctx context.Context) error {
	return r.options.Delete(ctx, clientTokenOptionName(r.mode))
}

// WebhookRepository stores the PayPal webhook registration for one mode
type WebhookRepository struct {
	options *settings.Options
	mode    string
}

// NewWebhookRepository creates a WebhookRepository for mode
func NewWebhookRepository(options *settings.Options, mode string) *WebhookRepository {
	return &WebhookRepository{options: options, mode: mode}
}

// WebhookID returns the registered webhook id, empty when none
func (r *WebhookRepository) WebhookID(ctx context.Context) (string, error) {
	return r.options.String(ctx, webhookIDOptionName(r.mode), "")
}

// SaveWebhookID records the registered webhook id
func (r *WebhookRepository) SaveWebhookID(ctx context.Context, id string) error {
	return r.options.Set(ctx, webhookIDOptionName(r.mode), id)
}

// DeleteWebhookID forgets the registered webhook id
func (r *WebhookRepository) DeleteWebhookID(ctx context.Context) error {
	return r.options.Delete(ctx, webhookIDOptionName(r.mode))
}
