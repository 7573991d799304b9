package notification

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds the known notification types keyed by ID
type Registry struct {
	mu      sync.RWMutex
	configs map[string]Config
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{configs: make(map[string]Config)}
}

// Register validates cfg and adds it, replacing any type with the same ID
func (r *Registry) Register(cfg Config) error {
	cfg, err := NewConfig(cfg)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[cfg.ID] = cfg
	return nil
}

// Get returns the config registered under id
func (r *Registry) Get(id string) (Config, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.configs[id]
	return cfg, ok
}

// List returns every registered config ordered by ID
func (r *Registry) List() []Config {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Config, 0, len(r.configs))
	for _, cfg := range r.configs {
		out = append(out, cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DefaultRegistry returns a registry with the built-in donation emails
func DefaultRegistry() (*Registry, error) {
	r := NewRegistry()

	newDonation := DefaultConfig("new-donation", "New Donation")
	newDonation.Description = "Sent to designated recipient(s) when a new donation is received or a pending donation is marked as complete."
	newDonation.NotificationStatus = StatusEnabled
	newDonation.HasRecipientField = true
	newDonation.DefaultEmailSubject = "New Donation - #{payment_id}"

	receipt := DefaultConfig("donation-receipt", "Donation Receipt")
	receipt.Description = "Sent to the donor when their donation completes or a pending donation is marked as complete."
	receipt.NotificationStatus = StatusEnabled
	receipt.RecipientGroupName = "Donor"
	receipt.DefaultEmailSubject = "Donation Receipt"

	newOffline := DefaultConfig("new-offline-donation", "New Offline Donation")
	newOffline.NotificationStatus = StatusEnabled
	newOffline.HasRecipientField = true
	newOffline.DefaultEmailSubject = "New Pending Donation"

	offlineInstruction := DefaultConfig("offline-donation-instruction", "Offline Donation Instructions")
	offlineInstruction.NotificationStatus = StatusEnabled
	offlineInstruction.RecipientGroupName = "Donor"
	offlineInstruction.DefaultEmailSubject = "{donation} - Offline Donation Instructions"

	newDonorRegister := DefaultConfig("new-donor-register", "New User Registration")
	newDonorRegister.NotificationStatus = StatusEnabled
	newDonorRegister.HasRecipientField = true
	newDonorRegister.FormMetaboxSetting = false
	newDonorRegister.DefaultEmailSubject = "[{site_title}] New User Registration"

	donorRegister := DefaultConfig("donor-register", "User Registration Information")
	donorRegister.NotificationStatus = StatusEnabled
	donorRegister.RecipientGroupName = "Donor"
	donorRegister.FormMetaboxSetting = false
	donorRegister.DefaultEmailSubject = "[{site_title}] Your username and password"

	emailAccess := DefaultConfig("email-access", "Email Access")
	emailAccess.NotificationStatusEditable = false
	emailAccess.RecipientGroupName = "Donor"
	emailAccess.FormMetaboxSetting = false
	emailAccess.HasPreviewHeader = false
	emailAccess.DefaultEmailSubject = "Please confirm your email for {site_url}"

	for _, cfg := range []Config{newDonation, receipt, newOffline, offlineInstruction, newDonorRegister, donorRegister, emailAccess} {
		if err := r.Register(cfg); err != nil {
			return nil, fmt.Errorf("failed to register %s: %w", cfg.ID, err)
		}
	}

	return r, nil
}
