package domain

const (
	// CapabilityManageSettings is required for every admin-class action
	CapabilityManageSettings = "manage_give_settings"

	// StripeListenerParam and StripeListenerValue mark inbound Stripe webhook calls: {site}?give-listener=stripe
	StripeListenerParam = "give-listener"
	StripeListenerValue = "stripe"

	// Preview sentinels carried in the give_action request parameter
	GiveActionPreviewEmail     = "preview_email"
	GiveActionSendPreviewEmail = "send_preview_email"
)
