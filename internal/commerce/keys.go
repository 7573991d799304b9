package commerce

import "fmt"

const (
	// AccessTokenOptionName holds the seller access token record returned by onboarding
	AccessTokenOptionName = "temp_give_paypal_commerce_seller_access_token"

	// PartnerLinkOptionName holds the partner-link response, including the seller nonce
	PartnerLinkOptionName = "temp_give_paypal_commerce_partner_link"

	// RefreshTokenJobName is the scheduler name of the access token refresh
	RefreshTokenJobName = "give_paypal_commerce_refresh_token"

	baseCountryOptionName = "base_country"
	currencyOptionName    = "currency"

	partnerReturnPath = "edit.php?post_type=give_forms&page=give-settings&tab=gateways&section=paypal&group=paypal-commerce"
)

func accountOptionName(mode string) string {
	return fmt.Sprintf("give_paypal_commerce_%s_account", mode)
}

func accountErrorsOptionName(mode string) string {
	return fmt.Sprintf("give_paypal_commerce_%s_account_errors", mode)
}

func clientTokenOptionName(mode string) string {
	return fmt.Sprintf("give_paypal_commerce_%s_client_token", mode)
}

func webhookIDOptionName(mode string) string {
	return fmt.Sprintf("give_paypal_commerce_%s_webhook_id", mode)
}
