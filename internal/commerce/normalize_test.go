package commerce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCamelCaseKeys(t *testing.T) {
	in := map[string]any{
		"access_token": "A",
		"expires_in":   float64(100),
		"scope":        "openid",
		"nested_list": []any{
			map[string]any{"merchant_id_in_paypal": "PP"},
			"plain_value",
		},
		"__leading": true,
	}

	assert.Equal(t, map[string]any{
		"accessToken": "A",
		"expiresIn":   float64(100),
		"scope":       "openid",
		"nestedList": []any{
			map[string]any{"merchantIdInPaypal": "PP"},
			"plain_value",
		},
		"leading": true,
	}, CamelCaseKeys(in))

	assert.Equal(t, "scalar", CamelCaseKeys("scalar"))
	assert.Equal(t, "appId", camelCase("App_id"))
}

func TestRefreshDelay(t *testing.T) {
	assert.Equal(t, 32400*time.Second-30*time.Minute, RefreshDelay(32400))
	assert.Equal(t, time.Minute, RefreshDelay(1800))
	assert.Equal(t, time.Minute, RefreshDelay(0))
	assert.Equal(t, time.Minute, RefreshDelay(1860))
	assert.Equal(t, 2*time.Minute, RefreshDelay(1920))
}
