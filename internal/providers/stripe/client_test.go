package stripe_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/give-gateway/internal/adapter"
	"github.com/feral-file/give-gateway/internal/mocks"
	"github.com/feral-file/give-gateway/internal/providers/stripe"
)

const apiURL = "https://api.stripe.com"

var expectedHeaders = map[string]string{
	"Authorization":  "Bearer sk_test_123",
	"Stripe-Version": "2024-06-20",
}

func TestStripeClient_CreateWebhookEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	client := stripe.NewClient(mockHTTPClient, apiURL, "sk_test_123")
	ctx := context.Background()

	mockHTTPClient.EXPECT().
		PostBytes(ctx, apiURL+"/v1/webhook_endpoints", expectedHeaders, "application/x-www-form-urlencoded",
			[]byte("connect=true&enabled_events%5B%5D=%2A&url=https%3A%2F%2Fdonate.example.org%3Fgive-listener%3Dstripe")).
		Return([]byte(`{
			"id": "we_123",
			"object": "webhook_endpoint",
			"url": "https://donate.example.org?give-listener=stripe",
			"enabled_events": ["*"],
			"status": "enabled",
			"livemode": false,
			"secret": "whsec_abc"
		}`), nil)

	endpoint, err := client.CreateWebhookEndpoint(ctx, stripe.WebhookEndpointParams{
		URL:           "https://donate.example.org?give-listener=stripe",
		EnabledEvents: []string{"*"},
		Connect:       true,
	})

	require.NoError(t, err)
	assert.Equal(t, "we_123", endpoint.ID)
	assert.Equal(t, []string{"*"}, endpoint.EnabledEvents)
	assert.Equal(t, "whsec_abc", endpoint.Secret)
	assert.False(t, endpoint.Livemode)
}

func TestStripeClient_RetrieveWebhookEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	client := stripe.NewClient(mockHTTPClient, apiURL, "sk_test_123")
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockHTTPClient.EXPECT().
			GetBytes(ctx, apiURL+"/v1/webhook_endpoints/we_123", expectedHeaders).
			Return([]byte(`{"id":"we_123","status":"disabled"}`), nil)

		endpoint, err := client.RetrieveWebhookEndpoint(ctx, "we_123")
		require.NoError(t, err)
		assert.Equal(t, "disabled", endpoint.Status)
	})

	t.Run("stripe error body", func(t *testing.T) {
		mockHTTPClient.EXPECT().
			GetBytes(ctx, apiURL+"/v1/webhook_endpoints/we_missing", expectedHeaders).
			Return(nil, &adapter.HTTPError{
				StatusCode: http.StatusNotFound,
				Body:       []byte(`{"error":{"type":"invalid_request_error","code":"resource_missing","message":"No such webhook endpoint: 'we_missing'","param":"id"}}`),
			})

		_, err := client.RetrieveWebhookEndpoint(ctx, "we_missing")
		require.Error(t, err)

		var stripeErr *stripe.Error
		require.True(t, errors.As(err, &stripeErr))
		assert.Equal(t, http.StatusNotFound, stripeErr.HTTPStatusCode)
		assert.Equal(t, "resource_missing", stripeErr.Code)
		assert.Equal(t, "id", stripeErr.Param)
	})

	t.Run("transport error", func(t *testing.T) {
		mockHTTPClient.EXPECT().
			GetBytes(ctx, apiURL+"/v1/webhook_endpoints/we_123", expectedHeaders).
			Return(nil, errors.New("connection reset"))

		_, err := client.RetrieveWebhookEndpoint(ctx, "we_123")
		require.Error(t, err)
		var stripeErr *stripe.Error
		assert.False(t, errors.As(err, &stripeErr))
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestStripeClient_ListWebhookEndpoints(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	client := stripe.NewClient(mockHTTPClient, apiURL, "sk_test_123")
	ctx := context.Background()

	mockHTTPClient.EXPECT().
		GetBytes(ctx, apiURL+"/v1/webhook_endpoints?limit=20", expectedHeaders).
		Return([]byte(`{"object":"list","data":[{"id":"we_1"},{"id":"we_2"}],"has_more":true}`), nil)

	list, err := client.ListWebhookEndpoints(ctx, 20)
	require.NoError(t, err)
	require.Len(t, list.Data, 2)
	assert.Equal(t, "we_2", list.Data[1].ID)
	assert.True(t, list.HasMore)
}

func TestStripeClient_DeleteWebhookEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	client := stripe.NewClient(mockHTTPClient, apiURL, "sk_test_123")
	ctx := context.Background()

	mockHTTPClient.EXPECT().
		Delete(ctx, apiURL+"/v1/webhook_endpoints/we_1", expectedHeaders).
		Return([]byte(`{"id":"we_1","object":"webhook_endpoint","deleted":true}`), nil)

	endpoint, err := client.DeleteWebhookEndpoint(ctx, "we_1")
	require.NoError(t, err)
	assert.True(t, endpoint.Deleted)
}

func TestStripeClient_NoSecretKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := stripe.NewClient(mocks.NewMockHTTPClient(ctrl), apiURL, "")

	_, err := client.ListWebhookEndpoints(context.Background(), 20)
	assert.ErrorIs(t, err, stripe.ErrNoSecretKey)
}
