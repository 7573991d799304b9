package commerce_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/give-gateway/internal/commerce"
	"github.com/feral-file/give-gateway/internal/domain"
	"github.com/feral-file/give-gateway/internal/mocks"
	"github.com/feral-file/give-gateway/internal/providers/paypal"
	"github.com/feral-file/give-gateway/internal/settings"
)

const (
	accountKey      = "give_paypal_commerce_sandbox_account"
	accountErrsKey  = "give_paypal_commerce_sandbox_account_errors"
	clientTokenKey  = "give_paypal_commerce_sandbox_client_token"
	webhookIDKey    = "give_paypal_commerce_sandbox_webhook_id"
	merchantPayload = `{"merchantId":"m-1","merchantIdInPayPal":"PP-1","clientId":"cid","clientSecret":"csecret","accessToken":"TOKEN","accountIsReady":true}`
)

type fixture struct {
	router    *commerce.Router
	client    *mocks.MockPayPalClient
	store     *mocks.MockStore
	scheduler *mocks.MockScheduler
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	f := fixture{
		client:    mocks.NewMockPayPalClient(ctrl),
		store:     mocks.NewMockStore(ctrl),
		scheduler: mocks.NewMockScheduler(ctrl),
	}
	f.router = commerce.NewRouter(f.client, settings.NewOptions(f.store), f.scheduler, commerce.Config{
		Mode:        paypal.ModeSandbox,
		AdminURL:    "https://donate.example.org/wp-admin/",
		BaseCountry: "US",
		Currency:    "USD",
	})
	return f
}

// jsonEq matches a json.RawMessage argument by its decoded value
func jsonEq(expected string) gomock.Matcher {
	return jsonMatcher{expected: expected}
}

type jsonMatcher struct {
	expected string
}

func (m jsonMatcher) Matches(x interface{}) bool {
	raw, ok := x.(json.RawMessage)
	if !ok {
		return false
	}
	var got, want any
	if json.Unmarshal(raw, &got) != nil || json.Unmarshal([]byte(m.expected), &want) != nil {
		return false
	}
	return assert.ObjectsAreEqual(want, got)
}

func (m jsonMatcher) String() string {
	return "is JSON equal to " + m.expected
}

func TestRouter_OnBoardedUser(t *testing.T) {
	ctx := context.Background()

	t.Run("stores camelCased token and schedules refresh", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().GetSetting(ctx, commerce.PartnerLinkOptionName).
			Return(json.RawMessage(`{"nonce":"NONCE","partnerLink":"https://paypal.com/link"}`), true, nil)
		f.client.EXPECT().GenerateAccessToken(ctx, "SHARED", "AUTH", "NONCE").
			Return([]byte(`{"access_token":"A21","token_type":"Bearer","expires_in":32400,"app_id":"APP"}`), nil)
		f.store.EXPECT().SetSetting(ctx, commerce.AccessTokenOptionName,
			jsonEq(`{"accessToken":"A21","tokenType":"Bearer","expiresIn":32400,"appId":"APP"}`)).Return(nil)
		f.scheduler.EXPECT().Schedule(commerce.RefreshTokenJobName, 32400*time.Second-30*time.Minute, gomock.Any()).Return(nil)

		require.NoError(t, f.router.OnBoardedUser(ctx, "SHARED", "AUTH"))
	})

	t.Run("missing partner link uses empty nonce", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().GetSetting(ctx, commerce.PartnerLinkOptionName).Return(nil, false, nil)
		f.client.EXPECT().GenerateAccessToken(ctx, "SHARED", "AUTH", "").
			Return([]byte(`{"access_token":"A21","expires_in":600}`), nil)
		f.store.EXPECT().SetSetting(ctx, commerce.AccessTokenOptionName, gomock.Any()).Return(nil)
		f.scheduler.EXPECT().Schedule(commerce.RefreshTokenJobName, time.Minute, gomock.Any()).Return(nil)

		require.NoError(t, f.router.OnBoardedUser(ctx, "SHARED", "AUTH"))
	})

	t.Run("empty response writes nothing and schedules nothing", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().GetSetting(ctx, commerce.PartnerLinkOptionName).Return(json.RawMessage(`{"nonce":"NONCE"}`), true, nil)
		f.client.EXPECT().GenerateAccessToken(ctx, "SHARED", "AUTH", "NONCE").Return([]byte(""), nil)

		err := f.router.OnBoardedUser(ctx, "SHARED", "AUTH")
		assert.ErrorIs(t, err, domain.ErrEmptyResponse)
	})

	t.Run("remote failure", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().GetSetting(ctx, commerce.PartnerLinkOptionName).Return(nil, false, nil)
		f.client.EXPECT().GenerateAccessToken(ctx, "SHARED", "AUTH", "").
			Return(nil, &paypal.APIError{StatusCode: http.StatusUnauthorized, Body: []byte(`{"error":"invalid_client"}`)})

		err := f.router.OnBoardedUser(ctx, "SHARED", "AUTH")
		var apiErr *paypal.APIError
		assert.True(t, errors.As(err, &apiErr))
	})
}

func TestRouter_GetPartnerURL(t *testing.T) {
	ctx := context.Background()
	returnURL := "https://donate.example.org/wp-admin/edit.php?post_type=give_forms&page=give-settings&tab=gateways&section=paypal&group=paypal-commerce"

	t.Run("stores and returns the response", func(t *testing.T) {
		f := newFixture(t)
		body := `{"nonce":"NONCE","partnerLink":"https://paypal.com/link"}`

		f.store.EXPECT().GetSetting(ctx, "base_country").Return(json.RawMessage(`"CA"`), true, nil)
		f.client.EXPECT().PartnerLink(ctx, returnURL, "CA").Return([]byte(body), nil)
		f.store.EXPECT().SetSetting(ctx, commerce.PartnerLinkOptionName, json.RawMessage(body)).Return(nil)

		data, err := f.router.GetPartnerURL(ctx)
		require.NoError(t, err)
		assert.JSONEq(t, body, string(data))
	})

	t.Run("base country falls back to config", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().GetSetting(ctx, "base_country").Return(nil, false, nil)
		f.client.EXPECT().PartnerLink(ctx, returnURL, "US").Return([]byte(`{}`), nil)
		f.store.EXPECT().SetSetting(ctx, commerce.PartnerLinkOptionName, json.RawMessage(`{}`)).Return(nil)

		_, err := f.router.GetPartnerURL(ctx)
		require.NoError(t, err)
	})

	t.Run("empty response", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().GetSetting(ctx, "base_country").Return(nil, false, nil)
		f.client.EXPECT().PartnerLink(ctx, returnURL, "US").Return([]byte("  "), nil)

		_, err := f.router.GetPartnerURL(ctx)
		assert.ErrorIs(t, err, domain.ErrEmptyResponse)
	})
}

func TestRouter_RemovePayPalAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("no webhook id skips the remote delete", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().GetSetting(ctx, webhookIDKey).Return(nil, false, nil)
		f.store.EXPECT().DeleteSettings(ctx, accountKey).Return(nil)
		f.store.EXPECT().DeleteSettings(ctx, accountErrsKey).Return(nil)
		f.store.EXPECT().DeleteSettings(ctx, clientTokenKey).Return(nil)
		f.scheduler.EXPECT().Cancel(commerce.RefreshTokenJobName)

		result, err := f.router.RemovePayPalAccount(ctx)
		require.NoError(t, err)
		assert.False(t, result.WebhookDeleted)
		assert.Empty(t, result.WebhookError)
	})

	t.Run("webhook deleted remotely and locally", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().GetSetting(ctx, webhookIDKey).Return(json.RawMessage(`"WH-1"`), true, nil)
		f.store.EXPECT().GetSetting(ctx, accountKey).Return(json.RawMessage(merchantPayload), true, nil)
		f.client.EXPECT().DeleteWebhook(ctx, "TOKEN", "WH-1").Return(nil)
		f.store.EXPECT().DeleteSettings(ctx, webhookIDKey).Return(nil)
		f.store.EXPECT().DeleteSettings(ctx, accountKey).Return(nil)
		f.store.EXPECT().DeleteSettings(ctx, accountErrsKey).Return(nil)
		f.store.EXPECT().DeleteSettings(ctx, clientTokenKey).Return(nil)
		f.scheduler.EXPECT().Cancel(commerce.RefreshTokenJobName)

		result, err := f.router.RemovePayPalAccount(ctx)
		require.NoError(t, err)
		assert.True(t, result.WebhookDeleted)
	})

	t.Run("remote delete failure keeps the id and continues", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().GetSetting(ctx, webhookIDKey).Return(json.RawMessage(`"WH-1"`), true, nil)
		f.store.EXPECT().GetSetting(ctx, accountKey).Return(json.RawMessage(merchantPayload), true, nil)
		f.client.EXPECT().DeleteWebhook(ctx, "TOKEN", "WH-1").
			Return(&paypal.APIError{StatusCode: http.StatusInternalServerError, Body: []byte(`{"name":"INTERNAL_SERVICE_ERROR"}`)})
		f.store.EXPECT().DeleteSettings(ctx, accountKey).Return(nil)
		f.store.EXPECT().DeleteSettings(ctx, accountErrsKey).Return(nil)
		f.store.EXPECT().DeleteSettings(ctx, clientTokenKey).Return(nil)
		f.scheduler.EXPECT().Cancel(commerce.RefreshTokenJobName)

		result, err := f.router.RemovePayPalAccount(ctx)
		require.NoError(t, err)
		assert.False(t, result.WebhookDeleted)
		assert.Contains(t, result.WebhookError, "INTERNAL_SERVICE_ERROR")
	})

	t.Run("local cleanup continues past a failed step", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().GetSetting(ctx, webhookIDKey).Return(nil, false, nil)
		f.store.EXPECT().DeleteSettings(ctx, accountKey).Return(errors.New("db down"))
		f.store.EXPECT().DeleteSettings(ctx, accountErrsKey).Return(nil)
		f.store.EXPECT().DeleteSettings(ctx, clientTokenKey).Return(nil)
		f.scheduler.EXPECT().Cancel(commerce.RefreshTokenJobName)

		_, err := f.router.RemovePayPalAccount(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db down")
	})
}

func validOrderForm() commerce.OrderForm {
	return commerce.OrderForm{
		FormID:    12,
		Amount:    "1,250.00",
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.org",
	}
}

func TestRouter_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().GetSetting(ctx, accountKey).Return(json.RawMessage(merchantPayload), true, nil)
		f.store.EXPECT().GetSetting(ctx, "currency").Return(nil, false, nil)
		f.client.EXPECT().CreateOrder(ctx, "TOKEN", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, order paypal.OrderRequest) (string, error) {
				assert.Equal(t, int64(12), order.FormID)
				assert.True(t, decimal.RequireFromString("1250").Equal(order.Amount), order.Amount.String())
				assert.Equal(t, "USD", order.Currency)
				assert.Equal(t, "PP-1", order.MerchantID)
				assert.Equal(t, paypal.Payer{FirstName: "Jane", LastName: "Doe", Email: "jane@example.org"}, order.Payer)
				return "ORDER-1", nil
			})

		id, err := f.router.CreateOrder(ctx, validOrderForm())
		require.NoError(t, err)
		assert.Equal(t, "ORDER-1", id)
	})

	t.Run("remote fault exposes the decoded body", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().GetSetting(ctx, accountKey).Return(json.RawMessage(merchantPayload), true, nil)
		f.store.EXPECT().GetSetting(ctx, "currency").Return(json.RawMessage(`"EUR"`), true, nil)
		f.client.EXPECT().CreateOrder(ctx, "TOKEN", gomock.Any()).
			Return("", &paypal.APIError{StatusCode: http.StatusUnprocessableEntity, Body: []byte(`{"code":"X"}`)})

		_, err := f.router.CreateOrder(ctx, validOrderForm())
		var orderErr *commerce.OrderError
		require.True(t, errors.As(err, &orderErr))
		assert.Equal(t, map[string]any{"code": "X"}, orderErr.Body)
	})

	t.Run("invalid form makes no calls", func(t *testing.T) {
		f := newFixture(t)

		for _, form := range []commerce.OrderForm{
			{FormID: 0, Amount: "10"},
			{FormID: 12, Amount: ""},
			{FormID: 12, Amount: "abc"},
			{FormID: 12, Amount: "-5"},
			{FormID: 12, Amount: "10", Email: "not-an-email"},
		} {
			_, err := f.router.CreateOrder(ctx, form)
			assert.ErrorIs(t, err, commerce.ErrInvalidOrder, "%+v", form)
		}
	})

	t.Run("merchant not connected", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().GetSetting(ctx, accountKey).Return(nil, false, nil)

		_, err := f.router.CreateOrder(ctx, validOrderForm())
		assert.ErrorIs(t, err, commerce.ErrMerchantNotConnected)
	})
}

func TestRouter_ApproveOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().GetSetting(ctx, accountKey).Return(json.RawMessage(merchantPayload), true, nil)
		f.client.EXPECT().CaptureOrder(ctx, "TOKEN", "ORDER-1").Return(map[string]any{"status": "COMPLETED"}, nil)

		order, err := f.router.ApproveOrder(ctx, "ORDER-1")
		require.NoError(t, err)
		assert.Equal(t, "COMPLETED", order["status"])
	})

	t.Run("capture fault", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().GetSetting(ctx, accountKey).Return(json.RawMessage(merchantPayload), true, nil)
		f.client.EXPECT().CaptureOrder(ctx, "TOKEN", "ORDER-1").Return(nil, errors.New("timeout"))

		_, err := f.router.ApproveOrder(ctx, "ORDER-1")
		var orderErr *commerce.OrderError
		require.True(t, errors.As(err, &orderErr))
		assert.Equal(t, "timeout", orderErr.Body)
	})

	t.Run("empty order id", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.router.ApproveOrder(ctx, " ")
		assert.ErrorIs(t, err, commerce.ErrInvalidOrder)
	})
}

func TestRouter_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the new token and reschedules", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().GetSetting(ctx, accountKey).Return(json.RawMessage(merchantPayload), true, nil)
		f.client.EXPECT().RefreshAccessToken(ctx, "cid", "csecret").
			Return([]byte(`{"access_token":"NEW","expires_in":7200}`), nil)
		f.store.EXPECT().SetSetting(ctx, accountKey, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value json.RawMessage) error {
				var merchant commerce.MerchantDetail
				require.NoError(t, json.Unmarshal(value, &merchant))
				assert.Equal(t, "NEW", merchant.AccessToken)
				assert.Equal(t, "cid", merchant.ClientID)
				return nil
			})
		f.store.EXPECT().SetSetting(ctx, commerce.AccessTokenOptionName, jsonEq(`{"accessToken":"NEW","expiresIn":7200}`)).Return(nil)
		f.scheduler.EXPECT().Schedule(commerce.RefreshTokenJobName, 90*time.Minute, gomock.Any()).Return(nil)

		f.router.RefreshToken(ctx)
	})

	t.Run("failure retries later", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().GetSetting(ctx, accountKey).Return(json.RawMessage(merchantPayload), true, nil)
		f.client.EXPECT().RefreshAccessToken(ctx, "cid", "csecret").Return(nil, errors.New("timeout"))
		f.scheduler.EXPECT().Schedule(commerce.RefreshTokenJobName, 15*time.Minute, gomock.Any()).Return(nil)

		f.router.RefreshToken(ctx)
	})

	t.Run("disconnected merchant stops refreshing", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().GetSetting(ctx, accountKey).Return(nil, false, nil)

		f.router.RefreshToken(ctx)
	})
}

func TestRouter_SaveMerchantDetailsAndStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	merchant := commerce.MerchantDetail{
		MerchantID:         "m-1",
		MerchantIDInPayPal: "PP-1",
		ClientID:           "cid",
		ClientSecret:       "csecret",
		AccessToken:        "TOKEN",
		AccountIsReady:     true,
		TokenDetails:       map[string]any{"expiresIn": 3600},
	}

	f.store.EXPECT().SetSetting(ctx, accountKey, gomock.Any()).Return(nil)
	f.scheduler.EXPECT().Schedule(commerce.RefreshTokenJobName, 30*time.Minute, gomock.Any()).Return(nil)
	require.NoError(t, f.router.SaveMerchantDetails(ctx, commerce.MerchantUpdate{MerchantDetail: merchant}))

	assert.Error(t, f.router.SaveMerchantDetails(ctx, commerce.MerchantUpdate{}))

	f.scheduler.EXPECT().Scheduled(commerce.RefreshTokenJobName).Return(true)
	f.store.EXPECT().GetSetting(ctx, accountKey).Return(json.RawMessage(merchantPayload), true, nil)
	f.store.EXPECT().GetSetting(ctx, accountErrsKey).Return(json.RawMessage(`["needs email confirmation"]`), true, nil)

	status, err := f.router.MerchantStatus(ctx)
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.True(t, status.AccountIsReady)
	assert.True(t, status.RefreshScheduled)
	assert.Equal(t, "PP-1", status.MerchantID)
	assert.Equal(t, []string{"needs email confirmation"}, status.Errors)
}

func TestRouter_SaveMerchantDetails_WebhookAndAccountErrors(t *testing.T) {
	ctx := context.Background()
	merchant := commerce.MerchantDetail{ClientID: "cid", ClientSecret: "csecret"}

	t.Run("records webhook id and errors", func(t *testing.T) {
		f := newFixture(t)
		gomock.InOrder(
			f.store.EXPECT().SetSetting(ctx, accountKey, gomock.Any()).Return(nil),
			f.store.EXPECT().SetSetting(ctx, webhookIDKey, jsonEq(`"WH-7"`)).Return(nil),
			f.store.EXPECT().SetSetting(ctx, accountErrsKey, jsonEq(`["confirm your email"]`)).Return(nil),
		)

		require.NoError(t, f.router.SaveMerchantDetails(ctx, commerce.MerchantUpdate{
			MerchantDetail: merchant,
			WebhookID:      "WH-7",
			AccountErrors:  []string{"confirm your email"},
		}))
	})

	t.Run("empty errors clear the record", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().SetSetting(ctx, accountKey, gomock.Any()).Return(nil)
		f.store.EXPECT().DeleteSettings(ctx, accountErrsKey).Return(nil)

		require.NoError(t, f.router.SaveMerchantDetails(ctx, commerce.MerchantUpdate{
			MerchantDetail: merchant,
			AccountErrors:  []string{},
		}))
	})

	t.Run("recorded webhook is deleted on disconnect", func(t *testing.T) {
		f := newFixture(t)
		options := settings.NewOptions(f.store)
		stored := map[string]json.RawMessage{}
		f.store.EXPECT().SetSetting(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, key string, value json.RawMessage) error {
				stored[key] = value
				return nil
			}).AnyTimes()
		f.store.EXPECT().GetSetting(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, key string) (json.RawMessage, bool, error) {
				value, ok := stored[key]
				return value, ok, nil
			}).AnyTimes()
		f.store.EXPECT().DeleteSettings(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, keys ...string) error {
				for _, key := range keys {
					delete(stored, key)
				}
				return nil
			}).AnyTimes()
		f.client.EXPECT().DeleteWebhook(ctx, "TOKEN", "WH-7").Return(nil)
		f.scheduler.EXPECT().Cancel(commerce.RefreshTokenJobName)

		detail := merchant
		detail.AccessToken = "TOKEN"
		f.scheduler.EXPECT().Schedule(commerce.RefreshTokenJobName, gomock.Any(), gomock.Any()).Return(nil)
		require.NoError(t, f.router.SaveMerchantDetails(ctx, commerce.MerchantUpdate{MerchantDetail: detail, WebhookID: "WH-7"}))

		result, err := f.router.RemovePayPalAccount(ctx)
		require.NoError(t, err)
		assert.True(t, result.WebhookDeleted)

		id, err := options.String(ctx, webhookIDKey, "")
		require.NoError(t, err)
		assert.Empty(t, id)
	})
}

func TestRouter_ResumeTokenRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("connected merchant", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().GetSetting(ctx, accountKey).Return(json.RawMessage(merchantPayload), true, nil)
		f.scheduler.EXPECT().Schedule(commerce.RefreshTokenJobName, time.Minute, gomock.Any()).Return(nil)

		require.NoError(t, f.router.ResumeTokenRefresh(ctx))
	})

	t.Run("nothing to resume", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().GetSetting(ctx, accountKey).Return(nil, false, nil)

		require.NoError(t, f.router.ResumeTokenRefresh(ctx))
	})
}
