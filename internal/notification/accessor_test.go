package notification_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/give-gateway/internal/domain"
	"github.com/feral-file/give-gateway/internal/mocks"
	"github.com/feral-file/give-gateway/internal/notification"
	"github.com/feral-file/give-gateway/internal/settings"
)

func receiptConfig() notification.Config {
	cfg := notification.DefaultConfig("donation-receipt", "Donation Receipt")
	cfg.NotificationStatus = notification.StatusEnabled
	return cfg
}

func jsonString(s string) json.RawMessage {
	raw, _ := json.Marshal(s)
	return raw
}

func newAccessor(t *testing.T, filters ...notification.ValueFilter) (*notification.Accessor, *mocks.MockStore) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockStore(ctrl)
	return notification.NewAccessor(settings.NewOptions(mockStore), filters...), mockStore
}

func TestAccessor_NotificationStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("global status read from option", func(t *testing.T) {
		accessor, mockStore := newAccessor(t)
		cfg := receiptConfig()
		mockStore.EXPECT().GetSetting(ctx, "donation-receipt_notification").Return(jsonString("disabled"), true, nil)

		status, err := accessor.NotificationStatus(ctx, cfg, 0)
		require.NoError(t, err)
		assert.Equal(t, "disabled", status)
	})

	t.Run("global status defaults to config", func(t *testing.T) {
		accessor, mockStore := newAccessor(t)
		cfg := receiptConfig()
		mockStore.EXPECT().GetSetting(ctx, "donation-receipt_notification").Return(nil, false, nil)

		status, err := accessor.NotificationStatus(ctx, cfg, 0)
		require.NoError(t, err)
		assert.Equal(t, notification.StatusEnabled, status)
	})

	t.Run("non editable status ignores stored option", func(t *testing.T) {
		// no store expectations: any read fails the test
		accessor, _ := newAccessor(t)
		cfg := notification.DefaultConfig("email-access", "Email access")
		cfg.NotificationStatusEditable = false

		status, err := accessor.NotificationStatus(ctx, cfg, 0)
		require.NoError(t, err)
		assert.Equal(t, notification.StatusDisabled, status)
	})

	t.Run("form status defaults to global", func(t *testing.T) {
		accessor, mockStore := newAccessor(t)
		mockStore.EXPECT().GetFormMeta(ctx, int64(12), "donation-receipt_notification").Return(nil, false, nil)

		status, err := accessor.NotificationStatus(ctx, receiptConfig(), 12)
		require.NoError(t, err)
		assert.Equal(t, notification.StatusGlobal, status)
	})

	t.Run("store error", func(t *testing.T) {
		accessor, mockStore := newAccessor(t)
		mockStore.EXPECT().GetFormMeta(ctx, int64(12), "donation-receipt_notification").Return(nil, false, errors.New("db down"))

		_, err := accessor.NotificationStatus(ctx, receiptConfig(), 12)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db down")
	})
}

func TestAccessor_IsEmailNotificationActive(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		global     string
		globalSet  bool
		formStatus string
		formSet    bool
		expected   bool
	}{
		{name: "global enabled, form unset", global: "enabled", globalSet: true, expected: true},
		{name: "global enabled, form global", global: "enabled", globalSet: true, formStatus: "global", formSet: true, expected: true},
		{name: "global enabled, form enabled", global: "enabled", globalSet: true, formStatus: "enabled", formSet: true, expected: true},
		{name: "global enabled, form disabled", global: "enabled", globalSet: true, formStatus: "disabled", formSet: true, expected: false},
		{name: "global disabled, form enabled", global: "disabled", globalSet: true, formStatus: "enabled", formSet: true, expected: false},
		{name: "global disabled, form global", global: "disabled", globalSet: true, formStatus: "global", formSet: true, expected: false},
		{name: "global unset uses config default", formStatus: "global", formSet: true, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accessor, mockStore := newAccessor(t)

			var formRaw json.RawMessage
			if tt.formSet {
				formRaw = jsonString(tt.formStatus)
			}
			var globalRaw json.RawMessage
			if tt.globalSet {
				globalRaw = jsonString(tt.global)
			}
			mockStore.EXPECT().GetFormMeta(ctx, int64(7), "donation-receipt_notification").Return(formRaw, tt.formSet, nil)
			mockStore.EXPECT().GetSetting(ctx, "donation-receipt_notification").Return(globalRaw, tt.globalSet, nil)

			active, err := accessor.IsEmailNotificationActive(ctx, receiptConfig(), 7)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, active)
		})
	}

	t.Run("without form follows global only", func(t *testing.T) {
		accessor, mockStore := newAccessor(t)
		mockStore.EXPECT().GetSetting(ctx, "donation-receipt_notification").Return(jsonString("on"), true, nil)

		active, err := accessor.IsEmailNotificationActive(ctx, receiptConfig(), 0)
		require.NoError(t, err)
		assert.True(t, active)
	})

	t.Run("non editable disabled type is never active", func(t *testing.T) {
		accessor, mockStore := newAccessor(t)
		cfg := notification.DefaultConfig("email-access", "Email access")
		cfg.NotificationStatusEditable = false
		mockStore.EXPECT().GetFormMeta(ctx, int64(7), "email-access_notification").Return(jsonString("enabled"), true, nil)
		mockStore.EXPECT().GetSetting(ctx, "email-access_notification").Return(nil, false, nil)

		active, err := accessor.IsEmailNotificationActive(ctx, cfg, 7)
		require.NoError(t, err)
		assert.False(t, active)
	})

	t.Run("form path reads stored global option of non editable type", func(t *testing.T) {
		accessor, mockStore := newAccessor(t)
		cfg := notification.DefaultConfig("email-access", "Email access")
		cfg.NotificationStatusEditable = false
		mockStore.EXPECT().GetFormMeta(ctx, int64(7), "email-access_notification").Return(jsonString("global"), true, nil)
		mockStore.EXPECT().GetSetting(ctx, "email-access_notification").Return(jsonString("enabled"), true, nil)

		active, err := accessor.IsEmailNotificationActive(ctx, cfg, 7)
		require.NoError(t, err)
		assert.True(t, active)

		// without a form the stored option is ignored for a non editable type
		active, err = accessor.IsEmailNotificationActive(ctx, cfg, 0)
		require.NoError(t, err)
		assert.False(t, active)
	})
}

func TestAccessor_GetValue(t *testing.T) {
	ctx := context.Background()
	cfg := receiptConfig()

	t.Run("global value without form", func(t *testing.T) {
		accessor, mockStore := newAccessor(t)
		mockStore.EXPECT().GetSetting(ctx, "donation-receipt_email_subject").Return(jsonString("Thanks!"), true, nil)

		value, err := accessor.GetValue(ctx, cfg, "donation-receipt_email_subject", 0, "Receipt")
		require.NoError(t, err)
		assert.Equal(t, "Thanks!", value)
	})

	t.Run("form value when form override enabled", func(t *testing.T) {
		accessor, mockStore := newAccessor(t)
		mockStore.EXPECT().GetSetting(ctx, "donation-receipt_email_subject").Return(jsonString("Thanks!"), true, nil)
		mockStore.EXPECT().GetFormMeta(ctx, int64(3), "donation-receipt_notification").Return(jsonString("enabled"), true, nil)
		mockStore.EXPECT().GetFormMeta(ctx, int64(3), "donation-receipt_email_subject").Return(jsonString("Form thanks"), true, nil)

		value, err := accessor.GetValue(ctx, cfg, "donation-receipt_email_subject", 3, "Receipt")
		require.NoError(t, err)
		assert.Equal(t, "Form thanks", value)
	})

	t.Run("global value when form follows global", func(t *testing.T) {
		accessor, mockStore := newAccessor(t)
		mockStore.EXPECT().GetSetting(ctx, "donation-receipt_email_subject").Return(jsonString("Thanks!"), true, nil)
		mockStore.EXPECT().GetFormMeta(ctx, int64(3), "donation-receipt_notification").Return(jsonString("global"), true, nil)

		value, err := accessor.GetValue(ctx, cfg, "donation-receipt_email_subject", 3, "Receipt")
		require.NoError(t, err)
		assert.Equal(t, "Thanks!", value)
	})

	t.Run("empty form value falls back to default", func(t *testing.T) {
		accessor, mockStore := newAccessor(t)
		mockStore.EXPECT().GetSetting(ctx, "donation-receipt_email_subject").Return(jsonString("Thanks!"), true, nil)
		mockStore.EXPECT().GetFormMeta(ctx, int64(3), "donation-receipt_notification").Return(jsonString("enabled"), true, nil)
		mockStore.EXPECT().GetFormMeta(ctx, int64(3), "donation-receipt_email_subject").Return(nil, false, nil)

		value, err := accessor.GetValue(ctx, cfg, "donation-receipt_email_subject", 3, "Receipt")
		require.NoError(t, err)
		assert.Equal(t, "Receipt", value)
	})

	t.Run("filters run in order", func(t *testing.T) {
		var seen []any
		first := func(_ context.Context, value any, option string, _ notification.Config, formID int64, _ any) any {
			seen = append(seen, value)
			assert.Equal(t, "donation-receipt_email_subject", option)
			assert.Equal(t, int64(0), formID)
			return value.(string) + " one"
		}
		second := func(_ context.Context, value any, _ string, _ notification.Config, _ int64, _ any) any {
			seen = append(seen, value)
			return value.(string) + " two"
		}
		accessor, mockStore := newAccessor(t, first, second)
		mockStore.EXPECT().GetSetting(ctx, "donation-receipt_email_subject").Return(nil, false, nil)

		value, err := accessor.GetValue(ctx, cfg, "donation-receipt_email_subject", 0, "Receipt")
		require.NoError(t, err)
		assert.Equal(t, "Receipt one two", value)
		assert.Equal(t, []any{"Receipt", "Receipt one"}, seen)
	})
}

func TestIsSettingEnabled(t *testing.T) {
	assert.True(t, notification.IsSettingEnabled("enabled"))
	assert.True(t, notification.IsSettingEnabled("on"))
	assert.True(t, notification.IsSettingEnabled("yes"))
	assert.False(t, notification.IsSettingEnabled("global"))
	assert.False(t, notification.IsSettingEnabled(""))
	assert.True(t, notification.IsSettingEnabled("global", "enabled", "global"))
	assert.False(t, notification.IsSettingEnabled("on", "enabled", "global"))
}

func TestPreviewPermissions(t *testing.T) {
	admin := domain.Capabilities{domain.CapabilityManageSettings}
	donor := domain.Capabilities{}

	assert.True(t, notification.CanPreviewEmail(admin, domain.GiveActionPreviewEmail))
	assert.False(t, notification.CanPreviewEmail(admin, domain.GiveActionSendPreviewEmail))
	assert.False(t, notification.CanPreviewEmail(donor, domain.GiveActionPreviewEmail))
	assert.False(t, notification.CanPreviewEmail(nil, domain.GiveActionPreviewEmail))

	assert.True(t, notification.CanSendPreviewEmail(admin, domain.GiveActionSendPreviewEmail))
	assert.False(t, notification.CanSendPreviewEmail(admin, domain.GiveActionPreviewEmail))
	assert.False(t, notification.CanSendPreviewEmail(domain.Anonymous{}, domain.GiveActionSendPreviewEmail))
}

func TestFormattedEmailType(t *testing.T) {
	name, err := notification.FormattedEmailType(notification.ContentTypeHTML)
	require.NoError(t, err)
	assert.Equal(t, "HTML", name)

	name, err = notification.FormattedEmailType(notification.ContentTypePlain)
	require.NoError(t, err)
	assert.Equal(t, "Plain", name)

	_, err = notification.FormattedEmailType("application/json")
	assert.ErrorIs(t, err, notification.ErrUnsupportedContentType)
}

func TestConfigGetters(t *testing.T) {
	cfg := notification.DefaultConfig("new-donation", "New Donation")
	cfg.HasRecipientField = true
	cfg.HasPreview = false

	assert.False(t, notification.HasPreview(cfg))
	assert.False(t, notification.IsEmailPreview(cfg))
	assert.True(t, notification.HasRecipientField(cfg))
	assert.True(t, notification.IsNotificationStatusEditable(cfg))
	assert.True(t, notification.IsContentTypeEditable(cfg))
	assert.True(t, notification.HasPreviewHeader(cfg))
}
