package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/feral-file/give-gateway/internal/domain"
	"github.com/feral-file/give-gateway/internal/settings"
)

// ErrUnsupportedContentType is returned by FormattedEmailType for anything but text/html and text/plain
var ErrUnsupportedContentType = errors.New("unsupported email content type")

// ValueFilter post-processes a resolved setting value. Filters run in registration order,
// each receiving the previous filter's output.
type ValueFilter func(ctx context.Context, value any, option string, cfg Config, formID int64, def any) any

// Accessor resolves notification state that depends on stored settings.
// A zero formID means "no form scope".
type Accessor struct {
	options *settings.Options
	filters []ValueFilter
}

// NewAccessor creates an Accessor reading through options
func NewAccessor(options *settings.Options, filters ...ValueFilter) *Accessor {
	return &Accessor{
		options: options,
		filters: filters,
	}
}

// HasPreview reports whether the notification supports previews
func HasPreview(cfg Config) bool { return cfg.HasPreview }

// HasRecipientField reports whether the notification has a configurable recipient list
func HasRecipientField(cfg Config) bool { return cfg.HasRecipientField }

// IsNotificationStatusEditable reports whether admins can toggle the notification
func IsNotificationStatusEditable(cfg Config) bool { return cfg.NotificationStatusEditable }

// IsContentTypeEditable reports whether admins can switch between HTML and plain text
func IsContentTypeEditable(cfg Config) bool { return cfg.ContentTypeEditable }

// HasPreviewHeader reports whether the preview screen shows the header bar
func HasPreviewHeader(cfg Config) bool { return cfg.HasPreviewHeader }

// IsEmailPreview is an alias of HasPreview
func IsEmailPreview(cfg Config) bool { return cfg.HasPreview }

// CanPreviewEmail reports whether actor may open the preview of a notification
func CanPreviewEmail(actor domain.Actor, giveAction string) bool {
	return actor != nil && actor.Can(domain.CapabilityManageSettings) && giveAction == domain.GiveActionPreviewEmail
}

// CanSendPreviewEmail reports whether actor may send a preview email
func CanSendPreviewEmail(actor domain.Actor, giveAction string) bool {
	return actor != nil && actor.Can(domain.CapabilityManageSettings) && giveAction == domain.GiveActionSendPreviewEmail
}

// FormattedEmailType returns the display name of an email content type
func FormattedEmailType(contentType string) (string, error) {
	switch contentType {
	case ContentTypeHTML:
		return "HTML", nil
	case ContentTypePlain:
		return "Plain", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedContentType, contentType)
}

// IsSettingEnabled reports whether value counts as enabled.
// Without compareWith the accepted values are enabled, on and yes.
func IsSettingEnabled(value string, compareWith ...string) bool {
	if len(compareWith) == 0 {
		compareWith = []string{"enabled", "on", "yes"}
	}
	for _, accepted := range compareWith {
		if value == accepted {
			return true
		}
	}
	return false
}

// NotificationStatus returns the raw status of a notification.
// Without a form it is the global option (the config default when unset or not editable);
// with a form it is the form's own value, "global" when unset.
func (a *Accessor) NotificationStatus(ctx context.Context, cfg Config, formID int64) (string, error) {
	if formID == 0 {
		return a.globalStatus(ctx, cfg)
	}

	status, err := a.options.FormMetaString(ctx, formID, cfg.StatusOptionName(), StatusGlobal)
	if err != nil {
		return "", fmt.Errorf("failed to read form %d status for %s: %w", formID, cfg.ID, err)
	}
	return status, nil
}

// IsEmailNotificationActive decides whether a notification should be sent.
// A form can only narrow the global decision: a globally disabled type stays disabled for every form.
func (a *Accessor) IsEmailNotificationActive(ctx context.Context, cfg Config, formID int64) (bool, error) {
	status, err := a.NotificationStatus(ctx, cfg, formID)
	if err != nil {
		return false, err
	}

	if formID == 0 {
		return IsSettingEnabled(status), nil
	}

	// The stored global option counts here even for types admins cannot toggle
	global, err := a.options.String(ctx, cfg.StatusOptionName(), cfg.NotificationStatus)
	if err != nil {
		return false, fmt.Errorf("failed to read global status for %s: %w", cfg.ID, err)
	}

	return IsSettingEnabled(global) && IsSettingEnabled(status, StatusEnabled, StatusGlobal), nil
}

// GetValue resolves a notification setting.
// The form value wins only when the form has switched the notification to "enabled";
// empty results fall back to def and the outcome passes through every ValueFilter.
func (a *Accessor) GetValue(ctx context.Context, cfg Config, option string, formID int64, def any) (any, error) {
	value, err := a.optionValue(ctx, option, def)
	if err != nil {
		return nil, err
	}

	if formID != 0 {
		formStatus, err := a.options.FormMetaString(ctx, formID, cfg.StatusOptionName(), "")
		if err != nil {
			return nil, fmt.Errorf("failed to read form %d status for %s: %w", formID, cfg.ID, err)
		}
		if IsSettingEnabled(formStatus) {
			value, err = a.formMetaValue(ctx, formID, option)
			if err != nil {
				return nil, err
			}
		}
	}

	if isEmpty(value) {
		value = def
	}

	for _, filter := range a.filters {
		value = filter(ctx, value, option, cfg, formID, def)
	}

	return value, nil
}

func (a *Accessor) globalStatus(ctx context.Context, cfg Config) (string, error) {
	if !cfg.NotificationStatusEditable {
		return cfg.NotificationStatus, nil
	}

	status, err := a.options.String(ctx, cfg.StatusOptionName(), cfg.NotificationStatus)
	if err != nil {
		return "", fmt.Errorf("failed to read global status for %s: %w", cfg.ID, err)
	}
	return status, nil
}

func (a *Accessor) optionValue(ctx context.Context, option string, def any) (any, error) {
	raw, found, err := a.options.Get(ctx, option)
	if err != nil {
		return nil, fmt.Errorf("failed to read option %s: %w", option, err)
	}
	if !found {
		return def, nil
	}
	return decodeValue(raw)
}

// formMetaValue returns "" for a missing key, matching an unset form field
func (a *Accessor) formMetaValue(ctx context.Context, formID int64, option string) (any, error) {
	raw, found, err := a.options.FormMeta(ctx, formID, option)
	if err != nil {
		return nil, fmt.Errorf("failed to read form %d option %s: %w", formID, option, err)
	}
	if !found {
		return "", nil
	}
	return decodeValue(raw)
}

func decodeValue(raw json.RawMessage) (any, error) {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("failed to decode setting value: %w", err)
	}
	return value, nil
}

// isEmpty treats nil, false, zero, "", "0" and empty collections as empty
func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == "" || v == "0"
	case bool:
		return !v
	case float64:
		return v == 0
	case int:
		return v == 0
	case int64:
		return v == 0
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}
	return false
}
