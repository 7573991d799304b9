package notification

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	StatusEnabled  = "enabled"
	StatusDisabled = "disabled"
	// StatusGlobal is the per-form value meaning "follow the global setting"
	StatusGlobal = "global"

	ContentTypeHTML  = "text/html"
	ContentTypePlain = "text/plain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config describes one email notification type
type Config struct {
	ID                         string `json:"id" validate:"required"`
	Label                      string `json:"label" validate:"required"`
	Description                string `json:"description"`
	NotificationStatus         string `json:"notification_status" validate:"oneof=enabled disabled"`
	NotificationStatusEditable bool   `json:"notification_status_editable"`
	HasRecipientField          bool   `json:"has_recipient_field"`
	RecipientGroupName         string `json:"recipient_group_name"`
	ContentTypeEditable        bool   `json:"content_type_editable"`
	ContentType                string `json:"content_type" validate:"oneof=text/html text/plain"`
	HasPreview                 bool   `json:"has_preview"`
	HasPreviewHeader           bool   `json:"has_preview_header"`
	FormMetaboxSetting         bool   `json:"form_metabox_setting"`
	DefaultEmailSubject        string `json:"default_email_subject"`
	DefaultEmailHeader         string `json:"default_email_header"`
}

// DefaultConfig returns the baseline config every notification type starts from
func DefaultConfig(id, label string) Config {
	return Config{
		ID:                         id,
		Label:                      label,
		NotificationStatus:         StatusDisabled,
		NotificationStatusEditable: true,
		ContentTypeEditable:        true,
		ContentType:                ContentTypeHTML,
		HasPreview:                 true,
		HasPreviewHeader:           true,
		FormMetaboxSetting:         true,
	}
}

// NewConfig validates cfg and returns it
func NewConfig(cfg Config) (Config, error) {
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid notification config %q: %w", cfg.ID, err)
	}
	return cfg, nil
}

// StatusOptionName is the option (and form meta) key holding the notification status
func (c Config) StatusOptionName() string {
	return c.ID + "_notification"
}
