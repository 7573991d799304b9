package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Setting represents the settings table - the site-wide option store.
// Values are JSON so that flags, strings and response blobs share one table.
type Setting struct {
	// Key is the option name (e.g. "give_stripe_test_webhook_id")
	Key string `gorm:"column:key;primaryKey;type:text"`
	// Value is the JSON-encoded option value
	Value     datatypes.JSON `gorm:"column:value;not null;type:jsonb"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime;type:timestamptz"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime;type:timestamptz"`
}

// TableName specifies the table name for the Setting model
func (Setting) TableName() string {
	return "settings"
}
