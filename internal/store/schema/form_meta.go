package schema

import (
	"time"

	"gorm.io/datatypes"
)

// FormMeta represents the form_meta table - per donation form overrides
type FormMeta struct {
	FormID    int64          `gorm:"column:form_id;primaryKey;autoIncrement:false"`
	MetaKey   string         `gorm:"column:meta_key;primaryKey;type:text"`
	MetaValue datatypes.JSON `gorm:"column:meta_value;not null;type:jsonb"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime;type:timestamptz"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime;type:timestamptz"`
}

// TableName specifies the table name for the FormMeta model
func (FormMeta) TableName() string {
	return "form_meta"
}
