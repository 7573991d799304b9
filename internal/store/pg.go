package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"

	"github.com/feral-file/give-gateway/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

func hasDBResolver(db *gorm.DB) bool {
	return db != nil && db.Callback().Query().Get("gorm:db_resolver") != nil
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Migrate creates or updates the tables used by the store
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&schema.Setting{}, &schema.FormMeta{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// RegisterReadReplica routes reads to the replica at readDSN while writes stay on the primary
func RegisterReadReplica(db *gorm.DB, readDSN string) error {
	err := db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: []gorm.Dialector{postgres.Open(readDSN)},
		Policy:   dbresolver.RandomPolicy{},
	}))
	if err != nil {
		return fmt.Errorf("failed to register read replica: %w", err)
	}
	return nil
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// Zero values fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 10
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 10
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// GetSetting retrieves a site-wide option by key
func (s *pgStore) GetSetting(ctx context.Context, key string) (json.RawMessage, bool, error) {
	var setting schema.Setting
	query := func(db *gorm.DB) error {
		return db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	}

	err := query(s.db)
	if errors.Is(err, gorm.ErrRecordNotFound) && hasDBResolver(s.db) {
		// Replica can lag behind primary; retry on primary before returning not found.
		err = query(s.db.Clauses(dbresolver.Write))
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get setting %s: %w", key, err)
	}

	return json.RawMessage(setting.Value), true, nil
}

// SetSetting creates or overwrites a site-wide option
func (s *pgStore) SetSetting(ctx context.Context, key string, value json.RawMessage) error {
	setting := schema.Setting{
		Key:   key,
		Value: datatypes.JSON(value),
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&setting).Error
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}

	return nil
}

// DeleteSettings removes site-wide options
func (s *pgStore) DeleteSettings(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Where("key IN ?", keys).Delete(&schema.Setting{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete settings: %w", err)
	}

	return nil
}

// GetFormMeta retrieves a per-form option
func (s *pgStore) GetFormMeta(ctx context.Context, formID int64, key string) (json.RawMessage, bool, error) {
	var meta schema.FormMeta
	query := func(db *gorm.DB) error {
		return db.WithContext(ctx).Where("form_id = ? AND meta_key = ?", formID, key).First(&meta).Error
	}

	err := query(s.db)
	if errors.Is(err, gorm.ErrRecordNotFound) && hasDBResolver(s.db) {
		err = query(s.db.Clauses(dbresolver.Write))
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get form meta %d/%s: %w", formID, key, err)
	}

	return json.RawMessage(meta.MetaValue), true, nil
}

// SetFormMeta creates or overwrites a per-form option
func (s *pgStore) SetFormMeta(ctx context.Context, formID int64, key string, value json.RawMessage) error {
	meta := schema.FormMeta{
		FormID:    formID,
		MetaKey:   key,
		MetaValue: datatypes.JSON(value),
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "form_id"}, {Name: "meta_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"meta_value", "updated_at"}),
		}).
		Create(&meta).Error
	if err != nil {
		return fmt.Errorf("failed to set form meta %d/%s: %w", formID, key, err)
	}

	return nil
}

// DeleteFormMeta removes per-form options
func (s *pgStore) DeleteFormMeta(ctx context.Context, formID int64, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).
		Where("form_id = ? AND meta_key IN ?", formID, keys).
		Delete(&schema.FormMeta{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete form meta %d: %w", formID, err)
	}

	return nil
}
