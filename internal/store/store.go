package store

import (
	"context"
	"encoding/json"
)

// Store defines the interface for settings persistence.
// A missing key is reported through the found flag, never as an error.
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetSetting retrieves a site-wide option by key
	GetSetting(ctx context.Context, key string) (json.RawMessage, bool, error)
	// SetSetting creates or overwrites a site-wide option
	SetSetting(ctx context.Context, key string, value json.RawMessage) error
	// DeleteSettings removes site-wide options; absent keys are ignored
	DeleteSettings(ctx context.Context, keys ...string) error

	// GetFormMeta retrieves a per-form option
	GetFormMeta(ctx context.Context, formID int64, key string) (json.RawMessage, bool, error)
	// SetFormMeta creates or overwrites a per-form option
	SetFormMeta(ctx context.Context, formID int64, key string, value json.RawMessage) error
	// DeleteFormMeta removes per-form options; absent keys are ignored
	DeleteFormMeta(ctx context.Context, formID int64, keys ...string) error
}
