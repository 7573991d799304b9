package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/feral-file/give-gateway/internal/store"
)

// Options is the typed view over the option store used by every service.
// Values are stored as JSON; scalar helpers fall back to the given default when a key is absent.
type Options struct {
	store store.Store
}

// NewOptions creates an Options backed by s
func NewOptions(s store.Store) *Options {
	return &Options{store: s}
}

// Get returns the raw JSON value of key
func (o *Options) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	return o.store.GetSetting(ctx, key)
}

// Decode unmarshals the value of key into out and reports whether the key exists
func (o *Options) Decode(ctx context.Context, key string, out any) (bool, error) {
	raw, found, err := o.store.GetSetting(ctx, key)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("failed to decode option %s: %w", key, err)
	}
	return true, nil
}

// String returns the value of key as a string, or def when absent
func (o *Options) String(ctx context.Context, key string, def string) (string, error) {
	raw, found, err := o.store.GetSetting(ctx, key)
	if err != nil {
		return "", err
	}
	if !found {
		return def, nil
	}
	return rawString(raw), nil
}

// Bool returns the value of key as a boolean, or def when absent
func (o *Options) Bool(ctx context.Context, key string, def bool) (bool, error) {
	raw, found, err := o.store.GetSetting(ctx, key)
	if err != nil {
		return false, err
	}
	if !found {
		return def, nil
	}
	return rawBool(raw), nil
}

// Set JSON-encodes value and stores it under key
func (o *Options) Set(ctx context.Context, key string, value any) error {
	raw, err := marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode option %s: %w", key, err)
	}
	return o.store.SetSetting(ctx, key, raw)
}

// Delete removes keys
func (o *Options) Delete(ctx context.Context, keys ...string) error {
	return o.store.DeleteSettings(ctx, keys...)
}

// FormMeta returns the raw JSON value of a per-form option
func (o *Options) FormMeta(ctx context.Context, formID int64, key string) (json.RawMessage, bool, error) {
	return o.store.GetFormMeta(ctx, formID, key)
}

// FormMetaString returns a per-form option as a string, or def when absent
func (o *Options) FormMetaString(ctx context.Context, formID int64, key string, def string) (string, error) {
	raw, found, err := o.store.GetFormMeta(ctx, formID, key)
	if err != nil {
		return "", err
	}
	if !found {
		return def, nil
	}
	return rawString(raw), nil
}

// SetFormMeta JSON-encodes value and stores it as a per-form option
func (o *Options) SetFormMeta(ctx context.Context, formID int64, key string, value any) error {
	raw, err := marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode form meta %s: %w", key, err)
	}
	return o.store.SetFormMeta(ctx, formID, key, raw)
}

// DeleteFormMeta removes per-form options
func (o *Options) DeleteFormMeta(ctx context.Context, formID int64, keys ...string) error {
	return o.store.DeleteFormMeta(ctx, formID, keys...)
}

func marshal(value any) (json.RawMessage, error) {
	if raw, ok := value.(json.RawMessage); ok {
		return raw, nil
	}
	return json.Marshal(value)
}

// rawString returns JSON strings unquoted and any other JSON value verbatim
func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if string(raw) == "null" {
		return ""
	}
	return string(raw)
}

func rawBool(raw json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	switch strings.ToLower(rawString(raw)) {
	case "1", "true", "yes", "on", "enabled":
		return true
	}
	return false
}
