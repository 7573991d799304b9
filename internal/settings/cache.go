package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/give-gateway/internal/adapter"
	"github.com/feral-file/give-gateway/internal/logger"
	"github.com/feral-file/give-gateway/internal/store"
)

const cachePrefix = "give_gateway:"

type cachedStore struct {
	next  store.Store
	redis adapter.RedisClient
	ttl   time.Duration
}

// NewCachedStore wraps next with a Redis read-through cache.
// Writes go to next first, then bump the key generation and drop the cached value.
// A read only keeps what it cached if the generation did not move while it loaded.
// Cache failures never fail a call.
func NewCachedStore(next store.Store, redis adapter.RedisClient, ttl time.Duration) store.Store {
	return &cachedStore{next: next, redis: redis, ttl: ttl}
}

func settingKey(key string) string {
	return cachePrefix + "setting:" + key
}

func formMetaKey(formID int64, key string) string {
	return fmt.Sprintf("%sform_meta:%d:%s", cachePrefix, formID, key)
}

func (c *cachedStore) GetSetting(ctx context.Context, key string) (json.RawMessage, bool, error) {
	return c.readThrough(ctx, settingKey(key), func() (json.RawMessage, bool, error) {
		return c.next.GetSetting(ctx, key)
	})
}

func (c *cachedStore) SetSetting(ctx context.Context, key string, value json.RawMessage) error {
	if err := c.next.SetSetting(ctx, key, value); err != nil {
		return err
	}
	c.invalidate(ctx, settingKey(key))
	return nil
}

func (c *cachedStore) DeleteSettings(ctx context.Context, keys ...string) error {
	if err := c.next.DeleteSettings(ctx, keys...); err != nil {
		return err
	}
	cacheKeys := make([]string, 0, len(keys))
	for _, key := range keys {
		cacheKeys = append(cacheKeys, settingKey(key))
	}
	c.invalidate(ctx, cacheKeys...)
	return nil
}

func (c *cachedStore) GetFormMeta(ctx context.Context, formID int64, key string) (json.RawMessage, bool, error) {
	return c.readThrough(ctx, formMetaKey(formID, key), func() (json.RawMessage, bool, error) {
		return c.next.GetFormMeta(ctx, formID, key)
	})
}

func (c *cachedStore) SetFormMeta(ctx context.Context, formID int64, key string, value json.RawMessage) error {
	if err := c.next.SetFormMeta(ctx, formID, key, value); err != nil {
		return err
	}
	c.invalidate(ctx, formMetaKey(formID, key))
	return nil
}

func (c *cachedStore) DeleteFormMeta(ctx context.Context, formID int64, keys ...string) error {
	if err := c.next.DeleteFormMeta(ctx, formID, keys...); err != nil {
		return err
	}
	cacheKeys := make([]string, 0, len(keys))
	for _, key := range keys {
		cacheKeys = append(cacheKeys, formMetaKey(formID, key))
	}
	c.invalidate(ctx, cacheKeys...)
	return nil
}

func generationKey(cacheKey string) string {
	return cacheKey + ":gen"
}

// readThrough only caches values that exist; misses always reach the store
func (c *cachedStore) readThrough(ctx context.Context, cacheKey string, load func() (json.RawMessage, bool, error)) (json.RawMessage, bool, error) {
	cached, hit, err := c.redis.Get(ctx, cacheKey)
	if err != nil {
		logger.WarnCtx(ctx, "settings cache read failed", zap.String("key", cacheKey), zap.Error(err))
	} else if hit {
		return json.RawMessage(cached), true, nil
	}

	// Read before loading so a write racing the load is detected afterwards
	before, genErr := c.generation(ctx, cacheKey)

	value, found, err := load()
	if err != nil || !found {
		return value, found, err
	}
	if genErr != nil {
		return value, true, nil
	}

	if err := c.redis.Set(ctx, cacheKey, value, c.ttl); err != nil {
		logger.WarnCtx(ctx, "settings cache write failed", zap.String("key", cacheKey), zap.Error(err))
		return value, true, nil
	}

	after, err := c.generation(ctx, cacheKey)
	if err != nil || after != before {
		// A write landed while loading; the value may be stale
		c.drop(ctx, cacheKey)
	}
	return value, true, nil
}

// generation returns the write counter of cacheKey, zero when never written
func (c *cachedStore) generation(ctx context.Context, cacheKey string) (int64, error) {
	raw, found, err := c.redis.Get(ctx, generationKey(cacheKey))
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}
	gen, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid cache generation %q: %w", raw, err)
	}
	return gen, nil
}

// invalidate bumps each key generation before dropping the cached values
func (c *cachedStore) invalidate(ctx context.Context, cacheKeys ...string) {
	for _, cacheKey := range cacheKeys {
		if _, err := c.redis.Incr(ctx, generationKey(cacheKey)); err != nil {
			logger.WarnCtx(ctx, "settings cache generation bump failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	c.drop(ctx, cacheKeys...)
}

func (c *cachedStore) drop(ctx context.Context, cacheKeys ...string) {
	if err := c.redis.Del(ctx, cacheKeys...); err != nil {
		logger.WarnCtx(ctx, "settings cache invalidation failed", zap.Strings("keys", cacheKeys), zap.Error(err))
	}
}
