package settings_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang/mock/gomock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/give-gateway/internal/adapter"
	"github.com/feral-file/give-gateway/internal/mocks"
	"github.com/feral-file/give-gateway/internal/settings"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, adapter.RedisClient) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := adapter.NewRedisClientFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestCachedStore_ReadThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mr, redisClient := newRedis(t)
	mockStore := mocks.NewMockStore(ctrl)
	cached := settings.NewCachedStore(mockStore, redisClient, time.Minute)
	ctx := context.Background()

	// Only the first read reaches the store
	mockStore.EXPECT().GetSetting(ctx, "base_country").Return(json.RawMessage(`"CA"`), true, nil).Times(1)

	for i := 0; i < 3; i++ {
		value, found, err := cached.GetSetting(ctx, "base_country")
		require.NoError(t, err)
		assert.True(t, found)
		assert.JSONEq(t, `"CA"`, string(value))
	}

	assert.True(t, mr.Exists("give_gateway:setting:base_country"))
	assert.Equal(t, time.Minute, mr.TTL("give_gateway:setting:base_country"))
}

func TestCachedStore_MissesAreNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mr, redisClient := newRedis(t)
	mockStore := mocks.NewMockStore(ctrl)
	cached := settings.NewCachedStore(mockStore, redisClient, time.Minute)
	ctx := context.Background()

	mockStore.EXPECT().GetSetting(ctx, "missing").Return(nil, false, nil).Times(2)

	for i := 0; i < 2; i++ {
		_, found, err := cached.GetSetting(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, found)
	}
	assert.False(t, mr.Exists("give_gateway:setting:missing"))
}

func TestCachedStore_WritesInvalidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mr, redisClient := newRedis(t)
	mockStore := mocks.NewMockStore(ctrl)
	cached := settings.NewCachedStore(mockStore, redisClient, time.Minute)
	ctx := context.Background()

	require.NoError(t, mr.Set("give_gateway:setting:give_stripe_test_webhook_id", `"we_old"`))
	require.NoError(t, mr.Set("give_gateway:form_meta:5:email_subject", `"old"`))

	gomock.InOrder(
		mockStore.EXPECT().SetSetting(ctx, "give_stripe_test_webhook_id", json.RawMessage(`"we_new"`)).Return(nil),
		mockStore.EXPECT().GetSetting(ctx, "give_stripe_test_webhook_id").Return(json.RawMessage(`"we_new"`), true, nil),
	)

	require.NoError(t, cached.SetSetting(ctx, "give_stripe_test_webhook_id", json.RawMessage(`"we_new"`)))
	assert.False(t, mr.Exists("give_gateway:setting:give_stripe_test_webhook_id"))

	value, _, err := cached.GetSetting(ctx, "give_stripe_test_webhook_id")
	require.NoError(t, err)
	assert.JSONEq(t, `"we_new"`, string(value))

	mockStore.EXPECT().DeleteFormMeta(ctx, int64(5), "email_subject").Return(nil)
	require.NoError(t, cached.DeleteFormMeta(ctx, 5, "email_subject"))
	assert.False(t, mr.Exists("give_gateway:form_meta:5:email_subject"))
}

func TestCachedStore_FallsBackWhenRedisIsDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mr, redisClient := newRedis(t)
	mockStore := mocks.NewMockStore(ctrl)
	cached := settings.NewCachedStore(mockStore, redisClient, time.Minute)
	ctx := context.Background()

	mr.Close()

	mockStore.EXPECT().GetSetting(ctx, "base_country").Return(json.RawMessage(`"US"`), true, nil)
	mockStore.EXPECT().DeleteSettings(ctx, "base_country").Return(nil)

	value, found, err := cached.GetSetting(ctx, "base_country")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `"US"`, string(value))

	assert.NoError(t, cached.DeleteSettings(ctx, "base_country"))
}

// blockingStore holds a GetSetting inside the load until released
type blockingStore struct {
	mu       sync.Mutex
	settings map[string]json.RawMessage
	loading  chan struct{}
	release  chan struct{}
}

func (s *blockingStore) GetSetting(_ context.Context, key string) (json.RawMessage, bool, error) {
	s.mu.Lock()
	value, found := s.settings[key]
	s.mu.Unlock()

	if s.loading != nil {
		close(s.loading)
		s.loading = nil
		<-s.release
	}
	return value, found, nil
}

func (s *blockingStore) SetSetting(_ context.Context, key string, value json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
	return nil
}

func (s *blockingStore) DeleteSettings(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.settings, key)
	}
	return nil
}

func (s *blockingStore) GetFormMeta(context.Context, int64, string) (json.RawMessage, bool, error) {
	return nil, false, nil
}

func (s *blockingStore) SetFormMeta(context.Context, int64, string, json.RawMessage) error {
	return nil
}

func (s *blockingStore) DeleteFormMeta(context.Context, int64, ...string) error {
	return nil
}

func TestCachedStore_DeleteDuringLoadDoesNotResurrect(t *testing.T) {
	mr, redisClient := newRedis(t)
	backing := &blockingStore{
		settings: map[string]json.RawMessage{"give_paypal_commerce_sandbox_account": json.RawMessage(`{"merchantId":"M1"}`)},
		loading:  make(chan struct{}),
		release:  make(chan struct{}),
	}
	loading := backing.loading
	cached := settings.NewCachedStore(backing, redisClient, 10*time.Minute)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		value, found, err := cached.GetSetting(ctx, "give_paypal_commerce_sandbox_account")
		assert.NoError(t, err)
		assert.True(t, found)
		assert.JSONEq(t, `{"merchantId":"M1"}`, string(value))
	}()

	<-loading
	require.NoError(t, cached.DeleteSettings(ctx, "give_paypal_commerce_sandbox_account"))
	close(backing.release)
	<-done

	assert.False(t, mr.Exists("give_gateway:setting:give_paypal_commerce_sandbox_account"))

	_, found, err := cached.GetSetting(ctx, "give_paypal_commerce_sandbox_account")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCachedStore_WriteBumpsGeneration(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mr, redisClient := newRedis(t)
	mockStore := mocks.NewMockStore(ctrl)
	cached := settings.NewCachedStore(mockStore, redisClient, time.Minute)
	ctx := context.Background()

	mockStore.EXPECT().SetSetting(ctx, "currency", json.RawMessage(`"EUR"`)).Return(nil).Times(2)

	require.NoError(t, cached.SetSetting(ctx, "currency", json.RawMessage(`"EUR"`)))
	require.NoError(t, cached.SetSetting(ctx, "currency", json.RawMessage(`"EUR"`)))

	gen, err := mr.Get("give_gateway:setting:currency:gen")
	require.NoError(t, err)
	assert.Equal(t, "2", gen)
}
