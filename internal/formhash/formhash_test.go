package formhash_test

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/feral-file/give-gateway/internal/formhash"
	"github.com/feral-file/give-gateway/internal/mocks"
)

func TestHasher(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	issued := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	now := issued
	mockClock := mocks.NewMockClock(ctrl)
	mockClock.EXPECT().Now().DoAndReturn(func() time.Time { return now }).AnyTimes()

	hasher := formhash.New("secret", 24*time.Hour, mockClock)
	token := hasher.Generate(12)

	assert.Len(t, token, 64)
	assert.True(t, hasher.Verify(12, token))

	t.Run("bound to the form", func(t *testing.T) {
		assert.False(t, hasher.Verify(13, token))
	})

	t.Run("bound to the secret", func(t *testing.T) {
		other := formhash.New("other", 24*time.Hour, mockClock)
		assert.False(t, other.Verify(12, token))
	})

	t.Run("rejects empty input", func(t *testing.T) {
		assert.False(t, hasher.Verify(0, token))
		assert.False(t, hasher.Verify(12, ""))
	})

	t.Run("valid for the next tick", func(t *testing.T) {
		now = issued.Add(12 * time.Hour)
		assert.True(t, hasher.Verify(12, token))
	})

	t.Run("expired after two ticks", func(t *testing.T) {
		now = issued.Add(25 * time.Hour)
		assert.False(t, hasher.Verify(12, token))
		assert.ErrorIs(t, hasher.Check(12, token), formhash.ErrInvalidFormHash)
	})
}
