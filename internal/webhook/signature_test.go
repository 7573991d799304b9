package webhook_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/give-gateway/internal/webhook"
)

func TestComputeSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"charge.succeeded"}`)
	timestamp := int64(1718000000)

	h := hmac.New(sha256.New, []byte("whsec_test"))
	h.Write([]byte(fmt.Sprintf("%d.%s", timestamp, payload)))
	expected := hex.EncodeToString(h.Sum(nil))

	assert.Equal(t, expected, webhook.ComputeSignature("whsec_test", timestamp, payload))
	assert.Equal(t, "t=1718000000,v1="+expected, webhook.SignatureHeaderValue("whsec_test", timestamp, payload))
}

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"charge.succeeded"}`)
	now := time.Unix(1718000000, 0)
	secret := "whsec_test"

	t.Run("valid signature", func(t *testing.T) {
		header := webhook.SignatureHeaderValue(secret, now.Unix(), payload)
		require.NoError(t, webhook.VerifySignature(payload, header, secret, webhook.DefaultTolerance, now))
	})

	t.Run("one of several v1 signatures matches", func(t *testing.T) {
		header := fmt.Sprintf("t=%d,v1=deadbeef,v0=ignored,v1=%s", now.Unix(), webhook.ComputeSignature(secret, now.Unix(), payload))
		require.NoError(t, webhook.VerifySignature(payload, header, secret, webhook.DefaultTolerance, now))
	})

	t.Run("wrong secret", func(t *testing.T) {
		header := webhook.SignatureHeaderValue("whsec_other", now.Unix(), payload)
		err := webhook.VerifySignature(payload, header, secret, webhook.DefaultTolerance, now)
		assert.ErrorIs(t, err, webhook.ErrNoValidSignature)
	})

	t.Run("tampered payload", func(t *testing.T) {
		header := webhook.SignatureHeaderValue(secret, now.Unix(), payload)
		err := webhook.VerifySignature([]byte(`{"id":"evt_2"}`), header, secret, webhook.DefaultTolerance, now)
		assert.ErrorIs(t, err, webhook.ErrNoValidSignature)
	})

	t.Run("stale timestamp", func(t *testing.T) {
		old := now.Add(-6 * time.Minute).Unix()
		header := webhook.SignatureHeaderValue(secret, old, payload)
		err := webhook.VerifySignature(payload, header, secret, webhook.DefaultTolerance, now)
		assert.ErrorIs(t, err, webhook.ErrTimestampOutsideWindow)
	})

	t.Run("zero tolerance skips the window check", func(t *testing.T) {
		old := now.Add(-time.Hour).Unix()
		header := webhook.SignatureHeaderValue(secret, old, payload)
		assert.NoError(t, webhook.VerifySignature(payload, header, secret, 0, now))
	})

	t.Run("malformed headers", func(t *testing.T) {
		for _, header := range []string{"", "v1=abc", "t=123", "t=abc,v1=abc", "garbage"} {
			err := webhook.VerifySignature(payload, header, secret, webhook.DefaultTolerance, now)
			assert.ErrorIs(t, err, webhook.ErrInvalidSignatureHeader, header)
		}
	})
}
