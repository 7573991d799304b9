package formhash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/feral-file/give-gateway/internal/adapter"
)

const action = "give_form_hash"

// ErrInvalidFormHash is returned when a donor request carries a missing or stale give-form-hash
var ErrInvalidFormHash = errors.New("invalid form hash")

// Hasher issues and checks the per-form token donation forms post as give-form-hash.
// A token stays valid for between lifetime/2 and lifetime after it is issued.
type Hasher struct {
	secret   []byte
	lifetime time.Duration
	clock    adapter.Clock
}

// New creates a Hasher
func New(secret string, lifetime time.Duration, clock adapter.Clock) *Hasher {
	if lifetime < 2*time.Second {
		lifetime = 24 * time.Hour
	}
	return &Hasher{
		secret:   []byte(secret),
		lifetime: lifetime,
		clock:    clock,
	}
}

// Generate returns the token for formID at the current tick
func (h *Hasher) Generate(formID int64) string {
	return h.sign(formID, h.tick())
}

// Verify reports whether token was issued for formID during the current or previous tick
func (h *Hasher) Verify(formID int64, token string) bool {
	if formID <= 0 || token == "" {
		return false
	}

	tick := h.tick()
	for _, t := range []int64{tick, tick - 1} {
		if hmac.Equal([]byte(h.sign(formID, t)), []byte(token)) {
			return true
		}
	}
	return false
}

// Check is Verify returning ErrInvalidFormHash on mismatch
func (h *Hasher) Check(formID int64, token string) error {
	if !h.Verify(formID, token) {
		return ErrInvalidFormHash
	}
	return nil
}

func (h *Hasher) tick() int64 {
	half := int64(h.lifetime / 2)
	now := h.clock.Now().UnixNano()
	return (now + half - 1) / half
}

func (h *Hasher) sign(formID int64, tick int64) string {
	mac := hmac.New(sha256.New, h.secret)
	fmt.Fprintf(mac, "%s|%d|%d", action, formID, tick)
	return hex.EncodeToString(mac.Sum(nil))
}
