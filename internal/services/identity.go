package services

import (
	"crypto/sha256"
	"encoding/hex"
)

// IdentityHasher derives the stable anonymous token that keys rate limits
// and report uniqueness. One-way: the raw address is never persisted or
// logged, only the digest.
type IdentityHasher struct {
	salt string
}

func NewIdentityHasher(salt string) *IdentityHasher {
	return &IdentityHasher{salt: salt}
}

func (h *IdentityHasher) Hash(rawAddr string) string {
	sum := sha256.Sum256([]byte(h.salt + rawAddr))
	return hex.EncodeToString(sum[:])
}
