package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const saltBytes = 16

// BcryptHasher hashes passwords with bcrypt over a per-user random salt.
// The salt is stored next to the hash rather than relying solely on the
// salt bcrypt embeds, so the stored pair is self-contained.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given cost factor. Costs outside
// bcrypt's supported range fall back to the library default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, string, error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}
	salt := base64.RawStdEncoding.EncodeToString(raw)

	hash, err := bcrypt.GenerateFromPassword(h.salted(plaintext, salt), h.cost)
	if err != nil {
		return "", "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), salt, nil
}

func (h *BcryptHasher) Verify(plaintext, hash, salt string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), h.salted(plaintext, salt)) == nil
}

// salted fixes the password-to-input mapping. The salted plaintext is
// digested to a fixed-length string first: bcrypt only accepts 72 bytes of
// input and Go's implementation errors beyond that, so feeding it the raw
// concatenation would reject long passwords outright. The digest is
// base64-encoded because bcrypt stops at the first NUL byte.
func (h *BcryptHasher) salted(plaintext, salt string) []byte {
	sum := sha256.Sum256([]byte(salt + ":" + plaintext))
	return []byte(base64.RawStdEncoding.EncodeToString(sum[:]))
}
