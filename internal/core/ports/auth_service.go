package ports

import (
	"context"

	"github.com/runjamaica/auth-api/internal/core/domain"
)

// AuthService orchestrates signup, signin and token refresh.
type AuthService interface {
	Signup(ctx context.Context, email, firstName, lastName, password string) (*domain.TokenPair, error)
	Signin(ctx context.Context, email, password string) (*domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// PasswordHasher produces and verifies salted one-way password hashes.
type PasswordHasher interface {
	// Hash derives a salted hash from the plaintext under a fresh random
	// salt. Two calls on the same plaintext never yield the same pair.
	Hash(plaintext string) (hash, salt string, err error)

	// Verify reports whether plaintext matches the stored hash/salt pair.
	// A mismatch is a false return, never an error.
	Verify(plaintext, hash, salt string) bool
}

// TokenCodec signs and verifies identity token payloads.
type TokenCodec interface {
	// Sign serializes the payload under the secret and TTL configured for
	// the given purpose.
	Sign(payload domain.TokenPayload, purpose domain.TokenPurpose) (string, error)

	// Verify checks signature and expiry and returns the payload exactly as
	// signed. Every failure collapses to domain.ErrInvalidToken; checking
	// the decoded purpose is the caller's responsibility.
	Verify(token string) (domain.TokenPayload, error)
}
