package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/runjamaica/auth-api/internal/core/domain"
)

// tokenClaims is the JWT claim set carried by both token kinds.
type tokenClaims struct {
	EmailAddress string              `json:"email_address"`
	FirstName    string              `json:"first_name"`
	LastName     string              `json:"last_name,omitempty"`
	TokenType    domain.TokenPurpose `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTCodec signs and verifies HS256 tokens. Access and refresh tokens use
// independent secrets and lifetimes, so a leaked access secret cannot be
// used to forge refresh tokens.
type JWTCodec struct {
	accessSecret  []byte
	accessTTL     time.Duration
	refreshSecret []byte
	refreshTTL    time.Duration
}

func NewJWTCodec(accessSecret string, accessTTL time.Duration, refreshSecret string, refreshTTL time.Duration) *JWTCodec {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &JWTCodec{
		accessSecret:  []byte(accessSecret),
		accessTTL:     accessTTL,
		refreshSecret: []byte(refreshSecret),
		refreshTTL:    refreshTTL,
	}
}

func (c *JWTCodec) Sign(payload domain.TokenPayload, purpose domain.TokenPurpose) (string, error) {
	secret, ttl, err := c.purposeKey(purpose)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := tokenClaims{
		EmailAddress: payload.EmailAddress,
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		TokenType:    purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Verify validates signature and expiry and returns the signed payload. The
// verification key is chosen from the token's declared purpose claim; the
// signature check then proves the claim was minted under the matching
// secret. Every failure collapses to domain.ErrInvalidToken so callers leak
// nothing about why a token was rejected.
func (c *JWTCodec) Verify(token string) (domain.TokenPayload, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		tc, ok := t.Claims.(*tokenClaims)
		if !ok {
			return nil, domain.ErrInvalidToken
		}
		secret, _, err := c.purposeKey(tc.TokenType)
		if err != nil {
			return nil, err
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return domain.TokenPayload{}, domain.ErrInvalidToken
	}

	return domain.TokenPayload{
		EmailAddress: claims.EmailAddress,
		FirstName:    claims.FirstName,
		LastName:     claims.LastName,
		Purpose:      claims.TokenType,
	}, nil
}

func (c *JWTCodec) purposeKey(purpose domain.TokenPurpose) ([]byte, time.Duration, error) {
	switch purpose {
	case domain.PurposeAccess:
		return c.accessSecret, c.accessTTL, nil
	case domain.PurposeRefresh:
		return c.refreshSecret, c.refreshTTL, nil
	default:
		return nil, 0, domain.ErrInvalidToken
	}
}
