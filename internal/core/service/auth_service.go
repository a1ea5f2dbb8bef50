package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/runjamaica/auth-api/internal/core/domain"
	"github.com/runjamaica/auth-api/internal/core/ports"
	"github.com/runjamaica/auth-api/internal/metrics"
)

// AuthService implements signup, signin and refresh on top of a user
// repository, a password hasher and a token codec. All collaborators are
// injected; the service holds no mutable state of its own.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	codec  ports.TokenCodec
	audit  ports.AuditRecorder
	log    zerolog.Logger

	// decoy hash/salt pair used when signin targets an unknown email, so
	// the absent-user path costs one bcrypt compare like the wrong-password
	// path and cannot be told apart by timing.
	decoyHash string
	decoySalt string
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, codec ports.TokenCodec, audit ports.AuditRecorder, log zerolog.Logger) (*AuthService, error) {
	decoyHash, decoySalt, err := hasher.Hash("decoy-password-never-matched")
	if err != nil {
		return nil, err
	}
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		codec:     codec,
		audit:     audit,
		log:       log,
		decoyHash: decoyHash,
		decoySalt: decoySalt,
	}, nil
}

func (s *AuthService) Signup(ctx context.Context, email, firstName, lastName, password string) (*domain.TokenPair, error) {
	start := time.Now()
	hash, salt, err := s.hasher.Hash(password)
	if err != nil {
		s.log.Error().Err(err).Msg("password hashing failed")
		return nil, domain.ErrServiceUnavailable
	}
	metrics.PasswordHashDuration.Observe(time.Since(start).Seconds())

	user := &domain.User{
		EmailAddress: email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
		Salt:         salt,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			s.log.Info().Str("email", email).Msg("signup attempt for taken email address")
			s.recordAudit(domain.AuditActionSignup, email, false, "email taken")
			metrics.SignupsTotal.WithLabelValues(metrics.ResultConflict).Inc()
			return nil, domain.ErrEmailTaken
		}
		s.log.Error().Err(err).Str("email", email).Msg("signup persistence failed")
		s.recordAudit(domain.AuditActionSignup, email, false, "storage failure")
		metrics.SignupsTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, domain.ErrServiceUnavailable
	}

	pair, err := s.issueTokenPair(created.EmailAddress, created.FirstName, created.LastName)
	if err != nil {
		s.log.Error().Err(err).Msg("token signing failed after signup")
		return nil, domain.ErrServiceUnavailable
	}

	s.recordAudit(domain.AuditActionSignup, email, true, "")
	metrics.SignupsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return pair, nil
}

func (s *AuthService) Signin(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("signin lookup failed")
		metrics.SigninsTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, domain.ErrServiceUnavailable
	}

	if user == nil {
		// Burn a compare against the decoy pair so the caller cannot
		// distinguish unknown email from wrong password.
		s.hasher.Verify(password, s.decoyHash, s.decoySalt)
		s.recordAudit(domain.AuditActionSignin, email, false, "unknown email")
		metrics.SigninsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash, user.Salt) {
		s.recordAudit(domain.AuditActionSignin, email, false, "password mismatch")
		metrics.SigninsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issueTokenPair(user.EmailAddress, user.FirstName, user.LastName)
	if err != nil {
		s.log.Error().Err(err).Msg("token signing failed after signin")
		return nil, domain.ErrServiceUnavailable
	}

	s.recordAudit(domain.AuditActionSignin, email, true, "")
	metrics.SigninsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return pair, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	payload, err := s.codec.Verify(refreshToken)
	if err != nil {
		s.log.Info().Msg("refresh attempt with invalid token")
		s.recordAudit(domain.AuditActionRefresh, "", false, "invalid token")
		metrics.TokenRefreshesTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return "", domain.ErrInvalidToken
	}

	if payload.Purpose != domain.PurposeRefresh {
		s.log.Info().Str("email", payload.EmailAddress).Msg("access token presented as refresh token")
		s.recordAudit(domain.AuditActionRefresh, payload.EmailAddress, false, "wrong token purpose")
		metrics.TokenRefreshesTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return "", domain.ErrInvalidToken
	}

	access, err := s.codec.Sign(domain.TokenPayload{
		EmailAddress: payload.EmailAddress,
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
	}, domain.PurposeAccess)
	if err != nil {
		s.log.Error().Err(err).Msg("access token signing failed on refresh")
		return "", domain.ErrServiceUnavailable
	}

	s.recordAudit(domain.AuditActionRefresh, payload.EmailAddress, true, "")
	metrics.TokenRefreshesTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return access, nil
}

func (s *AuthService) issueTokenPair(email, firstName, lastName string) (*domain.TokenPair, error) {
	payload := domain.TokenPayload{
		EmailAddress: email,
		FirstName:    firstName,
		LastName:     lastName,
	}

	access, err := s.codec.Sign(payload, domain.PurposeAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := s.codec.Sign(payload, domain.PurposeRefresh)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) recordAudit(action, email string, success bool, reason string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEvent{
		EmailAddress: email,
		Action:       action,
		Success:      success,
		Reason:       reason,
		Timestamp:    time.Now().UTC(),
	})
}
