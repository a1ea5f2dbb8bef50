package ports

import (
	"context"

	"github.com/runjamaica/auth-api/internal/core/domain"
)

// UserRepository defines the persistence contract for user records.
type UserRepository interface {
	// Create inserts a new record. It returns domain.ErrDuplicateEmail when
	// the email address is already registered (detected via the store's
	// unique constraint, not a pre-check) and domain.ErrStorageUnavailable
	// for any other persistence failure.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// FindByEmail returns (nil, nil) when no record matches: absence is a
	// normal outcome, not a failure.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
