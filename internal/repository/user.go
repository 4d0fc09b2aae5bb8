package repository

import (
	"context"
	"time"

	"github.com/dkarimov/user-account-service/internal/domain"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// ExistsByEmail reports whether a user already holds the email.
	// excludeID may be empty; when set, the record with that ID is ignored
	// so an update cannot collide with itself.
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	All(ctx context.Context) ([]*domain.User, error)
}

type ResetTokenRepository interface {
	Create(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	// Claim atomically marks an unexpired, unused token as consumed and
	// returns it. Returns domain.ErrResetTokenInvalid for anything else.
	Claim(ctx context.Context, tokenHash string) (*domain.PasswordResetToken, error)
	// DeleteStale removes tokens that expired or were consumed before cutoff.
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}
