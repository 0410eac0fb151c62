package contract

import (
	"context"
	"errors"
	"time"

	"codebenders/internal/entity"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

type UserFilter struct {
	Search     string // matched against email, name and username
	IsActive   *bool
	IsVerified *bool
	Offset     int
	Limit      int
}

// UserRepository returns (nil, nil) from the Find methods when nothing matches.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindAll returns one page ordered by creation time and the total match count.
	FindAll(ctx context.Context, filter UserFilter) ([]*entity.User, int, error)
}

// TokenRepository stores one-time tokens until they expire or are consumed.
type TokenRepository interface {
	Save(ctx context.Context, token *entity.OneTimeToken) error
	// Consume returns and deletes the token. It returns (nil, nil) for unknown,
	// expired or wrong-purpose tokens.
	Consume(ctx context.Context, purpose entity.TokenPurpose, token string) (*entity.OneTimeToken, error)
	// Revoke denies an access token id until expiresAt.
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) bool
}
