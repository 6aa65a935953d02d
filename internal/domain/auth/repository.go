package auth

import (
	"context"

	"pharmabill/internal/core/id"
)

// UserRepository stores pharmacy staff accounts. Email uniqueness is
// enforced against live accounts only; a deleted user's email can be
// reused.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID id.ID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error

	// Delete soft-deletes the account. Issued tokens are revoked by
	// the service, not here.
	Delete(ctx context.Context, userID id.ID) error

	List(ctx context.Context, filter UserFilter) ([]User, int, error)
	Exists(ctx context.Context, email string) (bool, error)
}

// TokenRepository stores refresh tokens by hash. The raw token never
// reaches the database.
type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, token *RefreshToken) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenID id.ID, reason string) error
	RevokeAllUserTokens(ctx context.Context, userID id.ID, reason string) error
	CleanupExpiredTokens(ctx context.Context) (int, error)
}

// UserFilter narrows List.
type UserFilter struct {
	OrganizationID id.ID
	Search         string
	IsActive       *bool
	Role           Role
	Limit          int
	Offset         int
}
