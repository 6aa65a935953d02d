// Package auth provides authentication and authorization for the
// billing platform. Users belong to exactly one organization; every
// API call runs in that organization's scope.
package auth

import (
	"context"
	"time"

	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/id"
)

// Role is a fixed user role. The platform uses a closed role set
// instead of configurable permissions.
type Role string

const (
	// RoleOwner manages the organization, users and reports
	RoleOwner Role = "owner"

	// RolePharmacist manages catalogs, documents and stock
	RolePharmacist Role = "pharmacist"

	// RoleCashier creates invoices and records payments
	RoleCashier Role = "cashier"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RolePharmacist, RoleCashier:
		return true
	}
	return false
}

// User represents a system user.
type User struct {
	ID             id.ID      `db:"id" json:"id"`
	OrganizationID id.ID      `db:"organization_id" json:"organizationId"`
	Email          string     `db:"email" json:"email"`
	PasswordHash   string     `db:"password_hash" json:"-"`
	FullName       string     `db:"full_name" json:"fullName,omitempty"`
	Role           Role       `db:"role" json:"role"`
	IsActive       bool       `db:"is_active" json:"isActive"`
	IsAdmin        bool       `db:"is_admin" json:"isAdmin"`
	LastLoginAt    *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`

	FailedLoginAttempts int        `db:"failed_login_attempts" json:"-"`
	LockedUntil         *time.Time `db:"locked_until" json:"-"`

	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
	Version   int        `db:"version" json:"version"`
}

// NewUser creates a new user.
func NewUser(organizationID id.ID, email, passwordHash string, role Role) *User {
	now := time.Now()
	return &User{
		ID:             id.New(),
		OrganizationID: organizationID,
		Email:          email,
		PasswordHash:   passwordHash,
		Role:           role,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
		Version:        1,
	}
}

// Validate validates user data.
func (u *User) Validate(ctx context.Context) error {
	if u.Email == "" {
		return apperror.NewValidation("email is required").WithDetail("field", "email")
	}
	if id.IsNil(u.OrganizationID) {
		return apperror.NewValidation("organization is required").WithDetail("field", "organizationId")
	}
	if !u.Role.Valid() {
		return apperror.NewValidation("unknown role").
			WithDetail("field", "role").
			WithDetail("value", string(u.Role))
	}
	return nil
}

// IsLocked returns true if account is locked.
func (u *User) IsLocked() bool {
	if u.LockedUntil == nil {
		return false
	}
	return time.Now().Before(*u.LockedUntil)
}

// CanLogin checks if user can login.
func (u *User) CanLogin() error {
	if !u.IsActive {
		return apperror.NewForbidden("account is disabled")
	}
	if u.IsLocked() {
		return apperror.NewForbidden("account is temporarily locked")
	}
	return nil
}

// RecordFailedLogin increments failed login counter.
func (u *User) RecordFailedLogin(maxAttempts int, lockDuration time.Duration) {
	u.FailedLoginAttempts++
	if u.FailedLoginAttempts >= maxAttempts {
		lockUntil := time.Now().Add(lockDuration)
		u.LockedUntil = &lockUntil
	}
}

// RecordSuccessfulLogin resets failed login counter.
func (u *User) RecordSuccessfulLogin() {
	u.FailedLoginAttempts = 0
	u.LockedUntil = nil
	now := time.Now()
	u.LastLoginAt = &now
}

// RefreshToken represents a refresh token for JWT refresh.
type RefreshToken struct {
	ID            id.ID      `db:"id"`
	UserID        id.ID      `db:"user_id"`
	TokenHash     string     `db:"token_hash"`
	ExpiresAt     time.Time  `db:"expires_at"`
	CreatedAt     time.Time  `db:"created_at"`
	RevokedAt     *time.Time `db:"revoked_at"`
	RevokedReason string     `db:"revoked_reason"`
	UserAgent     string     `db:"user_agent"`
	IPAddress     string     `db:"ip_address"`
}

// IsValid checks if refresh token is valid.
func (t *RefreshToken) IsValid() bool {
	if t.RevokedAt != nil {
		return false
	}
	return time.Now().Before(t.ExpiresAt)
}

// TokenPair contains access and refresh tokens.
type TokenPair struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	TokenType    string    `json:"tokenType"`
}

// Credentials for login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest for user registration.
type RegisterRequest struct {
	OrganizationID id.ID  `json:"organizationId"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	FullName       string `json:"fullName,omitempty"`
	Role           Role   `json:"role"`
}
