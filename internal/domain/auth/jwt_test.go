package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmabill/internal/core/id"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	user := NewUser(id.New(), "owner@pharmacy.test", "hash", RoleOwner)
	token, expiresAt, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	uc, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), uc.UserID)
	assert.Equal(t, user.OrganizationID.String(), uc.OrganizationID)
	assert.Equal(t, "owner@pharmacy.test", uc.Email)
	assert.Equal(t, []string{"owner"}, uc.Roles)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("secret-a"))
	verifier := NewJWTService(DefaultJWTConfig("secret-b"))

	user := NewUser(id.New(), "user@pharmacy.test", "hash", RoleCashier)
	token, _, err := issuer.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	cfg := DefaultJWTConfig("test-secret")
	cfg.AccessTokenTTL = -time.Minute
	svc := NewJWTService(cfg)

	user := NewUser(id.New(), "user@pharmacy.test", "hash", RoleCashier)
	token, _, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
}

func TestUserLockout(t *testing.T) {
	user := NewUser(id.New(), "user@pharmacy.test", "hash", RoleCashier)
	require.NoError(t, user.CanLogin())

	for i := 0; i < 5; i++ {
		user.RecordFailedLogin(5, 15*time.Minute)
	}
	assert.True(t, user.IsLocked())
	require.Error(t, user.CanLogin())

	user.RecordSuccessfulLogin()
	assert.False(t, user.IsLocked())
	require.NoError(t, user.CanLogin())
	assert.NotNil(t, user.LastLoginAt)
}
