package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc, err := NewJWTService("test-secret", time.Hour)
	require.NoError(t, err)

	token, err := svc.Generate("admin-1", "ops@racaforte.com")
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.AdminID)
	assert.Equal(t, "ops@racaforte.com", claims.Email)
}

func TestJWTService_RejectsOtherSecret(t *testing.T) {
	a, _ := NewJWTService("secret-a", time.Hour)
	b, _ := NewJWTService("secret-b", time.Hour)

	token, err := a.Generate("admin-1", "ops@racaforte.com")
	require.NoError(t, err)

	_, err = b.Verify(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc, _ := NewJWTService("test-secret", time.Minute)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.Generate("admin-1", "ops@racaforte.com")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestJWTService_EmptySecret(t *testing.T) {
	_, err := NewJWTService("", time.Hour)
	assert.Error(t, err)
}

func TestAuthService_HashAndVerify(t *testing.T) {
	svc := &AuthService{cost: 4}

	hash, err := svc.HashPassword("correct horse")
	require.NoError(t, err)

	assert.True(t, svc.VerifyPassword(hash, "correct horse"))
	assert.False(t, svc.VerifyPassword(hash, "wrong horse"))
}

func TestAuthService_WeakPassword(t *testing.T) {
	_, err := NewAuthService().HashPassword("short")
	assert.ErrorIs(t, err, ErrWeakPassword)
}
