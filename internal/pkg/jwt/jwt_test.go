package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTService_InvalidExpiration(t *testing.T) {
	_, err := NewJWTService("secret", "soon")
	assert.Error(t, err)

	_, err = NewJWTService("secret", "-1h")
	assert.Error(t, err)
}

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc, err := NewJWTService("test-secret", "1h")
	require.NoError(t, err)

	before := time.Now()
	token, expiresAt, err := svc.GenerateAccessToken("user-1", "emp-1", RoleManager)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, before.Add(time.Hour).Unix(), expiresAt, 2)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", decoded.Subject())
	role, _ := decoded.Get("role")
	assert.Equal(t, "manager", role)
	typ, _ := decoded.Get("type")
	assert.Equal(t, TokenTypeAccess, typ)
	emp, _ := decoded.Get("employee_id")
	assert.Equal(t, "emp-1", emp)
}

func TestGenerateAccessToken_WrongSecretRejected(t *testing.T) {
	issuer, err := NewJWTService("secret-a", "1h")
	require.NoError(t, err)
	verifier, err := NewJWTService("secret-b", "1h")
	require.NoError(t, err)

	token, _, err := issuer.GenerateAccessToken("user-1", "", RoleEmployee)
	require.NoError(t, err)

	_, err = verifier.JWTAuth().Decode(token)
	assert.Error(t, err)
}

func TestRole(t *testing.T) {
	r, ok := ParseRole("admin")
	assert.True(t, ok)
	assert.True(t, r.CanReviewLeave())
	assert.True(t, RoleManager.CanReviewLeave())
	assert.False(t, RoleEmployee.CanReviewLeave())

	_, ok = ParseRole("owner")
	assert.False(t, ok)
}
