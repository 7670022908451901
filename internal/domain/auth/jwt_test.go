package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "storeadmin/internal/core/context"
)

func TestValidateToken_RoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("s3cret"))

	token, exp, err := svc.GenerateAccessToken("ana", appctx.RoleAdministrator, time.Hour)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	user, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ana", user.UserName)
	assert.True(t, user.IsAdmin())
	assert.Equal(t, token, user.Token)
}

func TestValidateToken_Rejects(t *testing.T) {
	svc := NewJWTService(JWTConfig{Secret: "s3cret"})
	other := NewJWTService(JWTConfig{Secret: "other"})

	expired, _, err := svc.GenerateAccessToken("ana", appctx.RoleEmployee, -time.Minute)
	require.NoError(t, err)
	foreign, _, err := other.GenerateAccessToken("ana", appctx.RoleEmployee, time.Hour)
	require.NoError(t, err)
	noRole, _, err := svc.GenerateAccessToken("ana", "Guest", time.Hour)
	require.NoError(t, err)
	noSubject, _, err := svc.GenerateAccessToken("", appctx.RoleEmployee, time.Hour)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "ana"},
		Role:             appctx.RoleAdministrator,
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"expired":      expired,
		"wrong secret": foreign,
		"unknown role": noRole,
		"no subject":   noSubject,
		"alg none":     unsigned,
		"garbage":      "not.a.token",
		"empty":        "",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(token)
			assert.Error(t, err)
		})
	}
}
