package auth_test

import (
	"testing"
	"time"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/platform/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAccessToken(t *testing.T) {
	now := time.Now()
	signed, err := auth.SignAccessToken("user-1", "secret", "ledger", time.Hour, now)
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.NewParser(jwt.WithIssuer("ledger")).ParseWithClaims(signed, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.WithinDuration(t, now.Add(time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestSignAccessToken_RejectsBadInput(t *testing.T) {
	_, err := auth.SignAccessToken("", "secret", "ledger", time.Hour, time.Now())
	assert.Error(t, err)

	_, err = auth.SignAccessToken("user-1", "secret", "ledger", 0, time.Now())
	assert.Error(t, err)
}
