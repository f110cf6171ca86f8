package utils

import (
	"testing"
	"time"

	"karigar/config"
	"karigar/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withSecret(t *testing.T, secret string) {
	t.Helper()
	prev := config.AppConfig.JWTSecret
	config.AppConfig.JWTSecret = secret
	t.Cleanup(func() { config.AppConfig.JWTSecret = prev })
}

func TestTokenRoundTrip(t *testing.T) {
	withSecret(t, "test-secret")

	token, err := GenerateToken("prov-1", models.RoleProvider, "Ravi", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, models.Actor{ID: "prov-1", Role: models.RoleProvider, Name: "Ravi"}, ActorFromClaims(claims))
}

func TestValidateTokenRejects(t *testing.T) {
	withSecret(t, "test-secret")
	expired, err := GenerateToken("cust-1", models.RoleCustomer, "", -time.Minute)
	require.NoError(t, err)
	noSubject, err := GenerateToken("", models.RoleCustomer, "", time.Hour)
	require.NoError(t, err)

	withSecret(t, "other-secret")
	foreign, err := GenerateToken("cust-1", models.RoleCustomer, "", time.Hour)
	require.NoError(t, err)
	withSecret(t, "test-secret")

	for name, token := range map[string]string{
		"expired":      expired,
		"no subject":   noSubject,
		"wrong secret": foreign,
		"garbage":      "not.a.token",
	} {
		_, err := ValidateToken(token)
		assert.Error(t, err, name)
	}

	withSecret(t, "")
	_, err = ValidateToken(noSubject)
	assert.Error(t, err)
}
