package service

import (
	"testing"
	"time"

	"ethnikart/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func adminConfig(t *testing.T, password string) config.AdminConfig {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return config.AdminConfig{
		PasswordHash: string(hash),
		JWTSecret:    "test-secret",
		SessionHours: 24,
	}
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc := NewAdminService(adminConfig(t, "let-me-in"))

	token, expiresAt, err := svc.Login("let-me-in")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// 24-hour session window.
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	assert.NoError(t, svc.ValidateToken(token))
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := NewAdminService(adminConfig(t, "let-me-in"))

	_, _, err := svc.Login("guess")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestLoginPlaintextFallback(t *testing.T) {
	svc := NewAdminService(config.AdminConfig{
		Password:     "dev-password",
		JWTSecret:    "test-secret",
		SessionHours: 24,
	})

	_, _, err := svc.Login("dev-password")
	assert.NoError(t, err)

	_, _, err = svc.Login("wrong")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestLoginDisabledWithoutConfig(t *testing.T) {
	svc := NewAdminService(config.AdminConfig{SessionHours: 24})

	_, _, err := svc.Login("anything")
	assert.ErrorIs(t, err, ErrAdminDisabled)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAdminService(adminConfig(t, "let-me-in"))

	assert.Error(t, svc.ValidateToken("not.a.token"))
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	issuer := NewAdminService(adminConfig(t, "let-me-in"))
	verifier := NewAdminService(config.AdminConfig{
		PasswordHash: adminConfig(t, "let-me-in").PasswordHash,
		JWTSecret:    "different-secret",
		SessionHours: 24,
	})

	token, _, err := issuer.Login("let-me-in")
	require.NoError(t, err)

	assert.Error(t, verifier.ValidateToken(token))
}
