package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-todo-list-api/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		SecretKey:      "test-access-secret",
		Issuer:         "test-issuer",
		AccessTokenTTL: 15 * time.Minute,
	}
}

func TestNewTokenService_RequiresSecret(t *testing.T) {
	_, err := NewTokenService(config.JWTConfig{})
	assert.Error(t, err)
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc, err := NewTokenService(testJWTConfig())
	require.NoError(t, err)

	token, err := svc.Issue("user123", "testuser")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user123", claims.UserID)
	assert.Equal(t, "testuser", claims.Username)
	assert.Equal(t, "test-issuer", claims.Issuer)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestTokenService_VerifyRejectsTamperedToken(t *testing.T) {
	svc, err := NewTokenService(testJWTConfig())
	require.NoError(t, err)

	token, err := svc.Issue("user123", "testuser")
	require.NoError(t, err)

	// Flip one character of the signed token.
	tampered := []byte(token)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	_, err = svc.Verify(string(tampered))
	assert.Error(t, err)
}

func TestTokenService_VerifyRejectsMalformedToken(t *testing.T) {
	svc, err := NewTokenService(testJWTConfig())
	require.NoError(t, err)

	_, err = svc.Verify("not-a-jwt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenMalformed))
}

func TestTokenService_VerifyRejectsWrongSecret(t *testing.T) {
	issuing, err := NewTokenService(testJWTConfig())
	require.NoError(t, err)

	otherCfg := testJWTConfig()
	otherCfg.SecretKey = "a-different-secret"
	verifying, err := NewTokenService(otherCfg)
	require.NoError(t, err)

	token, err := issuing.Issue("user123", "testuser")
	require.NoError(t, err)

	_, err = verifying.Verify(token)
	assert.Error(t, err)
}

func TestTokenService_VerifyRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	svc, err := NewTokenService(cfg)
	require.NoError(t, err)
	// Force an already-expired token through the same signer.
	svc.ttl = -time.Minute

	token, err := svc.Issue("user123", "testuser")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestTokenService_VerifyRejectsWrongIssuer(t *testing.T) {
	cfg := testJWTConfig()
	issuing, err := NewTokenService(cfg)
	require.NoError(t, err)

	cfg.Issuer = "another-issuer"
	verifying, err := NewTokenService(cfg)
	require.NoError(t, err)
	// Same secret, different expected issuer.
	verifying.secretKey = issuing.secretKey

	token, err := issuing.Issue("user123", "testuser")
	require.NoError(t, err)

	_, err = verifying.Verify(token)
	assert.Error(t, err)
}
