package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/FACorreiaa/go-todo-list-api/config"
	"github.com/FACorreiaa/go-todo-list-api/internal/api"
	"github.com/FACorreiaa/go-todo-list-api/internal/types"
)

// TokenService issues and verifies stateless HS256 access tokens. The secret
// is injected at construction and never leaves the process; there is no
// server-side session table, so a token is valid until it expires.
type TokenService struct {
	secretKey []byte
	issuer    string
	audience  string
	ttl       time.Duration
}

func NewTokenService(cfg config.JWTConfig) (*TokenService, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("jwt secret key must be provided")
	}
	ttl := cfg.AccessTokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{
		secretKey: []byte(cfg.SecretKey),
		issuer:    cfg.Issuer,
		audience:  cfg.Audience,
		ttl:       ttl,
	}, nil
}

// Issue signs a token carrying the user's identity claims.
func (s *TokenService) Issue(userID, username string) (string, error) {
	now := time.Now()
	claims := types.Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	if s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string and returns the embedded
// claims. The returned error wraps the jwt/v5 sentinel errors
// (ErrTokenExpired, ErrTokenMalformed, ErrSignatureInvalid) so callers can
// classify failures without re-parsing.
func (s *TokenService) Verify(tokenString string) (*types.Claims, error) {
	claims := &types.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	if s.issuer != "" && claims.Issuer != s.issuer {
		return nil, errors.New("invalid token issuer")
	}
	if !api.VerifyAudience(claims.Audience, s.audience) {
		return nil, errors.New("invalid token audience")
	}

	return claims, nil
}
