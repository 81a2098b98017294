package types

import "github.com/golang-jwt/jwt/v5"

// Claims are the identity facts embedded in an access token. Nothing in here
// is trusted until the token signature has been verified.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
