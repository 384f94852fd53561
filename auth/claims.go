package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMissingUsername = errors.New("auth: token carries no username")

// Claims is the payload of the bearer tokens accepted by the API. Tokens are
// issued by a separate identity service.
type Claims struct {
	Username    string   `json:"username,omitempty"`
	Authorities []string `json:"authorities,omitempty"`
	jwt.RegisteredClaims
}

// LoginName returns the username claim, falling back to the subject.
func (c *Claims) LoginName() (string, error) {
	if c.Username != "" {
		return c.Username, nil
	}
	if c.Subject != "" {
		return c.Subject, nil
	}
	return "", ErrMissingUsername
}

// ClaimsFromToken extracts Claims from a parsed token.
func ClaimsFromToken(token *jwt.Token) (*Claims, error) {
	if token == nil || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
