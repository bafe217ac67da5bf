package service

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the custom claims carried by access tokens.
// Subject holds the username; UserID rides alongside under the "id" key,
// matching the wire format consumed by existing clients.
type Claims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying access tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Generate creates a signed, time-limited access token for the given user.
	Generate(username string, userID int64) (string, error)

	// Validate checks a token string and returns its claims.
	// It fails closed: signature, structure, expiry and missing-claim problems
	// are all reported as the same generic error.
	Validate(tokenString string) (*Claims, error)
}
