package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"pressadmin/internal/models"
)

// Claims is the JWT payload carried by bearer tokens. Subject holds the
// user ID; email and role ride along so requests can be authorized
// without a user lookup.
type Claims struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HMAC-signed bearer tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens creates a token issuer/verifier with the given HMAC secret
// and token lifetime.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given user.
func (t *Tokens) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a bearer token, returning the principal it
// identifies. All failures collapse into an AuthenticationError; the
// underlying cause is not surfaced to callers.
func (t *Tokens) Verify(tokenString string) (Principal, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, models.NewAuthenticationError("invalid or expired token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Principal{}, models.NewAuthenticationError("invalid token subject")
	}
	if !models.ValidRole(claims.Role) {
		return Principal{}, models.NewAuthenticationError("invalid token role")
	}

	return Principal{ID: userID, Role: claims.Role}, nil
}
