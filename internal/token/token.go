// Package token issues and verifies the signed access tokens that gate
// protected routes. Tokens are stateless HS256 JWTs; nothing is persisted
// server-side and expiry is a pure timestamp comparison at verification time
// (no clock-skew leeway, no revocation).
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"go-auth-api/internal/model"
)

// Claims is the verified payload of an access token.
type Claims struct {
	UserID    string
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Codec signs and verifies tokens under a single process-wide secret.
// The secret is injected at construction so tests can run with their own.
type Codec struct {
	secret   []byte
	lifetime time.Duration
}

func NewCodec(secret string, lifetime time.Duration) (*Codec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("signing secret is required")
	}
	if lifetime <= 0 {
		return nil, errors.New("token lifetime must be positive")
	}

	return &Codec{secret: []byte(secret), lifetime: lifetime}, nil
}

// Issue builds a token for the given user with exp = iat + lifetime.
func (c *Codec) Issue(userID string, username string) (string, error) {
	now := time.Now().UTC()

	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(c.lifetime).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a token string. Signature and structure are
// checked by the library before any claim is trusted; the HMAC comparison is
// constant-time. Failures map to the model sentinels so callers can collapse
// them into a uniform response without inspecting messages.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, model.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, model.ErrTokenSignatureInvalid
		default:
			return nil, model.ErrTokenMalformed
		}
	}
	if !parsed.Valid {
		return nil, model.ErrTokenSignatureInvalid
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrTokenMalformed
	}

	claims := &Claims{}
	claims.UserID, _ = claimsMap["sub"].(string)
	claims.Username, _ = claimsMap["username"].(string)
	if claims.UserID == "" {
		return nil, model.ErrTokenMalformed
	}

	if iat, err := claimsMap.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	if exp, err := claimsMap.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}

	return claims, nil
}
