package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/gsualumni/alumninet/pkg/apperror"
)

// CookieName is the HTTP-only cookie the session token travels in.
const CookieName = "alumninet_session"

// Claims is the signed session payload. The subject carries the user ID.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Sign issues an HS256 token with a fixed TTL. There is no refresh or
// rotation; expiry forces a fresh login.
func Sign(secret string, ttl time.Duration, userID uuid.UUID, email, name, role string) (string, int64, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		Email: email,
		Name:  name,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", 0, err
	}

	return signed, expiresAt.Unix(), nil
}

// Verify parses and validates a session token. Signature mismatch, expiry,
// and malformed tokens are all indistinguishable to the caller.
func Verify(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil || !token.Valid {
		return nil, apperror.ErrUnauthorized
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, apperror.ErrUnauthorized
	}

	switch claims.Role {
	case "ADMIN", "MODERATOR", "MEMBER":
	default:
		return nil, apperror.ErrUnauthorized
	}

	return claims, nil
}
