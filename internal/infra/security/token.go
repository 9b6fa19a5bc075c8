package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var (
	ErrSecretRequired = errors.New("security: jwt secret is empty")
	ErrTokenExpired   = errors.New("security: token expired")
	ErrTokenInvalid   = errors.New("security: invalid token")
)

// Claims carried by every issued token: the user id in the subject plus the
// account role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 JWTs.
type TokenManager struct {
	Secret string
	TTL    time.Duration
}

// Issue signs a token for the user with the configured lifetime.
func (m TokenManager) Issue(userID, role string, now time.Time) (string, error) {
	if m.Secret == "" {
		return "", ErrSecretRequired
	}
	if now.IsZero() {
		now = time.Now()
	}
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl())),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.Secret))
	if err != nil {
		return "", fmt.Errorf("security: sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry. Expired tokens surface
// ErrTokenExpired; every other failure is ErrTokenInvalid.
func (m TokenManager) Parse(tokenStr string) (*Claims, error) {
	if m.Secret == "" {
		return nil, ErrSecretRequired
	}
	tokenStr = strings.TrimSpace(tokenStr)
	if tokenStr == "" {
		return nil, ErrTokenInvalid
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(m.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func (m TokenManager) ttl() time.Duration {
	if m.TTL > 0 {
		return m.TTL
	}
	return 2 * time.Hour
}
