package utils

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "portside-pos-backend"

var (
	jwtMu          sync.RWMutex
	jwtSecretKey   = []byte("portside-pos-dev-secret-change-me")
	accessTokenTTL = 12 * time.Hour // one service day
)

// ConfigureJWT sets the signing secret and lifetime used by GenerateAccessToken.
// Empty or non-positive values keep the current settings.
func ConfigureJWT(secret string, ttl time.Duration) {
	jwtMu.Lock()
	defer jwtMu.Unlock()
	if secret != "" {
		jwtSecretKey = []byte(secret)
	}
	if ttl > 0 {
		accessTokenTTL = ttl
	}
}

// Claims is the session carried by every authenticated request:
// the display name of the current user and their role.
type Claims struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateAccessToken creates a signed session token.
func GenerateAccessToken(name, username, role string) (string, time.Time, error) {
	jwtMu.RLock()
	secret, ttl := jwtSecretKey, accessTokenTTL
	jwtMu.RUnlock()

	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		Name:     name,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// ValidateToken parses and validates a JWT token string.
func ValidateToken(tokenString string) (*Claims, error) {
	jwtMu.RLock()
	secret := jwtSecretKey
	jwtMu.RUnlock()

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Name == "" {
		return nil, fmt.Errorf("token carries no session user")
	}
	return claims, nil
}
