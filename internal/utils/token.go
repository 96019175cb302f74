package utils

import (
	"fmt"
	"time"

	"forkful/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the user record inside the bearer token, minus the
// password hash.
type Claims struct {
	UserID  uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Avatar  string `json:"avatar"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// GenerateToken signs a bearer token for the user.
func GenerateToken(user *models.User, secret string, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Avatar:  user.Avatar,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies the signature and expiry and returns the embedded
// claims. Extra parser options are accepted so tests can pin the clock.
func ParseToken(tokenStr, secret string, opts ...jwt.ParserOption) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}
