package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// NewAccessToken выписывает HS256-токен с actor_id — им подписываются
// переходы в журнале.
func NewAccessToken(secret []byte, actorID string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = time.Hour
	}
	claims := jwt.MapClaims{
		"actor_id": actorID,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
