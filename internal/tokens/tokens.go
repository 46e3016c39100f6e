package tokens

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gmodebadze/edu_platform/internal/apperr"
)

const TokenTTL = time.Hour

// Claims is the identity fact set a signed token carries. Subject is the
// identifier the token was issued against (email for the regular sign-in,
// username for the admin one) and is re-resolved on every request.
type Claims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

type Service struct {
	secret []byte
	ttl    time.Duration
}

// New builds a token service around the process-wide signing secret. The
// secret is injected here instead of read from the environment so tests can
// run with their own.
func New(secret []byte) *Service {
	return &Service{secret: secret, ttl: TokenTTL}
}

func (s *Service) Issue(subject string, userID uint) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry. Malformed, forged and expired tokens
// all come back as the same unauthorized error.
func (s *Service) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Unauthorized("invalid or expired token")
	}
	return claims, nil
}
