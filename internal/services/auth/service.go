// Package auth issues and checks the bearer tokens that bind an HTTP
// client to its checkout session.
package auth

import (
	"errors"
	"time"

	"payquick/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "payquick-api"

var (
	ErrMissingSecret = errors.New("JWT_SECRET not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

// Service signs session tokens with HS256.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &Service{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// IssueSessionToken returns a signed token for sessionID and its expiry.
func (s *Service) IssueSessionToken(sessionID string) (string, time.Time, error) {
	now := s.now()
	expires := now.Add(s.ttl)
	claims := models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   sessionID,
		},
		SessionID: sessionID,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expires, nil
}

// ParseToken validates signature, expiry and issuer.
func (s *Service) ParseToken(tokenStr string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
