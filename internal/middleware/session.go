// Package middleware provides HTTP middleware components for the application.
package middleware

import (
	"errors"
	"strings"

	"payquick/internal/logging"
	"payquick/internal/models"
	"payquick/internal/services/auth"
	"payquick/internal/services/checkout"
	"payquick/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

const (
	claimsKey  = "claims"
	sessionKey = "session"
)

var ErrNoClaims = errors.New("claims not found in context")

// SessionMiddleware resolves the bearer token to a checkout session. A
// session the process no longer holds is rebuilt from storage.
type SessionMiddleware struct {
	auth     *auth.Service
	sessions *checkout.Manager
	log      logging.Logger
}

func NewSessionMiddleware(authService *auth.Service, sessions *checkout.Manager, log logging.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		auth:     authService,
		sessions: sessions,
		log:      log,
	}
}

func (m *SessionMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return response.Error(c, fiber.StatusUnauthorized, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return response.Error(c, fiber.StatusUnauthorized, "invalid authorization format")
	}

	claims, err := m.auth.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		m.log.Debug(c.UserContext(), "token rejected", "error", err)
		return response.Error(c, fiber.StatusUnauthorized, "invalid token")
	}

	session, err := m.sessions.Resume(c.UserContext(), claims.SessionID)
	if err != nil {
		m.log.Warn(c.UserContext(), "session not found", "session_id", claims.SessionID)
		return response.Error(c, fiber.StatusUnauthorized, "session expired")
	}

	c.Locals(claimsKey, claims)
	c.Locals(sessionKey, session)
	return c.Next()
}

// Session returns the session stored by Handler, or nil outside of it.
func Session(c *fiber.Ctx) *checkout.Session {
	s, _ := c.Locals(sessionKey).(*checkout.Session)
	return s
}

// Claims returns the verified token claims stored by Handler.
func Claims(c *fiber.Ctx) (*models.SessionClaims, error) {
	claims, ok := c.Locals(claimsKey).(*models.SessionClaims)
	if !ok {
		return nil, ErrNoClaims
	}
	return claims, nil
}
