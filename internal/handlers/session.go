package handlers

import (
	"payquick/internal/logging"
	"payquick/internal/middleware"
	"payquick/internal/services/auth"
	"payquick/internal/services/checkout"
	"payquick/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type SessionHandler struct {
	auth     *auth.Service
	sessions *checkout.Manager
	log      logging.Logger
}

func NewSessionHandler(authService *auth.Service, sessions *checkout.Manager, log logging.Logger) *SessionHandler {
	return &SessionHandler{
		auth:     authService,
		sessions: sessions,
		log:      log,
	}
}

// CreateSession opens a checkout session and returns its bearer token.
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	s := h.sessions.Create(c.UserContext())

	token, expires, err := h.auth.IssueSessionToken(s.ID())
	if err != nil {
		h.log.Error(c.UserContext(), "failed to issue session token", "error", err)
		return response.ServerError(c, "Failed to create session")
	}

	return response.Created(c, "Session created", fiber.Map{
		"session_id": s.ID(),
		"token":      token,
		"expires_at": expires,
	})
}

// RefreshSession issues a fresh token for the caller's session.
func (h *SessionHandler) RefreshSession(c *fiber.Ctx) error {
	claims, err := middleware.Claims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	token, expires, err := h.auth.IssueSessionToken(claims.SessionID)
	if err != nil {
		h.log.Error(c.UserContext(), "failed to refresh session token", "error", err)
		return response.ServerError(c, "Failed to refresh session")
	}

	return response.Success(c, "Session refreshed", fiber.Map{
		"session_id": claims.SessionID,
		"token":      token,
		"expires_at": expires,
	})
}
