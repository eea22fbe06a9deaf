package handlers

import (
	"context"
	"time"

	"payquick/internal/services/checkout"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck is a readiness probe for one dependency.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks   map[string]HealthCheck
	sessions *checkout.Manager
}

func NewHealthHandler(sessions *checkout.Manager, checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks, sessions: sessions}
}

func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	services := fiber.Map{}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			services[name] = "unavailable"
			status = fiber.StatusServiceUnavailable
			continue
		}
		services[name] = "connected"
	}

	overall := "ok"
	if status != fiber.StatusOK {
		overall = "degraded"
	}
	return c.Status(status).JSON(fiber.Map{
		"status":   overall,
		"version":  "1.0.0",
		"sessions": h.sessions.Len(),
		"services": services,
	})
}
